package confirm

import (
	"context"
	"testing"
	"time"
)

// TestNewRequest verifies identifier assignment and default button labels.
func TestNewRequest(t *testing.T) {
	tests := []struct {
		name        string
		confirmText string
		cancelText  string
		wantConfirm string
		wantCancel  string
	}{
		{name: "defaults", wantConfirm: "Confirm", wantCancel: "Cancel"},
		{name: "custom labels", confirmText: "Delete", cancelText: "Keep", wantConfirm: "Delete", wantCancel: "Keep"},
		{name: "partial custom", confirmText: "Purge", wantConfirm: "Purge", wantCancel: "Cancel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewRequest("Title", "Body", tt.confirmText, tt.cancelText)
			if req.ID == "" {
				t.Error("expected a generated request id")
			}
			if req.ConfirmText != tt.wantConfirm {
				t.Errorf("expected confirm label %q, got %q", tt.wantConfirm, req.ConfirmText)
			}
			if req.CancelText != tt.wantCancel {
				t.Errorf("expected cancel label %q, got %q", tt.wantCancel, req.CancelText)
			}
		})
	}
}

// TestPendingSettlesOnce verifies only the first settlement takes effect.
func TestPendingSettlesOnce(t *testing.T) {
	tests := []struct {
		name   string
		settle func(*Pending)
		want   bool
	}{
		{
			name:   "confirm wins over later cancel",
			settle: func(p *Pending) { p.Confirm(); p.Cancel() },
			want:   true,
		},
		{
			name:   "cancel wins over later confirm",
			settle: func(p *Pending) { p.Cancel(); p.Confirm(); p.Confirm() },
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPending()
			tt.settle(p)

			got, err := p.Wait(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

// TestPendingWaitBlocks verifies Wait returns only after settlement.
func TestPendingWaitBlocks(t *testing.T) {
	p := NewPending()

	done := make(chan bool, 1)
	go func() {
		outcome, err := p.Wait(context.Background())
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		done <- outcome
	}()

	select {
	case <-done:
		t.Fatal("expected Wait to block before settlement")
	case <-time.After(20 * time.Millisecond):
	}

	p.Confirm()

	select {
	case outcome := <-done:
		if !outcome {
			t.Error("expected confirmed outcome")
		}
	case <-time.After(time.Second):
		t.Fatal("expected Wait to return after settlement")
	}
}

// TestPendingWaitContextCancel verifies a cancelled context aborts the wait
// with the context error.
func TestPendingWaitContextCancel(t *testing.T) {
	p := NewPending()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome, err := p.Wait(ctx)
	if err == nil {
		t.Fatal("expected context error, got nil")
	}
	if outcome {
		t.Error("expected false outcome on aborted wait")
	}
}

// TestAutoApprove verifies scripted runs confirm without interaction.
func TestAutoApprove(t *testing.T) {
	ok, err := AutoApprove{}.Confirm(context.Background(), NewRequest("Delete chat", "", "", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected auto-approval")
	}
}

// TestFuncAdapter verifies the function adapter passes through request and
// outcome.
func TestFuncAdapter(t *testing.T) {
	var seen Request
	f := Func(func(_ context.Context, req Request) (bool, error) {
		seen = req
		return false, nil
	})

	req := NewRequest("Purge database", "Everything will be lost.", "Purge", "")
	ok, err := f.Confirm(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected declined outcome")
	}
	if seen.ID != req.ID || seen.Title != "Purge database" {
		t.Errorf("expected request passed through, got %+v", seen)
	}
}
