// Package confirm suspends a logical operation on a user's explicit choice.
// A Request describes the decision; a Confirmer delivers exactly one outcome
// exactly once per invocation, settled through a single-resolution future.
package confirm

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Request describes one confirmation round-trip.
type Request struct {
	ID          string
	Title       string
	Content     string
	ConfirmText string
	CancelText  string
}

// NewRequest builds a request with an assigned identifier and default
// button labels where none are given.
func NewRequest(title, content, confirmText, cancelText string) Request {
	if confirmText == "" {
		confirmText = "Confirm"
	}
	if cancelText == "" {
		cancelText = "Cancel"
	}
	return Request{
		ID:          uuid.NewString(),
		Title:       title,
		Content:     content,
		ConfirmText: confirmText,
		CancelText:  cancelText,
	}
}

// Confirmer blocks the calling operation until the user decides. The boolean
// is true on confirmation, false on cancellation; the error is non-nil only
// when the wait itself fails (context cancelled), never for a "no".
type Confirmer interface {
	Confirm(ctx context.Context, req Request) (bool, error)
}

// Func adapts a plain function to the Confirmer interface.
type Func func(ctx context.Context, req Request) (bool, error)

// Confirm implements Confirmer.
func (f Func) Confirm(ctx context.Context, req Request) (bool, error) {
	return f(ctx, req)
}

// AutoApprove confirms every request without user interaction, for
// scripted runs.
type AutoApprove struct{}

// Confirm implements Confirmer.
func (AutoApprove) Confirm(context.Context, Request) (bool, error) {
	return true, nil
}

// ---------------------------------------------------------------------------
// Single-resolution future
// ---------------------------------------------------------------------------

// Pending is the suspension point between an operation and the interface
// answering for the user. Exactly one of Confirm/Cancel takes effect; later
// settlements are no-ops.
type Pending struct {
	once sync.Once
	ch   chan bool
}

// NewPending creates an unsettled future.
func NewPending() *Pending {
	return &Pending{ch: make(chan bool, 1)}
}

// Confirm settles the future with a positive outcome.
func (p *Pending) Confirm() { p.settle(true) }

// Cancel settles the future with a negative outcome.
func (p *Pending) Cancel() { p.settle(false) }

func (p *Pending) settle(outcome bool) {
	p.once.Do(func() { p.ch <- outcome })
}

// Wait blocks until the future settles or ctx is done.
func (p *Pending) Wait(ctx context.Context) (bool, error) {
	select {
	case outcome := <-p.ch:
		return outcome, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

var (
	_ Confirmer = Func(nil)
	_ Confirmer = AutoApprove{}
)
