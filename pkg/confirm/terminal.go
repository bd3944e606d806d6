package confirm

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
)

// Terminal answers confirmation requests interactively on the controlling
// terminal. Each request renders its title and content, then prompts with
// the two choice labels until one is recognized.
type Terminal struct {
	Out io.Writer
}

// NewTerminal creates a terminal confirmer writing to stdout.
func NewTerminal() *Terminal {
	return &Terminal{Out: os.Stdout}
}

// Confirm implements Confirmer. The prompt accepts the request's labels
// (case-insensitive) plus y/yes and n/no; EOF, interrupt, and an empty line
// all count as cancellation.
func (t *Terminal) Confirm(ctx context.Context, req Request) (bool, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: fmt.Sprintf("[%s/%s] ", req.ConfirmText, req.CancelText),
	})
	if err != nil {
		return false, fmt.Errorf("open prompt: %w", err)
	}

	fmt.Fprintln(t.Out, req.Title)
	if req.Content != "" {
		fmt.Fprintln(t.Out, req.Content)
	}

	pending := NewPending()
	go func() {
		defer rl.Close()
		for {
			line, err := rl.Readline()
			if err != nil {
				pending.Cancel()
				return
			}
			switch strings.ToLower(strings.TrimSpace(line)) {
			case strings.ToLower(req.ConfirmText), "y", "yes":
				pending.Confirm()
				return
			case strings.ToLower(req.CancelText), "n", "no", "":
				pending.Cancel()
				return
			default:
				fmt.Fprintf(t.Out, "please answer %q or %q\n", req.ConfirmText, req.CancelText)
			}
		}
	}()

	outcome, err := pending.Wait(ctx)
	if err != nil {
		// Unblock the reader; the pending future is already settled or
		// will settle into the void.
		rl.Close()
		return false, err
	}
	return outcome, nil
}

var _ Confirmer = (*Terminal)(nil)
