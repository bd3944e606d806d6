package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ConsoleSink renders notifications as single styled lines on a terminal
// writer. Severity picks the badge color; an attached action is shown as a
// hint but not invoked.
type ConsoleSink struct {
	mu  sync.Mutex
	out io.Writer

	styles map[Severity]lipgloss.Style
	hint   lipgloss.Style
}

// NewConsoleSink creates a sink writing to out.
func NewConsoleSink(out io.Writer) *ConsoleSink {
	badge := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
	}
	return &ConsoleSink{
		out: out,
		styles: map[Severity]lipgloss.Style{
			SeveritySuccess: badge("10"),
			SeverityError:   badge("9"),
			SeverityInfo:    badge("12"),
			SeverityWarning: badge("11"),
		},
		hint: lipgloss.NewStyle().Faint(true),
	}
}

// Deliver implements Sink.
func (s *ConsoleSink) Deliver(n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	badge := s.styles[n.Severity].Render(fmt.Sprintf("[%s]", n.Severity))
	line := fmt.Sprintf("%s %s", badge, n.Message)
	if n.HasAction() {
		line += " " + s.hint.Render(fmt.Sprintf("(%s available)", n.Action.Label))
	}
	fmt.Fprintln(s.out, line)
}

var _ Sink = (*ConsoleSink)(nil)
