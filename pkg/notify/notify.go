// Package notify implements the notification center: transient user-visible
// messages with a severity, an optional lifetime, and an optional single
// action. The center fans deliveries out to attached sinks and keeps a ring
// of recent notifications for later inspection.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity classifies a notification for presentation.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

func (s Severity) String() string { return string(s) }

// DefaultDuration applies when a notification is posted without an explicit
// lifetime.
const DefaultDuration = 5 * time.Second

// defaultRingSize bounds the recent-notification ring.
const defaultRingSize = 50

// Action is the single optional user action attached to a notification,
// e.g. a "View" shortcut bound to a created record.
type Action struct {
	Label  string
	Invoke func()
}

// Notification is one transient message.
type Notification struct {
	ID        string
	Message   string
	Severity  Severity
	Duration  time.Duration
	Action    *Action
	CreatedAt time.Time
}

// HasAction reports whether an invokable action is attached.
func (n Notification) HasAction() bool {
	return n.Action != nil && n.Action.Invoke != nil
}

// Sink receives notifications as they are posted.
type Sink interface {
	Deliver(Notification)
}

// ---------------------------------------------------------------------------
// Center
// ---------------------------------------------------------------------------

// Center dispatches notifications to attached sinks, synchronously and in
// attachment order, and retains the most recent ones.
type Center struct {
	mu     sync.Mutex
	sinks  []Sink
	recent []Notification
	limit  int
}

// NewCenter creates a notification center with no sinks attached.
func NewCenter() *Center {
	return &Center{limit: defaultRingSize}
}

// AttachSink registers a delivery target.
func (c *Center) AttachSink(s Sink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sinks = append(c.sinks, s)
}

// Notify posts a notification. A zero duration selects DefaultDuration;
// action may be nil. The populated notification is returned.
func (c *Center) Notify(message string, severity Severity, duration time.Duration, action *Action) Notification {
	if duration <= 0 {
		duration = DefaultDuration
	}
	n := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		Duration:  duration,
		Action:    action,
		CreatedAt: time.Now().UTC(),
	}

	c.mu.Lock()
	c.recent = append(c.recent, n)
	if len(c.recent) > c.limit {
		c.recent = c.recent[len(c.recent)-c.limit:]
	}
	sinks := make([]Sink, len(c.sinks))
	copy(sinks, c.sinks)
	c.mu.Unlock()

	for _, s := range sinks {
		s.Deliver(n)
	}
	return n
}

// Success posts a success notification with the default lifetime.
func (c *Center) Success(message string) Notification {
	return c.Notify(message, SeveritySuccess, 0, nil)
}

// Error posts an error notification with the default lifetime.
func (c *Center) Error(message string) Notification {
	return c.Notify(message, SeverityError, 0, nil)
}

// Info posts an informational notification with the default lifetime.
func (c *Center) Info(message string) Notification {
	return c.Notify(message, SeverityInfo, 0, nil)
}

// Recent returns up to n of the most recent notifications, newest last.
// n <= 0 returns everything retained.
func (c *Center) Recent(n int) []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n <= 0 || n > len(c.recent) {
		n = len(c.recent)
	}
	out := make([]Notification, n)
	copy(out, c.recent[len(c.recent)-n:])
	return out
}

// ---------------------------------------------------------------------------
// Recorder sink
// ---------------------------------------------------------------------------

// Recorder is a Sink that captures every delivery, for tests and for the
// notices view.
type Recorder struct {
	mu    sync.Mutex
	notes []Notification
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Deliver implements Sink.
func (r *Recorder) Deliver(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

// Notifications returns a copy of everything delivered so far.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.notes))
	copy(out, r.notes)
	return out
}

// Reset clears the recorder.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = nil
}

var _ Sink = (*Recorder)(nil)
