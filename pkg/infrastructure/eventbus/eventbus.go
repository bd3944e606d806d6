// Package eventbus provides the in-process implementation of the change
// event bus. This is the infrastructure adapter for domain.EventBus.
package eventbus

import (
	"sync"

	"github.com/atelier-ai/atelier/pkg/domain"
)

// subscription pairs a handler with a removable registration.
type subscription struct {
	id      uint64
	handler domain.EventHandler
}

// InProcessBus is a synchronous in-process event bus. It dispatches events
// to registered handlers immediately on Publish(), in registration order,
// with no buffering and no back-pressure. Instances are passed by reference
// to every component that needs one; there is no package-level bus.
type InProcessBus struct {
	handlers    map[domain.Topic][]subscription
	allHandlers []subscription
	nextID      uint64
	mu          sync.RWMutex
	closed      bool
}

// New creates a new in-process event bus.
func New() *InProcessBus {
	return &InProcessBus{
		handlers: make(map[domain.Topic][]subscription),
	}
}

// Publish dispatches an event to all matching handlers. Handlers registered
// for the event's topic are called first, then all-topic handlers, each set
// in registration order. A closed bus drops events silently.
func (b *InProcessBus) Publish(event domain.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, sub := range b.handlers[event.EventTopic()] {
		sub.handler(event)
	}
	for _, sub := range b.allHandlers {
		sub.handler(event)
	}
}

// Subscribe registers a handler for one topic. The returned function removes
// the registration; calling it more than once is harmless.
func (b *InProcessBus) Subscribe(topic domain.Topic, handler domain.EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[topic] = append(b.handlers[topic], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.handlers[topic]
		for i, sub := range subs {
			if sub.id == id {
				b.handlers[topic] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// SubscribeAll registers a handler that receives every event, after the
// topic-specific handlers have run.
func (b *InProcessBus) SubscribeAll(handler domain.EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.allHandlers = append(b.allHandlers, subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, sub := range b.allHandlers {
			if sub.id == id {
				b.allHandlers = append(b.allHandlers[:i], b.allHandlers[i+1:]...)
				return
			}
		}
	}
}

// Close marks the bus as closed. No more events will be dispatched.
func (b *InProcessBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
}

// PublishAll dispatches multiple events in order.
func (b *InProcessBus) PublishAll(events []domain.Event) {
	for _, event := range events {
		b.Publish(event)
	}
}

// HandlerCount returns the total number of registered handlers (for diagnostics).
func (b *InProcessBus) HandlerCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := len(b.allHandlers)
	for _, subs := range b.handlers {
		count += len(subs)
	}
	return count
}

// Verify interface compliance at compile time.
var _ domain.EventBus = (*InProcessBus)(nil)
