package domain

import (
	"fmt"
	"time"
)

// ---------------------------------------------------------------------------
// Change events — how remote mutations reach the rest of the process
// ---------------------------------------------------------------------------

// EventAction classifies what happened to a record.
type EventAction string

const (
	ActionCreated EventAction = "created"
	ActionUpdated EventAction = "updated"
	ActionDeleted EventAction = "deleted"
)

// Topic is the routing key events are published under. Collection-scoped
// topics are the literal strings "created:<collection>", "updated:<collection>"
// and "deleted:<collection>"; TopicDatabasePurged stands alone.
type Topic string

// TopicDatabasePurged is emitted after a destructive database reset. It has
// no collection qualifier because every collection is affected at once.
const TopicDatabasePurged Topic = "databasePurged"

// TopicFor builds the topic for an action on a collection.
func TopicFor(action EventAction, c Collection) Topic {
	return Topic(fmt.Sprintf("%s:%s", action, c))
}

// Created returns the "created:<collection>" topic.
func Created(c Collection) Topic { return TopicFor(ActionCreated, c) }

// Updated returns the "updated:<collection>" topic.
func Updated(c Collection) Topic { return TopicFor(ActionUpdated, c) }

// Deleted returns the "deleted:<collection>" topic.
func Deleted(c Collection) Topic { return TopicFor(ActionDeleted, c) }

// Event is the interface all change events implement.
type Event interface {
	// EventTopic returns the routing key the event is published under.
	EventTopic() Topic
	// OccurredAt returns when the event happened.
	OccurredAt() time.Time
	// Payload returns the event-specific data: the affected record for
	// created/updated topics, the identifier for deleted topics.
	Payload() interface{}
}

// ChangeEvent is the reusable implementation of Event.
type ChangeEvent struct {
	Topic     Topic       `json:"topic"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

func (e ChangeEvent) EventTopic() Topic     { return e.Topic }
func (e ChangeEvent) OccurredAt() time.Time { return e.Timestamp }
func (e ChangeEvent) Payload() interface{}  { return e.Data }

// NewEvent creates a new change event stamped with the current time.
func NewEvent(topic Topic, data interface{}) ChangeEvent {
	return ChangeEvent{
		Topic:     topic,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// ---------------------------------------------------------------------------
// Event bus — decoupled view synchronization
// ---------------------------------------------------------------------------

// EventHandler processes a change event. Handlers run synchronously on the
// publisher's goroutine and should return quickly.
type EventHandler func(Event)

// EventBus dispatches change events to registered handlers. An instance is
// passed by reference to every component that needs it; there is no
// package-level global bus.
type EventBus interface {
	// Publish dispatches an event to all handlers registered for its topic,
	// in registration order, then to all-topic handlers.
	Publish(event Event)
	// Subscribe registers a handler for one topic and returns a function
	// that removes the registration.
	Subscribe(topic Topic, handler EventHandler) (unsubscribe func())
	// SubscribeAll registers a handler that receives every event.
	SubscribeAll(handler EventHandler) (unsubscribe func())
	// Close shuts down the bus; later publishes are dropped.
	Close()
}
