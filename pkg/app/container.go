// Package app provides the application services of the Atelier client: the
// API facade that performs remote operations with their notification and
// event side effects, and the chat session controller that drives
// conversational turns. Services sit between the terminal front-end and the
// domain layer.
package app

import (
	"log/slog"

	"github.com/atelier-ai/atelier/pkg/confirm"
	"github.com/atelier-ai/atelier/pkg/domain"
	"github.com/atelier-ai/atelier/pkg/notify"
)

// ---------------------------------------------------------------------------
// Application container — dependency injection root
// ---------------------------------------------------------------------------

// Container holds the application services and their shared dependencies.
// It acts as the composition root: the bus, center, and confirmer are
// injected here by reference and flow into every service, never through
// package-level globals.
type Container struct {
	EventBus      domain.EventBus
	Backend       domain.Backend
	Notifications *notify.Center
	Confirmer     confirm.Confirmer

	Facade *Facade
	Chat   *ChatController
}

// NewContainer creates a fully wired application container.
func NewContainer(
	eventBus domain.EventBus,
	backend domain.Backend,
	notifications *notify.Center,
	confirmer confirm.Confirmer,
	logger *slog.Logger,
) *Container {
	facade := NewFacade(backend, eventBus, notifications, confirmer, logger)
	return &Container{
		EventBus:      eventBus,
		Backend:       backend,
		Notifications: notifications,
		Confirmer:     confirmer,
		Facade:        facade,
		Chat:          NewChatController(facade, logger),
	}
}

// Close releases the container's resources; later event publishes are
// dropped.
func (c *Container) Close() {
	c.EventBus.Close()
}
