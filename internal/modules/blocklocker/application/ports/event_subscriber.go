package ports

import (
	"context"

	"github.com/sglre6355/blocklocker/internal/modules/blocklocker/domain"
)

// EventSubscriber defines the interface for subscribing to events.
// Handlers are registered with the subscriber and invoked when events occur.
type EventSubscriber interface {
	Subscribe(handler func(context.Context, domain.Event))
}
