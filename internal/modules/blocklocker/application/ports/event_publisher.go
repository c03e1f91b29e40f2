package ports

import "github.com/sglre6355/blocklocker/internal/modules/blocklocker/domain"

// EventPublisher defines the interface for publishing events asynchronously.
type EventPublisher interface {
	Publish(event domain.Event)
}
