// Package eventbus distributes domain events to in-process subscribers and
// optional external publishers.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/voxplan/voxplan/internal/shared/domain"
)

// Publisher sends domain events somewhere.
type Publisher interface {
	Publish(ctx context.Context, event domain.DomainEvent) error
}

// Handler processes a domain event.
type Handler func(ctx context.Context, event domain.DomainEvent)

// InProcessBus dispatches events synchronously to subscribers registered by
// routing key. It also forwards every event to any attached publishers.
type InProcessBus struct {
	mu         sync.RWMutex
	handlers   map[string][]Handler
	publishers []Publisher
	logger     *slog.Logger
}

// NewInProcessBus creates an empty bus.
func NewInProcessBus(logger *slog.Logger) *InProcessBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessBus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Subscribe registers a handler for a routing key.
func (b *InProcessBus) Subscribe(routingKey string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[routingKey] = append(b.handlers[routingKey], handler)
}

// AttachPublisher adds an external publisher that mirrors every event.
func (b *InProcessBus) AttachPublisher(p Publisher) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.publishers = append(b.publishers, p)
}

// Publish dispatches the event to subscribers and attached publishers.
// Publisher failures are logged, not propagated: event delivery is best
// effort and must not fail the originating operation.
func (b *InProcessBus) Publish(ctx context.Context, event domain.DomainEvent) error {
	b.mu.RLock()
	handlers := b.handlers[event.RoutingKey()]
	publishers := make([]Publisher, len(b.publishers))
	copy(publishers, b.publishers)
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(ctx, event)
	}

	for _, p := range publishers {
		if err := p.Publish(ctx, event); err != nil {
			b.logger.Warn("event publisher failed",
				"routing_key", event.RoutingKey(),
				"event_id", event.EventID(),
				"error", err,
			)
		}
	}

	return nil
}
