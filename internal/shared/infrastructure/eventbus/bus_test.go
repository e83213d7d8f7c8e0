package eventbus

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxplan/voxplan/internal/shared/domain"
)

type testEvent struct {
	domain.BaseEvent
}

func newTestEvent(routingKey string) testEvent {
	return testEvent{BaseEvent: domain.NewBaseEvent(uuid.New(), "test", routingKey)}
}

type failingPublisher struct {
	err   error
	calls int
}

func (p *failingPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	p.calls++
	return p.err
}

func TestInProcessBus_Subscribe(t *testing.T) {
	bus := NewInProcessBus(nil)

	var matched, other int
	bus.Subscribe("planner.task.created", func(ctx context.Context, event domain.DomainEvent) {
		matched++
	})
	bus.Subscribe("planner.task.deleted", func(ctx context.Context, event domain.DomainEvent) {
		other++
	})

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("planner.task.created")))

	assert.Equal(t, 1, matched)
	assert.Equal(t, 0, other, "handlers only fire for their routing key")
}

func TestInProcessBus_AttachedPublisherSeesEveryEvent(t *testing.T) {
	bus := NewInProcessBus(nil)
	publisher := &failingPublisher{}
	bus.AttachPublisher(publisher)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("planner.note.captured")))
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("planner.task.created")))

	assert.Equal(t, 2, publisher.calls)
}

func TestInProcessBus_PublisherFailureDoesNotPropagate(t *testing.T) {
	bus := NewInProcessBus(nil)
	bus.AttachPublisher(&failingPublisher{err: errors.New("broker down")})

	err := bus.Publish(context.Background(), newTestEvent("planner.task.created"))

	assert.NoError(t, err, "event delivery is best effort")
}
