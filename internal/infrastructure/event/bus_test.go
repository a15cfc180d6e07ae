package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kobo/backend/internal/domain/shared"
)

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	err      error
	panics   bool
}

func (h *recordingHandler) EventTypes() []string { return h.types }

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("handler exploded")
	}
	h.received = append(h.received, event)
	return h.err
}

func newEvent(eventType string) shared.DomainEvent {
	e := shared.NewBaseDomainEvent(eventType, "Order", "ORD-001")
	return &e
}

func TestInMemoryEventBus_PublishDispatchesByType(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	shipped := &recordingHandler{types: []string{"OrderShipped"}}
	registered := &recordingHandler{types: []string{"OrderRegistered"}}
	bus.Subscribe(shipped)
	bus.Subscribe(registered)

	require.NoError(t, bus.Publish(context.Background(), newEvent("OrderShipped")))

	require.Len(t, shipped.received, 1)
	assert.Equal(t, "OrderShipped", shipped.received[0].EventType())
	assert.Empty(t, registered.received)
}

func TestInMemoryEventBus_HandlerErrorDoesNotFailPublish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	failing := &recordingHandler{types: []string{"OrderShipped"}, err: errors.New("boom")}
	healthy := &recordingHandler{types: []string{"OrderShipped"}}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(context.Background(), newEvent("OrderShipped")))
	assert.Len(t, healthy.received, 1)
}

func TestInMemoryEventBus_HandlerPanicIsContained(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	bus.Subscribe(&recordingHandler{types: []string{"OrderShipped"}, panics: true})
	after := &recordingHandler{types: []string{"OrderShipped"}}
	bus.Subscribe(after)

	require.NoError(t, bus.Publish(context.Background(), newEvent("OrderShipped")))
	assert.Len(t, after.received, 1)
}

func TestInMemoryEventBus_NoHandlers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	assert.NoError(t, bus.Publish(context.Background(), newEvent("OrderRegistered")))
}
