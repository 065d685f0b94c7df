package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"portfolio_backend/platform/logger"
)

type pinged struct{ BaseEvent }

func (pinged) EventName() string { return "test.pinged" }

func TestPublishSyncJoinsErrors(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	first, second := errors.New("first"), errors.New("second")
	bus.Subscribe("test.pinged", HandlerFunc(func(context.Context, Event) error { return first }))
	bus.Subscribe("test.pinged", HandlerFunc(func(context.Context, Event) error { return nil }))
	bus.Subscribe("test.pinged", HandlerFunc(func(context.Context, Event) error { return second }))

	err := bus.PublishSync(context.Background(), pinged{NewBaseEvent()})
	if !errors.Is(err, first) || !errors.Is(err, second) {
		t.Fatalf("expected both handler errors, got %v", err)
	}
}

func TestPublishOutlivesCanceledContext(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	var calls atomic.Int32
	bus.Subscribe("test.pinged", HandlerFunc(func(ctx context.Context, _ Event) error {
		if ctx.Err() == nil {
			calls.Add(1)
		}
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, pinged{NewBaseEvent()})
	bus.Wait()

	if calls.Load() != 1 {
		t.Fatalf("expected handler to run on a live context, got %d calls", calls.Load())
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	bus := NewInMemoryBus(nil)
	bus.Publish(context.Background(), pinged{NewBaseEvent()})
	bus.Wait()
	if err := bus.PublishSync(context.Background(), pinged{NewBaseEvent()}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
