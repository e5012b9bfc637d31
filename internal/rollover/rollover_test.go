package rollover

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/digitalive/digitalive/internal/event_bus"
	"github.com/digitalive/digitalive/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoller_Check(t *testing.T) {
	t.Run("should publish a rollover check carrying the current time", func(t *testing.T) {
		// given
		bus := event_bus.NewEventBus()
		now := time.Date(2025, time.June, 17, 10, 0, 0, 0, time.UTC)
		clock := &utils.MockClock{FixedNow: now}
		poller := NewPoller(bus, clock, time.Hour)

		var received []event_bus.MonthRolloverCheck
		event_bus.SubscribeTyped[event_bus.MonthRolloverCheck](
			bus,
			"rollover.check",
			func(e event_bus.EventT[event_bus.MonthRolloverCheck]) error {
				received = append(received, e.Data)
				return nil
			},
		)

		// when
		poller.Check(context.Background())

		// then
		require.Len(t, received, 1)
		assert.Equal(t, now, received[0].Now)
	})
}

func TestPoller_Start(t *testing.T) {
	t.Run("should check immediately and keep checking on every tick", func(t *testing.T) {
		// given
		bus := event_bus.NewEventBus()
		clock := &utils.MockClock{FixedNow: time.Date(2025, time.June, 17, 10, 0, 0, 0, time.UTC)}
		poller := NewPoller(bus, clock, 10*time.Millisecond)

		var count atomic.Int64
		event_bus.SubscribeTyped[event_bus.MonthRolloverCheck](
			bus,
			"rollover.check",
			func(e event_bus.EventT[event_bus.MonthRolloverCheck]) error {
				count.Add(1)
				return nil
			},
		)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// when
		poller.Start(ctx)

		// then
		assert.Eventually(t, func() bool {
			return count.Load() >= 3
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("should stop checking once the context is cancelled", func(t *testing.T) {
		// given
		bus := event_bus.NewEventBus()
		clock := &utils.MockClock{FixedNow: time.Date(2025, time.June, 17, 10, 0, 0, 0, time.UTC)}
		poller := NewPoller(bus, clock, 5*time.Millisecond)

		var count atomic.Int64
		event_bus.SubscribeTyped[event_bus.MonthRolloverCheck](
			bus,
			"rollover.check",
			func(e event_bus.EventT[event_bus.MonthRolloverCheck]) error {
				count.Add(1)
				return nil
			},
		)

		ctx, cancel := context.WithCancel(context.Background())
		poller.Start(ctx)
		require.Eventually(t, func() bool {
			return count.Load() >= 1
		}, time.Second, time.Millisecond)

		// when
		cancel()
		time.Sleep(20 * time.Millisecond)
		after := count.Load()
		time.Sleep(20 * time.Millisecond)

		// then
		assert.Equal(t, after, count.Load())
	})
}
