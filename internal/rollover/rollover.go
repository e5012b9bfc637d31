// Package rollover runs the periodic month-rollover check. The poller only
// publishes an event; each time-bucketed collection reacts by making sure a
// bucket for the current calendar month exists.
package rollover

import (
	"context"
	"time"

	"github.com/digitalive/digitalive/internal/event_bus"
	"github.com/digitalive/digitalive/internal/utils"
	log "github.com/sirupsen/logrus"
)

type Poller struct {
	bus      *event_bus.EventBus
	clock    utils.Clock
	interval time.Duration
}

func NewPoller(bus *event_bus.EventBus, clock utils.Clock, interval time.Duration) *Poller {
	return &Poller{bus: bus, clock: clock, interval: interval}
}

// Start publishes one check immediately and then keeps checking on every
// tick until the context is cancelled.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		p.Check(ctx)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info("Stopping month rollover poller")
				return
			case <-ticker.C:
				p.Check(ctx)
			}
		}
	}()
}

// Check publishes a single rollover check event.
func (p *Poller) Check(ctx context.Context) {
	now := p.clock.Now()
	log.Debugf("Publishing month rollover check for %s", now.Format(time.RFC3339))
	event := event_bus.NewEvent(ctx, "rollover.check", event_bus.MonthRolloverCheck{Now: now})
	if err := p.bus.Publish(event); err != nil {
		log.Errorf("month rollover check failed: %v", err)
	}
}
