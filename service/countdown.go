package service

import (
	"context"
	"sync"
	"time"

	"github.com/lil-gargs/portal/core"
)

// Countdown drives the 1 Hz expiry ticker for one session view. Start fires
// the callback immediately and then once per interval until expiry, context
// cancellation or Stop, whichever comes first; the ticker is released on
// every exit path. Restarting (token change) stops the previous run first.
type Countdown struct {
	interval time.Duration
	now      func() time.Time

	mu   sync.Mutex
	stop chan struct{}
}

// NewCountdown creates a countdown ticking once per second
func NewCountdown() *Countdown {
	return &Countdown{
		interval: time.Second,
		now:      time.Now,
	}
}

// Start begins ticking toward the expiry. The callback receives the clamped
// remaining duration and whether the expiry has passed; once expired fires
// the run ends.
func (c *Countdown) Start(ctx context.Context, expiresAt time.Time, tick func(remaining time.Duration, expired bool)) {
	c.Stop()

	c.mu.Lock()
	stop := make(chan struct{})
	c.stop = stop
	c.mu.Unlock()

	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		fire := func() bool {
			remaining := core.Remaining(expiresAt, c.now())
			tick(remaining, remaining == 0)
			return remaining == 0
		}

		if fire() {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.C:
				if fire() {
					return
				}
			}
		}
	}()
}

// Stop ends the current run, if any. Safe to call repeatedly.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}
