// Package frame turns a periodic signal into monotonically increasing frame
// timestamps. The step callback never sees the wall clock, only elapsed time
// since the driver started.
package frame

import (
	"context"
	"fmt"
	"time"
)

const DefaultTPS = 60

type StepFunc func(now time.Duration) error

// Clock reports elapsed time on the monotonic clock.
type Clock struct {
	start time.Time
	last  time.Duration
}

func NewClock() *Clock {
	return &Clock{start: time.Now()}
}

// Now never returns a value smaller than the previous call.
func (c *Clock) Now() time.Duration {
	now := time.Since(c.start)
	if now < c.last {
		now = c.last
	}
	c.last = now
	return now
}

type Ticker struct {
	interval time.Duration
	clock    *Clock
	ticks    uint64
}

func NewTicker(tps int) *Ticker {
	if tps <= 0 {
		tps = DefaultTPS
	}
	return &Ticker{
		interval: time.Second / time.Duration(tps),
		clock:    NewClock(),
	}
}

func (t *Ticker) Interval() time.Duration { return t.interval }
func (t *Ticker) Ticks() uint64           { return t.ticks }

// Run calls step once per tick until ctx is cancelled (nil error) or step
// fails (its error, wrapped).
func (t *Ticker) Run(ctx context.Context, step StepFunc) error {
	if step == nil {
		return fmt.Errorf("frame step is nil")
	}
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			t.ticks++
			if err := step(t.clock.Now()); err != nil {
				return fmt.Errorf("frame %d: %w", t.ticks, err)
			}
		}
	}
}
