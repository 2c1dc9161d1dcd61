package render

import (
	"context"
	"time"

	"github.com/banshee-data/vectorgfx/internal/timeutil"
)

// Pacer spaces draw cycles at least Interval apart. It does not try to catch
// up after a slow frame.
type Pacer struct {
	clock    timeutil.Clock
	interval time.Duration
	last     time.Time
}

// NewPacer returns a Pacer. An interval of zero or less never sleeps.
func NewPacer(interval time.Duration, clock timeutil.Clock) *Pacer {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &Pacer{clock: clock, interval: interval}
}

// Wait sleeps until Interval has passed since the previous Wait returned.
// The first call returns immediately. It returns ctx.Err() if the context is
// done before or after sleeping.
func (p *Pacer) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.interval > 0 && !p.last.IsZero() {
		if remaining := p.interval - p.clock.Since(p.last); remaining > 0 {
			p.clock.Sleep(remaining)
		}
	}
	p.last = p.clock.Now()
	return ctx.Err()
}
