package granular

import (
	"context"
	"math"
	"time"
)

// Requester receives spawn pulses.
type Requester interface {
	RequestGrain()
}

// Trigger pulses a Requester at the spawn frequency read from a
// ParamSource. It runs on its own goroutine and never touches audio state.
type Trigger struct {
	target Requester
	source ParamSource
}

// NewTrigger returns a trigger that pulses target at source's Frequency.
func NewTrigger(target Requester, source ParamSource) *Trigger {
	return &Trigger{target: target, source: source}
}

// Run pulses until ctx is cancelled and returns ctx.Err(). The period is
// re-read after every pulse, so frequency changes apply from the next one.
func (t *Trigger) Run(ctx context.Context) error {
	timer := time.NewTimer(Period(t.source.Params().Frequency))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			t.target.RequestGrain()
			timer.Reset(Period(t.source.Params().Frequency))
		}
	}
}

// Period returns the pulse interval for frequency grains per second,
// with frequency limited to the Frequency parameter range.
func Period(frequency float64) time.Duration {
	spec := ParamFrequency.Spec()
	if math.IsNaN(frequency) {
		frequency = spec.Default
	}
	frequency = math.Max(spec.Min, math.Min(spec.Max, frequency))

	return time.Duration(float64(time.Second) / frequency)
}

// BlockPulse derives spawn requests from a block clock instead of wall
// time. Offline renderers use it to reproduce the pulse deterministically.
type BlockPulse struct {
	phase float64
}

// Advance moves the clock by frames samples and reports whether at least
// one pulse fell inside them. Several pulses within one block collapse
// into one, as they do for a live Trigger.
func (b *BlockPulse) Advance(frames int, sampleRate, frequency float64) bool {
	period := Period(frequency).Seconds() * sampleRate
	b.phase += float64(frames)
	if b.phase < period {
		return false
	}

	b.phase = math.Mod(b.phase, period)
	return true
}

// Reset rewinds the clock.
func (b *BlockPulse) Reset() {
	b.phase = 0
}
