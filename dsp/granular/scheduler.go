package granular

import (
	"fmt"
	"math/rand"
	"sync/atomic"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-granular/dsp/core"
	"github.com/cwbudde/algo-granular/dsp/delay"
	"github.com/cwbudde/algo-granular/dsp/window"
)

// Scheduler decides when a grain is spawned and where it comes from.
//
// Request may be called from any goroutine; it only raises a flag. The
// audio goroutine consumes the flag with Take, at most once per block, and
// then calls Spawn. Offset and Speed draw from a seeded generator so runs
// are reproducible.
type Scheduler struct {
	pending atomic.Bool

	sampleRate float64
	maxLen     int
	shape      window.Shape
	seed       int64
	rng        *rand.Rand
	env        []float64
}

// NewScheduler returns a scheduler for grains of at most maxLen samples at
// sampleRate.
func NewScheduler(sampleRate float64, maxLen int, seed int64, shape window.Shape) (*Scheduler, error) {
	s := &Scheduler{
		shape: shape,
		seed:  seed,
		rng:   rand.New(rand.NewSource(seed)),
	}

	if err := s.configure(sampleRate, maxLen); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) configure(sampleRate float64, maxLen int) error {
	if !(sampleRate > 0) || !core.IsFinite(sampleRate) {
		return fmt.Errorf("scheduler sample rate must be > 0: %f", sampleRate)
	}
	if maxLen < 2 {
		return fmt.Errorf("scheduler max grain length must be >= 2: %d", maxLen)
	}

	s.sampleRate = sampleRate
	s.maxLen = maxLen
	s.env = make([]float64, maxLen)

	return nil
}

// Request marks a spawn as pending. Repeated requests before the next Take
// collapse into one.
func (s *Scheduler) Request() {
	s.pending.Store(true)
}

// Pending reports whether a spawn is waiting.
func (s *Scheduler) Pending() bool {
	return s.pending.Load()
}

// Take consumes the pending flag and reports whether it was set.
func (s *Scheduler) Take() bool {
	return s.pending.Swap(false)
}

// Reset clears the pending flag and rewinds the random sequence.
func (s *Scheduler) Reset() {
	s.pending.Store(false)
	s.rng.Seed(s.seed)
}

// GrainLength returns the grain length in samples for p, limited to
// [2, max grain length].
func (s *Scheduler) GrainLength(p Params) int {
	n := core.MsToSamples(p.GrainSize, s.sampleRate)
	if n < 2 {
		n = 2
	}
	if n > s.maxLen {
		n = s.maxLen
	}
	return n
}

// Offset draws the grain start as a distance in samples behind the write
// cursor, uniformly over [RangeStart, RangeEnd].
func (s *Scheduler) Offset(p Params) int {
	lo := core.MsToSamples(p.RangeStart, s.sampleRate)
	hi := core.MsToSamples(p.RangeEnd, s.sampleRate)
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		return lo
	}

	off := lo + int(s.rng.Float64()*float64(hi-lo+1))
	if off > hi {
		off = hi
	}
	return off
}

// Speed draws the playback speed: Pitch when Detune is zero, otherwise
// Pitch shifted by a uniformly distributed amount in [-Detune, +Detune]
// cents.
func (s *Scheduler) Speed(p Params) float64 {
	if p.Detune <= 0 {
		return p.Pitch
	}

	cents := (2*s.rng.Float64() - 1) * p.Detune
	return p.Pitch * core.CentsToRatio(cents)
}

// Spawn snapshots a grain out of line into pool. The start offset is kept
// within [length, maxOffset] so the span lies entirely in history that was
// committed before the current block. It reports false when the pool is
// full.
func (s *Scheduler) Spawn(line *delay.Line, pool *Pool, p Params, maxOffset int) bool {
	length := s.GrainLength(p)
	if length > pool.MaxLen() {
		length = pool.MaxLen()
	}

	g := pool.acquire(length, 1)
	if g == nil {
		return false
	}

	offset := s.Offset(p)
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < length {
		offset = length
	}
	g.speed = s.Speed(p)

	env := s.env[:length]
	window.FillFade(env, p.FadeLength, s.shape)

	for ch := range g.buf {
		line.Read(ch, offset, g.buf[ch])
		vecmath.MulBlockInPlace(g.buf[ch], env)
	}

	return true
}
