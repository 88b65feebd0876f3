package granular

import (
	"fmt"

	"github.com/cwbudde/algo-granular/dsp/interp"
	"github.com/cwbudde/algo-granular/internal/invariant"
)

// Pool owns the live grains.
//
// Storage for every grain is allocated up front: maxGrains slots of
// channels x maxLen samples. Acquiring a slot re-slices that storage, so
// spawning and retiring never allocate. When every slot is busy new grains
// are refused; live grains are never stolen.
//
// Membership changes only between Mix calls. Pool is not thread-safe.
type Pool struct {
	channels int
	maxLen   int
	mode     interp.Mode

	grains  []Grain
	storage [][]float64
	live    []int
	free    []int
}

// NewPool returns a pool of maxGrains slots for grains of up to maxLen
// samples on channels channels.
func NewPool(maxGrains, channels, maxLen int, mode interp.Mode) (*Pool, error) {
	if maxGrains <= 0 {
		return nil, fmt.Errorf("pool max grains must be > 0: %d", maxGrains)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("pool channels must be > 0: %d", channels)
	}
	if maxLen < 2 {
		return nil, fmt.Errorf("pool max grain length must be >= 2: %d", maxLen)
	}

	p := &Pool{
		channels: channels,
		maxLen:   maxLen,
		mode:     mode,
		grains:   make([]Grain, maxGrains),
		storage:  make([][]float64, maxGrains),
		live:     make([]int, 0, maxGrains),
		free:     make([]int, 0, maxGrains),
	}

	for i := range p.grains {
		p.storage[i] = make([]float64, channels*maxLen)
		p.grains[i].buf = make([][]float64, channels)
	}

	p.Reset()

	return p, nil
}

// Cap returns the slot count.
func (p *Pool) Cap() int { return len(p.grains) }

// Active returns the number of live grains.
func (p *Pool) Active() int { return len(p.live) }

// MaxLen returns the longest grain a slot can hold.
func (p *Pool) MaxLen() int { return p.maxLen }

// Channels returns the channel count of every grain.
func (p *Pool) Channels() int { return p.channels }

// acquire claims a free slot, sizes its buffers to length samples and
// returns the grain with its cursor at zero. It returns nil when the pool
// is full.
func (p *Pool) acquire(length int, speed float64) *Grain {
	if len(p.free) == 0 {
		return nil
	}

	if invariant.Enabled {
		invariant.Check(length >= 2 && length <= p.maxLen, "grain length outside slot capacity")
	}

	idx := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	p.live = append(p.live, idx)

	g := &p.grains[idx]
	data := p.storage[idx]
	for ch := range g.buf {
		start := ch * p.maxLen
		g.buf[ch] = data[start : start+length : start+length]
	}
	g.pos = 0
	g.speed = speed
	g.finished = false

	return g
}

// Mix renders up to n samples of every live grain into wet, adding to
// what is already there, then advances each grain's cursor. wet must have
// Channels() channels of at least n samples.
func (p *Pool) Mix(wet [][]float64, n int, gain float64) {
	for _, idx := range p.live {
		g := &p.grains[idx]
		if g.finished {
			continue
		}

		end := g.pos
		produced := -1
		for ch := range g.buf {
			k, pos := g.render(wet[ch][:n], ch, gain, p.mode)
			if invariant.Enabled {
				invariant.Check(produced < 0 || k == produced, "grain channels rendered unequal lengths")
			}
			produced, end = k, pos
		}

		g.commit(end)
	}
}

// Retire removes finished grains and returns how many were removed.
func (p *Pool) Retire() int {
	retired := 0
	for i := 0; i < len(p.live); {
		idx := p.live[i]
		if !p.grains[idx].finished {
			i++
			continue
		}

		last := len(p.live) - 1
		p.live[i] = p.live[last]
		p.live = p.live[:last]
		p.free = append(p.free, idx)
		retired++
	}

	return retired
}

// Reset drops every grain.
func (p *Pool) Reset() {
	p.live = p.live[:0]
	p.free = p.free[:0]
	for i := len(p.grains) - 1; i >= 0; i-- {
		p.grains[i].pos = 0
		p.grains[i].finished = false
		p.free = append(p.free, i)
	}
}
