package granular

import (
	"github.com/cwbudde/algo-granular/dsp/interp"
	"github.com/cwbudde/algo-granular/internal/invariant"
)

// Grain is one playback unit: a private multichannel snapshot, a
// fractional read cursor that survives block boundaries, and a fixed
// playback speed.
//
// While a grain is live its cursor satisfies 0 <= Position() < Len()-1.
// The cursor stepping past the last interpolatable sample finishes it.
type Grain struct {
	buf      [][]float64
	pos      float64
	speed    float64
	finished bool
}

// Len returns the snapshot length in samples.
func (g *Grain) Len() int {
	if len(g.buf) == 0 {
		return 0
	}
	return len(g.buf[0])
}

// Channels returns the snapshot channel count.
func (g *Grain) Channels() int { return len(g.buf) }

// Samples returns the snapshot of channel ch.
func (g *Grain) Samples(ch int) []float64 { return g.buf[ch] }

// Position returns the fractional read cursor.
func (g *Grain) Position() float64 { return g.pos }

// Speed returns the playback speed in source samples per output sample.
func (g *Grain) Speed() float64 { return g.speed }

// Finished reports whether the cursor has passed the last interpolatable sample.
func (g *Grain) Finished() bool { return g.finished }

// render accumulates gain-scaled samples of channel ch into dst, starting at
// the persisted cursor. It stops at len(dst) or at the end of the snapshot
// and returns the number of samples produced and the cursor after them.
// The grain itself is not modified, so every channel starts from the same
// position.
func (g *Grain) render(dst []float64, ch int, gain float64, mode interp.Mode) (int, float64) {
	buf := g.buf[ch]
	last := float64(len(buf) - 1)
	pos := g.pos

	k := 0
	for ; k < len(dst) && pos < last; k++ {
		dst[k] += gain * interp.At(mode, buf, pos)
		pos += g.speed
	}

	return k, pos
}

// commit stores the cursor reached by render and finishes the grain when no
// interpolatable sample is left.
func (g *Grain) commit(pos float64) {
	g.pos = pos
	g.finished = pos+1 >= float64(g.Len())
	if invariant.Enabled {
		invariant.Check(g.finished || (g.pos >= 0 && g.pos < float64(g.Len()-1)), "grain cursor out of range")
	}
}
