// Package meter accumulates level statistics over streamed audio blocks.
package meter

import (
	"math"

	"github.com/cwbudde/algo-granular/dsp/core"
)

// Level holds the statistics of everything fed to a Meter.
type Level struct {
	Frames  int
	Peak    float64
	PeakDB  float64
	RMS     float64
	RMSDB   float64
	Crest   float64 // peak / RMS, linear
	Clipped int     // samples with magnitude above 1
}

// Meter tracks peak and RMS level per channel across blocks. It is not
// safe for concurrent use.
type Meter struct {
	peak    []float64
	sumSq   []float64
	clipped []int
	frames  int
}

// New returns a meter for channels channels.
func New(channels int) *Meter {
	if channels < 1 {
		channels = 1
	}
	return &Meter{
		peak:    make([]float64, channels),
		sumSq:   make([]float64, channels),
		clipped: make([]int, channels),
	}
}

// Channels returns the channel count.
func (m *Meter) Channels() int { return len(m.peak) }

// Update adds the first frames samples of every channel of block. Extra
// channels in block are ignored.
func (m *Meter) Update(block [][]float64, frames int) {
	for ch := range m.peak {
		if ch >= len(block) {
			break
		}
		for _, x := range block[ch][:frames] {
			ax := math.Abs(x)
			if ax > m.peak[ch] {
				m.peak[ch] = ax
			}
			if ax > 1 {
				m.clipped[ch]++
			}
			m.sumSq[ch] += x * x
		}
	}
	m.frames += frames
}

// Channel returns the level of one channel.
func (m *Meter) Channel(ch int) Level {
	return level(m.peak[ch], m.sumSq[ch], m.clipped[ch], m.frames, m.frames)
}

// Total returns the level over all channels.
func (m *Meter) Total() Level {
	var peak, sumSq float64
	clipped := 0
	for ch := range m.peak {
		peak = math.Max(peak, m.peak[ch])
		sumSq += m.sumSq[ch]
		clipped += m.clipped[ch]
	}
	return level(peak, sumSq, clipped, m.frames, m.frames*len(m.peak))
}

// Reset clears the accumulated statistics.
func (m *Meter) Reset() {
	for ch := range m.peak {
		m.peak[ch] = 0
		m.sumSq[ch] = 0
		m.clipped[ch] = 0
	}
	m.frames = 0
}

func level(peak, sumSq float64, clipped, frames, samples int) Level {
	l := Level{
		Frames:  frames,
		Peak:    peak,
		PeakDB:  core.LinearToDB(peak),
		RMSDB:   math.Inf(-1),
		Clipped: clipped,
	}
	if samples == 0 {
		return l
	}

	l.RMS = math.Sqrt(sumSq / float64(samples))
	l.RMSDB = core.LinearToDB(l.RMS)
	if l.RMS > 0 {
		l.Crest = peak / l.RMS
	}
	return l
}
