package delay

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-granular/internal/invariant"
)

// Line is a fixed-capacity multichannel circular delay line.
//
// All channels share one write cursor. Writes land at the cursor without
// moving it; the caller commits a block with Advance once every channel has
// been written and every read for that block is done. Between Advance calls
// the most recently committed sample of a channel sits at WritePos()-1
// (mod Len()), and offsets passed to Read are measured backwards from the
// cursor.
//
// Line does not guard readers against being overtaken by the writer.
// It is not thread-safe.
type Line struct {
	buffers  [][]float64
	writePos int
}

// New returns a delay line with the given channel count and per-channel
// capacity in samples.
func New(channels, size int) (*Line, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("delay channels must be > 0: %d", channels)
	}
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}

	backing := make([]float64, channels*size)
	buffers := make([][]float64, channels)
	for ch := range buffers {
		buffers[ch] = backing[ch*size : (ch+1)*size : (ch+1)*size]
	}

	return &Line{buffers: buffers}, nil
}

// Len returns the per-channel capacity.
func (d *Line) Len() int {
	return len(d.buffers[0])
}

// Channels returns the channel count.
func (d *Line) Channels() int {
	return len(d.buffers)
}

// WritePos returns the write cursor in [0, Len()).
func (d *Line) WritePos() int {
	return d.writePos
}

// Write copies samples into channel starting at the write cursor, wrapping
// at the end of the ring, scaled by gain. The cursor does not move.
// len(samples) must not exceed Len().
func (d *Line) Write(channel int, samples []float64, gain float64) {
	buf := d.buffers[channel]
	size := len(buf)
	n := len(samples)
	if invariant.Enabled {
		invariant.Check(n <= size, "delay write longer than capacity")
	}

	first := size - d.writePos
	if first > n {
		first = n
	}

	invariant.Span("delay write", d.writePos, first, size)
	writeScaled(buf[d.writePos:d.writePos+first], samples[:first], gain)

	if rest := n - first; rest > 0 {
		invariant.Span("delay write wrap", 0, rest, size)
		writeScaled(buf[:rest], samples[first:], gain)
	}
}

// Read fills dst with len(dst) consecutive samples of channel, starting
// offset samples behind the write cursor, wrapping at the end of the ring.
// Read does not mutate the line. len(dst) must not exceed Len().
func (d *Line) Read(channel, offset int, dst []float64) {
	buf := d.buffers[channel]
	size := len(buf)
	n := len(dst)
	if invariant.Enabled {
		invariant.Check(n <= size, "delay read longer than capacity")
	}

	start := d.writePos - offset%size
	if start < 0 {
		start += size
	}

	first := size - start
	if first > n {
		first = n
	}

	invariant.Span("delay read", start, first, size)
	copy(dst[:first], buf[start:start+first])

	if rest := n - first; rest > 0 {
		invariant.Span("delay read wrap", 0, rest, size)
		copy(dst[first:], buf[:rest])
	}
}

// Advance moves the write cursor forward by n samples modulo Len().
func (d *Line) Advance(n int) {
	size := len(d.buffers[0])
	d.writePos = (d.writePos + n%size) % size
	if d.writePos < 0 {
		d.writePos += size
	}
	invariant.Index("delay cursor", d.writePos, size)
}

// Reset clears every channel and rewinds the cursor.
func (d *Line) Reset() {
	for _, buf := range d.buffers {
		for i := range buf {
			buf[i] = 0
		}
	}
	d.writePos = 0
}

func writeScaled(dst, src []float64, gain float64) {
	if gain == 1 {
		copy(dst, src)
		return
	}
	vecmath.ScaleBlock(dst, src, gain)
}
