package spectrum

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"

	"github.com/cwbudde/algo-granular/dsp/window"
)

// ErrSilent is returned by Peak when the analysed block has no energy.
var ErrSilent = errors.New("spectrum: signal is silent")

// Analyzer computes windowed magnitude spectra of fixed-size frames.
// It is not safe for concurrent use.
type Analyzer struct {
	size    int
	plan    *algofft.Plan[complex128]
	window  []float64
	winSum  float64
	in, out []complex128
	re, im  []float64
	mag     []float64
}

// PeakInfo describes the strongest component of a frame.
type PeakInfo struct {
	Bin       int
	Frequency float64 // Hz, refined between bins
	Amplitude float64 // linear, relative to a full-scale sine
}

// NewAnalyzer returns an analyzer for frames of size samples. size must be a
// power of two and at least 4.
func NewAnalyzer(size int) (*Analyzer, error) {
	if size < 4 || size&(size-1) != 0 {
		return nil, fmt.Errorf("spectrum size must be a power of two >= 4: %d", size)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("spectrum plan: %w", err)
	}

	win, err := window.Fade(size, window.MaxProportion, window.FadeCosine)
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		size:   size,
		plan:   plan,
		window: win,
		in:     make([]complex128, size),
		out:    make([]complex128, size),
		re:     make([]float64, size),
		im:     make([]float64, size),
		mag:    make([]float64, size),
	}

	for _, w := range a.window {
		a.winSum += w
	}

	return a, nil
}

// Size returns the frame length.
func (a *Analyzer) Size() int { return a.size }

// Magnitudes returns the single-sided amplitude spectrum of x, bins 0 to
// Size()/2. x is windowed; shorter frames are zero-padded and longer ones
// truncated. The returned slice is reused by the next call.
func (a *Analyzer) Magnitudes(x []float64) ([]float64, error) {
	n := copy(a.re, x)
	clear(a.re[n:])
	if err := window.ApplyCoefficientsInPlace(a.re, a.window); err != nil {
		return nil, err
	}
	for i, v := range a.re {
		a.in[i] = complex(v, 0)
	}

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return nil, fmt.Errorf("spectrum forward: %w", err)
	}

	Magnitude(a.mag, a.out, a.re, a.im)

	bins := a.mag[:a.size/2+1]
	scale := 2 / a.winSum
	for i := range bins {
		bins[i] *= scale
	}
	bins[0] /= 2

	return bins, nil
}

// Peak returns the strongest non-DC component of x at sampleRate. The
// frequency is refined by fitting a parabola to the log magnitudes around
// the peak bin.
func (a *Analyzer) Peak(x []float64, sampleRate float64) (PeakInfo, error) {
	if !(sampleRate > 0) {
		return PeakInfo{}, fmt.Errorf("spectrum sample rate must be > 0: %f", sampleRate)
	}

	bins, err := a.Magnitudes(x)
	if err != nil {
		return PeakInfo{}, err
	}

	k := 1
	for i := 2; i < len(bins); i++ {
		if bins[i] > bins[k] {
			k = i
		}
	}
	if bins[k] == 0 {
		return PeakInfo{}, ErrSilent
	}

	delta := 0.0
	if k > 0 && k < len(bins)-1 && bins[k-1] > 0 && bins[k+1] > 0 {
		alpha := math.Log(bins[k-1])
		beta := math.Log(bins[k])
		gamma := math.Log(bins[k+1])
		if den := alpha - 2*beta + gamma; den != 0 {
			delta = 0.5 * (alpha - gamma) / den
		}
	}

	return PeakInfo{
		Bin:       k,
		Frequency: BinFrequency(float64(k)+delta, a.size, sampleRate),
		Amplitude: bins[k],
	}, nil
}
