// Package signal generates deterministic test and demo signals and converts
// between interleaved frames and per-channel blocks.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-granular/dsp/core"
)

// Generator creates signals at the sample rate of its configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// NewGenerator returns a generator configured by opts. Noise is seeded with 1
// until SetSeed is called.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{
		cfg:  core.ApplyProcessorOptions(opts...),
		seed: 1,
	}
}

// Config returns the generator configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// SetSeed sets the noise seed.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
}

// Seed returns the noise seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Sine returns samples of a sine at freqHz starting at phase zero.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if err := g.validate("sine", samples); err != nil {
		return nil, err
	}

	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// Sweep returns an exponential sine sweep from startHz to endHz.
func (g *Generator) Sweep(startHz, endHz, amplitude float64, samples int) ([]float64, error) {
	if err := g.validate("sweep", samples); err != nil {
		return nil, err
	}
	if !(startHz > 0) || !(endHz > 0) {
		return nil, fmt.Errorf("sweep frequencies must be > 0: %f, %f", startHz, endHz)
	}

	out := make([]float64, samples)
	duration := float64(samples) / g.cfg.SampleRate
	k := math.Log(endHz / startHz)
	for i := range out {
		t := float64(i) / g.cfg.SampleRate
		var phase float64
		if k == 0 {
			phase = 2 * math.Pi * startHz * t
		} else {
			phase = 2 * math.Pi * startHz * duration / k * (math.Exp(t/duration*k) - 1)
		}
		out[i] = amplitude * math.Sin(phase)
	}
	return out, nil
}

// WhiteNoise returns uniform noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if err := g.validate("noise", samples); err != nil {
		return nil, err
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}

	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Impulse returns a single sample of height amplitude at pos.
func (g *Generator) Impulse(amplitude float64, pos, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("impulse samples must be > 0: %d", samples)
	}
	if pos < 0 || pos >= samples {
		return nil, fmt.Errorf("impulse position must be in [0, %d): %d", samples, pos)
	}

	out := make([]float64, samples)
	out[pos] = amplitude
	return out, nil
}

func (g *Generator) validate(kind string, samples int) error {
	if samples <= 0 {
		return fmt.Errorf("%s samples must be > 0: %d", kind, samples)
	}
	if !(g.cfg.SampleRate > 0) {
		return fmt.Errorf("%s sample rate must be > 0: %f", kind, g.cfg.SampleRate)
	}
	return nil
}

// Peak returns the largest absolute sample of every channel in block.
func Peak(block [][]float64) float64 {
	peak := 0.0
	for _, ch := range block {
		for _, v := range ch {
			if av := math.Abs(v); av > peak {
				peak = av
			}
		}
	}
	return peak
}

// NormalizeInPlace scales every channel of block by the same factor so the
// peak becomes targetPeak. Silent blocks are left untouched. It returns the
// factor applied.
func NormalizeInPlace(block [][]float64, targetPeak float64) (float64, error) {
	if targetPeak < 0 {
		return 0, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}

	peak := Peak(block)
	if peak == 0 {
		return 1, nil
	}

	scale := targetPeak / peak
	for _, ch := range block {
		vecmath.ScaleBlock(ch, ch, scale)
	}
	return scale, nil
}
