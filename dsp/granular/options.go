package granular

import (
	"github.com/cwbudde/algo-granular/dsp/interp"
	"github.com/cwbudde/algo-granular/dsp/window"
)

const (
	defaultSeed           = 1
	defaultMaxGrains      = 64
	defaultMaxGrainSizeMs = 100
	defaultGrainGain      = 0.7
	defaultHistorySeconds = 10
)

type config struct {
	seed           int64
	maxGrains      int
	maxGrainSizeMs float64
	grainGain      float64
	historySeconds float64
	shape          window.Shape
	mode           interp.Mode
}

func defaultConfig() config {
	return config{
		seed:           defaultSeed,
		maxGrains:      defaultMaxGrains,
		maxGrainSizeMs: defaultMaxGrainSizeMs,
		grainGain:      defaultGrainGain,
		historySeconds: defaultHistorySeconds,
		shape:          window.FadeLinear,
		mode:           interp.Linear,
	}
}

// Option configures a Processor.
type Option func(*config)

// WithSeed sets the random seed for grain offsets and detune.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithMaxGrains sets how many grains may play at once. Spawn requests
// beyond it are dropped.
func WithMaxGrains(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxGrains = n
		}
	}
}

// WithMaxGrainSize sets the longest grain in milliseconds; slot storage is
// sized for it.
func WithMaxGrainSize(ms float64) Option {
	return func(c *config) {
		if ms > 0 {
			c.maxGrainSizeMs = ms
		}
	}
}

// WithGrainGain sets the factor every grain is scaled by before it is
// summed into the wet signal.
func WithGrainGain(gain float64) Option {
	return func(c *config) {
		if gain >= 0 {
			c.grainGain = gain
		}
	}
}

// WithHistorySeconds sets how much input history is kept.
func WithHistorySeconds(seconds float64) Option {
	return func(c *config) {
		if seconds > 0 {
			c.historySeconds = seconds
		}
	}
}

// WithFadeShape selects the grain envelope ramp.
func WithFadeShape(shape window.Shape) Option {
	return func(c *config) {
		c.shape = shape
	}
}

// WithInterpolation selects how grains are resampled.
func WithInterpolation(mode interp.Mode) Option {
	return func(c *config) {
		c.mode = mode
	}
}
