// Package window generates and applies the amplitude envelopes that fade
// grains in and out.
//
// An envelope of length n with fade proportion p rises from 0 to 1 over the
// first round(p*n) samples, holds 1, and falls back to 0 over the last
// round(p*n) samples. The ramps are mirror images of each other, so the
// first and last samples are exactly 0 and the samples at p*n and (1-p)*n
// are exactly 1.
package window

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Shape selects the ramp curve of a fade.
type Shape int

const (
	// FadeLinear ramps linearly.
	FadeLinear Shape = iota
	// FadeCosine ramps with a raised-cosine (Tukey) half period.
	FadeCosine
)

// MaxProportion is the largest fade proportion; beyond it the two ramps
// would overlap.
const MaxProportion = 0.5

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case FadeLinear:
		return "linear"
	case FadeCosine:
		return "cosine"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ParseShape maps a shape name to a Shape.
func ParseShape(name string) (Shape, error) {
	switch name {
	case "linear":
		return FadeLinear, nil
	case "cosine":
		return FadeCosine, nil
	default:
		return FadeLinear, fmt.Errorf("unknown fade shape %q", name)
	}
}

// FadeSamples returns the ramp length in samples for an envelope of length n
// and the given proportion. The proportion is clamped to [0, MaxProportion]
// and the result never exceeds n/2.
func FadeSamples(n int, proportion float64) int {
	if n <= 0 || !(proportion > 0) {
		return 0
	}
	if proportion > MaxProportion {
		proportion = MaxProportion
	}

	fade := int(math.Round(proportion * float64(n)))
	if fade > n/2 {
		fade = n / 2
	}

	return fade
}

// FillFade writes a symmetric fade envelope into dst without allocating.
// Ramps shorter than two samples leave dst flat at 1.
func FillFade(dst []float64, proportion float64, shape Shape) {
	n := len(dst)
	fade := FadeSamples(n, proportion)

	for i := range dst {
		dst[i] = 1
	}

	if fade < 2 {
		return
	}

	scale := 1 / float64(fade-1)
	for j := 0; j < fade; j++ {
		g := ramp(float64(j)*scale, shape)
		dst[j] = g
		dst[n-1-j] = g
	}
}

// Fade returns a newly allocated fade envelope of length n.
func Fade(n int, proportion float64, shape Shape) ([]float64, error) {
	if err := validateLength(n); err != nil {
		return nil, err
	}
	if err := validateProportion(proportion); err != nil {
		return nil, err
	}

	out := make([]float64, n)
	FillFade(out, proportion, shape)

	return out, nil
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

func ramp(x float64, shape Shape) float64 {
	if shape == FadeCosine {
		return 0.5 * (1 - math.Cos(math.Pi*x))
	}
	return x
}
