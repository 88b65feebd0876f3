package spectrum

import (
	"github.com/cwbudde/algo-vecmath"
)

// Magnitude writes |X[k]| of in into dst using re and im as scratch. All
// four slices must have the same length.
func Magnitude(dst []float64, in []complex128, re, im []float64) {
	split(in, re, im)
	vecmath.Magnitude(dst, re, im)
}

// Power writes |X[k]|^2 of in into dst using re and im as scratch.
func Power(dst []float64, in []complex128, re, im []float64) {
	split(in, re, im)
	vecmath.Power(dst, re, im)
}

// BinFrequency returns the centre frequency of bin k of an n-point
// transform at sampleRate.
func BinFrequency(k float64, n int, sampleRate float64) float64 {
	if n <= 0 {
		return 0
	}
	return k * sampleRate / float64(n)
}

func split(in []complex128, re, im []float64) {
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
}
