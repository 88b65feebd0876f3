package interp

import (
	"fmt"

	"github.com/cwbudde/algo-granular/internal/invariant"
)

// Mode selects an interpolation algorithm.
type Mode int

const (
	// Linear interpolates between the two bracketing samples.
	Linear Mode = iota
	// Hermite uses 4-point cubic Hermite with clamped edge neighbours.
	Hermite
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Linear:
		return "linear"
	case Hermite:
		return "hermite"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Linear2 interpolates from x0 (t=0) to x1 (t=1).
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

// At returns buf evaluated at the fractional index pos.
//
// pos must satisfy 0 <= pos and int(pos)+1 < len(buf); the caller owns that
// bound. Hermite substitutes the nearest in-range sample for neighbours
// that fall outside buf.
func At(mode Mode, buf []float64, pos float64) float64 {
	i0 := int(pos)
	frac := pos - float64(i0)
	i1 := i0 + 1
	invariant.Index("interp", i1, len(buf))

	if mode != Hermite {
		return Linear2(frac, buf[i0], buf[i1])
	}

	im1 := i0 - 1
	if im1 < 0 {
		im1 = 0
	}
	i2 := i1 + 1
	if i2 >= len(buf) {
		i2 = len(buf) - 1
	}

	return Hermite4(frac, buf[im1], buf[i0], buf[i1], buf[i2])
}
