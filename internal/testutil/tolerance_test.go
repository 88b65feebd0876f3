package testutil

import (
	"math"
	"testing"
)

func TestFirstMismatch(t *testing.T) {
	tests := []struct {
		name      string
		got, want []float64
		eps       float64
		index     int
	}{
		{"equal", []float64{1, 2}, []float64{1, 2}, 0, -1},
		{"within", []float64{1, 2}, []float64{1.05, 2}, 0.1, -1},
		{"outside", []float64{1, 2}, []float64{1, 2.5}, 0.1, 1},
		{"nan", []float64{math.NaN()}, []float64{0}, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if i, _ := firstMismatch(tt.got, tt.want, tt.eps); i != tt.index {
				t.Fatalf("firstMismatch() = %d, want %d", i, tt.index)
			}
		})
	}
}

func TestRequireBlockNearlyEqualPasses(t *testing.T) {
	a := [][]float64{{1, 2}, {3, 4}}
	b := [][]float64{{1, 2 + 1e-13}, {3, 4}}
	RequireBlockNearlyEqual(t, a, b, 1e-12)
}
