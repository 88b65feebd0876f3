package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair differs by more than eps.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	if i, diff := firstMismatch(got, want, eps); i >= 0 {
		t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
	}
}

// RequireBlockNearlyEqual is RequireSliceNearlyEqual for every channel of a
// multichannel block.
func RequireBlockNearlyEqual(t *testing.T, got, want [][]float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("channel mismatch: got %d, want %d", len(got), len(want))
	}
	for ch := range got {
		if len(got[ch]) != len(want[ch]) {
			t.Fatalf("channel %d length mismatch: got %d, want %d", ch, len(got[ch]), len(want[ch]))
		}
		if i, diff := firstMismatch(got[ch], want[ch], eps); i >= 0 {
			t.Fatalf("channel %d index %d: got %v, want %v (diff %v > eps %v)", ch, i, got[ch][i], want[ch][i], diff, eps)
		}
	}
}

// RequireFinite fails t on the first NaN or Inf in data.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// firstMismatch returns the first index whose difference exceeds eps, or
// -1. NaN never matches.
func firstMismatch(got, want []float64, eps float64) (int, float64) {
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if !(diff <= eps) {
			return i, diff
		}
	}
	return -1, 0
}
