package spectrum

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-granular/internal/testutil"
)

func TestNewGoertzelValidation(t *testing.T) {
	tests := []struct {
		freq, rate float64
	}{
		{1000, 0},
		{-1, 48000},
		{30000, 48000},
		{math.NaN(), 48000},
	}

	for _, tt := range tests {
		if _, err := NewGoertzel(tt.freq, tt.rate); err == nil {
			t.Errorf("NewGoertzel(%v, %v) expected error", tt.freq, tt.rate)
		}
	}
}

func TestToneAmplitude(t *testing.T) {
	x := testutil.DeterministicSine(1000, 48000, 0.7, 4800)

	on, err := ToneAmplitude(x, 1000, 48000)
	if err != nil {
		t.Fatalf("ToneAmplitude() error: %v", err)
	}
	if math.Abs(on-0.7) > 1e-6 {
		t.Fatalf("amplitude at 1 kHz = %v, want 0.7", on)
	}

	off, err := ToneAmplitude(x, 2000, 48000)
	if err != nil {
		t.Fatalf("ToneAmplitude() error: %v", err)
	}
	if off > 1e-6 {
		t.Fatalf("amplitude at 2 kHz = %v, want 0", off)
	}
}

func TestGoertzelBlocksMatchWhole(t *testing.T) {
	x := testutil.DeterministicNoise(4, 1, 1000)

	whole, err := NewGoertzel(440, 48000)
	if err != nil {
		t.Fatalf("NewGoertzel() error: %v", err)
	}
	whole.ProcessBlock(x)

	split, _ := NewGoertzel(440, 48000)
	split.ProcessBlock(x[:333])
	split.ProcessBlock(x[333:])

	if math.Abs(whole.Power()-split.Power()) > 1e-9*whole.Power() {
		t.Fatalf("split power %v, whole %v", split.Power(), whole.Power())
	}

	split.Reset()
	if split.Power() != 0 || split.Amplitude() != 0 {
		t.Fatal("Reset() kept state")
	}
}
