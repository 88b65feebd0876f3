package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-granular/internal/testutil"
)

func TestNewAnalyzerValidation(t *testing.T) {
	for _, size := range []int{0, 2, 100, -8} {
		if _, err := NewAnalyzer(size); err == nil {
			t.Errorf("NewAnalyzer(%d) expected error", size)
		}
	}
}

func TestAnalyzerPeakOfSine(t *testing.T) {
	a, err := NewAnalyzer(4096)
	if err != nil {
		t.Fatalf("NewAnalyzer() error: %v", err)
	}

	tests := []float64{440, 1000, 2000, 5123}
	for _, freq := range tests {
		x := testutil.DeterministicSine(freq, 48000, 0.5, 4096)
		peak, err := a.Peak(x, 48000)
		if err != nil {
			t.Fatalf("Peak(%v) error: %v", freq, err)
		}
		if math.Abs(peak.Frequency-freq) > 3 {
			t.Errorf("Peak(%v).Frequency = %v", freq, peak.Frequency)
		}
		if peak.Amplitude < 0.35 || peak.Amplitude > 0.55 {
			t.Errorf("Peak(%v).Amplitude = %v, want about 0.5", freq, peak.Amplitude)
		}
	}
}

func TestAnalyzerZeroPadsShortFrames(t *testing.T) {
	a, err := NewAnalyzer(2048)
	if err != nil {
		t.Fatalf("NewAnalyzer() error: %v", err)
	}

	x := testutil.DeterministicSine(3000, 48000, 1, 1500)
	peak, err := a.Peak(x, 48000)
	if err != nil {
		t.Fatalf("Peak() error: %v", err)
	}
	if math.Abs(peak.Frequency-3000) > 30 {
		t.Fatalf("Peak().Frequency = %v, want about 3000", peak.Frequency)
	}
}

func TestAnalyzerSilence(t *testing.T) {
	a, err := NewAnalyzer(256)
	if err != nil {
		t.Fatalf("NewAnalyzer() error: %v", err)
	}

	if _, err := a.Peak(make([]float64, 256), 48000); !errors.Is(err, ErrSilent) {
		t.Fatalf("Peak(silence) error = %v, want ErrSilent", err)
	}
	if _, err := a.Peak(make([]float64, 256), 0); err == nil {
		t.Fatal("Peak() accepted zero sample rate")
	}
}

func TestAnalyzerMagnitudesLength(t *testing.T) {
	a, err := NewAnalyzer(512)
	if err != nil {
		t.Fatalf("NewAnalyzer() error: %v", err)
	}

	bins, err := a.Magnitudes(testutil.DeterministicNoise(3, 1, 512))
	if err != nil {
		t.Fatalf("Magnitudes() error: %v", err)
	}
	if len(bins) != 257 {
		t.Fatalf("len(bins) = %d, want 257", len(bins))
	}
	testutil.RequireFinite(t, bins)
}
