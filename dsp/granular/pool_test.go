package granular

import (
	"testing"

	"github.com/cwbudde/algo-granular/dsp/interp"
	"github.com/cwbudde/algo-granular/internal/testutil"
)

// addGrain copies samples into a free slot of p and starts it at speed. It
// reports false when p is full or samples does not fit a slot.
func addGrain(p *Pool, samples [][]float64, speed float64) bool {
	if len(samples) != p.channels || len(samples[0]) < 2 || len(samples[0]) > p.maxLen || !(speed > 0) {
		return false
	}

	g := p.acquire(len(samples[0]), speed)
	if g == nil {
		return false
	}
	for ch := range g.buf {
		copy(g.buf[ch], samples[ch])
	}
	return true
}

// liveGrain returns the i-th live grain of p.
func liveGrain(p *Pool, i int) *Grain { return &p.grains[p.live[i]] }

func TestNewPoolValidation(t *testing.T) {
	tests := []struct {
		name                      string
		maxGrains, channels, size int
	}{
		{"zero grains", 0, 1, 16},
		{"zero channels", 4, 0, 16},
		{"short slots", 4, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPool(tt.maxGrains, tt.channels, tt.size, interp.Linear); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestPoolCeilingRefusesNewGrains(t *testing.T) {
	pool, err := NewPool(2, 1, 16, interp.Linear)
	if err != nil {
		t.Fatalf("NewPool() error: %v", err)
	}

	for i := 0; i < 2; i++ {
		if !addGrain(pool, [][]float64{testutil.Ramp(8)}, 1) {
			t.Fatalf("addGrain(%d) refused below the ceiling", i)
		}
	}
	if addGrain(pool, [][]float64{testutil.Ramp(8)}, 1) {
		t.Fatal("addGrain() accepted a grain above the ceiling")
	}
	if pool.Active() != 2 || pool.Cap() != 2 {
		t.Fatalf("Active/Cap = %d/%d, want 2/2", pool.Active(), pool.Cap())
	}

	wet := [][]float64{make([]float64, 16)}
	pool.Mix(wet, 16, 1)
	if got := pool.Retire(); got != 2 {
		t.Fatalf("Retire() = %d, want 2", got)
	}
	if !addGrain(pool, [][]float64{testutil.Ramp(8)}, 1) {
		t.Fatal("addGrain() refused after slots were freed")
	}
}

func TestPoolRejectsBadGrains(t *testing.T) {
	pool, err := NewPool(2, 2, 8, interp.Linear)
	if err != nil {
		t.Fatalf("NewPool() error: %v", err)
	}

	tests := []struct {
		name    string
		samples [][]float64
		speed   float64
	}{
		{"channel count", [][]float64{testutil.Ramp(4)}, 1},
		{"too long", [][]float64{testutil.Ramp(9), testutil.Ramp(9)}, 1},
		{"too short", [][]float64{{1}, {1}}, 1},
		{"bad speed", [][]float64{testutil.Ramp(4), testutil.Ramp(4)}, 0},
	}

	for _, tt := range tests {
		if addGrain(pool, tt.samples, tt.speed) {
			t.Errorf("%s: addGrain() accepted", tt.name)
		}
	}
	if pool.Active() != 0 {
		t.Fatalf("Active() = %d, want 0", pool.Active())
	}
}

func TestPoolMixSumsGrains(t *testing.T) {
	pool, err := NewPool(4, 1, 16, interp.Linear)
	if err != nil {
		t.Fatalf("NewPool() error: %v", err)
	}

	addGrain(pool, [][]float64{{1, 1, 1, 1}}, 1)
	addGrain(pool, [][]float64{{2, 2, 2, 2, 2, 2}}, 1)

	wet := [][]float64{make([]float64, 8)}
	pool.Mix(wet, 8, 0.5)

	want := []float64{1.5, 1.5, 1.5, 1, 1, 0, 0, 0}
	for i := range want {
		if wet[0][i] != want[i] {
			t.Fatalf("wet[%d] = %v, want %v", i, wet[0][i], want[i])
		}
	}

	if got := pool.Retire(); got != 2 {
		t.Fatalf("Retire() = %d, want 2", got)
	}
}

func TestPoolMixRespectsFrameCount(t *testing.T) {
	pool, err := NewPool(1, 1, 16, interp.Linear)
	if err != nil {
		t.Fatalf("NewPool() error: %v", err)
	}
	addGrain(pool, [][]float64{testutil.Ramp(10)}, 1)

	wet := [][]float64{make([]float64, 8)}
	pool.Mix(wet, 4, 1)

	for i := 4; i < 8; i++ {
		if wet[0][i] != 0 {
			t.Fatalf("wet[%d] = %v written beyond n", i, wet[0][i])
		}
	}
	if got := liveGrain(pool, 0).Position(); got != 4 {
		t.Fatalf("Position() = %v, want 4", got)
	}
	if pool.Retire() != 0 {
		t.Fatal("grain retired early")
	}
}

func TestPoolReset(t *testing.T) {
	pool, err := NewPool(3, 1, 16, interp.Linear)
	if err != nil {
		t.Fatalf("NewPool() error: %v", err)
	}
	for i := 0; i < 3; i++ {
		addGrain(pool, [][]float64{testutil.Ramp(12)}, 1)
	}

	pool.Reset()
	if pool.Active() != 0 {
		t.Fatalf("Active() = %d after Reset, want 0", pool.Active())
	}
	for i := 0; i < 3; i++ {
		if !addGrain(pool, [][]float64{testutil.Ramp(12)}, 1) {
			t.Fatalf("addGrain(%d) refused after Reset", i)
		}
	}
}

func TestPoolMixDoesNotAllocate(t *testing.T) {
	pool, err := NewPool(8, 2, 256, interp.Linear)
	if err != nil {
		t.Fatalf("NewPool() error: %v", err)
	}

	src := [][]float64{testutil.Ramp(256), testutil.Ramp(256)}
	wet := [][]float64{make([]float64, 64), make([]float64, 64)}

	allocs := testing.AllocsPerRun(100, func() {
		if pool.Active() < pool.Cap() {
			addGrain(pool, src, 1.25)
		}
		pool.Mix(wet, 64, 0.7)
		pool.Retire()
	})
	if allocs != 0 {
		t.Fatalf("allocs per block = %v, want 0", allocs)
	}
}

func BenchmarkPoolMix(b *testing.B) {
	pool, err := NewPool(64, 2, 4800, interp.Linear)
	if err != nil {
		b.Fatalf("NewPool() error: %v", err)
	}

	src := [][]float64{testutil.Ramp(4800), testutil.Ramp(4800)}
	for addGrain(pool, src, 0.9) {
	}
	wet := [][]float64{make([]float64, 512), make([]float64, 512)}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.Mix(wet, 512, 0.7)
		if pool.Retire() > 0 {
			for addGrain(pool, src, 0.9) {
			}
		}
	}
}
