package signal

import "testing"

func TestDeinterleaveInterleave(t *testing.T) {
	data := []float64{1, -1, 2, -2, 3, -3}

	block, err := Deinterleave(data, 2)
	if err != nil {
		t.Fatalf("Deinterleave() error = %v", err)
	}
	if len(block) != 2 || len(block[0]) != 3 {
		t.Fatalf("shape = %dx%d, want 2x3", len(block), len(block[0]))
	}
	if block[0][2] != 3 || block[1][1] != -2 {
		t.Fatalf("block = %v", block)
	}

	out := make([]float64, len(data))
	if n := Interleave(out, block); n != 3 {
		t.Fatalf("Interleave() = %d, want 3", n)
	}
	for i := range data {
		if out[i] != data[i] {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], data[i])
		}
	}
}

func TestDeinterleaveValidation(t *testing.T) {
	if _, err := Deinterleave([]float64{1, 2, 3}, 2); err == nil {
		t.Fatal("expected error for ragged data")
	}
	if _, err := Deinterleave([]float64{1, 2}, 0); err == nil {
		t.Fatal("expected error for zero channels")
	}
}

func TestInterleaveFloat32StopsAtShorterSide(t *testing.T) {
	block := [][]float64{{0.5, 0.25, 0.125}, {-0.5, -0.25, -0.125}}
	dst := make([]float32, 4)

	if n := InterleaveFloat32(dst, block); n != 2 {
		t.Fatalf("InterleaveFloat32() = %d, want 2", n)
	}
	want := []float32{0.5, -0.5, 0.25, -0.25}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}
