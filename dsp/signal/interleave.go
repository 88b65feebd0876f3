package signal

import "fmt"

// Deinterleave splits frame-interleaved samples into one slice per channel.
func Deinterleave(data []float64, channels int) ([][]float64, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("deinterleave channels must be > 0: %d", channels)
	}
	if len(data)%channels != 0 {
		return nil, fmt.Errorf("deinterleave length %d is not a multiple of %d channels", len(data), channels)
	}

	frames := len(data) / channels
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = make([]float64, frames)
	}

	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			out[ch][i] = data[i*channels+ch]
		}
	}
	return out, nil
}

// Interleave writes frames of block into dst as frame-interleaved samples
// and returns the number of frames written. It stops at whichever of dst
// and block is shorter.
func Interleave(dst []float64, block [][]float64) int {
	channels := len(block)
	if channels == 0 {
		return 0
	}

	frames := min(len(block[0]), len(dst)/channels)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			dst[i*channels+ch] = block[ch][i]
		}
	}
	return frames
}

// InterleaveFloat32 is Interleave for 32-bit output buffers such as audio
// device streams.
func InterleaveFloat32(dst []float32, block [][]float64) int {
	channels := len(block)
	if channels == 0 {
		return 0
	}

	frames := min(len(block[0]), len(dst)/channels)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			dst[i*channels+ch] = float32(block[ch][i])
		}
	}
	return frames
}
