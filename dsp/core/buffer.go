package core

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// NewBlock allocates a planar multichannel block of channels x frames samples.
// All channels share one backing array.
func NewBlock(channels, frames int) [][]float64 {
	if channels <= 0 {
		return nil
	}
	if frames < 0 {
		frames = 0
	}
	backing := make([]float64, channels*frames)
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = backing[ch*frames : (ch+1)*frames : (ch+1)*frames]
	}
	return out
}

// ZeroBlock clears the first n samples of every channel in block.
func ZeroBlock(block [][]float64, n int) {
	for _, ch := range block {
		if n > len(ch) {
			Zero(ch)
			continue
		}
		Zero(ch[:n])
	}
}
