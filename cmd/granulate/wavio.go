package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"

	"github.com/cwbudde/algo-granular/dsp/signal"
)

// clip holds planar audio at a sample rate.
type clip struct {
	block      [][]float64
	sampleRate int
}

func (c clip) channels() int { return len(c.block) }

func (c clip) frames() int {
	if len(c.block) == 0 {
		return 0
	}
	return len(c.block[0])
}

func readWAV(path string) (clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return clip{}, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return clip{}, fmt.Errorf("invalid wav file: %s", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return clip{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return clip{}, fmt.Errorf("invalid wav buffer: %s", path)
	}
	if buf.Format.SampleRate <= 0 {
		return clip{}, fmt.Errorf("invalid wav sample-rate: %d", buf.Format.SampleRate)
	}

	numCh := buf.Format.NumChannels
	if len(buf.Data) < numCh {
		return clip{}, fmt.Errorf("empty wav data: %s", path)
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := 1 / float64(int64(1)<<(bitDepth-1))

	frames := len(buf.Data) / numCh
	data := make([]float64, frames*numCh)
	for i := range data {
		data[i] = float64(buf.Data[i]) * scale
	}

	block, err := signal.Deinterleave(data, numCh)
	if err != nil {
		return clip{}, err
	}

	return clip{block: block, sampleRate: buf.Format.SampleRate}, nil
}

func writeWAV(path string, c clip) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	samples := make([]float32, c.frames()*c.channels())
	signal.InterleaveFloat32(samples, c.block)

	encoder := wav.NewEncoder(file, c.sampleRate, 16, c.channels(), 1)

	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  c.sampleRate,
			NumChannels: c.channels(),
		},
		Data:           samples,
		SourceBitDepth: 16,
	}

	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	return file.Close()
}
