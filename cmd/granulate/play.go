package main

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-granular/dsp/core"
	"github.com/cwbudde/algo-granular/dsp/granular"
	"github.com/cwbudde/algo-granular/dsp/signal"
)

// stream feeds a looping clip through the processor on demand. Read runs
// on the audio device goroutine; it owns the processor while playing.
type stream struct {
	proc   *granular.Processor
	params granular.ParamSource
	src    clip

	pos     int
	block   [][]float64
	view    [][]float64
	samples []float32
}

func newStream(proc *granular.Processor, params granular.ParamSource, src clip) *stream {
	block := core.NewBlock(src.channels(), proc.MaxBlockSize())
	return &stream{
		proc:    proc,
		params:  params,
		src:     src,
		block:   block,
		view:    make([][]float64, len(block)),
		samples: make([]float32, len(block)*proc.MaxBlockSize()),
	}
}

// Read implements io.Reader for oto.Player with float32 little-endian
// interleaved frames.
func (s *stream) Read(p []byte) (int, error) {
	channels := s.src.channels()
	frameBytes := 4 * channels
	total := len(p) / frameBytes

	written := 0
	for written < total {
		n := min(s.proc.MaxBlockSize(), total-written)
		s.fill(n)

		for ch := range s.view {
			s.view[ch] = s.block[ch][:n]
		}
		s.proc.ProcessInPlace(s.view, s.params.Params())

		signal.InterleaveFloat32(s.samples[:n*channels], s.view)
		off := written * frameBytes
		for i, v := range s.samples[:n*channels] {
			binary.LittleEndian.PutUint32(p[off+4*i:], math.Float32bits(v))
		}
		written += n
	}

	return total * frameBytes, nil
}

func (s *stream) fill(n int) {
	frames := s.src.frames()
	for i := 0; i < n; i++ {
		for ch := range s.block {
			s.block[ch][i] = s.src.block[ch][s.pos]
		}
		s.pos++
		if s.pos == frames {
			s.pos = 0
		}
	}
}

func play(ctx context.Context, o options, proc *granular.Processor, src clip) error {
	if src.frames() == 0 {
		return errors.New("play needs a non-empty input")
	}

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   src.sampleRate,
		ChannelCount: src.channels(),
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(o.block) * time.Second / time.Duration(src.sampleRate) * 2,
	})
	if err != nil {
		return fmt.Errorf("audio device: %w", err)
	}
	<-ready

	if o.seconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(o.seconds*float64(time.Second)))
		defer cancel()
	}

	params := granular.NewAtomicParams(o.params)
	player := otoCtx.NewPlayer(newStream(proc, params, src))
	defer player.Close()

	go func() { _ = granular.NewTrigger(proc, params).Run(ctx) }()

	player.Play()
	fmt.Fprintf(os.Stderr, "playing %d channels at %d Hz, Ctrl-C to stop\n", src.channels(), src.sampleRate)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s := proc.Stats()
			fmt.Fprintf(os.Stderr, "stopped: %d spawned, %d dropped, %d retired\n", s.Spawned, s.Dropped, s.Retired)
			return nil
		case <-ticker.C:
			s := proc.Stats()
			fmt.Fprintf(os.Stderr, "grains: %d active, %d spawned, %d dropped\n", s.Active, s.Spawned, s.Dropped)
			if err := player.Err(); err != nil {
				return fmt.Errorf("audio device: %w", err)
			}
		}
	}
}
