package main

import (
	"fmt"
	"math"
	"os"

	"github.com/cwbudde/algo-granular/dsp/core"
	"github.com/cwbudde/algo-granular/dsp/granular"
	"github.com/cwbudde/algo-granular/dsp/interp"
	"github.com/cwbudde/algo-granular/dsp/meter"
	"github.com/cwbudde/algo-granular/dsp/signal"
	"github.com/cwbudde/algo-granular/dsp/spectrum"
	"github.com/cwbudde/algo-granular/dsp/window"
)

func loadInput(o options) (clip, error) {
	if o.in != "" {
		return readWAV(o.in)
	}

	cfg := []core.ProcessorOption{
		core.WithSampleRate(float64(o.sampleRate)),
		core.WithChannels(o.channels),
	}
	gen := signal.NewGenerator(cfg...)

	frames := gen.Config().Frames(o.seconds)
	if frames <= 0 {
		frames = gen.Config().Frames(1)
	}

	tone, err := gen.Sine(o.tone, 0.5, frames)
	if err != nil {
		return clip{}, err
	}

	block := make([][]float64, gen.Config().Channels)
	for ch := range block {
		block[ch] = tone
	}

	return clip{block: block, sampleRate: o.sampleRate}, nil
}

func newProcessor(o options, src clip) (*granular.Processor, error) {
	shape, err := window.ParseShape(o.fade)
	if err != nil {
		return nil, err
	}

	mode := interp.Linear
	if o.hermite {
		mode = interp.Hermite
	}

	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(float64(src.sampleRate)),
		core.WithBlockSize(o.block),
		core.WithChannels(src.channels()),
	)

	return granular.New(cfg.SampleRate, cfg.BlockSize, cfg.Channels,
		granular.WithSeed(o.seed),
		granular.WithMaxGrains(o.maxGrains),
		granular.WithFadeShape(shape),
		granular.WithInterpolation(mode),
	)
}

// render runs src plus tail seconds of silence through proc. Spawn
// requests follow the block clock, so identical settings give identical
// output.
func render(proc *granular.Processor, src clip, params granular.Params, tail float64) clip {
	tailFrames := int(math.Max(0, tail) * float64(src.sampleRate))
	total := src.frames() + tailFrames

	out := core.NewBlock(src.channels(), total)
	for ch := range out {
		copy(out[ch], src.block[ch])
	}

	var pulse granular.BlockPulse
	block := proc.MaxBlockSize()
	view := make([][]float64, src.channels())

	for start := 0; start < total; start += block {
		n := min(block, total-start)
		if pulse.Advance(n, float64(src.sampleRate), params.Frequency) {
			proc.RequestGrain()
		}
		for ch := range view {
			view[ch] = out[ch][start : start+n]
		}
		proc.ProcessInPlace(view, params)
	}

	return clip{block: out, sampleRate: src.sampleRate}
}

func renderFile(o options, proc *granular.Processor, src clip) error {
	fmt.Fprintf(os.Stderr, "rendering %d frames x %d channels at %d Hz (block %d)\n",
		src.frames(), src.channels(), src.sampleRate, o.block)

	out := render(proc, src, o.params, o.tail)

	if o.normalize {
		gainDB, err := normalize(out, o.peakDB)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "normalized by %.2f dB\n", gainDB)
	}

	s := proc.Stats()
	fmt.Fprintf(os.Stderr, "grains: %d spawned, %d dropped, %d retired, %d active\n",
		s.Spawned, s.Dropped, s.Retired, s.Active)

	if o.analyze {
		if err := report("input", src); err != nil {
			return err
		}
		if err := report("output", out); err != nil {
			return err
		}
	}

	if err := writeWAV(o.out, out); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s (%d frames)\n", o.out, out.frames())

	return nil
}

const analyzeSize = 8192

// report prints level and the dominant frequency of the first channel.
func report(label string, c clip) error {
	m := meter.New(c.channels())
	m.Update(c.block, c.frames())
	l := m.Total()

	fmt.Fprintf(os.Stderr, "%s: peak %.1f dBFS, rms %.1f dBFS, crest %.2f, %d clipped\n",
		label, l.PeakDB, l.RMSDB, l.Crest, l.Clipped)

	a, err := spectrum.NewAnalyzer(analyzeSize)
	if err != nil {
		return err
	}

	x := c.block[0]
	if len(x) > analyzeSize {
		mid := (len(x) - analyzeSize) / 2
		x = x[mid : mid+analyzeSize]
	}

	peak, err := a.Peak(x, float64(c.sampleRate))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", label, err)
		return nil
	}

	fmt.Fprintf(os.Stderr, "%s: spectral peak %.1f Hz (%.1f dBFS)\n",
		label, peak.Frequency, core.LinearToDB(peak.Amplitude))

	return nil
}

// normalize scales c so its peak sits at peakDB dBFS and returns the applied
// gain in dB.
func normalize(c clip, peakDB float64) (float64, error) {
	scale, err := signal.NormalizeInPlace(c.block, core.DBToLinear(peakDB))
	if err != nil {
		return 0, err
	}
	return core.LinearToDB(scale), nil
}
