// Command granulate runs audio through the granular delay.
//
// Usage:
//
//	granulate [flags]
//
// It renders a WAV file (or a synthesized tone) offline, or streams it
// through the default audio device.
//
// Examples:
//
//	granulate -in voice.wav -out grains.wav -mix 0.7 -pitch 1.5
//	granulate -tone 440 -seconds 4 -out tone.wav -detune 50 -analyze
//	granulate -in loop.wav -play -frequency 25 -grainSize 60
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cwbudde/algo-granular/dsp/granular"
)

type options struct {
	in         string
	out        string
	tone       float64
	seconds    float64
	tail       float64
	sampleRate int
	channels   int
	block      int
	seed       int64
	maxGrains  int
	fade       string
	hermite    bool
	play       bool
	analyze    bool
	normalize  bool
	peakDB     float64
	params     granular.Params
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "granulate: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "granulate: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("granulate", flag.ContinueOnError)

	var o options
	fs.StringVar(&o.in, "in", "", "input WAV file")
	fs.StringVar(&o.out, "out", "", "output WAV file (offline render)")
	fs.Float64Var(&o.tone, "tone", 440, "sine input frequency in Hz when -in is empty")
	fs.Float64Var(&o.seconds, "seconds", 4, "tone length, or play time with -play (0 plays until interrupted)")
	fs.Float64Var(&o.tail, "tail", 1, "seconds of silence appended to the input when rendering")
	fs.IntVar(&o.sampleRate, "sample-rate", 48000, "sample rate for tone input and playback")
	fs.IntVar(&o.channels, "channels", 2, "channel count for tone input")
	fs.IntVar(&o.block, "block", 512, "block size in frames")
	fs.Int64Var(&o.seed, "seed", 1, "random seed for grain offsets and detune")
	fs.IntVar(&o.maxGrains, "max-grains", 64, "maximum simultaneous grains")
	fs.StringVar(&o.fade, "fade", "linear", "grain fade shape (linear, cosine)")
	fs.BoolVar(&o.hermite, "hermite", false, "resample grains with cubic Hermite instead of linear interpolation")
	fs.BoolVar(&o.play, "play", false, "stream through the default audio device")
	fs.BoolVar(&o.analyze, "analyze", false, "print spectral peak and level of input and output")
	fs.BoolVar(&o.normalize, "normalize", false, "normalize the rendered output to -peak")
	fs.Float64Var(&o.peakDB, "peak", -1, "normalization target in dBFS")

	specs := granular.ParamSpecs()
	values := make([]*float64, len(specs))
	for i, spec := range specs {
		usage := fmt.Sprintf("%s [%g, %g]", spec.Name, spec.Min, spec.Max)
		if spec.Unit != "" {
			usage = fmt.Sprintf("%s in %s [%g, %g]", spec.Name, spec.Unit, spec.Min, spec.Max)
		}
		values[i] = fs.Float64(spec.Key, spec.Default, usage)
	}

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: granulate [flags]\n\n")
		fmt.Fprintf(fs.Output(), "Runs audio through a granular delay, offline or in real time.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	for i, spec := range specs {
		o.params.Set(spec.ID, *values[i])
	}
	if err := o.params.Validate(); err != nil {
		return options{}, err
	}

	if !o.play && o.out == "" {
		return options{}, errors.New("either -out or -play is required")
	}
	if o.block <= 0 {
		return options{}, fmt.Errorf("block must be > 0: %d", o.block)
	}
	if o.normalize && !(o.peakDB <= 0) {
		return options{}, fmt.Errorf("peak must be <= 0 dBFS: %g", o.peakDB)
	}
	if o.in == "" && (o.sampleRate <= 0 || o.channels <= 0) {
		return options{}, fmt.Errorf("tone input needs a positive sample rate and channel count: %d, %d", o.sampleRate, o.channels)
	}

	return o, nil
}

func run(ctx context.Context, o options) error {
	src, err := loadInput(o)
	if err != nil {
		return err
	}

	proc, err := newProcessor(o, src)
	if err != nil {
		return err
	}

	if o.play {
		return play(ctx, o, proc, src)
	}

	return renderFile(o, proc, src)
}
