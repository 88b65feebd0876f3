package granular_test

import (
	"fmt"

	"github.com/cwbudde/algo-granular/dsp/core"
	"github.com/cwbudde/algo-granular/dsp/granular"
	"github.com/cwbudde/algo-granular/dsp/signal"
)

func ExampleProcessor() {
	proc, err := granular.New(48000, 512, 1, granular.WithSeed(7))
	if err != nil {
		panic(err)
	}

	params := granular.DefaultParams()
	params.GrainSize = 50
	params.Mix = 0.5

	input, err := signal.NewGenerator(core.WithSampleRate(48000)).Sine(440, 0.5, 48000)
	if err != nil {
		panic(err)
	}

	for start := 0; start+512 <= len(input); start += 512 {
		if start == 47104 {
			proc.RequestGrain()
		}
		proc.ProcessInPlace([][]float64{input[start : start+512]}, params)
	}

	s := proc.Stats()
	fmt.Printf("spawned=%d active=%d retired=%d\n", s.Spawned, s.Active, s.Retired)
	// Output: spawned=1 active=1 retired=0
}

func ExampleParamSpecs() {
	for _, spec := range granular.ParamSpecs()[:3] {
		fmt.Printf("%s [%g, %g] default %g\n", spec.Key, spec.Min, spec.Max, spec.Default)
	}
	// Output:
	// inputGain [0, 2] default 1
	// mix [0, 1] default 0.5
	// grainSize [1, 100] default 10
}
