package granular

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-granular/dsp/core"
)

// ParamID identifies one field of [Params].
type ParamID int

const (
	ParamInputGain ParamID = iota
	ParamMix
	ParamGrainSize
	ParamFrequency
	ParamRangeStart
	ParamRangeEnd
	ParamPitch
	ParamDetune
	ParamFadeLength

	numParams
)

// ParamSpec describes the range and default of a parameter.
type ParamSpec struct {
	ID      ParamID
	Key     string
	Name    string
	Unit    string
	Min     float64
	Max     float64
	Default float64
}

var paramSpecs = [numParams]ParamSpec{
	{ParamInputGain, "inputGain", "Input Gain", "", 0, 2, 1},
	{ParamMix, "mix", "Mix", "%", 0, 1, 0.5},
	{ParamGrainSize, "grainSize", "Grain Size", "ms", 1, 100, 10},
	{ParamFrequency, "frequency", "Frequency", "Hz", 1, 100, 10},
	{ParamRangeStart, "rangeStart", "Range Start", "ms", 0, 9000, 100},
	{ParamRangeEnd, "rangeEnd", "Range End", "ms", 10, 10000, 1000},
	{ParamPitch, "pitch", "Pitch", "x", 0.25, 4, 1},
	{ParamDetune, "detune", "Detune", "ct", 0, 1200, 0},
	{ParamFadeLength, "fadeLength", "Fade Length", "%", 0, 0.5, 0.1},
}

// ParamSpecs returns the specification of every parameter, ordered by ID.
func ParamSpecs() []ParamSpec {
	out := make([]ParamSpec, len(paramSpecs))
	copy(out, paramSpecs[:])
	return out
}

// Spec returns the specification of id.
func (id ParamID) Spec() ParamSpec {
	if id < 0 || id >= numParams {
		return ParamSpec{ID: id}
	}
	return paramSpecs[id]
}

// String returns the parameter key.
func (id ParamID) String() string {
	if id < 0 || id >= numParams {
		return fmt.Sprintf("ParamID(%d)", int(id))
	}
	return paramSpecs[id].Key
}

// Params is the parameter snapshot read once per processed block.
type Params struct {
	InputGain  float64 // linear gain applied to the input before anything else
	Mix        float64 // wet proportion, 0 = dry only
	GrainSize  float64 // ms
	Frequency  float64 // grains per second requested by the trigger
	RangeStart float64 // ms behind the write cursor, nearest edge
	RangeEnd   float64 // ms behind the write cursor, farthest edge
	Pitch      float64 // base playback rate
	Detune     float64 // cents, symmetric random spread around Pitch
	FadeLength float64 // proportion of the grain used by each ramp
}

// DefaultParams returns every parameter at its default value.
func DefaultParams() Params {
	var p Params
	for _, spec := range paramSpecs {
		p.Set(spec.ID, spec.Default)
	}
	return p
}

// Get returns the value of id.
func (p Params) Get(id ParamID) float64 {
	switch id {
	case ParamInputGain:
		return p.InputGain
	case ParamMix:
		return p.Mix
	case ParamGrainSize:
		return p.GrainSize
	case ParamFrequency:
		return p.Frequency
	case ParamRangeStart:
		return p.RangeStart
	case ParamRangeEnd:
		return p.RangeEnd
	case ParamPitch:
		return p.Pitch
	case ParamDetune:
		return p.Detune
	case ParamFadeLength:
		return p.FadeLength
	default:
		return math.NaN()
	}
}

// Set assigns v to id. Unknown IDs are ignored.
func (p *Params) Set(id ParamID, v float64) {
	switch id {
	case ParamInputGain:
		p.InputGain = v
	case ParamMix:
		p.Mix = v
	case ParamGrainSize:
		p.GrainSize = v
	case ParamFrequency:
		p.Frequency = v
	case ParamRangeStart:
		p.RangeStart = v
	case ParamRangeEnd:
		p.RangeEnd = v
	case ParamPitch:
		p.Pitch = v
	case ParamDetune:
		p.Detune = v
	case ParamFadeLength:
		p.FadeLength = v
	}
}

// Clamp returns p with every field limited to its declared range.
// Non-finite values fall back to the default, and a reversed range is
// swapped so that RangeStart <= RangeEnd.
func (p Params) Clamp() Params {
	out := p
	for _, spec := range paramSpecs {
		v := p.Get(spec.ID)
		if !core.IsFinite(v) {
			v = spec.Default
		}
		out.Set(spec.ID, core.Clamp(v, spec.Min, spec.Max))
	}

	if out.RangeStart > out.RangeEnd {
		out.RangeStart, out.RangeEnd = out.RangeEnd, out.RangeStart
	}

	return out
}

// Validate reports the first field outside its declared range.
func (p Params) Validate() error {
	for _, spec := range paramSpecs {
		v := p.Get(spec.ID)
		if !core.IsFinite(v) || v < spec.Min || v > spec.Max {
			return fmt.Errorf("granular %s must be in [%g, %g]: %f", spec.Key, spec.Min, spec.Max, v)
		}
	}

	if p.RangeStart > p.RangeEnd {
		return fmt.Errorf("granular rangeStart must be <= rangeEnd: %f > %f", p.RangeStart, p.RangeEnd)
	}

	return nil
}

// ParamSource supplies the current parameter values.
type ParamSource interface {
	Params() Params
}

// AtomicParams is a lock-free ParamSource. Writers on any goroutine call
// Store or Set; the audio goroutine calls Params once per block. Each field
// is updated atomically on its own, so a snapshot taken during a Store may
// mix old and new fields.
type AtomicParams struct {
	fields [numParams]atomic.Uint64
}

// NewAtomicParams returns an AtomicParams holding p.
func NewAtomicParams(p Params) *AtomicParams {
	a := &AtomicParams{}
	a.Store(p)
	return a
}

// Store replaces every field.
func (a *AtomicParams) Store(p Params) {
	for id := ParamID(0); id < numParams; id++ {
		a.fields[id].Store(math.Float64bits(p.Get(id)))
	}
}

// Set replaces one field.
func (a *AtomicParams) Set(id ParamID, v float64) {
	if id < 0 || id >= numParams {
		return
	}
	a.fields[id].Store(math.Float64bits(v))
}

// Load returns one field.
func (a *AtomicParams) Load(id ParamID) float64 {
	if id < 0 || id >= numParams {
		return math.NaN()
	}
	return math.Float64frombits(a.fields[id].Load())
}

// Params returns a snapshot of every field.
func (a *AtomicParams) Params() Params {
	var p Params
	for id := ParamID(0); id < numParams; id++ {
		p.Set(id, math.Float64frombits(a.fields[id].Load()))
	}
	return p
}
