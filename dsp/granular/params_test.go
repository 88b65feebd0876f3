package granular

import (
	"math"
	"testing"
)

func TestDefaultParamsMatchSpecs(t *testing.T) {
	p := DefaultParams()
	for _, spec := range ParamSpecs() {
		if got := p.Get(spec.ID); got != spec.Default {
			t.Errorf("%s default = %v, want %v", spec.Key, got, spec.Default)
		}
		if spec.Default < spec.Min || spec.Default > spec.Max {
			t.Errorf("%s default %v outside [%v, %v]", spec.Key, spec.Default, spec.Min, spec.Max)
		}
	}

	if err := p.Validate(); err != nil {
		t.Fatalf("Validate(defaults) error: %v", err)
	}
}

func TestParamIDString(t *testing.T) {
	tests := []struct {
		id   ParamID
		want string
	}{
		{ParamInputGain, "inputGain"},
		{ParamRangeEnd, "rangeEnd"},
		{ParamFadeLength, "fadeLength"},
		{ParamID(99), "ParamID(99)"},
	}

	for _, tt := range tests {
		if got := tt.id.String(); got != tt.want {
			t.Errorf("ParamID(%d).String() = %q, want %q", int(tt.id), got, tt.want)
		}
	}
}

func TestParamsClamp(t *testing.T) {
	p := DefaultParams()
	p.InputGain = 5
	p.Mix = -1
	p.GrainSize = 0
	p.Frequency = math.NaN()
	p.Pitch = math.Inf(1)
	p.Detune = 5000
	p.FadeLength = 0.9

	got := p.Clamp()

	want := DefaultParams()
	want.InputGain = 2
	want.Mix = 0
	want.GrainSize = 1
	want.Detune = 1200
	want.FadeLength = 0.5

	if got != want {
		t.Fatalf("Clamp() = %+v, want %+v", got, want)
	}
	if err := got.Validate(); err != nil {
		t.Fatalf("Validate(clamped) error: %v", err)
	}
}

func TestParamsClampSwapsReversedRange(t *testing.T) {
	p := DefaultParams()
	p.RangeStart = 800
	p.RangeEnd = 200

	got := p.Clamp()
	if got.RangeStart != 200 || got.RangeEnd != 800 {
		t.Fatalf("range = [%v, %v], want [200, 800]", got.RangeStart, got.RangeEnd)
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
	}{
		{"gain high", func(p *Params) { p.InputGain = 2.5 }},
		{"mix NaN", func(p *Params) { p.Mix = math.NaN() }},
		{"grain size low", func(p *Params) { p.GrainSize = 0.5 }},
		{"pitch low", func(p *Params) { p.Pitch = 0.1 }},
		{"range reversed", func(p *Params) { p.RangeStart, p.RangeEnd = 900, 100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.modify(&p)
			if err := p.Validate(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestAtomicParams(t *testing.T) {
	p := DefaultParams()
	p.Mix = 0.8
	p.Pitch = 1.5

	a := NewAtomicParams(p)
	if got := a.Params(); got != p {
		t.Fatalf("Params() = %+v, want %+v", got, p)
	}

	a.Set(ParamDetune, 25)
	if got := a.Load(ParamDetune); got != 25 {
		t.Fatalf("Load(detune) = %v, want 25", got)
	}
	if got := a.Params().Detune; got != 25 {
		t.Fatalf("Params().Detune = %v, want 25", got)
	}

	a.Set(numParams, 1)
	if got := a.Load(numParams); !math.IsNaN(got) {
		t.Fatalf("Load(unknown) = %v, want NaN", got)
	}

	var src ParamSource = a
	if src.Params().Mix != 0.8 {
		t.Fatal("AtomicParams does not serve the stored mix")
	}
}
