package granular

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-granular/dsp/core"
	"github.com/cwbudde/algo-granular/dsp/delay"
)

// Processor is the granular delay signal path.
//
// Process is called from one audio goroutine at a time. RequestGrain and
// Stats may be called from any goroutine. Configure and Reset must not run
// concurrently with Process.
type Processor struct {
	cfg config

	sampleRate float64
	maxBlock   int
	channels   int

	line  *delay.Line
	pool  *Pool
	sched *Scheduler
	stats counters

	gained [][]float64
	wet    [][]float64
}

// New returns a processor configured for sampleRate, blocks of at most
// maxBlockSize frames and channels channels.
func New(sampleRate float64, maxBlockSize, channels int, opts ...Option) (*Processor, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Processor{cfg: cfg}
	if err := p.Configure(sampleRate, maxBlockSize, channels); err != nil {
		return nil, err
	}

	return p, nil
}

// Configure reallocates every buffer for a new sample rate, block size or
// channel count and clears all state. A pending grain request is dropped.
func (p *Processor) Configure(sampleRate float64, maxBlockSize, channels int) error {
	stream := core.ProcessorConfig{SampleRate: sampleRate, BlockSize: maxBlockSize, Channels: channels}
	if err := stream.Validate(); err != nil {
		return fmt.Errorf("granular: %w", err)
	}

	maxLen := core.MsToSamples(p.cfg.maxGrainSizeMs, sampleRate)
	if maxLen < 2 {
		maxLen = 2
	}

	history := stream.Frames(p.cfg.historySeconds)
	if history < maxLen {
		history = maxLen
	}

	line, err := delay.New(channels, history+maxBlockSize)
	if err != nil {
		return err
	}

	pool, err := NewPool(p.cfg.maxGrains, channels, maxLen, p.cfg.mode)
	if err != nil {
		return err
	}

	if p.sched == nil {
		p.sched, err = NewScheduler(sampleRate, maxLen, p.cfg.seed, p.cfg.shape)
	} else {
		err = p.sched.configure(sampleRate, maxLen)
	}
	if err != nil {
		return err
	}

	p.sampleRate = sampleRate
	p.maxBlock = maxBlockSize
	p.channels = channels
	p.line = line
	p.pool = pool
	p.gained = core.NewBlock(channels, maxBlockSize)
	p.wet = core.NewBlock(channels, maxBlockSize)

	p.sched.Reset()
	p.stats.reset()

	return nil
}

// SampleRate returns the configured sample rate.
func (p *Processor) SampleRate() float64 { return p.sampleRate }

// MaxBlockSize returns the largest block processed in one pass.
func (p *Processor) MaxBlockSize() int { return p.maxBlock }

// Channels returns the configured channel count.
func (p *Processor) Channels() int { return p.channels }

// HistoryLen returns the delay line capacity in samples.
func (p *Processor) HistoryLen() int { return p.line.Len() }

// MaxGrainLen returns the longest grain in samples.
func (p *Processor) MaxGrainLen() int { return p.pool.MaxLen() }

// RequestGrain asks for a grain to be spawned at the start of the next
// block. Safe to call from any goroutine.
func (p *Processor) RequestGrain() {
	p.sched.Request()
}

// Stats returns the grain counters. Safe to call from any goroutine.
func (p *Processor) Stats() Stats {
	return p.stats.snapshot()
}

// Reset clears the history, drops all grains and any pending request, and
// rewinds the random sequence. Buffers are kept.
func (p *Processor) Reset() {
	p.line.Reset()
	p.pool.Reset()
	p.sched.Reset()
	p.stats.reset()
}

// Process renders one block. in and out hold Channels() channels; the
// block length is that of in[0], and out channels must be at least as long.
// out may alias in; otherwise in is left untouched.
// Blocks longer than MaxBlockSize are split.
func (p *Processor) Process(out, in [][]float64, params Params) {
	if len(in) != p.channels || len(out) != p.channels {
		return
	}

	params = params.Clamp()

	n := len(in[0])
	for start := 0; start < n; start += p.maxBlock {
		m := n - start
		if m > p.maxBlock {
			m = p.maxBlock
		}
		p.processChunk(out, in, start, m, params)
	}
}

// ProcessInPlace renders one block in place.
func (p *Processor) ProcessInPlace(buf [][]float64, params Params) {
	p.Process(buf, buf, params)
}

func (p *Processor) processChunk(out, in [][]float64, start, m int, params Params) {
	for ch := 0; ch < p.channels; ch++ {
		vecmath.ScaleBlock(p.gained[ch][:m], in[ch][start:start+m], params.InputGain)
		p.line.Write(ch, p.gained[ch][:m], 1)
	}

	if p.sched.Take() {
		if p.sched.Spawn(p.line, p.pool, params, p.line.Len()-p.maxBlock) {
			p.stats.spawned.Add(1)
		} else {
			p.stats.dropped.Add(1)
		}
	}

	core.ZeroBlock(p.wet, m)
	p.pool.Mix(p.wet, m, p.cfg.grainGain)

	dry := 1 - params.Mix
	for ch := 0; ch < p.channels; ch++ {
		dst := out[ch][start : start+m]
		wet := p.wet[ch][:m]
		for i, v := range wet {
			wet[i] = core.FlushDenormals(v)
		}
		vecmath.ScaleBlock(dst, p.gained[ch][:m], dry)
		vecmath.ScaleBlock(wet, wet, params.Mix)
		vecmath.AddBlockInPlace(dst, wet)
	}

	if retired := p.pool.Retire(); retired > 0 {
		p.stats.retired.Add(uint64(retired))
	}
	p.stats.active.Store(int64(p.pool.Active()))

	p.line.Advance(m)
}
