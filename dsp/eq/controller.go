package eq

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// ErrNilSource is returned when a controller is built without a parameter
// source.
var ErrNilSource = errors.New("eq: nil parameter source")

// DefaultRefreshRate is the rebuild rate of Controller.Run in Hz.
const DefaultRefreshRate = 60.0

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for control-rate events.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// WithRefreshRate sets the tick rate of Run in Hz. Non-positive rates are
// ignored.
func WithRefreshRate(hz float64) Option {
	return func(c *Controller) {
		if hz > 0 {
			c.refresh = time.Duration(float64(time.Second) / hz)
		}
	}
}

// WithRepaint registers fn to run after every Tick-triggered rebuild, on the
// control goroutine. The rebuilds done by NewController and Prepare do not
// call it.
func WithRepaint(fn func()) Option {
	return func(c *Controller) {
		c.repaint = fn
	}
}

// Controller owns the control-rate side of the equalizer: it listens to a
// ParameterSource, coalesces edits through a Gate and republishes
// coefficients into the audio Processor and a separate display chain.
//
// Tick, Prepare, Run and ResponseCurve must be driven from one goroutine.
// The Processor may be used concurrently from the audio goroutine.
type Controller struct {
	src         ParameterSource
	processor   *Processor
	display     MonoChain
	gate        Gate
	unsubscribe func()
	closeOnce   sync.Once

	log     zerolog.Logger
	refresh time.Duration
	repaint func()

	rebuilds   atomic.Uint64
	sampleRate atomic.Uint64 // math.Float64bits of the last design rate
	analyzer   *Analyzer
	curve      []float64
}

// NewController subscribes to src and publishes an initial coefficient set
// for channels audio chains.
func NewController(src ParameterSource, channels int, opts ...Option) (*Controller, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	proc, err := NewProcessor(channels)
	if err != nil {
		return nil, fmt.Errorf("new controller: %w", err)
	}

	c := &Controller{
		src:       src,
		processor: proc,
		log:       zerolog.Nop(),
		refresh:   time.Second / time.Duration(DefaultRefreshRate),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.unsubscribe = src.Subscribe(func(ParamID, float64) {
		c.gate.MarkDirty()
	})
	c.rebuild()

	return c, nil
}

// Processor returns the audio-rate processor.
func (c *Controller) Processor() *Processor { return c.processor }

// DisplayChain returns the chain used for response visualization. It holds
// the same coefficients as the audio chains but never shares memory with
// them.
func (c *Controller) DisplayChain() *MonoChain { return &c.display }

// SampleRate returns the sample rate of the last rebuild.
func (c *Controller) SampleRate() float64 {
	return math.Float64frombits(c.sampleRate.Load())
}

// Interval returns the tick interval used by Run.
func (c *Controller) Interval() time.Duration { return c.refresh }

// Rebuilds returns how many coefficient sets have been published.
func (c *Controller) Rebuilds() uint64 { return c.rebuilds.Load() }

// MarkDirty forces a rebuild on the next Tick.
func (c *Controller) MarkDirty() { c.gate.MarkDirty() }

// Tick rebuilds the coefficients if any parameter changed since the last
// rebuild and reports whether it did.
func (c *Controller) Tick() bool {
	if !c.gate.ConsumeIfDirty() {
		return false
	}
	c.rebuild()
	if c.repaint != nil {
		c.repaint()
	}
	return true
}

// Prepare rebuilds for the current source sample rate and clears all delay
// lines. Call it when the host reconfigures, while audio is stopped.
func (c *Controller) Prepare() {
	c.rebuild()
	c.processor.Reset()
	c.display.Reset()
}

// Run ticks at the refresh rate until ctx is done and returns ctx.Err().
func (c *Controller) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.Interval())
	defer ticker.Stop()

	c.log.Debug().Dur("interval", c.refresh).Msg("eq: controller running")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.Tick()
		}
	}
}

// ResponseCurve returns the display chain's response in dB at width points.
// The returned slice is reused by the next call with the same width.
func (c *Controller) ResponseCurve(width int) []float64 {
	if width <= 0 {
		return nil
	}
	if c.analyzer == nil || c.analyzer.Width() != width {
		c.analyzer = NewAnalyzer(width)
	}
	c.curve = c.analyzer.CurveInto(c.curve, &c.display, c.SampleRate())
	return c.curve
}

// Close unsubscribes from the parameter source. It is safe to call more
// than once.
func (c *Controller) Close() error {
	c.closeOnce.Do(func() {
		if c.unsubscribe != nil {
			c.unsubscribe()
		}
		c.log.Debug().Uint64("rebuilds", c.rebuilds.Load()).Msg("eq: controller closed")
	})
	return nil
}

func (c *Controller) rebuild() {
	p := c.src.Snapshot()
	sr := c.src.SampleRate()
	cc := Design(p, sr)

	c.processor.Apply(&cc)
	c.display.Apply(&cc)
	c.sampleRate.Store(math.Float64bits(sr))
	n := c.rebuilds.Add(1)

	if !(sr > 0) {
		c.log.Warn().Float64("sampleRate", sr).Msg("eq: invalid sample rate, using unity coefficients")
	}
	c.log.Debug().
		Uint64("rebuild", n).
		Float64("sampleRate", sr).
		Float64("peakFreq", p.PeakFreq).
		Float64("peakGain", p.PeakGain).
		Float64("peakQuality", p.PeakQuality).
		Float64("lowCutFreq", p.LowCutFreq).
		Stringer("lowCutSlope", p.LowCutSlope).
		Float64("highCutFreq", p.HighCutFreq).
		Stringer("highCutSlope", p.HighCutSlope).
		Msg("eq: coefficients published")
}
