// Package webdemo backs the browser demo: a step sequencer feeding the
// three-band equalizer, driven from JavaScript through a parameter store.
package webdemo

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/eq"
)

// ParamMaster is the output gain control handled by the engine itself.
const ParamMaster = "master"

var ErrInvalidSampleRate = errors.New("webdemo: sample rate must be positive")

// Engine renders sequencer audio through an eq.Controller.
type Engine struct {
	store  *eq.Store
	ctrl   *eq.Controller
	seq    sequencer
	master float64
	frames int
}

// NewEngine creates an engine rendering channels interleaved channels.
func NewEngine(sampleRate float64, channels int) (*Engine, error) {
	if !(sampleRate > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	store := eq.NewStore(eq.DefaultParameters(), sampleRate)
	ctrl, err := eq.NewController(store, channels)
	if err != nil {
		return nil, fmt.Errorf("webdemo: %w", err)
	}

	return &Engine{
		store:  store,
		ctrl:   ctrl,
		seq:    newSequencer(sampleRate),
		master: 0.75,
	}, nil
}

// Channels returns the interleaved channel count of Render.
func (e *Engine) Channels() int { return e.ctrl.Processor().Channels() }

// SetParam updates one control by name. Equalizer controls use the
// eq.ParamID names; "master" sets the output gain in 0..1.
func (e *Engine) SetParam(name string, value float64) error {
	if name == ParamMaster {
		e.master = core.Clamp(value, 0, 1)
		return nil
	}

	id, err := eq.ParseParamID(name)
	if err != nil {
		return err
	}
	return e.store.Set(id, value)
}

// Param returns the current value of a control.
func (e *Engine) Param(name string) (float64, error) {
	if name == ParamMaster {
		return e.master, nil
	}

	id, err := eq.ParseParamID(name)
	if err != nil {
		return 0, err
	}
	return e.store.Value(id), nil
}

// Tick publishes pending parameter changes. Call it once per animation
// frame; it reports whether the response curve needs repainting.
func (e *Engine) Tick() bool { return e.ctrl.Tick() }

// ResponseCurve returns the equalizer response in dB at width points from
// 20 Hz to 20 kHz. The slice is reused by the next call.
func (e *Engine) ResponseCurve(width int) []float64 { return e.ctrl.ResponseCurve(width) }

func (e *Engine) SetTransport(tempoBPM, decaySec float64) { e.seq.setTransport(tempoBPM, decaySec) }
func (e *Engine) SetRunning(running bool)                 { e.seq.setRunning(running) }
func (e *Engine) SetSteps(steps []StepConfig)             { e.seq.setSteps(steps) }
func (e *Engine) SetWaveform(w Waveform)                  { e.seq.waveform = w }
func (e *Engine) CurrentStep() int                        { return e.seq.currentStep }

// Render fills dst with interleaved frames in [-1, 1]. A trailing partial
// frame is zeroed.
func (e *Engine) Render(dst []float32) {
	channels := e.Channels()
	frames := len(dst) / channels

	for f := range frames {
		x := float32(e.seq.next())
		frame := dst[f*channels : (f+1)*channels]
		for ch := range frame {
			frame[ch] = x
		}
	}
	clear(dst[frames*channels:])

	out := dst[:frames*channels]
	e.ctrl.Processor().ProcessInterleaved(out, channels)

	for i, v := range out {
		out[i] = float32(core.Clamp(float64(v)*e.master, -1, 1))
	}
	e.frames += frames
}

// Frames returns the number of frames rendered so far.
func (e *Engine) Frames() int { return e.frames }

// Close detaches the controller from the parameter store.
func (e *Engine) Close() error { return e.ctrl.Close() }
