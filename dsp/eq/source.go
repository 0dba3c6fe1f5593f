package eq

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownParam is returned for parameter IDs or names that do not exist.
var ErrUnknownParam = errors.New("eq: unknown parameter")

// ParamID identifies one user-facing control.
type ParamID int

// Parameter identifiers.
const (
	ParamPeakFreq ParamID = iota
	ParamPeakGain
	ParamPeakQuality
	ParamLowCutFreq
	ParamHighCutFreq
	ParamLowCutSlope
	ParamHighCutSlope
	ParamLowCutBypassed
	ParamPeakBypassed
	ParamHighCutBypassed

	numParams
)

var paramNames = [numParams]string{
	ParamPeakFreq:        "peakFreq",
	ParamPeakGain:        "peakGain",
	ParamPeakQuality:     "peakQuality",
	ParamLowCutFreq:      "lowCutFreq",
	ParamHighCutFreq:     "highCutFreq",
	ParamLowCutSlope:     "lowCutSlope",
	ParamHighCutSlope:    "highCutSlope",
	ParamLowCutBypassed:  "lowCutBypassed",
	ParamPeakBypassed:    "peakBypassed",
	ParamHighCutBypassed: "highCutBypassed",
}

func (id ParamID) String() string {
	if id < 0 || id >= numParams {
		return fmt.Sprintf("ParamID(%d)", int(id))
	}
	return paramNames[id]
}

// ParseParamID resolves a parameter name as returned by ParamID.String.
func ParseParamID(name string) (ParamID, error) {
	for id, n := range paramNames {
		if n == name {
			return ParamID(id), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownParam, name)
}

// Listener is notified once per parameter edit.
type Listener func(id ParamID, value float64)

// ParameterSource is the source of truth for parameter values.
type ParameterSource interface {
	// Snapshot returns the current parameter values.
	Snapshot() Parameters
	// Subscribe registers fn and returns the function that removes it.
	Subscribe(fn Listener) (unsubscribe func())
	// SampleRate returns the host sample rate in Hz.
	SampleRate() float64
}

type subscription struct {
	id uint64
	fn Listener
}

// Store is an in-memory ParameterSource. It is safe for concurrent use;
// listeners are invoked on the editing goroutine, outside the store lock.
type Store struct {
	mu         sync.RWMutex
	params     Parameters
	sampleRate float64
	nextID     uint64
	subs       []subscription
}

// NewStore returns a store holding the sanitized p.
func NewStore(p Parameters, sampleRate float64) *Store {
	return &Store{params: p.Sanitize(), sampleRate: sampleRate}
}

// Snapshot returns the current parameters.
func (s *Store) Snapshot() Parameters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

// Value returns the current value of one parameter in the units Set takes.
func (s *Store) Value(id ParamID) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return paramValue(s.params, id)
}

// SampleRate returns the configured sample rate.
func (s *Store) SampleRate() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sampleRate
}

// SetSampleRate changes the sample rate. Listeners are not notified; hosts
// reconfigure the consumer explicitly (see Controller.Prepare).
func (s *Store) SetSampleRate(sampleRate float64) {
	s.mu.Lock()
	s.sampleRate = sampleRate
	s.mu.Unlock()
}

// Subscribe adds fn to the listener list.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

func (s *Store) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

// Listeners returns the number of registered listeners.
func (s *Store) Listeners() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// Set edits a single parameter and notifies every listener once. Boolean
// parameters treat any non-zero value as true; slopes are given in dB/oct.
func (s *Store) Set(id ParamID, value float64) error {
	s.mu.Lock()
	p := s.params
	switch id {
	case ParamPeakFreq:
		p.PeakFreq = value
	case ParamPeakGain:
		p.PeakGain = value
	case ParamPeakQuality:
		p.PeakQuality = value
	case ParamLowCutFreq:
		p.LowCutFreq = value
	case ParamHighCutFreq:
		p.HighCutFreq = value
	case ParamLowCutSlope:
		p.LowCutSlope = Slope(value)
	case ParamHighCutSlope:
		p.HighCutSlope = Slope(value)
	case ParamLowCutBypassed:
		p.LowCutBypassed = value != 0
	case ParamPeakBypassed:
		p.PeakBypassed = value != 0
	case ParamHighCutBypassed:
		p.HighCutBypassed = value != 0
	default:
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownParam, id)
	}
	s.params = p.Sanitize()
	subs := s.listeners()
	s.mu.Unlock()

	notify(subs, id, value)
	return nil
}

// SetParameters replaces all parameters and notifies listeners once per
// field that changed.
func (s *Store) SetParameters(p Parameters) {
	p = p.Sanitize()

	s.mu.Lock()
	old := s.params
	s.params = p
	subs := s.listeners()
	s.mu.Unlock()

	for id := range numParams {
		if v := paramValue(p, id); v != paramValue(old, id) {
			notify(subs, id, v)
		}
	}
}

func (s *Store) listeners() []Listener {
	fns := make([]Listener, len(s.subs))
	for i, sub := range s.subs {
		fns[i] = sub.fn
	}
	return fns
}

func notify(subs []Listener, id ParamID, value float64) {
	for _, fn := range subs {
		fn(id, value)
	}
}

func paramValue(p Parameters, id ParamID) float64 {
	switch id {
	case ParamPeakFreq:
		return p.PeakFreq
	case ParamPeakGain:
		return p.PeakGain
	case ParamPeakQuality:
		return p.PeakQuality
	case ParamLowCutFreq:
		return p.LowCutFreq
	case ParamHighCutFreq:
		return p.HighCutFreq
	case ParamLowCutSlope:
		return float64(p.LowCutSlope)
	case ParamHighCutSlope:
		return float64(p.HighCutSlope)
	case ParamLowCutBypassed:
		return boolValue(p.LowCutBypassed)
	case ParamPeakBypassed:
		return boolValue(p.PeakBypassed)
	case ParamHighCutBypassed:
		return boolValue(p.HighCutBypassed)
	default:
		return 0
	}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
