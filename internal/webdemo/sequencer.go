package webdemo

import "math"

const (
	stepCount       = 16
	maxVoices       = 64
	minDecaySeconds = 0.01
	attackSeconds   = 0.005
)

// Waveform defines the oscillator shape of triggered voices.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveTriangle
	WaveSaw
	WaveSquare
)

// ParseWaveform maps a UI name to a Waveform. Unknown names select sine.
func ParseWaveform(name string) Waveform {
	switch name {
	case "triangle":
		return WaveTriangle
	case "saw":
		return WaveSaw
	case "square":
		return WaveSquare
	default:
		return WaveSine
	}
}

// StepConfig defines one sequencer step.
type StepConfig struct {
	Enabled bool
	FreqHz  float64
}

type voice struct {
	waveform    Waveform
	phase       float64
	phaseStep   float64
	ageSamples  int
	decaySample int
}

// sequencer is a 16-step tone generator feeding the equalizer with
// program material.
type sequencer struct {
	sampleRate float64
	tempoBPM   float64
	decaySec   float64
	waveform   Waveform
	running    bool

	steps       [stepCount]StepConfig
	currentStep int
	untilNext   float64
	voices      []voice
}

func newSequencer(sampleRate float64) sequencer {
	s := sequencer{
		sampleRate: sampleRate,
		tempoBPM:   110,
		decaySec:   0.2,
		voices:     make([]voice, 0, maxVoices),
	}
	for i := range s.steps {
		s.steps[i] = StepConfig{Enabled: i%4 == 0, FreqHz: defaultStepFreq(i)}
	}
	s.untilNext = s.stepDuration()
	return s
}

func (s *sequencer) setTransport(tempoBPM, decaySec float64) {
	if tempoBPM > 0 {
		s.tempoBPM = tempoBPM
	}
	s.decaySec = math.Max(decaySec, minDecaySeconds)
}

func (s *sequencer) setRunning(running bool) {
	if running && !s.running {
		s.currentStep = 0
		s.untilNext = 0
	}
	s.running = running
}

func (s *sequencer) setSteps(steps []StepConfig) {
	for i := 0; i < stepCount && i < len(steps); i++ {
		cfg := steps[i]
		if cfg.FreqHz <= 0 {
			cfg.FreqHz = 110
		}
		s.steps[i] = cfg
	}
}

// next advances the pattern by one sample and returns the mixed voices.
func (s *sequencer) next() float64 {
	if s.running {
		s.untilNext--
		for s.untilNext <= 0 {
			s.trigger()
			s.currentStep = (s.currentStep + 1) % stepCount
			s.untilNext += s.stepDuration()
		}
	}

	if len(s.voices) == 0 {
		return 0
	}

	attack := max(int(attackSeconds*s.sampleRate), 1)

	sum := 0.0
	write := 0
	for _, v := range s.voices {
		if v.ageSamples >= v.decaySample {
			continue
		}

		sum += envelope(v.ageSamples, attack, v.decaySample) * waveSample(v.waveform, v.phase)

		v.phase += v.phaseStep
		if v.phase > math.Pi {
			v.phase -= 2 * math.Pi
		}
		v.ageSamples++
		s.voices[write] = v
		write++
	}
	s.voices = s.voices[:write]

	return sum
}

func (s *sequencer) trigger() {
	step := s.steps[s.currentStep]
	if !step.Enabled || step.FreqHz <= 0 {
		return
	}

	if len(s.voices) >= maxVoices {
		copy(s.voices, s.voices[1:])
		s.voices = s.voices[:maxVoices-1]
	}

	s.voices = append(s.voices, voice{
		waveform:    s.waveform,
		phaseStep:   2 * math.Pi * step.FreqHz / s.sampleRate,
		decaySample: max(int(s.decaySec*s.sampleRate), 1),
	})
}

func (s *sequencer) stepDuration() float64 {
	return s.sampleRate * 60.0 / s.tempoBPM / 4.0
}

func envelope(age, attack, decay int) float64 {
	const start = 0.0001
	const peak = 0.22
	const end = 0.0001

	if age < attack {
		t := float64(age) / float64(attack)
		return start * math.Pow(peak/start, t)
	}
	if decay <= attack {
		return end
	}
	t := float64(age-attack) / float64(decay-attack)
	return peak * math.Pow(end/peak, t)
}

func defaultStepFreq(i int) float64 {
	defaults := [...]float64{130.81, 164.81, 196, 220, 261.63, 329.63, 392, 440}
	return defaults[i%len(defaults)]
}

func waveSample(w Waveform, phase float64) float64 {
	switch w {
	case WaveTriangle:
		return (2 / math.Pi) * math.Asin(math.Sin(phase))
	case WaveSaw:
		return phase / math.Pi
	case WaveSquare:
		if math.Sin(phase) >= 0 {
			return 1
		}
		return -1
	default:
		return math.Sin(phase)
	}
}
