package eq

import (
	"errors"
	"fmt"
)

// ErrInvalidChannels is returned when a channel count is not positive.
var ErrInvalidChannels = errors.New("eq: channel count must be positive")

// Processor runs one MonoChain per channel. All chains receive the same
// coefficients; each keeps its own delay lines.
type Processor struct {
	chains []MonoChain
}

// NewProcessor returns a processor with channels transparent chains.
func NewProcessor(channels int) (*Processor, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
	return &Processor{chains: make([]MonoChain, channels)}, nil
}

// Channels returns the number of channels.
func (p *Processor) Channels() int { return len(p.chains) }

// Chain returns the chain of channel ch, or nil when ch is out of range.
func (p *Processor) Chain(ch int) *MonoChain {
	if ch < 0 || ch >= len(p.chains) {
		return nil
	}
	return &p.chains[ch]
}

// Apply publishes cc into every channel.
func (p *Processor) Apply(cc *ChainCoefficients) {
	for i := range p.chains {
		p.chains[i].Apply(cc)
	}
}

// ProcessSample filters one sample of channel ch. Unknown channels pass
// through unchanged.
func (p *Processor) ProcessSample(ch int, x float64) float64 {
	if ch < 0 || ch >= len(p.chains) {
		return x
	}
	return p.chains[ch].ProcessSample(x)
}

// ProcessBlock filters buf of channel ch in-place.
func (p *Processor) ProcessBlock(ch int, buf []float64) {
	if ch < 0 || ch >= len(p.chains) {
		return
	}
	p.chains[ch].ProcessBlock(buf)
}

// ProcessInterleaved filters interleaved frames of the given channel count
// in-place. Channels beyond Channels() pass through unchanged; a trailing
// partial frame is left untouched.
func (p *Processor) ProcessInterleaved(buf []float32, channels int) {
	if channels < 1 {
		return
	}
	n := min(channels, len(p.chains))
	frames := len(buf) / channels
	for f := range frames {
		frame := buf[f*channels : f*channels+n]
		for ch := range frame {
			frame[ch] = float32(p.chains[ch].ProcessSample(float64(frame[ch])))
		}
	}
}

// Reset clears every delay line. Audio-rate context only.
func (p *Processor) Reset() {
	for i := range p.chains {
		p.chains[i].Reset()
	}
}
