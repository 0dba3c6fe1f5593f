// Package playback renders equalized audio to the default output device
// through oto.
package playback

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-eq/dsp/eq"
)

const bytesPerSample = 4

var (
	ErrNilSource       = errors.New("playback: nil frame source")
	ErrNilProcessor    = errors.New("playback: nil processor")
	ErrInvalidChannels = errors.New("playback: channel count must be positive")
)

// FrameSource produces interleaved float32 frames. It returns io.EOF once
// exhausted.
type FrameSource interface {
	ReadFrames(dst []float32) (int, error)
}

// Stream is an io.Reader yielding float32 little-endian frames filtered by
// an eq.Processor. Read runs on the audio callback goroutine and takes no
// lock, so a Stream must have a single reader. Frames and Finished may be
// called from any goroutine.
type Stream struct {
	src      FrameSource
	proc     *eq.Processor
	channels int
	buf      []float32

	frames   atomic.Int64
	finished atomic.Bool
}

// NewStream wraps src. The processor must have been prepared for the
// stream's sample rate.
func NewStream(src FrameSource, proc *eq.Processor, channels int) (*Stream, error) {
	switch {
	case src == nil:
		return nil, ErrNilSource
	case proc == nil:
		return nil, ErrNilProcessor
	case channels <= 0:
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	return &Stream{src: src, proc: proc, channels: channels}, nil
}

// Read fills p with whole frames. It returns io.ErrShortBuffer when p cannot
// hold a single frame.
func (s *Stream) Read(p []byte) (int, error) {
	frameBytes := s.channels * bytesPerSample
	want := len(p) / frameBytes
	if want == 0 {
		return 0, io.ErrShortBuffer
	}

	if s.finished.Load() {
		return 0, io.EOF
	}

	need := want * s.channels
	if cap(s.buf) < need {
		s.buf = make([]float32, need)
	}
	s.buf = s.buf[:need]

	frames, err := s.src.ReadFrames(s.buf)
	if err != nil {
		s.finished.Store(true)
		if !errors.Is(err, io.EOF) {
			return 0, err
		}
	}

	if frames == 0 {
		s.finished.Store(true)
		return 0, io.EOF
	}

	out := s.buf[:frames*s.channels]
	s.proc.ProcessInterleaved(out, s.channels)

	for i, v := range out {
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(v))
	}
	s.frames.Add(int64(frames))

	return frames * frameBytes, nil
}

// Frames returns the number of frames delivered so far.
func (s *Stream) Frames() int64 { return s.frames.Load() }

// Finished reports whether the source is exhausted.
func (s *Stream) Finished() bool { return s.finished.Load() }

var (
	contextOnce sync.Once
	otoContext  *oto.Context
	contextErr  error
	contextOpts oto.NewContextOptions
)

func contextOptions(sampleRate, channels int, buffer time.Duration) oto.NewContextOptions {
	return oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   buffer,
	}
}

// sharedContext creates the process-wide oto context; oto allows only one.
func sharedContext(opts oto.NewContextOptions) (*oto.Context, error) {
	contextOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&opts)
		if err != nil {
			contextErr = fmt.Errorf("playback: open audio device: %w", err)
			return
		}
		<-ready
		otoContext = ctx
		contextOpts = opts
	})

	if contextErr != nil {
		return nil, contextErr
	}

	if contextOpts.SampleRate != opts.SampleRate || contextOpts.ChannelCount != opts.ChannelCount {
		return nil, fmt.Errorf("playback: device already open at %d Hz x %d (requested %d Hz x %d)",
			contextOpts.SampleRate, contextOpts.ChannelCount, opts.SampleRate, opts.ChannelCount)
	}

	return otoContext, nil
}

// Player plays a Stream on the default output device.
type Player struct {
	player *oto.Player
	stream *Stream
}

// NewPlayer opens the output device for the stream's format.
func NewPlayer(stream *Stream, sampleRate int, buffer time.Duration) (*Player, error) {
	ctx, err := sharedContext(contextOptions(sampleRate, stream.channels, buffer))
	if err != nil {
		return nil, err
	}

	return &Player{player: ctx.NewPlayer(stream), stream: stream}, nil
}

func (p *Player) Play()  { p.player.Play() }
func (p *Player) Pause() { p.player.Pause() }

// Done reports whether the source is exhausted and the device buffer has
// drained.
func (p *Player) Done() bool {
	return p.stream.Finished() && !p.player.IsPlaying()
}

// Close stops playback. The shared device stays open.
func (p *Player) Close() error {
	p.player.Pause()
	return p.player.Err()
}
