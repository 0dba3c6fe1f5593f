// Package wavio streams PCM WAV files as normalized interleaved float32
// frames and runs them through an equalizer processor.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-eq/dsp/eq"
)

const (
	wavFormatPCM = 1

	// DefaultBlockFrames is the number of frames Process handles per read.
	DefaultBlockFrames = 4096
)

var (
	ErrInvalidWAV          = errors.New("wavio: invalid WAV file")
	ErrUnsupportedFormat   = errors.New("wavio: only integer PCM is supported")
	ErrUnsupportedBitDepth = errors.New("wavio: bit depth must be 16, 24 or 32")
	ErrInvalidChannels     = errors.New("wavio: channel count must be positive")
	ErrInvalidSampleRate   = errors.New("wavio: sample rate must be positive")
)

// fullScale returns the largest positive sample value for bitDepth.
func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16, 24, 32:
		return float64(int64(1)<<(bitDepth-1) - 1), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
}

// Reader decodes a WAV file block by block.
type Reader struct {
	file  *os.File
	dec   *wav.Decoder
	buf   *audio.IntBuffer
	scale float64

	SampleRate int
	Channels   int
	BitDepth   int
}

// Open validates path as an integer PCM WAV file.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wavio: open input: %w", err)
	}

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s", ErrInvalidWAV, path)
	}

	if dec.WavAudioFormat != wavFormatPCM {
		_ = f.Close()
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, dec.WavAudioFormat)
	}

	format := dec.Format()
	bitDepth := int(dec.BitDepth)

	full, err := fullScale(bitDepth)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return &Reader{
		file:       f,
		dec:        dec,
		buf:        &audio.IntBuffer{Format: format, SourceBitDepth: bitDepth},
		scale:      1 / full,
		SampleRate: format.SampleRate,
		Channels:   format.NumChannels,
		BitDepth:   bitDepth,
	}, nil
}

// ReadFrames fills dst with whole interleaved frames and returns how many
// frames were read. It returns io.EOF once the data chunk is exhausted.
func (r *Reader) ReadFrames(dst []float32) (int, error) {
	want := len(dst) / r.Channels * r.Channels
	if want == 0 {
		return 0, nil
	}

	if cap(r.buf.Data) < want {
		r.buf.Data = make([]int, want)
	}
	r.buf.Data = r.buf.Data[:want]

	n, err := r.dec.PCMBuffer(r.buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("wavio: decode: %w", err)
	}

	frames := n / r.Channels
	if frames == 0 {
		return 0, io.EOF
	}

	for i, v := range r.buf.Data[:frames*r.Channels] {
		dst[i] = float32(float64(v) * r.scale)
	}

	return frames, nil
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// Writer encodes interleaved float32 frames as integer PCM.
type Writer struct {
	file  *os.File
	enc   *wav.Encoder
	buf   *audio.IntBuffer
	scale float64

	channels int
}

// Create opens path for writing a WAV file with the given format.
func Create(path string, sampleRate, channels, bitDepth int) (*Writer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}

	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	full, err := fullScale(bitDepth)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("wavio: create output: %w", err)
	}

	return &Writer{
		file: f,
		enc:  wav.NewEncoder(f, sampleRate, bitDepth, channels, wavFormatPCM),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
		scale:    full,
		channels: channels,
	}, nil
}

// WriteFrames writes the whole frames in src. Samples are clipped to
// [-1, 1].
func (w *Writer) WriteFrames(src []float32) error {
	n := len(src) / w.channels * w.channels
	if n == 0 {
		return nil
	}

	if cap(w.buf.Data) < n {
		w.buf.Data = make([]int, n)
	}
	w.buf.Data = w.buf.Data[:n]

	for i, v := range src[:n] {
		x := math.Max(-1, math.Min(1, float64(v)))
		w.buf.Data[i] = int(math.Round(x * w.scale))
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("wavio: encode: %w", err)
	}

	return nil
}

// Close finalizes the WAV header and closes the file.
func (w *Writer) Close() error {
	if err := w.enc.Close(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("wavio: finalize: %w", err)
	}
	return w.file.Close()
}

// Process streams every frame of r through p into w and returns the number
// of frames written. Channels beyond p.Channels() pass through unchanged.
func Process(r *Reader, w *Writer, p *eq.Processor, blockFrames int) (int64, error) {
	if blockFrames <= 0 {
		blockFrames = DefaultBlockFrames
	}

	if w.channels != r.Channels {
		return 0, fmt.Errorf("%w: reader has %d, writer %d", ErrInvalidChannels, r.Channels, w.channels)
	}

	block := make([]float32, blockFrames*r.Channels)

	var total int64

	for {
		frames, err := r.ReadFrames(block)
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, err
		}

		chunk := block[:frames*r.Channels]
		p.ProcessInterleaved(chunk, r.Channels)

		if err := w.WriteFrames(chunk); err != nil {
			return total, err
		}
		total += int64(frames)
	}
}
