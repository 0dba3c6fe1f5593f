package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/cwbudde/algo-eq/internal/wavio"
)

func runProcess(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("process", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "preset file (yaml, toml or json)")
	bits := fs.Int("bits", 0, "output bit depth: 16, 24 or 32 (default: same as input)")
	block := fs.Int("block", wavio.DefaultBlockFrames, "frames per processing block")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: eqtool process [flags] in.wav out.wav\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return errUsage
	}

	r, err := wavio.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer r.Close()

	e, err := newEngine(*configPath, float64(r.SampleRate), r.Channels, stderr)
	if err != nil {
		return err
	}
	defer e.Close()

	bitDepth := r.BitDepth
	if *bits != 0 {
		bitDepth = *bits
	}

	w, err := wavio.Create(fs.Arg(1), r.SampleRate, r.Channels, bitDepth)
	if err != nil {
		return err
	}

	start := time.Now()
	frames, err := wavio.Process(r, w, e.ctrl.Processor(), *block)
	if err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	e.log.Debug().Int64("frames", frames).Dur("elapsed", time.Since(start)).Msg("eqtool: processed")

	_, err = fmt.Fprintf(stdout, "%s -> %s: %d frames, %d ch, %d Hz, %d-bit (%.2f s)\n",
		fs.Arg(0), fs.Arg(1), frames, r.Channels, r.SampleRate, bitDepth,
		float64(frames)/float64(r.SampleRate))
	return err
}
