package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/cwbudde/algo-eq/internal/playback"
	"github.com/cwbudde/algo-eq/internal/wavio"
)

const pollInterval = 50 * time.Millisecond

func runPlay(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "preset file, reloaded on every save")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: eqtool play [flags] in.wav\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
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

	stream, err := playback.NewStream(r, e.ctrl.Processor(), r.Channels)
	if err != nil {
		return err
	}

	buffer := time.Duration(e.cfg.Audio.BufferMS) * time.Millisecond
	player, err := playback.NewPlayer(stream, r.SampleRate, buffer)
	if err != nil {
		return err
	}
	defer player.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	e.watch()

	runErr := make(chan error, 1)
	go func() { runErr <- e.ctrl.Run(ctx) }()

	_, _ = fmt.Fprintf(stdout, "playing %s (%d Hz, %d ch), Ctrl+C to stop\n", fs.Arg(0), r.SampleRate, r.Channels)
	player.Play()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for !player.Done() {
		select {
		case <-ctx.Done():
			stop()
			<-runErr
			_, _ = fmt.Fprintf(stdout, "stopped after %d frames\n", stream.Frames())
			return nil
		case <-ticker.C:
		}
	}

	stop()
	if err := <-runErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	_, err = fmt.Fprintf(stdout, "done, %d frames, %d rebuilds\n", stream.Frames(), e.ctrl.Rebuilds())
	return err
}
