// Command eqtool drives the three-band equalizer from the command line.
//
// Usage:
//
//	eqtool <command> [flags] [args]
//
// Commands:
//
//	curve    print the analytic response curve as a table or ASCII plot
//	process  filter a WAV file offline
//	measure  compare the analytic curve with an FFT-measured impulse response
//	play     play a WAV file through the equalizer, hot reloading the config
//
// Examples:
//
//	eqtool curve -config preset.yaml -plot
//	eqtool process -config preset.yaml in.wav out.wav
//	eqtool measure -size 65536
//	eqtool play -config preset.yaml song.wav
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var errUsage = errors.New("invalid usage")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return errUsage
	}

	switch args[0] {
	case "curve":
		return runCurve(args[1:], stdout, stderr)
	case "process":
		return runProcess(args[1:], stdout, stderr)
	case "measure":
		return runMeasure(args[1:], stdout, stderr)
	case "play":
		return runPlay(args[1:], stdout, stderr)
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return nil
	default:
		usage(stderr)
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func usage(w io.Writer) {
	_, _ = fmt.Fprintf(w, "Usage: eqtool <command> [flags] [args]\n\n")
	_, _ = fmt.Fprintf(w, "Commands:\n")
	_, _ = fmt.Fprintf(w, "  curve    print the analytic response curve\n")
	_, _ = fmt.Fprintf(w, "  process  filter a WAV file offline\n")
	_, _ = fmt.Fprintf(w, "  measure  compare analytic and FFT-measured response\n")
	_, _ = fmt.Fprintf(w, "  play     play a WAV file with hot-reloaded settings\n")
	_, _ = fmt.Fprintf(w, "\nRun 'eqtool <command> -h' for command flags.\n")
}
