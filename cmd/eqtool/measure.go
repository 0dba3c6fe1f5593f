package main

import (
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/measure/response"
)

func runMeasure(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("measure", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "preset file (yaml, toml or json)")
	size := fs.Int("size", 1<<16, "impulse response length (power of two)")
	width := fs.Int("width", 200, "number of curve points compared")
	sampleRate := fs.Float64("sr", 0, "sample rate in Hz (default from config)")
	verbose := fs.Bool("v", false, "print every compared point")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: eqtool measure [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *width <= 0 {
		return fmt.Errorf("%w: width must be positive", errUsage)
	}

	e, err := newEngine(*configPath, *sampleRate, 1, stderr)
	if err != nil {
		return err
	}
	defer e.Close()

	sr := e.ctrl.SampleRate()
	resp, err := response.Measure(e.ctrl.Processor().Chain(0), sr, *size)
	if err != nil {
		return err
	}

	analytic := e.ctrl.ResponseCurve(*width)
	freqs := make([]float64, *width)
	for i := range freqs {
		freqs[i] = eq.CurveFrequency(i, *width)
	}
	measured := resp.CurveDB(freqs)

	dev, err := response.Compare(analytic, measured)
	if err != nil {
		return err
	}

	if *verbose {
		tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
		_, _ = fmt.Fprintf(tw, "Freq [Hz]\tAnalytic [dB]\tMeasured [dB]\tDiff [dB]\t\n")
		for i, f := range freqs {
			_, _ = fmt.Fprintf(tw, "%.1f\t%+.3f\t%+.3f\t%+.4f\t\n", f, analytic[i], measured[i], measured[i]-analytic[i])
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintf(stdout, "%d-point IR at %.0f Hz, bin width %.3f Hz\ndeviation: %s (worst at %.1f Hz)\n",
		*size, sr, resp.BinWidth(), dev, freqs[dev.MaxIndex])
	return err
}
