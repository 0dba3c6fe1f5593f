package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/eq"
)

func runCurve(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("curve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "preset file (yaml, toml or json)")
	width := fs.Int("width", 31, "number of curve points")
	sampleRate := fs.Float64("sr", 0, "sample rate in Hz (default from config)")
	plot := fs.Bool("plot", false, "draw an ASCII plot instead of a table")
	height := fs.Int("height", 17, "plot height in rows")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: eqtool curve [flags]\n\nFlags:\n")
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

	curve := e.ctrl.ResponseCurve(*width)

	if *plot {
		return writePlot(stdout, curve, max(*height, 3))
	}
	return writeTable(stdout, curve)
}

func writeTable(w io.Writer, curve []float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tw, "Freq [Hz]\tGain [dB]\t\n"); err != nil {
		return err
	}

	for i, db := range curve {
		if _, err := fmt.Fprintf(tw, "%.1f\t%+.2f\t\n", eq.CurveFrequency(i, len(curve)), db); err != nil {
			return err
		}
	}

	return tw.Flush()
}

// writePlot renders curve on a grid spanning the display range, top row
// +24 dB. Values outside the range are pinned to the edge rows.
func writePlot(w io.Writer, curve []float64, height int) error {
	grid := make([][]byte, height)
	for r := range grid {
		grid[r] = []byte(strings.Repeat(" ", len(curve)))
	}

	zero := plotRow(0, height)
	for c := range curve {
		grid[zero][c] = '-'
	}
	for c, db := range curve {
		grid[plotRow(db, height)][c] = '*'
	}

	for r, line := range grid {
		label := "      "
		switch r {
		case 0:
			label = fmt.Sprintf("%+4.0fdB", eq.MaxDisplayDB)
		case zero:
			label = "   0dB"
		case height - 1:
			label = fmt.Sprintf("%+4.0fdB", eq.MinDisplayDB)
		}
		if _, err := fmt.Fprintf(w, "%s |%s\n", label, line); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "       %.0f Hz%s%.0f Hz\n",
		eq.MinDisplayFrequency, strings.Repeat(" ", max(len(curve)-10, 1)), eq.MaxDisplayFrequency)
	return err
}

func plotRow(db float64, height int) int {
	y := core.Map(core.Clamp(db, eq.MinDisplayDB, eq.MaxDisplayDB), eq.MinDisplayDB, eq.MaxDisplayDB, float64(height-1), 0)
	return int(math.Round(y))
}
