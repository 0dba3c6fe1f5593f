package response

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrLengthMismatch = errors.New("response: curves differ in length")

// Deviation summarizes the absolute dB difference between two curves.
type Deviation struct {
	MaxAbsDB  float64
	MeanAbsDB float64
	RMSDB     float64
	// MaxIndex is the curve point where MaxAbsDB occurs.
	MaxIndex int
}

// Compare reports how far measured deviates from analytic. Both curves are
// in dB and must have the same length. Empty curves yield a zero Deviation.
func Compare(analytic, measured []float64) (Deviation, error) {
	if len(analytic) != len(measured) {
		return Deviation{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(analytic), len(measured))
	}
	if len(analytic) == 0 {
		return Deviation{}, nil
	}

	diff := make([]float64, len(analytic))
	floats.SubTo(diff, analytic, measured)
	for i, d := range diff {
		diff[i] = math.Abs(d)
	}

	idx := floats.MaxIdx(diff)
	return Deviation{
		MaxAbsDB:  diff[idx],
		MeanAbsDB: stat.Mean(diff, nil),
		RMSDB:     floats.Norm(diff, 2) / math.Sqrt(float64(len(diff))),
		MaxIndex:  idx,
	}, nil
}

func (d Deviation) String() string {
	return fmt.Sprintf("max %.3f dB (point %d), mean %.3f dB, rms %.3f dB", d.MaxAbsDB, d.MaxIndex, d.MeanAbsDB, d.RMSDB)
}
