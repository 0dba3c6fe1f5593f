package core

import "math"

const defaultEpsilon = 1e-12

// DefaultFloorDB is the level reported for zero or vanishing gains.
const DefaultFloorDB = -100.0

// Clamp limits value to the inclusive range [min, max].
// NaN is mapped to min.
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min || math.IsNaN(value) {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// IsFinite reports whether x is neither NaN nor ±Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// GainToDecibels converts a linear amplitude to dB, never reporting less
// than floorDB. Zero, negative and NaN gains map to floorDB.
func GainToDecibels(gain, floorDB float64) float64 {
	if !(gain > 0) {
		return floorDB
	}

	return math.Max(20*math.Log10(gain), floorDB)
}
