package core

import "math"

// MapToLog10 maps a normalised position in [0, 1] onto the logarithmic
// range [min, max]: min * (max/min)^norm. Both bounds must be positive.
func MapToLog10(norm, min, max float64) float64 {
	return min * math.Pow(max/min, norm)
}

// MapFromLog10 is the inverse of MapToLog10.
func MapFromLog10(value, min, max float64) float64 {
	return math.Log10(value/min) / math.Log10(max/min)
}

// Map linearly maps value from [srcMin, srcMax] onto [dstMin, dstMax].
// The value is not clamped; a degenerate source range yields dstMin.
func Map(value, srcMin, srcMax, dstMin, dstMax float64) float64 {
	if srcMax == srcMin {
		return dstMin
	}

	return dstMin + (dstMax-dstMin)*(value-srcMin)/(srcMax-srcMin)
}
