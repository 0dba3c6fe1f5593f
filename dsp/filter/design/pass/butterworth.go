package pass

import (
	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
	"github.com/cwbudde/algo-eq/dsp/filter/design"
)

// ButterworthLP designs a lowpass Butterworth cascade of total order
// `order` as order/2 second-order sections. Odd orders are rounded up to the
// next even order; non-positive orders return nil.
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	qs := ButterworthQ(evenOrder(order))
	if qs == nil {
		return nil
	}

	sections := make([]biquad.Coefficients, len(qs))
	for i, q := range qs {
		sections[i] = design.Lowpass(freq, q, sampleRate)
	}
	return sections
}

// ButterworthHP designs a highpass Butterworth cascade of total order
// `order` as order/2 second-order sections. Odd orders are rounded up to the
// next even order; non-positive orders return nil.
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	qs := ButterworthQ(evenOrder(order))
	if qs == nil {
		return nil
	}

	sections := make([]biquad.Coefficients, len(qs))
	for i, q := range qs {
		sections[i] = design.Highpass(freq, q, sampleRate)
	}
	return sections
}

func evenOrder(order int) int {
	if order > 0 && order%2 != 0 {
		return order + 1
	}
	return order
}
