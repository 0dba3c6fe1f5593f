package pass

import "math"

// MaxTableOrder is the highest total order covered by [ButterworthQ]'s
// published table.
const MaxTableOrder = 8

// butterworthQTable lists the section Q values of even-order Butterworth
// filters, indexed by order/2-1. Section k realizes the conjugate pole pair
// at angle θ_k = (2k+1)π/(2N) with Q_k = 1/(2cos θ_k), so the values
// ascend within each row.
var butterworthQTable = [MaxTableOrder / 2][]float64{
	{0.7071067811865476},
	{0.5411961001461970, 1.3065629648763766},
	{0.5176380902050415, 0.7071067811865476, 1.9318516525781366},
	{0.5097955791041592, 0.6013448869350453, 0.8999762231364156, 2.5629154477415055},
}

// ButterworthQ returns the order/2 section Q values of an even-order
// Butterworth filter. Orders up to [MaxTableOrder] come from the published
// table; higher even orders are computed from the pole angles. Odd or
// non-positive orders return nil.
func ButterworthQ(order int) []float64 {
	if order <= 0 || order%2 != 0 {
		return nil
	}

	q := make([]float64, order/2)
	if order <= MaxTableOrder {
		copy(q, butterworthQTable[order/2-1])
		return q
	}
	for k := range q {
		q[k] = butterworthQ(order, k)
	}
	return q
}

// butterworthQ returns the quality factor of section k of an order-N
// Butterworth filter.
func butterworthQ(order, k int) float64 {
	theta := math.Pi * float64(2*k+1) / (2 * float64(order))

	c := math.Cos(theta)
	if c <= 0 {
		return 1 / math.Sqrt2
	}

	return 1 / (2 * c)
}
