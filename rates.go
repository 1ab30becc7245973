package fundsim

import "math"

// MonthlyRate converts an annual nominal rate (in percent, e.g. 10.0 for 10%)
// to the effective monthly compounding rate. Callers must ensure the annual
// rate is above -100%; out-of-range inputs are not guarded and simply produce
// a NaN.
func MonthlyRate(annual Percent) float64 {
	return math.Pow(1+annual.Rate(), 1.0/12) - 1
}

// compose combines two period rates multiplicatively: (1+a)*(1+b) - 1.
// Used for benchmark-plus-spread remuneration.
func compose(a, b float64) float64 {
	return (1+a)*(1+b) - 1
}

// compound grows a period rate over n periods: (1+r)^n - 1.
func compound(r float64, n int) float64 {
	return math.Pow(1+r, float64(n)) - 1
}
