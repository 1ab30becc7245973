package fundsim

import "math"

// Metrics is the investor-return analytics bundle derived once from a
// completed period series.
type Metrics struct {
	TotalContributions float64
	TotalDistributions float64 // withdrawals + dividends paid out
	TerminalNAV        float64

	IRRMonthly float64
	IRRAnnual  float64
	IRRValid   bool // false when the solver did not converge

	MOIC float64 // (distributions + terminal NAV) / contributions
	DPI  float64 // distributions / contributions
	RVPI float64 // terminal NAV / contributions

	// PaybackMonth is the first month at which the investor's cumulative net
	// cash flow becomes non-negative, or -1 if it never does within the
	// horizon.
	PaybackMonth int
}

// investorFlows derives the investor's net cash-flow series from the period
// records: contributions out of the investor's pocket are negative,
// withdrawals and dividends positive, and the final period's closing NAV is
// added as a terminal liquidation value.
func investorFlows(records []PeriodRecord) []float64 {
	flows := make([]float64, len(records))
	for i, r := range records {
		flows[i] = -r.Contribution + r.Withdrawal + r.Dividend
	}
	if n := len(flows); n > 0 {
		flows[n-1] += records[n-1].ClosingNAV
	}
	return flows
}

// ComputeMetrics derives the analytics bundle from a completed series.
// Ratio metrics report zero, not an error, when total contributions is zero;
// a non-converging IRR reports IRRValid == false.
func ComputeMetrics(records []PeriodRecord) Metrics {
	var m Metrics
	if len(records) == 0 {
		m.PaybackMonth = -1
		return m
	}

	for _, r := range records {
		m.TotalContributions += r.Contribution
		m.TotalDistributions += r.Withdrawal + r.Dividend
	}
	m.TerminalNAV = records[len(records)-1].ClosingNAV

	if m.TotalContributions > 0 {
		m.MOIC = (m.TotalDistributions + m.TerminalNAV) / m.TotalContributions
		m.DPI = m.TotalDistributions / m.TotalContributions
		m.RVPI = m.TerminalNAV / m.TotalContributions
	}

	flows := investorFlows(records)

	if irr, ok := solveIRR(flows); ok {
		m.IRRMonthly = irr
		m.IRRAnnual = math.Pow(1+irr, 12) - 1
		m.IRRValid = true
	}

	m.PaybackMonth = -1
	var cumulative float64
	for k, cf := range flows {
		cumulative += cf
		if cumulative >= 0 {
			m.PaybackMonth = k
			break
		}
	}
	return m
}

// npv discounts the monthly flow series at rate r.
func npv(r float64, flows []float64) float64 {
	var v float64
	for k, cf := range flows {
		v += cf / math.Pow(1+r, float64(k))
	}
	return v
}

// solveIRR finds the monthly rate making the net present value of the flow
// series zero. It tries Newton-Raphson first and falls back to bisection when
// Newton diverges; it reports false for degenerate or sign-invariant series
// where no root exists or is found.
func solveIRR(flows []float64) (float64, bool) {
	// A root requires at least one sign change in the series.
	var hasPositive, hasNegative bool
	for _, cf := range flows {
		if cf > 0 {
			hasPositive = true
		}
		if cf < 0 {
			hasNegative = true
		}
	}
	if !hasPositive || !hasNegative {
		return 0, false
	}

	const tolerance = 1e-9
	const maxIterations = 100

	// Newton-Raphson with analytic derivative.
	r := 0.01
	for i := 0; i < maxIterations; i++ {
		var f, df float64
		for k, cf := range flows {
			n := float64(k)
			f += cf / math.Pow(1+r, n)
			df -= n * cf / math.Pow(1+r, n+1)
		}
		if math.Abs(f) < tolerance {
			return r, true
		}
		if df == 0 || math.IsNaN(df) {
			break
		}
		next := r - f/df
		if next <= -1 || math.IsNaN(next) || math.IsInf(next, 0) {
			break // left the domain, hand over to bisection
		}
		if math.Abs(next-r) < tolerance {
			return next, true
		}
		r = next
	}

	// Bisection over a wide bracket.
	lo, hi := -0.9999, 10.0
	flo, fhi := npv(lo, flows), npv(hi, flows)
	if flo*fhi > 0 {
		return 0, false
	}
	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		fmid := npv(mid, flows)
		if math.Abs(fmid) < tolerance || (hi-lo)/2 < tolerance {
			return mid, true
		}
		if flo*fmid < 0 {
			hi = mid
		} else {
			lo, flo = mid, fmid
		}
	}
	return 0, false
}
