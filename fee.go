package fundsim

// feeState carries the performance-fee model's path-dependent state: the NAV
// at the start of the current measurement period, the month that period
// started, and the high-water mark when enabled.
type feeState struct {
	periodStartNAV   float64
	periodStartMonth int
	highWaterMark    float64
}

// seed initializes the fee state after the month-0 record.
func (s *feeState) seed(nav float64) {
	s.periodStartNAV = nav
	s.periodStartMonth = 0
	s.highWaterMark = nav
}

// crystallizes reports whether month k closes a fee-measurement period:
// every 12th month, or the final month of the horizon, once the lock-up has
// elapsed.
func (p PerformanceFeePolicy) crystallizes(k, horizon int) bool {
	if !p.Enabled || k < p.LockupMonths {
		return false
	}
	return k%12 == 0 || k == horizon
}

// accrue computes the fee crystallized at month k against the pre-fee NAV,
// and rolls the measurement period forward. Outside crystallization months it
// returns zero and leaves the state untouched.
//
// The hurdle is the benchmark's monthly rate composed with the spread's,
// compounded over exactly the months elapsed since the last crystallization.
func (s *feeState) accrue(p PerformanceFeePolicy, rc RateCurve, k, horizon int, preFeeNAV float64) float64 {
	if !p.crystallizes(k, horizon) {
		return 0
	}

	elapsed := k - s.periodStartMonth
	var fee float64
	if elapsed > 0 && s.periodStartNAV > 0 {
		fundReturn := preFeeNAV/s.periodStartNAV - 1
		hurdle := compound(compose(rc.Monthly(p.Benchmark), MonthlyRate(p.Spread)), elapsed)
		excess := fundReturn - hurdle
		if excess > 0 && (!p.HighWaterMark || preFeeNAV > s.highWaterMark) {
			fee = s.periodStartNAV * excess * p.Fee.Rate()
		}
	}

	s.periodStartNAV = preFeeNAV - fee
	s.periodStartMonth = k
	if p.HighWaterMark && s.periodStartNAV > s.highWaterMark {
		s.highWaterMark = s.periodStartNAV
	}
	return fee
}
