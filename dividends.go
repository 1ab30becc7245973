package fundsim

// dividendState accumulates post-expense profit since the last distribution.
type dividendState struct {
	accumulated float64
}

// sweep adds the period's post-expense profit to the accumulator and, when a
// distribution is due at month k, returns the payout and resets the
// accumulator to zero. The final month of the horizon always forces a
// distribution so no distributable profit dangles at the end of the run.
func (s *dividendState) sweep(p DividendPolicy, k, horizon int, profit float64) float64 {
	s.accumulated += profit
	if !p.Enabled {
		return 0
	}
	due := k == horizon || (p.FrequencyMonths > 0 && k%p.FrequencyMonths == 0)
	if !due {
		return 0
	}
	payout := s.accumulated * p.Payout.Rate()
	if payout < 0 {
		payout = 0
	}
	s.accumulated = 0
	return payout
}
