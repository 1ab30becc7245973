package fundsim

import (
	"math"
	"testing"
)

func feePolicy() PerformanceFeePolicy {
	return PerformanceFeePolicy{
		Enabled:       true,
		Benchmark:     CDI,
		Spread:        0,
		Fee:           20,
		LockupMonths:  0,
		HighWaterMark: true,
	}
}

func TestFee_CrystallizesOnlyAtPeriodBoundaries(t *testing.T) {
	p := feePolicy()
	horizon := 30
	tests := []struct {
		k    int
		want bool
	}{
		{1, false},
		{11, false},
		{12, true},
		{13, false},
		{24, true},
		{30, true}, // final month always closes the period
	}
	for _, tc := range tests {
		if got := p.crystallizes(tc.k, horizon); got != tc.want {
			t.Errorf("crystallizes(%d) = %v, want %v", tc.k, got, tc.want)
		}
	}
}

func TestFee_LockupSuppressesEarlyMeasurement(t *testing.T) {
	p := feePolicy()
	p.LockupMonths = 24
	if p.crystallizes(12, 60) {
		t.Error("month 12 crystallized inside a 24-month lockup")
	}
	if !p.crystallizes(24, 60) {
		t.Error("month 24 must crystallize once the lockup has elapsed")
	}
}

func TestFee_AccruesOnExcessReturn(t *testing.T) {
	p := feePolicy()
	rc := RateCurve{CDI: 0} // zero hurdle: any gain is excess

	var s feeState
	s.seed(1000000)

	// no fee outside a boundary, state untouched
	if fee := s.accrue(p, rc, 5, 60, 1100000); fee != 0 {
		t.Fatalf("month 5 fee = %v, want 0", fee)
	}
	if s.periodStartNAV != 1000000 {
		t.Fatalf("period start NAV mutated outside crystallization: %v", s.periodStartNAV)
	}

	// +10% over a zero hurdle: fee = 1000000 * 10% * 20%
	fee := s.accrue(p, rc, 12, 60, 1100000)
	almostEqual(t, "fee", fee, 20000)
	almostEqual(t, "next period start", s.periodStartNAV, 1080000)
	almostEqual(t, "high-water mark", s.highWaterMark, 1080000)
}

func TestFee_HurdleCompoundsOverElapsedMonths(t *testing.T) {
	p := feePolicy()
	p.HighWaterMark = false
	rc := RateCurve{CDI: 10}

	var s feeState
	s.seed(1000000)

	hurdle := math.Pow(1+MonthlyRate(10), 12) - 1 // = 10% over 12 months

	// fund return exactly at the hurdle: no excess, no fee
	atHurdle := 1000000 * (1 + hurdle)
	almostEqual(t, "fee at hurdle", s.accrue(p, rc, 12, 60, atHurdle), 0)

	// 5% above the hurdle over the next 12 months
	base := s.periodStartNAV
	above := base * (1 + hurdle + 0.05)
	fee := s.accrue(p, rc, 24, 60, above)
	almostEqual(t, "fee above hurdle", fee, base*0.05*0.20)
}

func TestFee_HighWaterMarkGatesAndNeverDecreases(t *testing.T) {
	p := feePolicy()
	rc := RateCurve{CDI: 0}

	var s feeState
	s.seed(1000000)

	// climb: fee accrues, mark rises
	s.accrue(p, rc, 12, 60, 1200000)
	mark := s.highWaterMark
	if mark <= 1000000 {
		t.Fatalf("high-water mark did not rise: %v", mark)
	}

	// crash below the mark: next gain from the trough pays no fee while
	// under water, and the mark holds
	s.accrue(p, rc, 24, 60, 900000)
	if s.highWaterMark != mark {
		t.Errorf("high-water mark decreased: %v -> %v", mark, s.highWaterMark)
	}
	fee := s.accrue(p, rc, 36, 60, 1000000) // +11% but still below the mark
	if fee != 0 {
		t.Errorf("fee under water = %v, want 0", fee)
	}
	if s.highWaterMark != mark {
		t.Errorf("high-water mark decreased: %v -> %v", mark, s.highWaterMark)
	}
}

func TestFee_DisabledNeverAccrues(t *testing.T) {
	p := feePolicy()
	p.Enabled = false

	var s feeState
	s.seed(1000000)
	if fee := s.accrue(p, RateCurve{}, 12, 60, 2000000); fee != 0 {
		t.Errorf("disabled policy accrued %v", fee)
	}
}
