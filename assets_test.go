package fundsim

import (
	"math"
	"testing"
)

func almostEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	tolerance := 1e-6 * math.Max(1, math.Abs(want))
	if math.Abs(got-want) > tolerance {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestGenericAsset_ZeroRatesEarnNothing(t *testing.T) {
	a := NewGenericAsset("idle", 0, 100000, CDI, 0)
	rc := RateCurve{CDI: 0, IPCA: 0}

	var st positionState
	a.open(&st, rc)
	for k := 1; k <= 24; k++ {
		s := a.advance(&st, k, rc, false)
		if s.income != 0 {
			t.Fatalf("month %d: income = %v, want 0", k, s.income)
		}
		if st.value != 100000 {
			t.Fatalf("month %d: value = %v, want constant 100000", k, st.value)
		}
	}
}

func TestGenericAsset_CompoundsBenchmarkAndSpread(t *testing.T) {
	a := NewGenericAsset("cdi-plus", 0, 500000, CDI, 2)
	rc := RateCurve{CDI: 10}

	var st positionState
	a.open(&st, rc)
	rate := compose(MonthlyRate(10), MonthlyRate(2))

	s := a.advance(&st, 1, rc, false)
	almostEqual(t, "month 1 income", s.income, 500000*rate)
	almostEqual(t, "month 1 value", st.value, 500000*(1+rate))

	s = a.advance(&st, 2, rc, false)
	almostEqual(t, "month 2 income", s.income, 500000*(1+rate)*rate)
	if s.cash != 0 {
		t.Errorf("generic income must capitalize, not collect cash, got %v", s.cash)
	}
}

func TestCreditAsset_BulletSchedule(t *testing.T) {
	a := NewCreditAsset("cri", 0, 1000000, 12, 0, Bullet)
	a.RateKind = FixedRate
	a.Rate = 12 // fixed 12% a.a.
	rc := RateCurve{}

	var st positionState
	a.open(&st, rc)
	r := MonthlyRate(12)

	for k := 1; k <= 11; k++ {
		s := a.advance(&st, k, rc, false)
		almostEqual(t, "interest", s.income, 1000000*r)
		almostEqual(t, "cash collected", s.cash, 1000000*r)
		if st.value != 1000000 {
			t.Fatalf("month %d: balance = %v, want 1000000 until maturity", k, st.value)
		}
	}

	// maturity month: full principal repaid in a single installment
	s := a.advance(&st, 12, rc, false)
	almostEqual(t, "maturity cash", s.cash, 1000000*r+1000000)
	almostEqual(t, "maturity income", s.income, 1000000*r)
	if st.value != 0 {
		t.Errorf("post-maturity balance = %v, want 0", st.value)
	}

	// after maturity the position is inert
	s = a.advance(&st, 13, rc, false)
	if s.income != 0 || s.cash != 0 {
		t.Errorf("dead position produced income %v cash %v", s.income, s.cash)
	}
}

func TestCreditAsset_SACWithGrace(t *testing.T) {
	a := NewCreditAsset("cci", 0, 120000, 12, 0, SAC)
	a.GraceMonths = 2
	a.RateKind = FixedRate
	a.Rate = 0
	rc := RateCurve{}

	var st positionState
	a.open(&st, rc)

	// grace months: interest only (zero here), no amortization
	for k := 1; k <= 2; k++ {
		a.advance(&st, k, rc, false)
		if st.value != 120000 {
			t.Fatalf("grace month %d: balance = %v, want 120000", k, st.value)
		}
	}
	// then 10 equal principal payments of 12000
	for k := 3; k <= 12; k++ {
		s := a.advance(&st, k, rc, false)
		almostEqual(t, "amortization cash", s.cash, 12000)
	}
	almostEqual(t, "final balance", st.value, 0)
}

func TestCreditAsset_PriceInstallment(t *testing.T) {
	a := NewCreditAsset("price", 0, 100000, 10, 0, Price)
	a.RateKind = FixedRate
	a.Rate = 12.682503013196972 // monthly rate exactly 1%
	rc := RateCurve{}

	var st positionState
	a.open(&st, rc)

	// standard annuity: 100000 * 0.01 * 1.01^10 / (1.01^10 - 1)
	f := math.Pow(1.01, 10)
	wantInstallment := 100000 * 0.01 * f / (f - 1)
	almostEqual(t, "installment", st.installment, wantInstallment)

	// every month collects exactly the installment, and the balance dies at tenor
	for k := 1; k <= 10; k++ {
		s := a.advance(&st, k, rc, false)
		almostEqual(t, "installment cash", s.cash, wantInstallment)
	}
	almostEqual(t, "final balance", st.value, 0)
}

func TestCreditAsset_SubordinateAbsorbsLoss(t *testing.T) {
	a := NewCreditAsset("sub", 0, 1000000, 24, 0, Bullet)
	a.RateKind = FixedRate
	a.Rate = 0
	a.Tranche = Subordinate
	a.AnnualLoss = 6
	rc := RateCurve{}

	var st positionState
	a.open(&st, rc)

	lossRate := MonthlyRate(6)
	s := a.advance(&st, 1, rc, false)
	almostEqual(t, "loss", s.loss, 1000000*lossRate)
	if !s.absorbed {
		t.Error("subordinate loss must be flagged as absorbed")
	}
	almostEqual(t, "balance after absorption", st.value, 1000000*(1-lossRate))
}

func TestCreditAsset_SeniorLossKeepsBalance(t *testing.T) {
	a := NewCreditAsset("sen", 0, 1000000, 24, 0, Bullet)
	a.RateKind = FixedRate
	a.Rate = 0
	a.AnnualLoss = 6
	rc := RateCurve{}

	var st positionState
	a.open(&st, rc)

	s := a.advance(&st, 1, rc, false)
	almostEqual(t, "loss", s.loss, 1000000*MonthlyRate(6))
	if s.absorbed {
		t.Error("senior loss must not be absorbed by the balance")
	}
	if st.value != 1000000 {
		t.Errorf("senior balance = %v, want untouched 1000000", st.value)
	}
}

func TestCreditAsset_PercentOfBenchmark(t *testing.T) {
	a := NewCreditAsset("lci", 0, 100, 12, 110, Bullet)
	a.RateKind = PercentOfBenchmark
	rc := RateCurve{CDI: 10}

	want := MonthlyRate(10) * 1.10
	almostEqual(t, "110% of CDI monthly", a.monthlyRate(rc), want)
}

func TestPropertyAsset_SteadyRent(t *testing.T) {
	a := NewPropertyAsset("mall", 0, 600000, 5000, 8)
	rc := RateCurve{} // zero IPCA: no escalation

	var st positionState
	a.open(&st, rc)

	for k := 1; k <= 23; k++ {
		s := a.advance(&st, k, rc, false)
		almostEqual(t, "monthly income", s.income, 5000)
		if s.cash != 0 {
			t.Fatalf("month %d: rent must capitalize until exit, got cash %v", k, s.cash)
		}
	}
	almostEqual(t, "carrying value", st.value, 600000+23*5000)

	// terminal month: sale at annualized NOI over the cap rate, position zeroed
	s := a.advance(&st, 24, rc, true)
	sale := 5000 * 12 / 0.08
	almostEqual(t, "terminal income", s.income, 5000+sale)
	almostEqual(t, "liquidation proceeds", s.cash, 600000+24*5000+sale)
	if st.value != 0 {
		t.Errorf("post-sale value = %v, want 0", st.value)
	}
}

func TestPropertyAsset_EscalationAnniversaries(t *testing.T) {
	a := NewPropertyAsset("tower", 3, 100000, 1000, 8)
	rc := RateCurve{IPCA: 6}

	var st positionState
	a.open(&st, rc)

	factor := 1 + MonthlyRate(6)*12 // linear reindexation, not true compounding

	for k := 4; k <= 14; k++ {
		a.advance(&st, k, rc, false)
	}
	if st.rent != 1000 {
		t.Fatalf("rent escalated before first anniversary: %v", st.rent)
	}
	a.advance(&st, 15, rc, false) // purchase month 3 + 12
	almostEqual(t, "rent after first anniversary", st.rent, 1000*factor)

	for k := 16; k <= 27; k++ {
		a.advance(&st, k, rc, false)
	}
	almostEqual(t, "rent after second anniversary", st.rent, 1000*factor*factor)
}

func TestPropertyAsset_ZeroCapRate(t *testing.T) {
	a := NewPropertyAsset("odd", 0, 100000, 1000, 0)
	rc := RateCurve{}

	var st positionState
	a.open(&st, rc)
	s := a.advance(&st, 1, rc, true)
	// a zero exit cap rate values the sale at zero, not a division error
	almostEqual(t, "income without sale", s.income, 1000)
	almostEqual(t, "proceeds without sale", s.cash, 101000)
}

func TestAnnuityPayment(t *testing.T) {
	tests := []struct {
		p    float64
		r    float64
		n    int
		want float64
	}{
		{1200, 0, 12, 100},   // zero rate: even split
		{1000, 0.01, 0, 1000}, // degenerate term
	}
	for _, tc := range tests {
		if got := annuityPayment(tc.p, tc.r, tc.n); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("annuityPayment(%v, %v, %d) = %v, want %v", tc.p, tc.r, tc.n, got, tc.want)
		}
	}
}
