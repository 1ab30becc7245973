package fundsim

import (
	"errors"
	"fmt"
	"math"
)

// AssetType is a typed string identifying an asset variant.
type AssetType string

// Asset variants supported by the engine.
const (
	AssetGeneric  AssetType = "generic"
	AssetCredit   AssetType = "credit"
	AssetProperty AssetType = "property"
)

// AmortizationMethod selects how an amortizing credit repays principal.
type AmortizationMethod string

const (
	// SAC repays a constant principal amount each month (Sistema de
	// Amortização Constante).
	SAC AmortizationMethod = "sac"
	// Price repays a fixed installment computed by the standard annuity
	// formula (Tabela Price).
	Price AmortizationMethod = "price"
	// Bullet repays the full principal in a single installment at maturity.
	Bullet AmortizationMethod = "bullet"
)

// RateKind selects how a credit instrument's remuneration is derived.
type RateKind string

const (
	// FixedRate remunerates at a fixed annual rate, ignoring benchmarks.
	FixedRate RateKind = "fixed"
	// SpreadOverBenchmark composes an annual spread over the benchmark
	// (e.g. IPCA + 7%).
	SpreadOverBenchmark RateKind = "spread"
	// PercentOfBenchmark scales the benchmark's monthly rate by a
	// percentage (e.g. 110% of CDI).
	PercentOfBenchmark RateKind = "percent"
)

// Tranche is the seniority class of a credit instrument, determining how
// expected losses are absorbed.
type Tranche string

const (
	Senior      Tranche = "senior"
	Subordinate Tranche = "subordinate"
)

// AssetSpec defines the common interface of all asset variants held by the
// fund. Specs are immutable; the engine keeps each position's mutable state
// in its own array, indexed by the asset's position in FundConfig.Assets.
type AssetSpec interface {
	What() AssetType // What returns the asset variant (e.g. "generic", "credit").
	Name() string    // Name returns the position's display label.
	InvestedAt() int // InvestedAt returns the month offset of the cash outlay.
	Outlay() float64 // Outlay returns the cash invested at that month.
	Validate(months int) error

	// open initializes the position state at the investment month.
	open(st *positionState, rc RateCurve)
	// advance ages the position by one month. It is only invoked for months
	// strictly after the investment month, on active positions, and mutates
	// st in place. final reports whether k is the last month of the horizon.
	advance(st *positionState, k int, rc RateCurve, final bool) step
}

// positionState is the engine-owned mutable state of one position.
type positionState struct {
	active      bool
	value       float64 // carrying value, or outstanding balance for credit
	installment float64 // fixed installment, computed once at origination (Price credit)
	rent        float64 // current monthly rent, mutated by escalation (property)
}

// step is the outcome of advancing one position for one month.
type step struct {
	income   float64 // period income attributed to the asset
	cash     float64 // portion of the income collected as cash by the fund
	loss     float64 // expected credit loss provisioned this month
	absorbed bool    // loss absorbed by the position's own balance (subordinate)
}

// baseAsset carries the fields common to every asset variant.
type baseAsset struct {
	Type  AssetType `json:"type"`
	Label string    `json:"name"`
	Month int       `json:"month"` // month offset of the investment outlay
}

func (a baseAsset) What() AssetType { return a.Type }
func (a baseAsset) Name() string    { return a.Label }
func (a baseAsset) InvestedAt() int { return a.Month }

func (a baseAsset) validate(months int) error {
	if a.Month < 0 || a.Month > months {
		return fmt.Errorf("investment month %d outside horizon [0..%d]", a.Month, months)
	}
	return nil
}

// GenericAsset is a yield-bearing position remunerated at a benchmark
// composed with an annual spread. Income is capitalized into the position's
// carrying value every month after the investment month.
type GenericAsset struct {
	baseAsset
	Principal float64   `json:"principal"`
	Benchmark Benchmark `json:"benchmark"`
	Spread    Percent   `json:"spread"`
}

// NewGenericAsset creates a generic yield-bearing asset invested at the given
// month offset.
func NewGenericAsset(name string, monthOffset int, principal float64, benchmark Benchmark, spread Percent) GenericAsset {
	return GenericAsset{
		baseAsset: baseAsset{Type: AssetGeneric, Label: name, Month: monthOffset},
		Principal: principal,
		Benchmark: benchmark,
		Spread:    spread,
	}
}

func (a GenericAsset) Outlay() float64 { return a.Principal }

func (a GenericAsset) Validate(months int) error {
	if err := a.validate(months); err != nil {
		return err
	}
	if a.Principal < 0 {
		return fmt.Errorf("negative principal %v", a.Principal)
	}
	return nil
}

func (a GenericAsset) open(st *positionState, _ RateCurve) {
	st.active = true
	st.value = a.Principal
}

func (a GenericAsset) advance(st *positionState, _ int, rc RateCurve, _ bool) step {
	rate := compose(rc.Monthly(a.Benchmark), MonthlyRate(a.Spread))
	income := st.value * rate
	st.value += income
	return step{income: income}
}

// CreditAsset is an amortizing credit instrument (CRI/CCI-like): interest and
// principal repayments are collected as cash, and an expected-loss rate is
// provisioned monthly against the outstanding balance.
type CreditAsset struct {
	baseAsset
	Principal    float64            `json:"principal"`
	TenorMonths  int                `json:"tenorMonths"`
	GraceMonths  int                `json:"graceMonths"` // months before amortization starts
	Benchmark    Benchmark          `json:"benchmark"`
	RateKind     RateKind           `json:"rateKind"`
	Rate         Percent            `json:"rate"` // fixed annual, annual spread, or % of benchmark, per RateKind
	Amortization AmortizationMethod `json:"amortization"`
	Tranche      Tranche            `json:"tranche"`
	AnnualLoss   Percent            `json:"annualLoss"` // expected annual loss rate
}

// NewCreditAsset creates a senior spread-over-CDI credit with the given
// schedule; callers adjust the remaining fields for other flavors.
func NewCreditAsset(name string, monthOffset int, principal float64, tenor int, rate Percent, method AmortizationMethod) CreditAsset {
	return CreditAsset{
		baseAsset:    baseAsset{Type: AssetCredit, Label: name, Month: monthOffset},
		Principal:    principal,
		TenorMonths:  tenor,
		Benchmark:    CDI,
		RateKind:     SpreadOverBenchmark,
		Rate:         rate,
		Amortization: method,
		Tranche:      Senior,
	}
}

func (a CreditAsset) Outlay() float64 { return a.Principal }

func (a CreditAsset) Validate(months int) error {
	if err := a.validate(months); err != nil {
		return err
	}
	var errs error
	if a.Principal < 0 {
		errs = errors.Join(errs, fmt.Errorf("negative principal %v", a.Principal))
	}
	if a.TenorMonths < 1 {
		errs = errors.Join(errs, fmt.Errorf("tenor must be at least 1 month, got %d", a.TenorMonths))
	}
	if a.GraceMonths < 0 || a.GraceMonths >= a.TenorMonths {
		errs = errors.Join(errs, fmt.Errorf("grace period %d must be within [0..%d)", a.GraceMonths, a.TenorMonths))
	}
	switch a.RateKind {
	case FixedRate, SpreadOverBenchmark, PercentOfBenchmark:
	default:
		errs = errors.Join(errs, fmt.Errorf("unknown rate kind %q", a.RateKind))
	}
	switch a.Amortization {
	case SAC, Price, Bullet:
	default:
		errs = errors.Join(errs, fmt.Errorf("unknown amortization method %q", a.Amortization))
	}
	switch a.Tranche {
	case Senior, Subordinate:
	default:
		errs = errors.Join(errs, fmt.Errorf("unknown tranche %q", a.Tranche))
	}
	return errs
}

// monthlyRate derives the period remuneration rate from the configured
// rate rule.
func (a CreditAsset) monthlyRate(rc RateCurve) float64 {
	switch a.RateKind {
	case FixedRate:
		return MonthlyRate(a.Rate)
	case PercentOfBenchmark:
		// Brazilian convention: the percentage scales the benchmark's
		// monthly rate, not the annual one.
		return rc.Monthly(a.Benchmark) * a.Rate.Rate()
	default:
		return compose(rc.Monthly(a.Benchmark), MonthlyRate(a.Rate))
	}
}

func (a CreditAsset) open(st *positionState, rc RateCurve) {
	st.active = true
	st.value = a.Principal
	if a.Amortization == Price {
		st.installment = annuityPayment(a.Principal, a.monthlyRate(rc), a.TenorMonths-a.GraceMonths)
	}
}

func (a CreditAsset) advance(st *positionState, k int, rc RateCurve, _ bool) step {
	balance := st.value
	if balance <= 0 {
		return step{}
	}

	loss := balance * MonthlyRate(a.AnnualLoss)
	interest := balance * a.monthlyRate(rc)

	var amort float64
	switch a.Amortization {
	case Bullet:
		if k == a.Month+a.TenorMonths {
			amort = balance
		}
	case SAC:
		if k > a.Month+a.GraceMonths {
			amort = a.Principal / float64(a.TenorMonths-a.GraceMonths)
		}
	case Price:
		if k > a.Month+a.GraceMonths {
			amort = st.installment - interest
		}
	}
	if amort < 0 {
		amort = 0
	}
	if amort > balance {
		amort = balance
	}
	balance -= amort

	absorbed := a.Tranche == Subordinate
	if absorbed {
		// The subordinate tranche absorbs its own expected loss in its
		// balance; it never drives the balance negative.
		if loss > balance {
			loss = balance
		}
		balance -= loss
	}
	st.value = balance

	// Interest is the position's economic income; the amortization collected
	// is a principal return that moves from the balance to cash without
	// changing NAV.
	return step{income: interest, cash: interest + amort, loss: loss, absorbed: absorbed}
}

// annuityPayment returns the fixed installment repaying principal p over n
// periods at period rate r (Tabela Price). A zero rate degenerates to an even
// principal split.
func annuityPayment(p, r float64, n int) float64 {
	if n <= 0 {
		return p
	}
	if r == 0 {
		return p / float64(n)
	}
	f := math.Pow(1+r, float64(n))
	return p * r * f / (f - 1)
}

// PropertyAsset is an income-producing property. Rent is escalated yearly by
// the configured index, net income is capitalized into the carrying value
// (cost basis, not mark-to-market), and a terminal sale at the exit cap rate
// is synthesized at the last month of the horizon.
type PropertyAsset struct {
	baseAsset
	Price       float64   `json:"price"`
	Rent        float64   `json:"rent"` // initial monthly gross rent
	Vacancy     Percent   `json:"vacancy"`
	CostPercent Percent   `json:"costPercent"` // other operating costs, share of rent
	FixedCosts  float64   `json:"fixedCosts"`  // fixed monthly operating cost
	Escalation  Benchmark `json:"escalation"`  // annual rent-escalation index
	ExitCapRate Percent   `json:"exitCapRate"`
}

// NewPropertyAsset creates an income property bought at the given month
// offset, rent-escalated by IPCA.
func NewPropertyAsset(name string, monthOffset int, price, rent float64, capRate Percent) PropertyAsset {
	return PropertyAsset{
		baseAsset:   baseAsset{Type: AssetProperty, Label: name, Month: monthOffset},
		Price:       price,
		Rent:        rent,
		Escalation:  IPCA,
		ExitCapRate: capRate,
	}
}

func (a PropertyAsset) Outlay() float64 { return a.Price }

func (a PropertyAsset) Validate(months int) error {
	if err := a.validate(months); err != nil {
		return err
	}
	var errs error
	if a.Price < 0 {
		errs = errors.Join(errs, fmt.Errorf("negative purchase price %v", a.Price))
	}
	if a.Vacancy < 0 || a.Vacancy > 100 {
		errs = errors.Join(errs, fmt.Errorf("vacancy %v outside [0%%..100%%]", a.Vacancy))
	}
	return errs
}

func (a PropertyAsset) open(st *positionState, _ RateCurve) {
	st.active = true
	st.value = a.Price
	st.rent = a.Rent
}

// netRent returns the monthly net operating income at the given rent level.
func (a PropertyAsset) netRent(rent float64) float64 {
	return rent*(1-a.Vacancy.Rate()) - a.FixedCosts - a.CostPercent.Rate()*rent
}

func (a PropertyAsset) advance(st *positionState, k int, rc RateCurve, final bool) step {
	// Yearly anniversary reindexation. The index's monthly rate is scaled
	// linearly by 12, slightly below true annual compounding.
	if k > a.Month && (k-a.Month)%12 == 0 {
		st.rent *= 1 + rc.Monthly(a.Escalation)*12
	}

	income := a.netRent(st.rent)
	st.value += income

	if !final {
		return step{income: income}
	}

	// Terminal sale: annualized NOI over the exit cap rate. A zero cap rate
	// values the sale at zero rather than dividing by zero. The position is
	// liquidated, so the full proceeds (accumulated carrying value plus the
	// sale) land in cash.
	var sale float64
	if a.ExitCapRate != 0 {
		sale = a.netRent(st.rent) * 12 / a.ExitCapRate.Rate()
	}
	proceeds := st.value + sale
	st.value = 0
	return step{income: income + sale, cash: proceeds}
}
