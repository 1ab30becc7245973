package fundsim

import (
	"errors"
	"fmt"

	"github.com/etnz/fundsim/month"
)

// Benchmark identifies one of the fund's annual rate curves.
type Benchmark string

// Benchmarks available to assets and policies. CDI is the interbank deposit
// rate every cash balance and generic asset references; IPCA is the
// inflation index used for rent escalation and inflation-linked credit.
const (
	CDI  Benchmark = "cdi"
	IPCA Benchmark = "ipca"
)

// RateCurve holds the annual nominal rate of each benchmark, in percent.
// The projection uses a single flat rate per benchmark for the whole horizon.
type RateCurve struct {
	CDI  Percent `json:"cdi"`
	IPCA Percent `json:"ipca"`
}

// Annual returns the annual nominal rate of the given benchmark.
func (rc RateCurve) Annual(b Benchmark) Percent {
	switch b {
	case IPCA:
		return rc.IPCA
	default:
		return rc.CDI
	}
}

// Monthly returns the effective monthly rate of the given benchmark.
func (rc RateCurve) Monthly(b Benchmark) float64 {
	return MonthlyRate(rc.Annual(b))
}

// Flow is a scheduled capital movement: a contribution into the fund or a
// withdrawal out of it, at a given month offset from the start.
type Flow struct {
	Month  int     `json:"month"`
	Amount float64 `json:"amount"`
}

// flowsAt sums the amounts scheduled for month k, in list order.
func flowsAt(flows []Flow, k int) float64 {
	var total float64
	for _, f := range flows {
		if f.Month == k {
			total += f.Amount
		}
	}
	return total
}

// ExpenseKind selects how an expense rule is computed.
type ExpenseKind string

const (
	// PercentOfNAV charges an annualized percentage of the fund's NAV,
	// accrued monthly as annual/12 off the pre-income NAV snapshot.
	PercentOfNAV ExpenseKind = "percent-of-nav"
	// FixedMonthly charges a fixed amount every month, unconditionally.
	FixedMonthly ExpenseKind = "fixed"
)

// ExpenseRule is one recurring fund expense (administration, custody, audit...).
type ExpenseRule struct {
	Name   string      `json:"name"`
	Kind   ExpenseKind `json:"kind"`
	Annual Percent     `json:"annual,omitempty"` // for percent-of-nav rules
	Amount float64     `json:"amount,omitempty"` // for fixed rules
}

// DividendPolicy configures the periodic sweep of accumulated distributable
// profit out of the fund.
type DividendPolicy struct {
	Enabled         bool    `json:"enabled"`
	Payout          Percent `json:"payout"`          // share of accumulated profit distributed
	FrequencyMonths int     `json:"frequencyMonths"` // 1, 6 or 12
}

// PerformanceFeePolicy configures the incentive fee accrued against a
// benchmark hurdle, measured annually, optionally gated by a high-water mark.
type PerformanceFeePolicy struct {
	Enabled       bool      `json:"enabled"`
	Benchmark     Benchmark `json:"benchmark"`
	Spread        Percent   `json:"spread"` // annual spread over the benchmark hurdle
	Fee           Percent   `json:"fee"`    // share of the excess return charged
	LockupMonths  int       `json:"lockupMonths"`
	HighWaterMark bool      `json:"highWaterMark"`
}

// FundConfig is the immutable input of a projection run. It is constructed
// once (typically decoded from a configuration file), validated, and never
// mutated by the engine; the same value may safely feed several concurrent
// runs.
type FundConfig struct {
	Name                string
	Start               month.Month
	Months              int // horizon; the run emits Months+1 period records
	InitialContribution float64
	Rates               RateCurve
	Contributions       []Flow
	Withdrawals         []Flow
	Expenses            []ExpenseRule
	Assets              []AssetSpec
	Dividends           DividendPolicy
	Fee                 PerformanceFeePolicy
}

// Validate checks the configuration for problems that would make a projection
// meaningless and returns a descriptive error for the first one found per
// field group. A zero-month horizon or an empty asset list are valid minimal
// inputs, not errors.
func (c *FundConfig) Validate() error {
	var errs error
	if c.Months < 0 {
		errs = errors.Join(errs, fmt.Errorf("horizon must be non-negative, got %d months", c.Months))
	}
	if c.InitialContribution < 0 {
		errs = errors.Join(errs, fmt.Errorf("initial contribution must be non-negative, got %v", c.InitialContribution))
	}
	for i, f := range c.Contributions {
		if f.Month < 1 || f.Month > c.Months {
			errs = errors.Join(errs, fmt.Errorf("contribution %d: month %d outside horizon [1..%d]", i, f.Month, c.Months))
		}
		if f.Amount < 0 {
			errs = errors.Join(errs, fmt.Errorf("contribution %d: negative amount %v", i, f.Amount))
		}
	}
	for i, f := range c.Withdrawals {
		if f.Month < 1 || f.Month > c.Months {
			errs = errors.Join(errs, fmt.Errorf("withdrawal %d: month %d outside horizon [1..%d]", i, f.Month, c.Months))
		}
		if f.Amount < 0 {
			errs = errors.Join(errs, fmt.Errorf("withdrawal %d: negative amount %v", i, f.Amount))
		}
	}
	for i, e := range c.Expenses {
		switch e.Kind {
		case PercentOfNAV, FixedMonthly:
		default:
			errs = errors.Join(errs, fmt.Errorf("expense %d (%s): unknown kind %q", i, e.Name, e.Kind))
		}
	}
	if c.Dividends.Enabled {
		switch c.Dividends.FrequencyMonths {
		case 1, 6, 12:
		default:
			errs = errors.Join(errs, fmt.Errorf("dividend frequency must be 1, 6 or 12 months, got %d", c.Dividends.FrequencyMonths))
		}
	}
	if c.Fee.Enabled {
		if c.Fee.LockupMonths < 0 {
			errs = errors.Join(errs, fmt.Errorf("performance fee lockup must be non-negative, got %d", c.Fee.LockupMonths))
		}
		switch c.Fee.Benchmark {
		case CDI, IPCA:
		default:
			errs = errors.Join(errs, fmt.Errorf("performance fee: unknown benchmark %q", c.Fee.Benchmark))
		}
	}
	for i, a := range c.Assets {
		if err := a.Validate(c.Months); err != nil {
			errs = errors.Join(errs, fmt.Errorf("asset %d (%s): %w", i, a.Name(), err))
		}
	}
	return errs
}
