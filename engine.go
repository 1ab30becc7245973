package fundsim

import (
	"fmt"

	"github.com/etnz/fundsim/month"
)

// AssetPeriod is one asset's slice of a period record.
type AssetPeriod struct {
	Name   string
	Volume float64 // carrying value or outstanding balance at period end
	Income float64 // income attributed to the asset this period
}

// PeriodRecord is the canonical monthly result of the projection. Records are
// immutable once emitted; the engine produces them strictly sequentially,
// each depending only on the previous record and the configuration.
type PeriodRecord struct {
	Index int         // month offset, 0..Months
	Month month.Month // calendar month

	OpeningNAV   float64
	Contribution float64
	Withdrawal   float64
	Dividend     float64

	Assets      []AssetPeriod // one entry per configured asset, in list order
	AssetVolume float64       // sum of asset volumes
	AssetIncome float64       // sum of asset incomes

	CashVolume float64
	CashIncome float64

	Expenses       []ExpenseItem // itemized regular expenses, in rule order
	PerformanceFee float64
	CreditLoss     float64 // expected credit losses provisioned this period
	TotalExpenses  float64 // regular + performance fee + credit losses

	ClosingNAV float64
}

// Projection is the complete output of a run: the period series and the
// derived investor-return metrics.
type Projection struct {
	Config  *FundConfig
	Records []PeriodRecord // length Months+1, index 0..Months
	Metrics Metrics
}

// Record returns the period record for month k.
func (p *Projection) Record(k int) PeriodRecord { return p.Records[k] }

// Terminal returns the last record of the series.
func (p *Projection) Terminal() PeriodRecord { return p.Records[len(p.Records)-1] }

// engineState tracks the orchestrator through its run.
type engineState int

const (
	seeded engineState = iota
	advancing
	complete
)

// engine owns all mutable state of one projection run. A FundConfig may be
// shared across several engines running in parallel; each engine owns its own
// position array and record list.
type engine struct {
	cfg       *FundConfig
	state     engineState
	positions []positionState // one per cfg.Assets, same index
	fee       feeState
	dividends dividendState
	records   []PeriodRecord
}

// Run validates the configuration and projects the fund month by month,
// returning the full period series and analytics. The computation is pure and
// deterministic: no I/O, no clock, no randomness.
func Run(cfg *FundConfig) (*Projection, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fund configuration: %w", err)
	}

	e := &engine{
		cfg:       cfg,
		positions: make([]positionState, len(cfg.Assets)),
		records:   make([]PeriodRecord, 0, cfg.Months+1),
	}
	e.seed()
	for k := 1; k <= cfg.Months; k++ {
		e.advance(k)
	}
	e.state = complete

	return &Projection{
		Config:  cfg,
		Records: e.records,
		Metrics: ComputeMetrics(e.records),
	}, nil
}

// RunAll projects several independent configurations, for scenario
// comparison. Configurations are not mutated and may be shared.
func RunAll(cfgs []*FundConfig) ([]*Projection, error) {
	out := make([]*Projection, 0, len(cfgs))
	for i, cfg := range cfgs {
		p, err := Run(cfg)
		if err != nil {
			return nil, fmt.Errorf("scenario %d (%s): %w", i, cfg.Name, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// seed emits the deterministic month-0 record: the initial contribution sits
// in cash, and positions scheduled for month 0 are opened with their outlay
// moved from cash, with zero income.
func (e *engine) seed() {
	cfg := e.cfg

	rec := PeriodRecord{
		Index:        0,
		Month:        cfg.Start,
		Contribution: cfg.InitialContribution,
		Assets:       make([]AssetPeriod, len(cfg.Assets)),
		Expenses:     make([]ExpenseItem, 0, len(cfg.Expenses)),
	}

	cash := cfg.InitialContribution
	for i, spec := range cfg.Assets {
		rec.Assets[i].Name = spec.Name()
		if spec.InvestedAt() == 0 {
			spec.open(&e.positions[i], cfg.Rates)
			cash -= spec.Outlay()
		}
		rec.Assets[i].Volume = e.positions[i].value
		rec.AssetVolume += e.positions[i].value
	}

	rec.CashVolume = cash
	rec.ClosingNAV = cash + rec.AssetVolume
	e.fee.seed(rec.ClosingNAV)
	e.records = append(e.records, rec)
	e.state = advancing
}

// advance executes one state transition, from month k-1 to k, in the exact
// order the model requires: flows, aging, new investments, cash yield,
// expenses off the pre-income snapshot, fee off the pre-fee NAV, dividend
// sweep, close.
func (e *engine) advance(k int) {
	cfg := e.cfg
	prev := e.records[len(e.records)-1]
	final := k == cfg.Months

	// (1) scheduled flows for month k.
	contribution := flowsAt(cfg.Contributions, k)
	withdrawal := flowsAt(cfg.Withdrawals, k)

	// (2) open from prior closing values.
	openingNAV := prev.ClosingNAV
	cash := prev.CashVolume + contribution

	rec := PeriodRecord{
		Index:        k,
		Month:        cfg.Start.Add(k),
		OpeningNAV:   openingNAV,
		Contribution: contribution,
		Withdrawal:   withdrawal,
		Assets:       make([]AssetPeriod, len(cfg.Assets)),
	}

	// (3) age existing positions, in list order.
	var assetIncome, cashCollected, creditLoss, cashLossPaid float64
	for i, spec := range cfg.Assets {
		rec.Assets[i].Name = spec.Name()
		if !e.positions[i].active || spec.InvestedAt() >= k {
			continue
		}
		st := spec.advance(&e.positions[i], k, cfg.Rates, final)
		rec.Assets[i].Income = st.income
		assetIncome += st.income
		cashCollected += st.cash
		creditLoss += st.loss
		if !st.absorbed {
			// Senior losses are provisioned against the fund's cash; the
			// subordinate tranche already absorbed its loss in its balance.
			cashLossPaid += st.loss
		}
	}

	// (4) open positions scheduled for month k.
	var outlay float64
	for i, spec := range cfg.Assets {
		if spec.InvestedAt() == k {
			spec.open(&e.positions[i], cfg.Rates)
			outlay += spec.Outlay()
		}
	}

	// (5) net the outlay against cash; the remainder earns the CDI monthly
	// rate on its non-negative portion only. Negative cash is allowed and
	// earns nothing (no overdraft interest modeled).
	cash -= outlay
	var cashIncome float64
	if cash > 0 {
		cashIncome = cash * cfg.Rates.Monthly(CDI)
	}

	// (6) regular expenses off the pre-income NAV snapshot.
	navBasis := openingNAV + contribution - withdrawal
	regular, items := accrueExpenses(cfg.Expenses, navBasis)
	rec.Expenses = items

	// (7) performance fee off the pre-fee NAV.
	preFeeNAV := navBasis + assetIncome + cashIncome - regular - creditLoss
	fee := e.fee.accrue(cfg.Fee, cfg.Rates, k, cfg.Months, preFeeNAV)

	totalExpenses := regular + fee + creditLoss

	// (8) accumulate post-expense profit and evaluate the dividend sweep.
	profit := assetIncome + cashIncome - totalExpenses
	dividend := e.dividends.sweep(cfg.Dividends, k, cfg.Months, profit)

	// (9) close cash and NAV.
	cash += cashIncome + cashCollected - regular - fee - cashLossPaid - withdrawal - dividend

	rec.AssetIncome = assetIncome
	for i := range cfg.Assets {
		rec.Assets[i].Volume = e.positions[i].value
		rec.AssetVolume += e.positions[i].value
	}
	rec.CashVolume = cash
	rec.CashIncome = cashIncome
	rec.PerformanceFee = fee
	rec.CreditLoss = creditLoss
	rec.TotalExpenses = totalExpenses
	rec.Dividend = dividend
	rec.ClosingNAV = cash + rec.AssetVolume

	// (10) emit.
	e.records = append(e.records, rec)
}
