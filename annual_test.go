package fundsim

import (
	"testing"
	"time"

	"github.com/etnz/fundsim/month"
)

func TestAnnualStatement(t *testing.T) {
	cfg := richConfig(t)
	cfg.Start = month.New(2024, time.July) // straddle calendar years on purpose
	p, err := Run(cfg)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	rows := AnnualStatement(p)
	// 36 months from 2024-07 reach 2027-07: four calendar years
	want := []int{2024, 2025, 2026, 2027}
	if len(rows) != len(want) {
		t.Fatalf("statement has %d rows, want %d", len(rows), len(want))
	}
	for i, y := range want {
		if rows[i].Year != y {
			t.Errorf("row %d year = %d, want %d", i, rows[i].Year, y)
		}
	}

	var income, fees, losses, dividends float64
	for _, row := range rows {
		income += row.AssetIncome + row.CashIncome
		fees += row.RegularExpenses + row.PerformanceFee
		losses += row.CreditLosses
		dividends += row.Dividends
	}
	var wantIncome, wantFees, wantLosses, wantDividends float64
	for _, r := range p.Records {
		wantIncome += r.AssetIncome + r.CashIncome
		wantFees += r.TotalExpenses - r.CreditLoss
		wantLosses += r.CreditLoss
		wantDividends += r.Dividend
	}
	almostEqual(t, "total income", income, wantIncome)
	almostEqual(t, "total fees", fees, wantFees)
	almostEqual(t, "total losses", losses, wantLosses)
	almostEqual(t, "total dividends", dividends, wantDividends)

	// the last row's NAV is the terminal NAV
	if got := rows[len(rows)-1].ClosingNAV; got != p.Terminal().ClosingNAV {
		t.Errorf("last row NAV = %v, want terminal %v", got, p.Terminal().ClosingNAV)
	}
	// the first row carries the initial contribution
	if rows[0].Contributions < cfg.InitialContribution {
		t.Errorf("first row contributions = %v, want at least %v",
			rows[0].Contributions, cfg.InitialContribution)
	}
}

func TestAnnualStatement_NetIncome(t *testing.T) {
	p, err := Run(richConfig(t))
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	for _, row := range AnnualStatement(p) {
		want := row.AssetIncome + row.CashIncome - row.RegularExpenses - row.PerformanceFee - row.CreditLosses
		almostEqual(t, "net income", row.NetIncome, want)
	}
}
