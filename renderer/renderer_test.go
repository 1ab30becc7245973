package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/fundsim"
	"github.com/etnz/fundsim/month"
)

func testProjection(t *testing.T) *fundsim.Projection {
	t.Helper()
	cfg := &fundsim.FundConfig{
		Name:                "Fundo Teste",
		Start:               month.New(2024, time.January),
		Months:              14,
		InitialContribution: 1000000,
		Rates:               fundsim.RateCurve{CDI: 10, IPCA: 4},
		Expenses: []fundsim.ExpenseRule{
			{Name: "Administração", Kind: fundsim.PercentOfNAV, Annual: 1},
		},
		Assets: []fundsim.AssetSpec{
			fundsim.NewGenericAsset("LCI", 1, 500000, fundsim.CDI, 1),
		},
		Dividends: fundsim.DividendPolicy{Enabled: true, Payout: 95, FrequencyMonths: 6},
	}
	p, err := fundsim.Run(cfg)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	return p
}

func assertContains(t *testing.T, report string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(report, want) {
			t.Errorf("report misses %q:\n%s", want, report)
		}
	}
}

func TestStatementMarkdown(t *testing.T) {
	p := testProjection(t)
	report := StatementMarkdown(p)

	assertContains(t, report,
		"# Fundo Teste",
		"## Monthly Statement",
		"| Month | Opening NAV |",
		"| 2024-01 |",
		"| 2025-03 |", // terminal month
		"## Positions on 2025-03",
		"| LCI |",
		"| Cash |",
	)
	// one header row, one separator, 15 period rows
	if got := strings.Count(report, "\n| 20"); got != 15 {
		t.Errorf("statement has %d period rows, want 15", got)
	}
}

func TestStatementMarkdown_UnnamedFund(t *testing.T) {
	p := testProjection(t)
	p.Config.Name = ""
	assertContains(t, StatementMarkdown(p), "# Fund Projection")
}

func TestAnnualMarkdown(t *testing.T) {
	report := AnnualMarkdown(testProjection(t))
	assertContains(t, report,
		"# Annual Income Statement",
		"| 2024 |",
		"| 2025 |",
	)
}

func TestMetricsMarkdown(t *testing.T) {
	report := MetricsMarkdown(testProjection(t))
	assertContains(t, report,
		"# Investor Returns",
		"| Total contributions | R$1.000.000,00 |",
		"| IRR (annual) | +",
		"| MOIC | 1.",
	)
}

func TestExpensesMarkdown(t *testing.T) {
	report := ExpensesMarkdown(testProjection(t))
	assertContains(t, report,
		"# Expenses",
		"| Administração |",
		"| **Total** |",
	)
	if strings.Contains(report, "Performance fee") {
		t.Error("fee row rendered for a fund with no performance fee")
	}
}

func TestCompareMarkdown(t *testing.T) {
	a := testProjection(t)
	b := testProjection(t)
	b.Config.Name = ""
	report := CompareMarkdown([]*fundsim.Projection{a, b})

	assertContains(t, report,
		"# Scenario Comparison",
		"| Metric | Fundo Teste | Scenario 2 |",
		"| Terminal NAV |",
		"| Payback |",
	)
}
