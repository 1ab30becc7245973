package renderer

import (
	"strings"

	"github.com/etnz/fundsim"
)

// StatementMarkdown generates the monthly statement report: one row per
// projected month, plus a position detail section for the terminal month.
func StatementMarkdown(p *fundsim.Projection) string {
	r := &reportRenderer{Builder: &strings.Builder{}}

	name := p.Config.Name
	if name == "" {
		name = "Fund Projection"
	}
	r.Printf("# %s\n\n", name)
	r.Printf("%d months from %s, starting with %s.\n\n",
		p.Config.Months, p.Config.Start, money(p.Config.InitialContribution))

	r.Printf("## Monthly Statement\n\n")
	r.Printf("| Month | Opening NAV | Flows | Income | Expenses | Dividend | Closing NAV |\n")
	r.Printf("|:---|---:|---:|---:|---:|---:|---:|\n")
	for _, rec := range p.Records {
		r.Printf("| %s | %s | %s | %s | %s | %s | %s |\n",
			rec.Month,
			money(rec.OpeningNAV),
			signed(rec.Contribution-rec.Withdrawal),
			signed(rec.AssetIncome+rec.CashIncome),
			signed(-rec.TotalExpenses),
			signed(-rec.Dividend),
			money(rec.ClosingNAV),
		)
	}
	r.Printf("\n")

	renderPositions(r, p.Terminal())
	return r.String()
}

// renderPositions details the portfolio composition of one period record.
func renderPositions(r *reportRenderer, rec fundsim.PeriodRecord) {
	r.Printf("## Positions on %s\n\n", rec.Month)
	r.Printf("| Position | Volume | Income |\n")
	r.Printf("|:---|---:|---:|\n")
	for _, a := range rec.Assets {
		r.Printf("| %s | %s | %s |\n", a.Name, money(a.Volume), signed(a.Income))
	}
	r.Printf("| Cash | %s | %s |\n", money(rec.CashVolume), signed(rec.CashIncome))
	r.Printf("| **Total** | **%s** | |\n", money(rec.ClosingNAV))
	r.Printf("\n")
}

// ExpensesMarkdown generates the expense breakdown report: each expense rule,
// the performance fee and the loss provisions accumulated over the horizon.
func ExpensesMarkdown(p *fundsim.Projection) string {
	r := &reportRenderer{Builder: &strings.Builder{}}

	totals := map[string]float64{}
	var order []string
	var fee, losses float64
	for _, rec := range p.Records {
		for _, item := range rec.Expenses {
			if _, seen := totals[item.Name]; !seen {
				order = append(order, item.Name)
			}
			totals[item.Name] += item.Amount
		}
		fee += rec.PerformanceFee
		losses += rec.CreditLoss
	}

	r.Printf("# Expenses\n\n")
	r.Printf("| Expense | Total |\n")
	r.Printf("|:---|---:|\n")
	var total float64
	for _, name := range order {
		r.Printf("| %s | %s |\n", name, money(totals[name]))
		total += totals[name]
	}
	if fee != 0 {
		r.Printf("| Performance fee | %s |\n", money(fee))
		total += fee
	}
	if losses != 0 {
		r.Printf("| Credit loss provisions | %s |\n", money(losses))
		total += losses
	}
	r.Printf("| **Total** | **%s** |\n\n", money(total))
	return r.String()
}
