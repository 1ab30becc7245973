package renderer

import (
	"strings"

	"github.com/etnz/fundsim"
)

// AnnualMarkdown generates the annual income statement report: one row per
// calendar year spanned by the projection.
func AnnualMarkdown(p *fundsim.Projection) string {
	r := &reportRenderer{Builder: &strings.Builder{}}

	r.Printf("# Annual Income Statement\n\n")
	r.Printf("| Year | Income | Expenses | Fee | Losses | Net | Dividends | Closing NAV |\n")
	r.Printf("|:---|---:|---:|---:|---:|---:|---:|---:|\n")
	for _, row := range fundsim.AnnualStatement(p) {
		r.Printf("| %d | %s | %s | %s | %s | %s | %s | %s |\n",
			row.Year,
			money(row.AssetIncome+row.CashIncome),
			money(row.RegularExpenses),
			money(row.PerformanceFee),
			money(row.CreditLosses),
			signed(row.NetIncome),
			money(row.Dividends),
			money(row.ClosingNAV),
		)
	}
	r.Printf("\n")
	return r.String()
}
