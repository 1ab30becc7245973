package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/fundsim"
)

// MetricsMarkdown generates the investor-return report of one projection.
func MetricsMarkdown(p *fundsim.Projection) string {
	r := &reportRenderer{Builder: &strings.Builder{}}
	m := p.Metrics

	r.Printf("# Investor Returns\n\n")
	r.Printf("| Metric | Value |\n")
	r.Printf("|:---|---:|\n")
	r.Printf("| Total contributions | %s |\n", money(m.TotalContributions))
	r.Printf("| Total distributions | %s |\n", money(m.TotalDistributions))
	r.Printf("| Terminal NAV | %s |\n", money(m.TerminalNAV))
	r.Printf("| IRR (annual) | %s |\n", irrCell(m))
	r.Printf("| MOIC | %.2fx |\n", m.MOIC)
	r.Printf("| DPI | %.2fx |\n", m.DPI)
	r.Printf("| RVPI | %.2fx |\n", m.RVPI)
	r.Printf("| Payback | %s |\n", paybackCell(m.PaybackMonth))
	r.Printf("\n")
	return r.String()
}

// CompareMarkdown generates a side-by-side comparison of several scenario
// projections, one column per scenario.
func CompareMarkdown(runs []*fundsim.Projection) string {
	r := &reportRenderer{Builder: &strings.Builder{}}

	r.Printf("# Scenario Comparison\n\n")
	r.Printf("| Metric |")
	for i, p := range runs {
		name := p.Config.Name
		if name == "" {
			name = fmt.Sprintf("Scenario %d", i+1)
		}
		r.Printf(" %s |", name)
	}
	r.Printf("\n|:---|")
	for range runs {
		r.Printf("---:|")
	}
	r.Printf("\n")

	row := func(label string, cell func(*fundsim.Projection) string) {
		r.Printf("| %s |", label)
		for _, p := range runs {
			r.Printf(" %s |", cell(p))
		}
		r.Printf("\n")
	}
	row("Terminal NAV", func(p *fundsim.Projection) string { return money(p.Metrics.TerminalNAV) })
	row("Distributions", func(p *fundsim.Projection) string { return money(p.Metrics.TotalDistributions) })
	row("IRR (annual)", func(p *fundsim.Projection) string { return irrCell(p.Metrics) })
	row("MOIC", func(p *fundsim.Projection) string { return fmt.Sprintf("%.2fx", p.Metrics.MOIC) })
	row("Payback", func(p *fundsim.Projection) string { return paybackCell(p.Metrics.PaybackMonth) })
	r.Printf("\n")
	return r.String()
}

func irrCell(m fundsim.Metrics) string {
	if !m.IRRValid {
		return "n/a"
	}
	return percent(m.IRRAnnual)
}

func paybackCell(month int) string {
	if month < 0 {
		return "never"
	}
	return fmt.Sprintf("month %d", month)
}
