package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/fundsim/bcb"
	"github.com/google/subcommands"
)

type ratesCmd struct {
	window int
}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "fetch observed benchmark rates from the Banco Central" }
func (*ratesCmd) Usage() string {
	return `fsim rates [-window <months>]

  Fetches the trailing monthly CDI and IPCA observations from the Banco
  Central do Brasil SGS API, annualizes them over the window, and prints a
  "rates" block ready to paste into a fund configuration file.
`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.window, "window", 12, "trailing window of monthly observations to annualize")
}

func (c *ratesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cdi, err := bcb.Monthly(bcb.SeriesCDI, c.window)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching CDI: %v\n", err)
		return subcommands.ExitFailure
	}
	ipca, err := bcb.Monthly(bcb.SeriesIPCA, c.window)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching IPCA: %v\n", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Observed Rates\n\n")
	fmt.Fprintf(&b, "| Month | CDI | IPCA |\n")
	fmt.Fprintf(&b, "|:---|---:|---:|\n")
	for i := range cdi {
		ipcaCell := ""
		if i < len(ipca) {
			ipcaCell = fmt.Sprintf("%.2f%%", float64(ipca[i].Value))
		}
		fmt.Fprintf(&b, "| %s | %.2f%% | %s |\n", cdi[i].Month, float64(cdi[i].Value), ipcaCell)
	}
	fmt.Fprintf(&b, "\nAnnualized over the last %d months:\n\n", c.window)
	fmt.Fprintf(&b, "```json\n\"rates\": {\"cdi\": %.2f, \"ipca\": %.2f}\n```\n",
		float64(bcb.Annualize(cdi)), float64(bcb.Annualize(ipca)))

	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
