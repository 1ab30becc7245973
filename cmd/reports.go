package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fundsim"
	"github.com/etnz/fundsim/renderer"
	"github.com/google/subcommands"
)

type statementCmd struct{}

func (*statementCmd) Name() string     { return "statement" }
func (*statementCmd) Synopsis() string { return "project the fund and show the monthly statement" }
func (*statementCmd) Usage() string {
	return `fsim statement

  Runs the projection and shows the monthly statement: NAV, flows, income,
  expenses and dividends for every projected month, plus the terminal
  portfolio composition.
`
}
func (*statementCmd) SetFlags(_ *flag.FlagSet) {}

func (c *statementCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return report(renderer.StatementMarkdown)
}

type annualCmd struct{}

func (*annualCmd) Name() string     { return "annual" }
func (*annualCmd) Synopsis() string { return "show the annual income statement" }
func (*annualCmd) Usage() string {
	return `fsim annual

  Runs the projection and shows the annual income statement: income,
  expenses, fees, losses and distributions aggregated by calendar year.
`
}
func (*annualCmd) SetFlags(_ *flag.FlagSet) {}

func (c *annualCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return report(renderer.AnnualMarkdown)
}

type metricsCmd struct{}

func (*metricsCmd) Name() string     { return "metrics" }
func (*metricsCmd) Synopsis() string { return "show the investor-return metrics" }
func (*metricsCmd) Usage() string {
	return `fsim metrics

  Runs the projection and shows the investor-return metrics: IRR, MOIC,
  DPI, RVPI and payback.
`
}
func (*metricsCmd) SetFlags(_ *flag.FlagSet) {}

func (c *metricsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return report(renderer.MetricsMarkdown)
}

type expensesCmd struct{}

func (*expensesCmd) Name() string     { return "expenses" }
func (*expensesCmd) Synopsis() string { return "show the expense breakdown" }
func (*expensesCmd) Usage() string {
	return `fsim expenses

  Runs the projection and shows the expense breakdown: each recurring
  expense, the performance fee and the credit loss provisions, accumulated
  over the horizon.
`
}
func (*expensesCmd) SetFlags(_ *flag.FlagSet) {}

func (c *expensesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return report(renderer.ExpensesMarkdown)
}

type compareCmd struct{}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "compare scenario configurations side by side" }
func (*compareCmd) Usage() string {
	return `fsim compare <config.json> [<config.json>...]

  Runs the projection of each configuration file and shows their key
  metrics side by side, one column per scenario.
`
}
func (*compareCmd) SetFlags(_ *flag.FlagSet) {}

func (c *compareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: compare needs at least one configuration file")
		return subcommands.ExitUsageError
	}

	var cfgs []*fundsim.FundConfig
	for _, file := range f.Args() {
		fd, err := os.Open(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not open %q: %v\n", file, err)
			return subcommands.ExitFailure
		}
		cfg, err := fundsim.DecodeFundConfig(fd)
		fd.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not decode %q: %v\n", file, err)
			return subcommands.ExitFailure
		}
		if cfg.Name == "" {
			cfg.Name = file
		}
		cfgs = append(cfgs, cfg)
	}

	runs, err := fundsim.RunAll(cfgs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.CompareMarkdown(runs))
	return subcommands.ExitSuccess
}
