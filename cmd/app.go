// Package cmd implements the CLI application to project an investment fund.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fundsim"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&initCmd{}, "fund")
	c.Register(&statementCmd{}, "reports")
	c.Register(&annualCmd{}, "reports")
	c.Register(&metricsCmd{}, "reports")
	c.Register(&expensesCmd{}, "reports")
	c.Register(&compareCmd{}, "reports")
	c.Register(&ratesCmd{}, "market data")
	c.Register(&topicCmd{}, "documentation")
	c.Register(&assistCmd{}, "assistant")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var fundFile = flag.String("fund-file", "fund.json", "Path to the fund configuration file (JSON format)")

// DecodeFund reads the fund configuration from the app fund file.
func DecodeFund() (*fundsim.FundConfig, error) {
	f, err := os.Open(*fundFile)
	if err != nil {
		return nil, fmt.Errorf("could not open fund configuration %q: %w", *fundFile, err)
	}
	defer f.Close()
	return fundsim.DecodeFundConfig(f)
}

// runProjection loads the app fund file and runs its projection.
func runProjection() (*fundsim.Projection, error) {
	cfg, err := DecodeFund()
	if err != nil {
		return nil, err
	}
	return fundsim.Run(cfg)
}

// report runs the projection and prints one rendered report, converting
// any failure into an exit status.
func report(render func(*fundsim.Projection) string) subcommands.ExitStatus {
	p, err := runProjection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(render(p))
	return subcommands.ExitSuccess
}
