package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/fundsim"
	"github.com/etnz/fundsim/month"
	"github.com/google/subcommands"
)

type initCmd struct {
	force bool
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create a starter fund configuration file" }
func (*initCmd) Usage() string {
	return `fsim init [-force]

  Creates a starter fund configuration file with one asset of each kind,
  recurring expenses, a dividend policy and a performance fee, ready to be
  edited. Refuses to overwrite an existing file unless -force is given.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "force", false, "overwrite an existing configuration file")
}

func (c *initCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.force {
		if _, err := os.Stat(*fundFile); err == nil {
			fmt.Fprintf(os.Stderr, "Error: %q already exists, use -force to overwrite\n", *fundFile)
			return subcommands.ExitFailure
		}
	}

	f, err := os.Create(*fundFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", *fundFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := fundsim.EncodeFundConfig(f, starterFund()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", *fundFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Created %s. Edit it and run 'fsim statement'.\n", *fundFile)
	return subcommands.ExitSuccess
}

// starterFund builds the sample configuration written by init: one asset of
// each kind and every policy enabled, so the file documents itself.
func starterFund() *fundsim.FundConfig {
	now := time.Now()
	start := month.New(now.Year(), now.Month()).Add(1)

	credit := fundsim.NewCreditAsset("CRI senior", 2, 400000, 30, 6, fundsim.Price)
	credit.Benchmark = fundsim.IPCA
	credit.GraceMonths = 6
	credit.AnnualLoss = 1

	property := fundsim.NewPropertyAsset("Galpão logístico", 3, 600000, 5500, 8)
	property.Vacancy = 5
	property.CostPercent = 3
	property.FixedCosts = 400

	return &fundsim.FundConfig{
		Name:                "Fundo Exemplo",
		Start:               start,
		Months:              36,
		InitialContribution: 1500000,
		Rates:               fundsim.RateCurve{CDI: 10.5, IPCA: 4.5},
		Expenses: []fundsim.ExpenseRule{
			{Name: "Administração", Kind: fundsim.PercentOfNAV, Annual: 1},
			{Name: "Custódia", Kind: fundsim.FixedMonthly, Amount: 2500},
		},
		Assets: []fundsim.AssetSpec{
			fundsim.NewGenericAsset("LCI", 1, 500000, fundsim.CDI, 1.5),
			credit,
			property,
		},
		Dividends: fundsim.DividendPolicy{Enabled: true, Payout: 95, FrequencyMonths: 6},
		Fee: fundsim.PerformanceFeePolicy{
			Enabled:       true,
			Benchmark:     fundsim.CDI,
			Spread:        1,
			Fee:           20,
			LockupMonths:  12,
			HighWaterMark: true,
		},
	}
}
