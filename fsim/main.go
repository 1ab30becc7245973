package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/fundsim/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the command tree for shell completion. Install it
// with "COMP_INSTALL=1 fsim".
var completion = &complete.Command{
	Flags: map[string]complete.Predictor{
		"fund-file": predict.Files("*.json"),
	},
	Sub: map[string]*complete.Command{
		"init": {Flags: map[string]complete.Predictor{"force": predict.Nothing}},
		"statement": {},
		"annual":    {},
		"metrics":   {},
		"expenses":  {},
		"compare":   {Args: predict.Files("*.json")},
		"rates":     {Flags: map[string]complete.Predictor{"window": predict.Something}},
		"topic": {Args: predict.Set{
			"configuration", "assets", "expenses", "distributions", "metrics", "rates",
		}},
		"assist": {},
	},
}

func main() {
	completion.Complete("fsim")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
