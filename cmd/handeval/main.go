package main

import (
	"os"

	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Eval    EvalCmd          `cmd:"" help:"Rank a five-card hand"`
	Compare CompareCmd       `cmd:"" help:"Compare two five-card hands"`
	Deal    DealCmd          `cmd:"" help:"Deal random hands and rank them"`
	Census  CensusCmd        `cmd:"" help:"Rank every five-card hand and check the totals"`
}

func main() {
	cli := CLI{Globals: Globals{out: os.Stdout}}
	ctx := kong.Parse(&cli,
		kong.Name("handeval"),
		kong.Description("Constant-time five-card poker hand evaluator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
