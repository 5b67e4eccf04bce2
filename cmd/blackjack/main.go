package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Simulate SimulateCmd      `cmd:"" help:"Run automated self-play sessions and report statistics"`
	Play     PlayCmd          `cmd:"" help:"Play hands interactively in the terminal"`
	Info     VersionCmd       `cmd:"" name:"version" help:"Print version information"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Blackjack shoe and hand engine with a self-play simulator"),
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
