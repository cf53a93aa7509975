package main

import (
	"github.com/alecthomas/kong"
	_ "github.com/joho/godotenv/autoload"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play against bots in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Run bot-vs-bot games and report statistics"`
	Deal     DealCmd          `cmd:"" help:"Deal a game and print the table"`
	Rules    RulesCmd         `cmd:"" help:"Show the house rules"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("uno"),
		kong.Description("UNO in the terminal, against bots or between them"),
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
