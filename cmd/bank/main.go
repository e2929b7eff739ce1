package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/sheikh-saqib/bank-client-ledger/internal/app"
	"github.com/sheikh-saqib/bank-client-ledger/internal/config"
	"github.com/sheikh-saqib/bank-client-ledger/internal/console"
)

var configPath = flag.String("config", "config.yaml", "path to the YAML config file")

func open(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg, logger)
}

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	env := console.Env{Open: open, In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
	for _, c := range console.Commands(env) {
		commander.Register(c, "clients")
	}

	flag.Parse()
	if flag.NArg() == 0 {
		// no command: behave like the classic interactive client
		_ = flag.CommandLine.Parse(append(os.Args[1:], "menu"))
	}
	os.Exit(int(commander.Execute(context.Background())))
}
