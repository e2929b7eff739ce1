package console

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/bank-client-ledger/internal/app"
	"github.com/sheikh-saqib/bank-client-ledger/internal/config"
	"github.com/sheikh-saqib/bank-client-ledger/internal/models"
)

// Opener builds the application for a single command run.
type Opener func(ctx context.Context) (*app.App, error)

// Env carries what every command needs.
type Env struct {
	Open Opener
	In   io.Reader
	Out  io.Writer
	Err  io.Writer
}

// Commands returns all console commands.
func Commands(env Env) []subcommands.Command {
	return []subcommands.Command{
		&menuCmd{env: env},
		&addCmd{env: env},
		&findCmd{env: env},
		&transferCmd{env: env},
		&withdrawCmd{env: env},
	}
}

// memoryWarning is printed by one-shot commands: the memory store dies with the process.
const memoryWarning = "Warning: the memory store backend keeps nothing between runs; set STORE_BACKEND=postgres or use the menu command"

// run opens the app, calls fn and reports its error.
// oneShot commands warn when their changes cannot outlive the process.
func (env Env) run(ctx context.Context, oneShot bool, fn func(*app.App) error) subcommands.ExitStatus {
	a, err := env.Open(ctx)
	if err != nil {
		fmt.Fprintf(env.Err, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if oneShot && a.Backend == config.BackendMemory {
		fmt.Fprintln(env.Err, memoryWarning)
	}

	if err := fn(a); err != nil {
		fmt.Fprintf(env.Err, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type menuCmd struct{ env Env }

func (*menuCmd) Name() string     { return "menu" }
func (*menuCmd) Synopsis() string { return "interactive menu to add and find users" }
func (*menuCmd) Usage() string {
	return `menu

  Starts the interactive menu:
  1 - add user (name, email, balance)
  2 - find user by email
  3 - exit
`
}
func (*menuCmd) SetFlags(*flag.FlagSet) {}

func (c *menuCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, false, func(a *app.App) error {
		return RunMenu(ctx, a.Ledger, c.env.In, c.env.Out)
	})
}

type addCmd struct {
	env     Env
	name    string
	email   string
	balance string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a client" }
func (*addCmd) Usage() string {
	return "add -name <name> -email <email> [-balance <amount>]\n"
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "client name")
	f.StringVar(&c.email, "email", "", "client email")
	f.StringVar(&c.balance, "balance", "0", "opening balance, may be fractional")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	balance, err := decimal.NewFromString(c.balance)
	if err != nil {
		fmt.Fprintf(c.env.Err, "Error: invalid balance %q\n", c.balance)
		return subcommands.ExitUsageError
	}
	return c.env.run(ctx, true, func(a *app.App) error {
		return a.Ledger.Save(ctx, models.NewClient(c.name, c.email, balance))
	})
}

type findCmd struct {
	env   Env
	email string
}

func (*findCmd) Name() string     { return "find" }
func (*findCmd) Synopsis() string { return "print the client with the given email" }
func (*findCmd) Usage() string    { return "find -email <email>\n" }

func (c *findCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "client email, matched exactly")
}

func (c *findCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, true, func(a *app.App) error {
		client, err := a.Ledger.FindByEmail(ctx, c.email)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.env.Out, client)
		return nil
	})
}

type transferCmd struct {
	env    Env
	from   string
	to     string
	amount string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "move funds between two clients" }
func (*transferCmd) Usage() string {
	return "transfer -from <email> -to <email> -amount <amount>\n"
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "source client email")
	f.StringVar(&c.to, "to", "", "destination client email")
	f.StringVar(&c.amount, "amount", "", "amount to transfer, may be fractional")
}

func (c *transferCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, err := decimal.NewFromString(c.amount)
	if err != nil {
		fmt.Fprintf(c.env.Err, "Error: invalid amount %q\n", c.amount)
		return subcommands.ExitUsageError
	}
	return c.env.run(ctx, true, func(a *app.App) error {
		return a.Ledger.Transfer(ctx, c.from, c.to, amount)
	})
}

type withdrawCmd struct {
	env    Env
	email  string
	amount int64
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "withdraw whole units from a client" }
func (*withdrawCmd) Usage() string    { return "withdraw -email <email> -amount <units>\n" }

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "client email, case-insensitive")
	f.Int64Var(&c.amount, "amount", 0, "whole units to withdraw")
}

func (c *withdrawCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, true, func(a *app.App) error {
		return a.Ledger.Withdraw(ctx, c.email, c.amount)
	})
}
