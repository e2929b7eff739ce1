package console

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/bank-client-ledger/internal/ledger"
	"github.com/sheikh-saqib/bank-client-ledger/internal/models"
)

const menu = `1 - add user
2 - find user
3 - exit app
`

// RunMenu runs the interactive loop until the user picks exit or input ends.
// Input is read word by word, so names and emails cannot contain spaces.
func RunMenu(ctx context.Context, l *ledger.Ledger, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)

	next := func(prompt string) (string, bool) {
		if prompt != "" {
			fmt.Fprintln(out, prompt)
		}
		if !sc.Scan() {
			return "", false
		}
		return sc.Text(), true
	}

	for {
		choice, ok := next(menu)
		if !ok {
			return sc.Err()
		}
		switch choice {
		case "1":
			name, ok1 := next("Enter name:")
			email, ok2 := next("Enter email:")
			raw, ok3 := next("Enter balance:")
			if !(ok1 && ok2 && ok3) {
				return sc.Err()
			}
			balance, err := decimal.NewFromString(raw)
			if err != nil {
				fmt.Fprintf(out, "invalid balance %q\n", raw)
				continue
			}
			if err := l.Save(ctx, models.NewClient(name, email, balance)); err != nil {
				return err
			}
		case "2":
			email, ok := next("Enter email:")
			if !ok {
				return sc.Err()
			}
			c, err := l.FindByEmail(ctx, email)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fmt.Fprintln(out, c)
		case "3":
			return nil
		}
	}
}
