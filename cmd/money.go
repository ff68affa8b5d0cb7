package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/vitals"
	"github.com/etnz/vitals/date"
	"github.com/google/subcommands"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// flowFlags are the flags shared by income and expense.
type flowFlags struct {
	id       string
	day      string
	amount   string
	category string
	note     string
}

func (c *flowFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Identifier of the record. Defaults to a random UUID.")
	f.StringVar(&c.day, "d", "", "Day of the record (YYYY-MM-DD). Defaults to today.")
	f.StringVar(&c.amount, "amount", "", "Amount in "+vitals.Primary)
	f.StringVar(&c.category, "category", "", "Category of the record")
	f.StringVar(&c.note, "note", "", "Free text note")
}

// parse returns the id, day and amount of the record.
func (c *flowFlags) parse() (id string, on date.Date, amount decimal.Decimal, err error) {
	id = c.id
	if id == "" {
		id = uuid.NewString()
	}
	if on, err = parseDay(c.day, today()); err != nil {
		return
	}
	amount, err = parseAmount(c.amount)
	return
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("-amount is required")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// incomeCmd records money received.
type incomeCmd struct {
	flowFlags
}

func (*incomeCmd) Name() string     { return "income" }
func (*incomeCmd) Synopsis() string { return "record an income" }
func (*incomeCmd) Usage() string {
	return `vtl income -amount <amount> [-d <day>] [-category <category>] [-note <note>] [-id <id>]

  Records money received, in ` + vitals.Primary + `. The amount in ` + vitals.Secondary + ` is converted with the current exchange rate.
`
}

func (c *incomeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ok := setup()
	if !ok {
		return subcommands.ExitUsageError
	}
	id, on, amount, err := c.parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid input: %v\n", err)
		return subcommands.ExitUsageError
	}
	rate := a.rates().Rate(ctx)
	inc, err := vitals.NewIncome(id, on, amount, rate, c.category)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid income: %v\n", err)
		return subcommands.ExitUsageError
	}
	inc.Note = c.note
	if status := a.record(inc); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Income %s recorded: %s\n", inc.ID, vitals.FormatDual(inc.Amount, inc.AmountUSD))
	return subcommands.ExitSuccess
}

// expenseCmd records money spent.
type expenseCmd struct {
	flowFlags
}

func (*expenseCmd) Name() string     { return "expense" }
func (*expenseCmd) Synopsis() string { return "record an expense" }
func (*expenseCmd) Usage() string {
	return `vtl expense -amount <amount> [-d <day>] [-category <category>] [-note <note>] [-id <id>]

  Records money spent, in ` + vitals.Primary + `. The amount in ` + vitals.Secondary + ` is converted with the current exchange rate.
`
}

func (c *expenseCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ok := setup()
	if !ok {
		return subcommands.ExitUsageError
	}
	id, on, amount, err := c.parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid input: %v\n", err)
		return subcommands.ExitUsageError
	}
	rate := a.rates().Rate(ctx)
	exp, err := vitals.NewExpense(id, on, amount, rate, c.category)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid expense: %v\n", err)
		return subcommands.ExitUsageError
	}
	exp.Note = c.note
	if status := a.record(exp); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Expense %s recorded: %s\n", exp.ID, vitals.FormatDual(exp.Amount, exp.AmountUSD))
	return subcommands.ExitSuccess
}

// investCmd records capital put in an asset.
type investCmd struct {
	flowFlags
	asset string
}

func (*investCmd) Name() string     { return "invest" }
func (*investCmd) Synopsis() string { return "record an investment" }
func (*investCmd) Usage() string {
	return `vtl invest -amount <amount> [-asset <asset>] [-d <day>] [-id <id>]

  Records capital invested, in ` + vitals.Primary + `. The investment stays active until claimed.
`
}

func (c *investCmd) SetFlags(f *flag.FlagSet) {
	c.flowFlags.SetFlags(f)
	f.StringVar(&c.asset, "asset", "", "Asset invested in")
}

func (c *investCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ok := setup()
	if !ok {
		return subcommands.ExitUsageError
	}
	id, on, amount, err := c.parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid input: %v\n", err)
		return subcommands.ExitUsageError
	}
	rate := a.rates().Rate(ctx)
	inv, err := vitals.NewInvestment(id, on, c.asset, amount, rate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid investment: %v\n", err)
		return subcommands.ExitUsageError
	}
	if status := a.record(inv); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Investment %s recorded: %s\n", inv.ID, vitals.FormatDual(inv.Invested, inv.InvestedUSD))
	return subcommands.ExitSuccess
}

// claimCmd closes an active investment.
type claimCmd struct {
	id string
	pl string
	at string
}

func (*claimCmd) Name() string     { return "claim" }
func (*claimCmd) Synopsis() string { return "claim an investment" }
func (*claimCmd) Usage() string {
	return `vtl claim -id <id> -pl <profit> [-at <time>]

  Claims an active investment with its realized profit, or loss when negative.
  An investment can be claimed only once.
`
}

func (c *claimCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Identifier of the investment")
	f.StringVar(&c.pl, "pl", "0", "Realized profit or loss in "+vitals.Primary)
	f.StringVar(&c.at, "at", "", "Time of the claim (RFC 3339 or YYYY-MM-DD). Defaults to now.")
}

// claimTime parses s as RFC 3339 or as a day, or returns now when s is empty.
func claimTime(s string) (time.Time, error) {
	if s == "" {
		return now().UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}

func (c *claimCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ok := setup()
	if !ok {
		return subcommands.ExitUsageError
	}
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "-id is required")
		return subcommands.ExitUsageError
	}
	pl, err := decimal.NewFromString(c.pl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid profit %q: %v\n", c.pl, err)
		return subcommands.ExitUsageError
	}
	at, err := claimTime(c.at)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid claim time %q: %v\n", c.at, err)
		return subcommands.ExitUsageError
	}

	j, status := a.journal()
	if status != subcommands.ExitSuccess {
		return status
	}
	inv, found := j.Investment(c.id)
	if !found {
		fmt.Fprintf(os.Stderr, "Unknown investment %q\n", c.id)
		return subcommands.ExitFailure
	}
	inv, err = inv.Claim(at, pl, a.rates().Rate(ctx))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot claim: %v\n", err)
		return subcommands.ExitFailure
	}
	claim := vitals.Claim{ID: inv.ID, At: inv.ClaimedAt, RealizedPL: inv.RealizedPL, RealizedPLUSD: inv.RealizedPLUSD, Rate: inv.ClaimRate}
	if status := a.record(claim); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Investment %s claimed: %s returned\n", inv.ID, vitals.FormatDual(inv.Returned(), inv.ReturnedUSD()))
	return subcommands.ExitSuccess
}
