package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/vitals/renderer"
	"github.com/google/subcommands"
)

// netWorthCmd prints the net worth and its daily snapshots.
type netWorthCmd struct {
	day string
}

func (*netWorthCmd) Name() string     { return "networth" }
func (*netWorthCmd) Synopsis() string { return "net worth report" }
func (*netWorthCmd) Usage() string {
	return `vtl networth [-d <day>]

  Prints the net worth as of a day, with one snapshot per day with money records.
  See 'vtl topic net-worth'.
`
}

func (c *netWorthCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, "d", "", "Day of the report (YYYY-MM-DD). Defaults to today.")
}

func (c *netWorthCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ok := setup()
	if !ok {
		return subcommands.ExitUsageError
	}
	on, err := parseDay(c.day, today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing day: %v\n", err)
		return subcommands.ExitUsageError
	}
	j, status := a.journal()
	if status != subcommands.ExitSuccess {
		return status
	}
	printMarkdown(renderer.RenderNetWorth(j.Upto(on).NetWorth()))
	return subcommands.ExitSuccess
}

// dashboardCmd prints the dashboard of a day.
type dashboardCmd struct {
	day    string
	asJSON bool
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "metrics, avatar and alerts of the last 30 days" }
func (*dashboardCmd) Usage() string {
	return `vtl dashboard [-d <day>] [-json]

  Prints the metrics of the last 30 days, the avatar state and the alerts.
  See 'vtl topic avatar' and 'vtl topic alerts'.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, "d", "", "Day of the dashboard (YYYY-MM-DD). Defaults to today.")
	f.BoolVar(&c.asJSON, "json", false, "print the dashboard as JSON")
}

func (c *dashboardCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ok := setup()
	if !ok {
		return subcommands.ExitUsageError
	}
	on, err := parseDay(c.day, today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing day: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, status := a.scheme()
	if status != subcommands.ExitSuccess {
		return status
	}
	j, status := a.journal()
	if status != subcommands.ExitSuccess {
		return status
	}
	d, err := s.BuildDashboard(a.cfg.Identity, j, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building the dashboard: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding the dashboard: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderDashboard(d))
	return subcommands.ExitSuccess
}

// rateCmd prints the current exchange rate.
type rateCmd struct{}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "current exchange rate" }
func (*rateCmd) Usage() string {
	return `vtl rate

  Prints the current exchange rate, with its source and age.
  A stale or fallback rate is printed when the source is unavailable. See 'vtl topic exchange-rate'.
`
}

func (*rateCmd) SetFlags(*flag.FlagSet) {}

func (*rateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ok := setup()
	if !ok {
		return subcommands.ExitUsageError
	}
	printMarkdown(renderer.RenderRate(a.rates().Rate(ctx)))
	return subcommands.ExitSuccess
}
