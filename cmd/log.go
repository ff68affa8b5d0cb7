package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/vitals"
	"github.com/etnz/vitals/renderer"
	"github.com/google/subcommands"
)

// logHealthCmd records a day of health logging.
type logHealthCmd struct {
	healthFlags
}

func (*logHealthCmd) Name() string     { return "log-health" }
func (*logHealthCmd) Synopsis() string { return "record a day of health logging" }
func (*logHealthCmd) Usage() string {
	return `vtl log-health [-d <day>] [-sleep <hours>] [-activity <1-5>] [-meal <quality>] [-water <intake>] [-processed <level>] [-illness <status>]

  Records a day of health logging in the journal and prints its Health Score.
  The recent activity is read from the journal, unless -recent is set.
`
}

func (c *logHealthCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ok := setup()
	if !ok {
		return subcommands.ExitUsageError
	}
	s, status := a.scheme()
	if status != subcommands.ExitSuccess {
		return status
	}
	in, err := c.input(today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid input: %v\n", err)
		return subcommands.ExitUsageError
	}
	j, status := a.journal()
	if status != subcommands.ExitSuccess {
		return status
	}

	// the trailing activity is derived from the journal, it is not recorded.
	scored := in
	in.RecentActivity = nil
	if scored.RecentActivity == nil {
		scored.RecentActivity = vitals.RecentActivity(j.Activity(), in.On, max(s.Overtraining.Days, 1))
	}
	b, err := s.HealthScore(scored)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing the health score: %v\n", err)
		return subcommands.ExitFailure
	}
	if status := a.record(in); status != subcommands.ExitSuccess {
		return status
	}
	printMarkdown(renderer.RenderHealthBreakdown(b))
	return subcommands.ExitSuccess
}

// logMoodCmd records a day of psychology logging.
type logMoodCmd struct {
	psychologyFlags
}

func (*logMoodCmd) Name() string     { return "log-mood" }
func (*logMoodCmd) Synopsis() string { return "record a day of psychology logging" }
func (*logMoodCmd) Usage() string {
	return `vtl log-mood [-d <day>] [-stress <level>] [-motivation <level>] [-fatigue <level>]

  Records a day of psychology logging in the journal and prints its Mental Score.
  Partial logs are recorded too, but they have no score.
`
}

func (c *logMoodCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ok := setup()
	if !ok {
		return subcommands.ExitUsageError
	}
	s, status := a.scheme()
	if status != subcommands.ExitSuccess {
		return status
	}
	in, err := c.input(today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid input: %v\n", err)
		return subcommands.ExitUsageError
	}
	b, complete, err := s.MentalScore(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid input: %v\n", err)
		return subcommands.ExitUsageError
	}
	if status := a.record(in); status != subcommands.ExitSuccess {
		return status
	}
	printMarkdown(renderer.RenderMentalBreakdown(b, complete))
	return subcommands.ExitSuccess
}
