package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/vitals/coach"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// coachCmd asks Gemini for advice on the dashboard.
type coachCmd struct {
	interactive bool
	model       string
}

func (*coachCmd) Name() string     { return "coach" }
func (*coachCmd) Synopsis() string { return "coaching note on the dashboard, by Gemini" }
func (*coachCmd) Usage() string {
	return `vtl coach [-i] [<question>...]

  Sends today's dashboard to Gemini and prints a short coaching note.
  With -i, starts a chat session where the coach can read the journal.

  The Gemini client is configured with GOOGLE_API_KEY (or GEMINI_API_KEY).
`
}

func (c *coachCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.interactive, "i", false, "start an interactive session")
	f.StringVar(&c.model, "model", coach.Model, "Gemini model")
}

func (c *coachCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ok := setup()
	if !ok {
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

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	if c.interactive {
		ch := coach.New(a.cfg.Identity, j, s, today(), a.log)
		ch.Model = c.model
		if err := ch.Start(ctx, client); err != nil {
			fmt.Fprintln(os.Stderr, "Error starting the coach:", err)
			return subcommands.ExitFailure
		}
		if err := ch.Run(ctx, os.Stdout, os.Stdin, printMarkdown, f.Args()...); err != nil {
			fmt.Fprintln(os.Stderr, "Coach failed:", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	d, err := s.BuildDashboard(a.cfg.Identity, j, today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building the dashboard: %v\n", err)
		return subcommands.ExitFailure
	}
	note, err := coach.Advise(ctx, client, c.model, d)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Coach failed:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(note)
	return subcommands.ExitSuccess
}
