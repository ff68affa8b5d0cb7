package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/vitals"
	"github.com/etnz/vitals/fx"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// groups are the subcommands of vtl, in help order.
var groups = []struct {
	name string
	cmds []subcommands.Command
}{
	{"scores", []subcommands.Command{&healthCmd{}, &mentalCmd{}}},
	{"journal", []subcommands.Command{&logHealthCmd{}, &logMoodCmd{}, &incomeCmd{}, &expenseCmd{}, &investCmd{}, &claimCmd{}}},
	{"reports", []subcommands.Command{&netWorthCmd{}, &dashboardCmd{}, &rateCmd{}, &coachCmd{}}},
	{"server", []subcommands.Command{&serveCmd{}}},
	{"help", []subcommands.Command{&topicCmd{}}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, g := range groups {
		for _, cmd := range g.cmds {
			c.Register(cmd, g.name)
		}
	}
}

// Commands returns every subcommand.
func Commands() []subcommands.Command {
	var all []subcommands.Command
	for _, g := range groups {
		all = append(all, g.cmds...)
	}
	return all
}

// app is what every subcommand needs: the configuration and a logger.
type app struct {
	cfg *Config
	log zerolog.Logger
}

// setup loads the configuration, it prints the error and returns false on failure.
func setup() (*app, bool) {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in configuration: %v\n", err)
		return nil, false
	}
	return &app{cfg: cfg, log: newLogger(cfg.LogLevel, os.Stderr)}, true
}

// newLogger creates a structured logger writing to w, pretty printed on terminals.
func newLogger(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	if f, ok := w.(*os.File); ok && isTerminal(f) {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// rates returns the exchange rate service.
func (a *app) rates() *fx.Service {
	return fx.NewService(fx.NewHTTPSource(a.cfg.RateURL, a.cfg.RatePath), a.cfg.RateTTL, fx.TempFileStore(), a.log)
}

func (a *app) scheme() (vitals.Scheme, subcommands.ExitStatus) {
	s, err := a.cfg.Scheme()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error selecting the scoring scheme: %v\n", err)
		return s, subcommands.ExitUsageError
	}
	return s, subcommands.ExitSuccess
}

func (a *app) journal() (*vitals.Journal, subcommands.ExitStatus) {
	j, err := vitals.LoadJournal(a.cfg.DataDir, a.cfg.Identity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading journal: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	return j, subcommands.ExitSuccess
}

// record appends a single entry into the identity journal.
func (a *app) record(entry any) subcommands.ExitStatus {
	if err := vitals.AppendEntry(a.cfg.DataDir, a.cfg.Identity, entry); err != nil {
		fmt.Fprintf(os.Stderr, "Error recording %T: %v\n", entry, err)
		return subcommands.ExitFailure
	}
	path, _ := vitals.JournalPath(a.cfg.DataDir, a.cfg.Identity)
	a.log.Info().Str("journal", path).Type("entry", entry).Msg("entry recorded")
	return subcommands.ExitSuccess
}

// printMarkdown renders md for the terminal, or prints it raw with -raw.
func printMarkdown(md string) {
	if *rawOutput {
		fmt.Println(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Println(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

// now is the clock of the commands.
var now = time.Now
