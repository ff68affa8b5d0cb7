// Command vtl scores health and psychology logs, tracks money across two currencies and
// summarizes the last 30 days in a dashboard.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/vitals/cmd"
	"github.com/google/subcommands"
)

func main() {
	// exits when the shell asks for completions
	cmd.Completion(flag.CommandLine).Complete("vtl")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	if name := flag.Arg(0); name != "" && !known(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// known reports whether name is a registered subcommand.
func known(c *subcommands.Commander, name string) (found bool) {
	c.VisitCommands(func(_ *subcommands.CommandGroup, sc subcommands.Command) {
		if sc.Name() == name {
			found = true
		}
	})
	return found
}
