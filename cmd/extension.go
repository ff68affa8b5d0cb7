package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// ExtensionPrefix is the prefix of external subcommands: 'vtl foo' runs vtl-foo.
const ExtensionPrefix = "vtl-"

// Environ returns the configuration as environment variables, for extensions.
func (c *Config) Environ() []string {
	return []string{
		EnvDataDir + "=" + c.DataDir,
		EnvIdentity + "=" + c.Identity,
		EnvScheme + "=" + c.SchemeName,
		EnvSchemes + "=" + c.SchemesFile,
		EnvRateURL + "=" + c.RateURL,
		EnvRatePath + "=" + c.RatePath,
		EnvRateTTL + "=" + c.RateTTL.String(),
		EnvLogLevel + "=" + c.LogLevel,
		EnvAddr + "=" + c.Addr,
		EnvOrigins + "=" + strings.Join(c.Origins, ","),
	}
}

// RunExtension attempts to find and execute an external vtl-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := ExtensionPrefix + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		return false, 0
	}
	a, ok := setup()
	if !ok {
		return true, 2
	}
	return true, runExtension(a.log, a.cfg, lp, args)
}

func runExtension(log zerolog.Logger, cfg *Config, path string, args []string) int {
	cmd := exec.Command(path, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	// global flags are passed down as environment variables
	cmd.Env = append(os.Environ(), cfg.Environ()...)

	log.Debug().Str("extension", path).Strs("args", args).Msg("running extension")
	if err := cmd.Run(); err != nil {
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			return exit.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", path, err)
		return 1
	}
	return 0
}
