// Package cmd implements the vtl command line application.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/etnz/vitals"
	"github.com/etnz/vitals/fx"
	"github.com/joho/godotenv"
)

// Environment variables, used when the matching global flag is not set.
const (
	EnvDataDir  = "VITALS_DATA"
	EnvIdentity = "VITALS_IDENTITY"
	EnvScheme   = "VITALS_SCHEME"
	EnvSchemes  = "VITALS_SCHEMES"
	EnvRateURL  = "VITALS_RATE_URL"
	EnvRatePath = "VITALS_RATE_PATH"
	EnvRateTTL  = "VITALS_RATE_TTL"
	EnvLogLevel = "VITALS_LOG_LEVEL"
	EnvAddr     = "VITALS_ADDR"
	EnvOrigins  = "VITALS_ORIGINS"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	dataDir     = flag.String("data", "", "Directory of the journals. Defaults to $"+EnvDataDir+" or $HOME/.vitals")
	identity    = flag.String("u", "", "Identity whose journal is used. Defaults to $"+EnvIdentity+" or $USER")
	schemeName  = flag.String("scheme", "", "Scoring scheme. Defaults to $"+EnvScheme+" or "+vitals.CanonicalName)
	schemesFile = flag.String("schemes", "", "YAML file of custom scoring schemes. Defaults to $"+EnvSchemes)
	logLevel    = flag.String("log", "", "Log level (debug, info, warn, error). Defaults to $"+EnvLogLevel+" or warn")
	rawOutput   = flag.Bool("raw", false, "print raw markdown instead of rendering it for the terminal")
)

// Config is the resolved configuration of a run.
type Config struct {
	DataDir     string
	Identity    string
	SchemeName  string
	SchemesFile string
	RateURL     string
	RatePath    string
	RateTTL     time.Duration
	LogLevel    string
	Addr        string
	Origins     []string
}

// LoadConfig resolves the configuration from the global flags, the environment and a
// .env file in the current directory, in that order.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	home, _ := os.UserHomeDir()
	cfg := &Config{
		DataDir:     first(*dataDir, os.Getenv(EnvDataDir), filepath.Join(home, ".vitals")),
		Identity:    first(*identity, os.Getenv(EnvIdentity), os.Getenv("USER"), "me"),
		SchemeName:  first(*schemeName, os.Getenv(EnvScheme), vitals.CanonicalName),
		SchemesFile: first(*schemesFile, os.Getenv(EnvSchemes)),
		RateURL:     first(os.Getenv(EnvRateURL), fx.DefaultURL),
		RatePath:    first(os.Getenv(EnvRatePath), fx.DefaultPath),
		LogLevel:    first(*logLevel, os.Getenv(EnvLogLevel), "warn"),
		Addr:        first(os.Getenv(EnvAddr), ":8080"),
		RateTTL:     fx.DefaultTTL,
	}
	if origins := os.Getenv(EnvOrigins); origins != "" {
		cfg.Origins = strings.Split(origins, ",")
	}
	if ttl := os.Getenv(EnvRateTTL); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvRateTTL, err)
		}
		cfg.RateTTL = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	var errs error
	if c.RateTTL < fx.MinTTL || c.RateTTL > fx.MaxTTL {
		errs = errors.Join(errs, fmt.Errorf("rate TTL %v must be between %v and %v", c.RateTTL, fx.MinTTL, fx.MaxTTL))
	}
	if _, err := vitals.JournalPath(c.DataDir, c.Identity); err != nil {
		errs = errors.Join(errs, fmt.Errorf("identity: %w", err))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = errors.Join(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	return errs
}

// Scheme returns the selected scoring scheme.
func (c *Config) Scheme() (vitals.Scheme, error) {
	var profiles map[string]vitals.Scheme
	if c.SchemesFile != "" {
		var err error
		if profiles, err = vitals.LoadSchemes(c.SchemesFile); err != nil {
			return vitals.Scheme{}, err
		}
	}
	return vitals.LookupScheme(c.SchemeName, profiles)
}

// first returns the first non empty value.
func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
