package cmd

import (
	"context"
	"flag"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/etnz/vitals"
	"github.com/etnz/vitals/date"
	"github.com/etnz/vitals/fx"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirst(t *testing.T) {
	assert.Equal(t, "b", first("", "b", "c"))
	assert.Equal(t, "", first("", ""))
	assert.Equal(t, "", first())
}

func TestConfigValidate(t *testing.T) {
	valid := Config{DataDir: t.TempDir(), Identity: "alice", RateTTL: fx.DefaultTTL, LogLevel: "warn"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"short ttl", func(c *Config) { c.RateTTL = time.Second }, "rate TTL"},
		{"long ttl", func(c *Config) { c.RateTTL = 48 * time.Hour }, "rate TTL"},
		{"identity", func(c *Config) { c.Identity = "../bob" }, "identity"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.modify(&c)
			assert.ErrorContains(t, c.Validate(), tt.want)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDataDir, dir)
	t.Setenv(EnvIdentity, "alice")
	t.Setenv(EnvRateTTL, "30m")
	t.Setenv(EnvOrigins, "http://a,http://b")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "alice", cfg.Identity)
	assert.Equal(t, vitals.CanonicalName, cfg.SchemeName)
	assert.Equal(t, 30*time.Minute, cfg.RateTTL)
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.Origins)
	assert.Equal(t, fx.DefaultURL, cfg.RateURL)
	assert.Contains(t, cfg.Environ(), EnvIdentity+"=alice")

	t.Setenv(EnvRateTTL, "soon")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, EnvRateTTL)
}

func TestConfigScheme(t *testing.T) {
	file := filepath.Join(t.TempDir(), "schemes.yaml")
	require.NoError(t, os.WriteFile(file, []byte("schemes:\n  - name: relaxed\n    base: canonical-v3\n"), 0644))

	c := Config{SchemeName: "relaxed", SchemesFile: file}
	s, err := c.Scheme()
	require.NoError(t, err)
	assert.Equal(t, "relaxed", s.Name)

	c = Config{SchemeName: "unknown"}
	_, err = c.Scheme()
	assert.Error(t, err)
}

func parse(t *testing.T, c interface{ SetFlags(*flag.FlagSet) }, args ...string) {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
}

func TestHealthFlags(t *testing.T) {
	today := date.New(2025, 3, 10)

	var h healthFlags
	parse(t, &h, "-sleep", "7.5", "-activity", "3", "-meal", "Good", "-water", "adequate", "-processed", "low", "-recent", "4,5")
	in, err := h.input(today)
	require.NoError(t, err)
	assert.Equal(t, today, in.On)
	require.NotNil(t, in.SleepHours)
	assert.Equal(t, 7.5, *in.SleepHours)
	assert.Equal(t, vitals.ActivityLevel(3), in.Activity)
	assert.Equal(t, vitals.MealGood, in.Meal)
	assert.Equal(t, vitals.WaterAdequate, in.Water)
	assert.Equal(t, vitals.ProcessedLow, in.ProcessedFood)
	assert.Equal(t, []vitals.ActivityLevel{4, 5}, in.RecentActivity)

	// absent flags are absent factors
	h = healthFlags{}
	parse(t, &h, "-d", "2025-01-02")
	in, err = h.input(today)
	require.NoError(t, err)
	assert.Equal(t, date.New(2025, 1, 2), in.On)
	assert.Nil(t, in.SleepHours)
	assert.Zero(t, in.Activity)

	invalid := [][]string{
		{"-activity", "6"},
		{"-meal", "excellent"},
		{"-sleep", "25"},
		{"-recent", "3,,4"},
		{"-d", "yesterday"},
	}
	for _, args := range invalid {
		h = healthFlags{}
		parse(t, &h, args...)
		_, err := h.input(today)
		assert.Error(t, err, "args %v", args)
	}
}

func TestPsychologyFlags(t *testing.T) {
	var p psychologyFlags
	parse(t, &p, "-stress", "calm", "-motivation", "high", "-fatigue", "fresh")
	in, err := p.input(date.New(2025, 3, 10))
	require.NoError(t, err)
	assert.True(t, in.Complete())

	p = psychologyFlags{}
	parse(t, &p, "-stress", "panic")
	_, err = p.input(date.New(2025, 3, 10))
	assert.Error(t, err)
}

func TestClaimTime(t *testing.T) {
	got, err := claimTime("2025-02-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC), got)

	got, err = claimTime("2025-02-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = claimTime("soon")
	assert.Error(t, err)
}

func TestCompletion(t *testing.T) {
	global := flag.NewFlagSet("vtl", flag.ContinueOnError)
	global.String("scheme", "", "")
	global.Bool("raw", false, "")

	root := Completion(global)
	assert.Contains(t, root.Flags, "scheme")
	assert.Len(t, root.Sub, len(Commands()))

	health := root.Sub["health"]
	require.NotNil(t, health)
	assert.ElementsMatch(t, []string{"poor", "normal", "good"}, health.Flags["meal"].Predict(""))
	assert.Contains(t, root.Sub["topic"].Args.Predict(""), "health-score")
}

func TestCommandNames(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range Commands() {
		assert.False(t, names[c.Name()], "duplicate command %q", c.Name())
		names[c.Name()] = true
		assert.NotEmpty(t, c.Synopsis())
	}
}

// testEnv points the configuration to a temporary journal and a local rate endpoint at 34.
func testEnv(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"rates":{"TRY":34}}`))
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	t.Setenv("TMPDIR", t.TempDir())
	t.Setenv(EnvDataDir, dir)
	t.Setenv(EnvIdentity, "alice")
	t.Setenv(EnvRateURL, srv.URL)
	t.Setenv(EnvRatePath, "$.rates.TRY")
	t.Setenv(EnvLogLevel, "error")
	*rawOutput = true
	t.Cleanup(func() { *rawOutput = false })
	return dir
}

type command interface {
	SetFlags(*flag.FlagSet)
	Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus
}

func run(t *testing.T, c command, args ...string) subcommands.ExitStatus {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
	return c.Execute(context.Background(), fs)
}

func TestJournaling(t *testing.T) {
	dir := testEnv(t)

	assert.Equal(t, subcommands.ExitSuccess, run(t, &incomeCmd{}, "-id", "salary", "-d", "2025-01-05", "-amount", "10000", "-category", "salary"))
	assert.Equal(t, subcommands.ExitSuccess, run(t, &expenseCmd{}, "-id", "rent", "-d", "2025-01-06", "-amount", "3400", "-note", "january"))
	assert.Equal(t, subcommands.ExitSuccess, run(t, &investCmd{}, "-id", "gold", "-d", "2025-01-07", "-amount", "1000", "-asset", "XAU"))
	assert.Equal(t, subcommands.ExitSuccess, run(t, &claimCmd{}, "-id", "gold", "-pl", "200", "-at", "2025-01-20"))
	assert.Equal(t, subcommands.ExitSuccess, run(t, &logHealthCmd{}, "-d", "2025-01-20", "-sleep", "8", "-activity", "3"))
	assert.Equal(t, subcommands.ExitSuccess, run(t, &logMoodCmd{}, "-d", "2025-01-20", "-stress", "calm"))

	// invalid records are not written
	assert.Equal(t, subcommands.ExitFailure, run(t, &claimCmd{}, "-id", "gold", "-pl", "10"))
	assert.Equal(t, subcommands.ExitUsageError, run(t, &incomeCmd{}, "-amount", "-5"))
	assert.Equal(t, subcommands.ExitUsageError, run(t, &expenseCmd{}))

	j, err := vitals.LoadJournal(dir, "alice")
	require.NoError(t, err)
	require.Len(t, j.Incomes, 1)
	assert.True(t, j.Incomes[0].AmountUSD.Decimal().Equal(decimal.RequireFromString("294.12")), "usd = %v", j.Incomes[0].AmountUSD)
	require.Len(t, j.Expenses, 1)
	assert.Equal(t, "january", j.Expenses[0].Note)

	inv, found := j.Investment("gold")
	require.True(t, found)
	assert.Equal(t, vitals.Claimed, inv.Status)
	assert.Equal(t, "XAU", inv.Asset)
	assert.Equal(t, date.New(2025, 1, 20), inv.ClaimDate())

	require.Len(t, j.Health, 1)
	assert.Nil(t, j.Health[0].RecentActivity)
	require.Len(t, j.Psychology, 1)
	assert.False(t, j.Psychology[0].Complete())

	// 10000 - 3400 + (1000 + 200) returned by the claim
	nw := j.NetWorth()
	assert.Equal(t, 7800.0, nw.Summary.NetWorth.Float())

	assert.Equal(t, subcommands.ExitSuccess, run(t, &netWorthCmd{}, "-d", "2025-01-31"))
	assert.Equal(t, subcommands.ExitSuccess, run(t, &dashboardCmd{}, "-d", "2025-01-31", "-json"))
	assert.Equal(t, subcommands.ExitSuccess, run(t, &rateCmd{}))
}

func TestScoreCommands(t *testing.T) {
	dir := testEnv(t)

	assert.Equal(t, subcommands.ExitSuccess, run(t, &healthCmd{}, "-sleep", "8", "-activity", "3", "-meal", "good", "-water", "good", "-processed", "low"))
	assert.Equal(t, subcommands.ExitSuccess, run(t, &mentalCmd{}, "-stress", "calm", "-motivation", "high", "-fatigue", "fresh"))
	assert.Equal(t, subcommands.ExitUsageError, run(t, &healthCmd{}, "-activity", "9"))
	assert.Equal(t, subcommands.ExitUsageError, run(t, &mentalCmd{}, "-fatigue", "asleep"))

	// scores are not recorded
	_, err := os.Stat(filepath.Join(dir, "alice.jsonl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTopic(t *testing.T) {
	*rawOutput = true
	defer func() { *rawOutput = false }()
	assert.Equal(t, subcommands.ExitSuccess, run(t, &topicCmd{}, "health-score"))
	assert.Equal(t, subcommands.ExitSuccess, run(t, &topicCmd{}, "-list"))
	assert.Equal(t, subcommands.ExitFailure, run(t, &topicCmd{}, "nope"))
}

func TestRunExtension(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script extension")
	}
	dir := t.TempDir()
	out := filepath.Join(dir, "env.txt")
	script := "#!/bin/sh\necho \"$" + EnvIdentity + " $1\" > " + out + "\nexit 3\n"
	path := filepath.Join(dir, ExtensionPrefix+"hello")
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))

	cfg := &Config{Identity: "alice"}
	code := runExtension(zerolog.Nop(), cfg, path, []string{"world"})
	assert.Equal(t, 3, code)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "alice world\n", string(content))

	found, _ := RunExtension("does-not-exist", nil)
	assert.False(t, found)
}
