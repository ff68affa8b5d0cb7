package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/etnz/vitals/api"
	"github.com/google/subcommands"
)

// serveCmd serves the JSON API.
type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve scores, net worth and dashboards over HTTP" }
func (*serveCmd) Usage() string {
	return `vtl serve [-addr <address>]

  Serves the JSON API until interrupted:

    GET  /health
    POST /v1/scores/health
    POST /v1/scores/mental
    GET  /v1/rate
    GET  /v1/{identity}/networth
    GET  /v1/{identity}/dashboard[?date=YYYY-MM-DD]
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address. Defaults to $"+EnvAddr+" or :8080")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ok := setup()
	if !ok {
		return subcommands.ExitUsageError
	}
	s, status := a.scheme()
	if status != subcommands.ExitSuccess {
		return status
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := api.New(api.Config{
		Addr:    first(c.addr, a.cfg.Addr),
		Log:     a.log,
		Scheme:  s,
		Rates:   a.rates(),
		DataDir: a.cfg.DataDir,
		Origins: a.cfg.Origins,
		Today:   today,
	})
	if err := srv.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
