package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/stockboard/scheduler"
	"github.com/etnz/stockboard/server"
	"github.com/google/subcommands"
)

type serveCmd struct {
	port     int
	schedule string
	prune    string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the widgets over HTTP" }
func (*serveCmd) Usage() string {
	return `sboard serve [-port <port>] [-schedule <cron>] [-prune <cron>]

  Serves widget frames and portfolio records as JSON, and refreshes every
  widget on a schedule so that polled frames stay warm. See 'sboard topic serve'.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.port, "port", 0, "Listening port. Defaults to $STOCKBOARD_PORT.")
	f.StringVar(&c.schedule, "schedule", "", "Refresh schedule. Defaults to $STOCKBOARD_SCHEDULE.")
	f.StringVar(&c.prune, "prune", "@daily", "Prune schedule, empty to never prune.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	port := c.port
	if port == 0 {
		port = a.cfg.Port
	}
	schedule := c.schedule
	if schedule == "" {
		schedule = a.cfg.Schedule
	}

	sched := scheduler.New(a.log)
	if err := sched.AddJob(schedule, scheduler.NewRefreshJob(a.board, 30*time.Second, a.log)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid schedule %q: %v\n", schedule, err)
		return subcommands.ExitUsageError
	}
	if c.prune != "" {
		if err := sched.AddJob(c.prune, scheduler.NewPruneJob(a.board, a.log)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid prune schedule %q: %v\n", c.prune, err)
			return subcommands.ExitUsageError
		}
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{Port: port, Log: a.log, Board: a.board})
	errs := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errs:
		fmt.Fprintf(os.Stderr, "Error: server failed: %v\n", err)
		return subcommands.ExitFailure
	case <-quit:
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error().Err(err).Msg("server forced to shutdown")
	}
	return subcommands.ExitSuccess
}
