package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/stockboard"
	"github.com/etnz/stockboard/renderer"
	"github.com/etnz/stockboard/scheduler"
	"github.com/google/subcommands"
)

type watchCmd struct {
	schedule string
	timeout  time.Duration
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "refresh every widget periodically" }
func (*watchCmd) Usage() string {
	return `sboard watch [-schedule <cron>]

  Refreshes every widget on a schedule and prints their rows, until
  interrupted. The schedule has a leading seconds field, e.g.
  "0 */5 * * * *" or "@every 1m".
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.schedule, "schedule", "", "Cron schedule. Defaults to $STOCKBOARD_SCHEDULE.")
	f.DurationVar(&c.timeout, "timeout", 30*time.Second, "Timeout of one refresh.")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	schedule := c.schedule
	if schedule == "" {
		schedule = a.cfg.Schedule
	}

	job := scheduler.NewRefreshJob(a.board, c.timeout, a.log)
	job.OnFrame = func(frame stockboard.Frame) {
		fmt.Print(renderer.RenderTerm(&frame))
		fmt.Println()
	}
	sched := scheduler.New(a.log)
	if err := sched.AddJob(schedule, job); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid schedule %q: %v\n", schedule, err)
		return subcommands.ExitUsageError
	}
	if err := sched.RunNow(job); err != nil {
		a.log.Error().Err(err).Msg("first refresh failed")
	}
	sched.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}
	sched.Stop()
	return subcommands.ExitSuccess
}
