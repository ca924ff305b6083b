package scheduler

import (
	"context"
	"time"

	"github.com/etnz/stockboard"
	"github.com/rs/zerolog"
)

// RefreshJob refreshes every widget of a board, the way the home screen
// update tick does.
type RefreshJob struct {
	Board   *stockboard.Board
	Timeout time.Duration
	// OnFrame receives every refreshed frame, it may be nil.
	OnFrame func(stockboard.Frame)
	log     zerolog.Logger
}

// NewRefreshJob returns a job refreshing board within timeout.
func NewRefreshJob(board *stockboard.Board, timeout time.Duration, log zerolog.Logger) *RefreshJob {
	return &RefreshJob{Board: board, Timeout: timeout, log: log.With().Str("job", "refresh").Logger()}
}

func (j *RefreshJob) Name() string { return "refresh" }

func (j *RefreshJob) Run() error {
	ctx := context.Background()
	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}
	frames, err := j.Board.RefreshAll(ctx)
	for _, f := range frames {
		if j.OnFrame != nil {
			j.OnFrame(f)
		}
	}
	if err != nil {
		return err
	}
	j.log.Debug().Int("widgets", len(frames)).Msg("widgets refreshed")
	return nil
}

// PruneJob drops the portfolio records no widget uses anymore.
type PruneJob struct {
	Board *stockboard.Board
	log   zerolog.Logger
}

// NewPruneJob returns a job pruning board.
func NewPruneJob(board *stockboard.Board, log zerolog.Logger) *PruneJob {
	return &PruneJob{Board: board, log: log.With().Str("job", "prune").Logger()}
}

func (j *PruneJob) Name() string { return "prune" }

func (j *PruneJob) Run() error {
	n, err := j.Board.Prune()
	if err != nil {
		return err
	}
	if n > 0 {
		j.log.Info().Int("removed", n).Msg("portfolio pruned")
	}
	return nil
}
