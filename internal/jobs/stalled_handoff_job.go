package jobs

import (
	"context"
	"log/slog"
	"time"

	"handoff/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// StalledHandoffJob periodically reports orders stuck in AwaitingHandoff.
// Runs every 30 seconds; it only reads committed state and takes no locks.
type StalledHandoffJob struct {
	handler   queries.GetStalledOrdersQueryHandler
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStalledHandoffJob creates a watchdog for abandoned handoffs.
// Orders awaiting a new rider longer than threshold are logged each run.
func NewStalledHandoffJob(
	handler queries.GetStalledOrdersQueryHandler,
	threshold time.Duration,
	logger *slog.Logger,
) *StalledHandoffJob {
	return &StalledHandoffJob{
		handler:   handler,
		threshold: threshold,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "stalled_handoff_job"),
	}
}

// Start begins the watchdog to run every 30 seconds.
func (j *StalledHandoffJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		query, queryErr := queries.NewGetStalledOrdersQuery(j.threshold)
		if queryErr != nil {
			j.logger.ErrorContext(ctx, "Stalled handoff query construction failed", "error", queryErr)
			return
		}

		stalled, handleErr := j.handler.Handle(ctx, query)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Stalled handoff job failed", "error", handleErr)
			return
		}

		for _, s := range stalled {
			j.logger.WarnContext(ctx, "Order awaiting handoff past threshold",
				"order_id", s.OrderID,
				"waiting_since", s.UpdatedAt,
				"threshold", j.threshold,
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stalled handoff job started (running every 30 seconds)")
	return nil
}

// Stop stops the watchdog.
func (j *StalledHandoffJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stalled handoff job stopped")
}
