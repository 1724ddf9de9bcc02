package jobs

import (
	"context"
	"log/slog"
	"time"

	"bookdesk/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type purgeHandler interface {
	Handle(ctx context.Context, command commands.PurgeOrderEventsCommand) (int64, error)
}

// OutboxPurgeJob removes relayed events past their retention once an hour.
type OutboxPurgeJob struct {
	handler   purgeHandler
	retention time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewOutboxPurgeJob(handler purgeHandler, retention time.Duration, logger *slog.Logger) *OutboxPurgeJob {
	return &OutboxPurgeJob{
		handler:   handler,
		retention: retention,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "outbox_purge_job"),
	}
}

func (j *OutboxPurgeJob) Start() error {
	if _, err := commands.NewPurgeOrderEventsCommand(j.retention); err != nil {
		return err
	}

	if _, err := j.cron.AddFunc("0 0 * * * *", j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox purge job started (running hourly)", "retention", j.retention)
	return nil
}

func (j *OutboxPurgeJob) run() {
	ctx := context.Background()
	cmd, err := commands.NewPurgeOrderEventsCommand(j.retention)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox purge job misconfigured", "error", err)
		return
	}

	deleted, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox purge job failed", "error", err)
		return
	}
	if deleted > 0 {
		j.logger.InfoContext(ctx, "Relayed order events purged", "count", deleted)
	}
}

func (j *OutboxPurgeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox purge job stopped")
}
