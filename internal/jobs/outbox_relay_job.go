package jobs

import (
	"context"
	"log/slog"

	"bookdesk/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type relayHandler interface {
	Handle(ctx context.Context, command commands.RelayOrderEventsCommand) (int, error)
}

// OutboxRelayJob publishes pending order events every second.
type OutboxRelayJob struct {
	handler   relayHandler
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewOutboxRelayJob(handler relayHandler, batchSize int, logger *slog.Logger) *OutboxRelayJob {
	return &OutboxRelayJob{
		handler:   handler,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "outbox_relay_job"),
	}
}

func (j *OutboxRelayJob) Start() error {
	if _, err := commands.NewRelayOrderEventsCommand(j.batchSize); err != nil {
		return err
	}

	if _, err := j.cron.AddFunc("* * * * * *", j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started (running every second)")
	return nil
}

// run drains the outbox in batches until a batch comes back short.
func (j *OutboxRelayJob) run() {
	ctx := context.Background()
	cmd, err := commands.NewRelayOrderEventsCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job misconfigured", "error", err)
		return
	}

	for {
		published, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
			return
		}
		if published > 0 {
			j.logger.DebugContext(ctx, "Order events relayed", "count", published)
		}
		if published < j.batchSize {
			return
		}
	}
}

// Stop waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
