package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager starts and stops the background jobs together.
type JobManager struct {
	outboxRelayJob *OutboxRelayJob
	outboxPurgeJob *OutboxPurgeJob
}

func NewJobManager(
	relay relayHandler,
	relayBatchSize int,
	purge purgeHandler,
	retention time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		outboxRelayJob: NewOutboxRelayJob(relay, relayBatchSize, logger),
		outboxPurgeJob: NewOutboxPurgeJob(purge, retention, logger),
	}
}

// StartAll starts every job. If one fails, those already running are stopped.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	if err := jm.outboxPurgeJob.Start(); err != nil {
		jm.outboxRelayJob.Stop()
		return fmt.Errorf("failed to start outbox purge job: %w", err)
	}

	return nil
}

func (jm *JobManager) StopAll() {
	jm.outboxPurgeJob.Stop()
	jm.outboxRelayJob.Stop()
}
