// Package jobs runs the background work of the order engine on
// github.com/robfig/cron/v3 schedules.
//
// # Available Jobs
//
// 1. OutboxRelayJob - every second, publishes committed order events to Kafka
// 2. OutboxPurgeJob - hourly, deletes relayed events older than the retention
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, commands.DefaultRelayBatchSize,
//		purgeHandler, commands.DefaultOutboxRetention, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failed runs are logged and retried on the next tick. A publish failure
// leaves the claimed rows unpublished, so delivery is at least once.
package jobs
