// Package jobs provides scheduled background tasks for the handoff engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the service.
//
// # Available Jobs
//
// 1. StalledHandoffJob - Runs every 30 seconds to report orders stuck in
// AwaitingHandoff longer than the configured threshold
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(stalledOrdersHandler, threshold, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The watchdog is read-only: failures are logged and the next run retries
// from scratch, so no job error is ever fatal to the service.
package jobs
