// Package jobs provides scheduled background tasks for the postal service.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field in their schedules.
//
// # Available Jobs
//
//  1. DelaySimulationJob - runs SimulateDelay on every parcel that is not
//     Delivered or Lost (no default: scheduled only when DELAY_SCHEDULE is set)
//  2. SnapshotAutosaveJob - writes the in-memory store to its JSON snapshot
//     (default: every five minutes, memory storage only)
//
// # Usage
//
//	jobManager := jobs.NewJobManager(delayJob, autosaveJob)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A run that fails is logged and the schedule continues. Delay simulation
// failures are per parcel. A failed start stops the jobs already running.
package jobs
