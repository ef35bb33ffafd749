// Package scheduler triggers periodic jobs with robfig/cron, skipping activations that
// would overlap a run still in progress.
package scheduler
