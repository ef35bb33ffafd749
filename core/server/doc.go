// Package server holds the configuration of the HTTP query server and of the cron schedule
// that triggers periodic aggregation runs.
package server
