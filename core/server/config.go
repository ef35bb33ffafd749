package server

import (
	"time"

	"github.com/robfig/cron/v3"
)

// Config holds configuration for the HTTP server and the run scheduler.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// Schedule is the cron expression used to trigger pipeline runs. Empty disables scheduling.
	Schedule string `mapstructure:"schedule" default:"@hourly"`
	// RunOnStart triggers one pipeline run as soon as the server starts.
	RunOnStart bool `mapstructure:"run_on_start" default:"false"`
	// CacheTTLSeconds is how long query results are served from memory. Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"60"`
}

// CacheTTL returns the query cache time-to-live.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// IsValidSchedule checks if the configured schedule parses as a cron expression.
// An empty schedule is valid and means "never".
func (c Config) IsValidSchedule() bool {
	if c.Schedule == "" {
		return true
	}
	_, err := cron.ParseStandard(c.Schedule)
	return err == nil
}
