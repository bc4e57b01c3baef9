package model

import "time"

const (
	// DefaultInterval is the countdown between two breaks.
	DefaultInterval = 20 * time.Minute
	// DefaultBreakDuration is the length of a single break.
	DefaultBreakDuration = 30 * time.Second
)

// SchedulerConfig contains runtime settings for the break scheduler.
type SchedulerConfig struct {
	Interval      time.Duration
	BreakDuration time.Duration
}

// DefaultSchedulerConfig returns the 20 minute / 30 second cycle.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Interval:      DefaultInterval,
		BreakDuration: DefaultBreakDuration,
	}
}

// Normalize replaces non-positive values with defaults.
func (config SchedulerConfig) Normalize() SchedulerConfig {
	if config.Interval <= 0 {
		config.Interval = DefaultInterval
	}
	if config.BreakDuration <= 0 {
		config.BreakDuration = DefaultBreakDuration
	}
	return config
}
