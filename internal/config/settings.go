package config

import (
	"time"

	"eyebreak/internal/core/model"
)

// Settings defines user-tunable options for EyeBreak.
type Settings struct {
	Interval      time.Duration
	BreakDuration time.Duration

	OverlayOpacity float64
	Fullscreen     bool
	Message        string

	WakeCheckInterval time.Duration
}

// DefaultSettings returns default settings for EyeBreak.
func DefaultSettings() Settings {
	return Settings{
		Interval:          model.DefaultInterval,
		BreakDuration:     model.DefaultBreakDuration,
		OverlayOpacity:    0.85,
		Fullscreen:        true,
		Message:           "Eyes to the horizon",
		WakeCheckInterval: 10 * time.Second,
	}
}

// SchedulerConfig converts settings to SchedulerConfig.
func (settings Settings) SchedulerConfig() model.SchedulerConfig {
	return model.SchedulerConfig{
		Interval:      settings.Interval,
		BreakDuration: settings.BreakDuration,
	}.Normalize()
}

// OverlayAlpha converts the opacity to an 8-bit alpha value.
func (settings Settings) OverlayAlpha() uint8 {
	opacity := settings.OverlayOpacity
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return uint8(opacity * 255)
}
