package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appDirName     = "eyebreak"
	configFileName = "config.yaml"
)

// ErrInvalid indicates the config file exists but cannot be parsed.
var ErrInvalid = errors.New("invalid config")

type yamlSettings struct {
	IntervalMinutes  int     `yaml:"interval_minutes"`
	BreakSeconds     int     `yaml:"break_seconds"`
	OverlayOpacity   float64 `yaml:"overlay_opacity"`
	Fullscreen       *bool   `yaml:"fullscreen"`
	Message          string  `yaml:"message"`
	WakeCheckSeconds int     `yaml:"wake_check_seconds"`
}

// Load reads settings from YAML at path, or from the default location when
// path is empty. A missing file yields default settings.
func Load(path string) (Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		resolved, err := DefaultPath()
		if err != nil {
			return settings, err
		}
		path = resolved
	}

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse config yaml %s: %w: %v", path, ErrInvalid, err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appDirName, configFileName), nil
}

func applyYamlSettings(settings *Settings, fileData yamlSettings) {
	if fileData.IntervalMinutes > 0 {
		settings.Interval = time.Duration(fileData.IntervalMinutes) * time.Minute
	}
	if fileData.BreakSeconds > 0 {
		settings.BreakDuration = time.Duration(fileData.BreakSeconds) * time.Second
	}
	if fileData.WakeCheckSeconds > 0 {
		settings.WakeCheckInterval = time.Duration(fileData.WakeCheckSeconds) * time.Second
	}

	if fileData.OverlayOpacity >= 0.5 && fileData.OverlayOpacity <= 1 {
		settings.OverlayOpacity = fileData.OverlayOpacity
	}
	if fileData.Fullscreen != nil {
		settings.Fullscreen = *fileData.Fullscreen
	}
	if message := strings.TrimSpace(fileData.Message); message != "" {
		settings.Message = message
	}
}
