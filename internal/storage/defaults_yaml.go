package storage

import (
	"fmt"
	"strings"
	"time"

	"eyesaver/internal/core/model"
	"eyesaver/internal/ui/mainwindow"
	"eyesaver/resources"

	"gopkg.in/yaml.v3"
)

const (
	minTickIntervalMs  = 100
	maxTickIntervalMs  = 60000
	minFocusIntervalMs = 10
	maxFocusIntervalMs = 1000
)

type yamlSettings struct {
	WindowTitle       string `yaml:"window_title"`
	WorkLabel         string `yaml:"work_label"`
	BreakLabel        string `yaml:"break_label"`
	StartLabel        string `yaml:"start_label"`
	StopLabel         string `yaml:"stop_label"`
	WorkMinutes       string `yaml:"work_minutes"`
	BreakSeconds      string `yaml:"break_seconds"`
	TickIntervalMs    int    `yaml:"tick_interval_ms"`
	FocusIntervalMs   int    `yaml:"focus_interval_ms"`
	FullscreenOverlay *bool  `yaml:"fullscreen_overlay"`
}

// LoadEmbeddedSettings reads the defaults bundled with the binary.
func LoadEmbeddedSettings() (mainwindow.Settings, error) {
	return LoadSettings(resources.Defaults())
}

// LoadSettings parses a defaults document on top of mainwindow.DefaultSettings.
// Missing or out-of-range fields keep their built-in value.
func LoadSettings(rawData []byte) (mainwindow.Settings, error) {
	settings := mainwindow.DefaultSettings()

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse defaults yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

func applyYamlSettings(settings *mainwindow.Settings, fileData yamlSettings) {
	setText(&settings.WindowTitle, fileData.WindowTitle)
	setText(&settings.WorkLabel, fileData.WorkLabel)
	setText(&settings.BreakLabel, fileData.BreakLabel)
	setText(&settings.StartLabel, fileData.StartLabel)
	setText(&settings.StopLabel, fileData.StopLabel)

	if fileData.WorkMinutes != "" && model.ValidWorkInput(fileData.WorkMinutes) {
		settings.WorkMinutes = fileData.WorkMinutes
	}
	if model.ValidBreakInput(fileData.BreakSeconds) {
		settings.BreakSeconds = fileData.BreakSeconds
	}

	if fileData.TickIntervalMs >= minTickIntervalMs && fileData.TickIntervalMs <= maxTickIntervalMs {
		settings.TickInterval = time.Duration(fileData.TickIntervalMs) * time.Millisecond
	}
	if fileData.FocusIntervalMs >= minFocusIntervalMs && fileData.FocusIntervalMs <= maxFocusIntervalMs {
		settings.FocusInterval = time.Duration(fileData.FocusIntervalMs) * time.Millisecond
	}
	if fileData.FullscreenOverlay != nil {
		settings.FullscreenOverlay = *fileData.FullscreenOverlay
	}
}

func setText(target *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*target = trimmed
	}
}
