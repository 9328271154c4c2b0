package mainwindow

import (
	"time"

	"eyesaver/internal/core/timekeeper"
	"eyesaver/internal/ui/overlay"
)

// Settings defines the embedded strings, initial input values and timing of
// the application. Nothing here is saved between runs.
type Settings struct {
	WindowTitle string
	WorkLabel   string
	BreakLabel  string
	StartLabel  string
	StopLabel   string

	WorkMinutes  string
	BreakSeconds string

	TickInterval      time.Duration
	FocusInterval     time.Duration
	FullscreenOverlay bool
}

// DefaultSettings returns default settings for EyeSaver.
func DefaultSettings() Settings {
	return Settings{
		WindowTitle:       "EyeSaver",
		WorkLabel:         "Work time (min)",
		BreakLabel:        "Break time (sec)",
		StartLabel:        "START",
		StopLabel:         "STOP",
		WorkMinutes:       "25",
		BreakSeconds:      "20",
		TickInterval:      time.Second,
		FocusInterval:     100 * time.Millisecond,
		FullscreenOverlay: true,
	}
}

// TimeKeeperConfig converts settings to the state machine options.
func (settings Settings) TimeKeeperConfig() timekeeper.Config {
	return timekeeper.Config{TickInterval: settings.TickInterval}
}

// OverlayConfig converts settings to overlay options.
func (settings Settings) OverlayConfig() overlay.Config {
	return overlay.Config{
		TickInterval:  settings.TickInterval,
		FocusInterval: settings.FocusInterval,
		Fullscreen:    settings.FullscreenOverlay,
	}
}
