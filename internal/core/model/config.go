package model

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultWork is used when the work input cannot be parsed.
	DefaultWork = 25 * time.Minute
	// DefaultBreak is used when the break input cannot be parsed.
	DefaultBreak = 20 * time.Second

	minCountdown = time.Second
)

// SessionConfig holds the durations of one work/break cycle.
type SessionConfig struct {
	Work  time.Duration
	Break time.Duration
}

// ParseSessionConfig builds a SessionConfig from raw input text.
func ParseSessionConfig(workMinutes, breakSeconds string) SessionConfig {
	return SessionConfig{
		Work:  ParseWorkMinutes(workMinutes),
		Break: ParseBreakSeconds(breakSeconds),
	}
}

// ParseWorkMinutes converts decimal minutes ("25", "0.5", "1,5") into a
// countdown of whole seconds, never shorter than one second.
func ParseWorkMinutes(value string) time.Duration {
	normalized := strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	minutes, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return DefaultWork
	}
	seconds := minutes * 60
	if seconds < 1 {
		return minCountdown
	}
	if seconds > math.MaxInt64/float64(time.Second) {
		return DefaultWork
	}
	return clampCountdown(time.Duration(int64(seconds)) * time.Second)
}

// ParseBreakSeconds converts an integer number of seconds into a countdown,
// never shorter than one second.
func ParseBreakSeconds(value string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return DefaultBreak
	}
	if seconds < 1 {
		return minCountdown
	}
	if int64(seconds) > math.MaxInt64/int64(time.Second) {
		return DefaultBreak
	}
	return clampCountdown(time.Duration(seconds) * time.Second)
}

func clampCountdown(value time.Duration) time.Duration {
	if value < minCountdown {
		return minCountdown
	}
	return value
}
