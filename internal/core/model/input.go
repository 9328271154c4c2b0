package model

import (
	"regexp"
	"strconv"
)

const (
	// MaxWorkInputLength bounds the work field, e.g. "120.5".
	MaxWorkInputLength = 5
	// MaxBreakInputLength bounds the break field to three digits.
	MaxBreakInputLength = 3

	minBreakSeconds = 1
	maxBreakSeconds = 999
)

var workInputPattern = regexp.MustCompile(`^[0-9]*[.,]?[0-9]*$`)

// ValidWorkInput reports whether text is acceptable in the work field.
// Partial input such as "" or "1." is acceptable while typing.
func ValidWorkInput(text string) bool {
	return len(text) <= MaxWorkInputLength && workInputPattern.MatchString(text)
}

// ValidBreakInput reports whether text is an integer in 1..999.
func ValidBreakInput(text string) bool {
	if len(text) > MaxBreakInputLength {
		return false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return false
		}
	}
	seconds, err := strconv.Atoi(text)
	if err != nil {
		return false
	}
	return seconds >= minBreakSeconds && seconds <= maxBreakSeconds
}
