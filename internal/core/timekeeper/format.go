package timekeeper

import (
	"fmt"
	"time"
)

// FormatRemaining renders a countdown as MM:SS. Minutes are not wrapped into
// hours, so a 90 minute interval reads 90:00.
func FormatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining / time.Second)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
