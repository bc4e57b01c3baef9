package scheduler

import (
	"fmt"
	"time"
)

// FormatRemaining renders a countdown for the menu: H:MM from one hour up,
// M:SS below that.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	if seconds >= 3600 {
		return fmt.Sprintf("%d:%02d", seconds/3600, seconds%3600/60)
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatBreakClock renders the break countdown as zero-padded MM:SS.
func FormatBreakClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Seconds truncates a duration to whole seconds.
func Seconds(duration time.Duration) int {
	if duration < 0 {
		return 0
	}
	return int(duration / time.Second)
}
