package tracker

import (
	"fmt"
	"time"
)

// FormatClock formats d as HH:MM:SS. Hours are not capped at 24.
func FormatClock(d time.Duration) string {
	hours, minutes, seconds := splitDuration(d)

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// FormatHMS formats d as "01h 02m 03s".
func FormatHMS(d time.Duration) string {
	hours, minutes, seconds := splitDuration(d)

	return fmt.Sprintf("%02dh %02dm %02ds", hours, minutes, seconds)
}

func splitDuration(d time.Duration) (int64, int64, int64) {
	if d < 0 {
		d = 0
	}

	total := int64(d / time.Second)

	return total / 3600, (total % 3600) / 60, total % 60
}
