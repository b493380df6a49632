package common

import (
	"fmt"
	"time"
)

// FormatClock renders a playback position as mm:ss, or h:mm:ss for
// durations of an hour or more.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// FormatMinutes renders a minute count for display, e.g. "90 min" or
// "1.5 min" for fractional values under 10.
func FormatMinutes(minutes float64) string {
	if minutes < 0 {
		minutes = 0
	}
	if minutes < 10 && minutes != float64(int(minutes)) {
		return fmt.Sprintf("%.1f min", minutes)
	}
	return fmt.Sprintf("%d min", int(minutes))
}
