package helper

import (
	"fmt"
)

// method to convert from seconds to minutes:seconds:milliseconds
func SecondsToMinutes(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	minutes := int(seconds / 60)
	seconds = seconds - float64(minutes*60)
	milliseconds := int((seconds - float64(int(seconds))) * 1000)
	return fmt.Sprintf("%02d:%02d.%03d", minutes, int(seconds), milliseconds)
}

// method to convert a pit lane duration to seconds with milliseconds
func SecondsToDuration(seconds float64) string {
	return fmt.Sprintf("%.3fs", seconds)
}
