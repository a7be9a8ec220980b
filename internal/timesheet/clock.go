package timesheet

import (
	"fmt"
	"time"
)

// EndOfDay is the clock of the following midnight, valid only as an end time.
const EndOfDay = "24:00"

// ParseClock converts "HH:MM" into an offset from midnight. "24:00" is the
// following midnight.
func ParseClock(s string) (time.Duration, error) {
	if s == EndOfDay {
		return 24 * time.Hour, nil
	}
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidTimeFormat
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidTimeFormat
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// Clock formats the time of day of t as "HH:MM".
func Clock(t time.Time) string {
	return t.Format("15:04")
}

// FormatDuration formats a duration as a compact "1h30m" string.
func FormatDuration(d time.Duration) string {
	minutes := int(d.Round(time.Minute) / time.Minute)
	if minutes == 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}
