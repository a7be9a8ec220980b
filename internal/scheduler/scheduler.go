// Package scheduler provides the business-day calendar used to relocate work
// that no longer fits into a working day.
package scheduler

import (
	"strings"
	"time"
)

// DefaultWorkdays are the business days used when none are configured.
var DefaultWorkdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

// Scheduler answers business-day questions for a configured set of workdays.
type Scheduler struct {
	workdays map[string]bool
}

// New creates a new Scheduler for the given weekday names.
// Names are case-insensitive; an empty list falls back to DefaultWorkdays.
func New(workdays []string) *Scheduler {
	if len(workdays) == 0 {
		workdays = DefaultWorkdays
	}
	wd := make(map[string]bool)
	for _, d := range workdays {
		wd[strings.ToLower(strings.TrimSpace(d))] = true
	}
	return &Scheduler{workdays: wd}
}

// Default returns a Scheduler with a monday to friday week.
func Default() *Scheduler {
	return New(DefaultWorkdays)
}

// IsWorkday returns true if the given time falls on a configured workday.
func (s *Scheduler) IsWorkday(t time.Time) bool {
	weekday := strings.ToLower(t.Weekday().String())
	return s.workdays[weekday]
}

// DaysToNextBusinessDay returns how many calendar days separate t from the
// next workday strictly after it. With the default week this is 3 on a
// Friday and 1 on any other weekday.
func (s *Scheduler) DaysToNextBusinessDay(t time.Time) int {
	next := t
	for days := 1; days <= 7; days++ {
		next = next.AddDate(0, 0, 1)
		if s.IsWorkday(next) {
			return days
		}
	}
	// Fallback: should never happen if workdays is configured correctly
	return 1
}

// NextBusinessDay moves t forward to the next workday, keeping its time of day.
func (s *Scheduler) NextBusinessDay(t time.Time) time.Time {
	return t.AddDate(0, 0, s.DaysToNextBusinessDay(t))
}

// Workdays returns the configured workdays in calendar order starting Sunday.
func (s *Scheduler) Workdays() []time.Weekday {
	var result []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.workdays[strings.ToLower(d.String())] {
			result = append(result, d)
		}
	}
	return result
}
