// Package dateutil provides date parsing and validation utilities.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// Date layouts accepted by ParseDate.
const (
	LayoutISO    = "2006-01-02"
	LayoutDotted = "02.01.2006"
)

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD or DD.MM.YYYY format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
)

var layouts = []string{LayoutISO, LayoutDotted}

// ParseDate parses a date in YYYY-MM-DD or DD.MM.YYYY format.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDateFormat
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (monday, sunday time.Time) {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday becomes day 7 in ISO week
	}
	monday = t.AddDate(0, 0, -(weekday - 1))
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DateRange is an inclusive range of dates. A zero bound is open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange creates a DateRange from two optional date strings.
// An empty string leaves that side of the range open.
// Returns an error if endDate is before startDate.
func NewDateRange(startDate, endDate string) (DateRange, error) {
	var r DateRange
	var err error

	if strings.TrimSpace(startDate) != "" {
		if r.Start, err = ParseDate(startDate); err != nil {
			return DateRange{}, err
		}
	}
	if strings.TrimSpace(endDate) != "" {
		if r.End, err = ParseDate(endDate); err != nil {
			return DateRange{}, err
		}
	}

	if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		return DateRange{}, ErrEndDateBeforeStart
	}

	return r, nil
}

// IsZero returns true if neither bound is set.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains reports whether the date of t lies within the range.
func (r DateRange) Contains(t time.Time) bool {
	d := TruncateToDay(t)
	if !r.Start.IsZero() && d.Before(TruncateToDay(r.Start)) {
		return false
	}
	if !r.End.IsZero() && d.After(TruncateToDay(r.End)) {
		return false
	}
	return true
}
