// Package timesheet defines the log day and log period shapes exchanged
// between the allocation engine and the importers and exporters around it.
package timesheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/javiermolinar/timelog/internal/dateutil"
)

// Validation errors.
var (
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrEndBeforeStart    = errors.New("end time must not be before start time")
)

// Storage errors.
var ErrBatchNotFound = errors.New("batch not found")

// Period is one logged stretch of work within a day.
type Period struct {
	Start       time.Time
	End         time.Time
	Description string
	TaskID      string // empty when the source carries no task reference
}

// NewPeriod creates a Period on date from "HH:MM" clock strings.
// end may equal start but must not precede it; "24:00" ends at midnight.
func NewPeriod(date time.Time, start, end, description, taskID string) (Period, error) {
	startOffset, err := ParseClock(start)
	if err != nil {
		return Period{}, fmt.Errorf("start time: %w", err)
	}
	endOffset, err := ParseClock(end)
	if err != nil {
		return Period{}, fmt.Errorf("end time: %w", err)
	}
	if startOffset >= 24*time.Hour {
		return Period{}, fmt.Errorf("start time: %w", ErrInvalidTimeFormat)
	}
	if endOffset < startOffset {
		return Period{}, fmt.Errorf("%w: %s-%s", ErrEndBeforeStart, start, end)
	}

	day := dateutil.TruncateToDay(date)
	return Period{
		Start:       day.Add(startOffset),
		End:         day.Add(endOffset),
		Description: description,
		TaskID:      taskID,
	}, nil
}

// Duration returns the length of the period.
func (p Period) Duration() time.Duration {
	return p.End.Sub(p.Start)
}

// StartClock returns the start time in "HH:MM" format.
func (p Period) StartClock() string {
	return Clock(p.Start)
}

// EndClock returns the end time in "HH:MM" format, "24:00" when the period
// runs to the following midnight.
func (p Period) EndClock() string {
	if p.End.After(p.Start) && p.End.Equal(dateutil.TruncateToDay(p.Start).AddDate(0, 0, 1)) {
		return EndOfDay
	}
	return Clock(p.End)
}

func (p Period) String() string {
	return fmt.Sprintf("%s-%s %s", p.StartClock(), p.EndClock(), p.Description)
}

// Day groups the periods logged on a single date, ordered by start.
type Day struct {
	Date    time.Time
	Periods []Period
}

// TotalDuration returns the summed duration of the day's periods.
func (d Day) TotalDuration() time.Duration {
	var total time.Duration
	for _, p := range d.Periods {
		total += p.Duration()
	}
	return total
}

// TotalDuration returns the summed duration across all days.
func TotalDuration(days []Day) time.Duration {
	var total time.Duration
	for _, d := range days {
		total += d.TotalDuration()
	}
	return total
}

// FilterRange returns the days whose date lies within r.
func FilterRange(days []Day, r dateutil.DateRange) []Day {
	if r.IsZero() {
		return days
	}
	var result []Day
	for _, d := range days {
		if r.Contains(d.Date) {
			result = append(result, d)
		}
	}
	return result
}

// Batch describes one set of days stored together.
type Batch struct {
	ID        string
	Source    string
	CreatedAt time.Time
	Periods   int
}

// Repository defines the storage interface for log days.
type Repository interface {
	// CreateBatch stores days under a new batch and returns its ID.
	CreateBatch(ctx context.Context, source string, days []Day) (string, error)

	// ListBatches returns all stored batches, newest first.
	ListBatches(ctx context.Context) ([]Batch, error)

	// ListDays returns the days of a batch within r, ordered by date.
	// A zero range returns every day. Returns ErrBatchNotFound if the batch
	// does not exist.
	ListDays(ctx context.Context, batchID string, r dateutil.DateRange) ([]Day, error)

	// Close releases any resources held by the repository.
	Close() error
}
