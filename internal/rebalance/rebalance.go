// Package rebalance rewrites logged days through the allocation engine.
package rebalance

import (
	"errors"
	"fmt"
	"time"

	"github.com/javiermolinar/timelog/internal/timesheet"
	"github.com/javiermolinar/timelog/internal/workday"
)

// ErrInvalidFactor is returned for a scale factor below 1.
var ErrInvalidFactor = errors.New("scale factor must be at least 1")

// Double places the periods of excludeTaskID at their logged times and
// every other period at twice its length.
func Double(set *workday.Set, days []timesheet.Day, excludeTaskID string) error {
	return Scale(set, days, excludeTaskID, 2)
}

// Scale places every period of excludeTaskID exactly where it was logged,
// then every remaining period with its duration multiplied by factor, as
// early as possible from its logged start. An empty excludeTaskID scales
// everything.
//
// Periods placed before an error stay in set.
func Scale(set *workday.Set, days []timesheet.Day, excludeTaskID string, factor int) error {
	if factor < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidFactor, factor)
	}

	excluded := func(p timesheet.Period) bool {
		return excludeTaskID != "" && p.TaskID == excludeTaskID
	}

	for _, day := range days {
		for _, p := range day.Periods {
			if !excluded(p) {
				continue
			}
			if err := place(set, p, 1, workday.Exact); err != nil {
				return err
			}
		}
	}

	for _, day := range days {
		for _, p := range day.Periods {
			if excluded(p) {
				continue
			}
			if err := place(set, p, factor, workday.AnyFreeAfter); err != nil {
				return err
			}
		}
	}

	return nil
}

func place(set *workday.Set, p timesheet.Period, factor int, mode workday.Mode) error {
	task := &workday.Task{ID: p.TaskID, Description: p.Description}
	slot, err := workday.NewSlot(p.Start, p.Duration()*time.Duration(factor), task)
	if err != nil {
		return fmt.Errorf("period %s on %s: %w", p, p.Start.Format("2006-01-02"), err)
	}
	if err := set.Add(slot, mode); err != nil {
		return fmt.Errorf("placing %s on %s: %w", p, p.Start.Format("2006-01-02"), err)
	}
	return nil
}
