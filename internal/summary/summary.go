// Package summary aggregates logged days into weekly and per-task totals.
package summary

import (
	"cmp"
	"slices"
	"time"

	"github.com/javiermolinar/timelog/internal/dateutil"
	"github.com/javiermolinar/timelog/internal/timesheet"
)

// WeekSummary holds the aggregated time of one ISO week.
type WeekSummary struct {
	Start time.Time // Monday
	End   time.Time // Sunday
	Days  int       // days with at least one period
	Total time.Duration
	Tasks []TaskTotal
}

// TaskTotal is the time booked on one task.
// Periods without a task ID are grouped by description.
type TaskTotal struct {
	TaskID      string
	Description string
	Duration    time.Duration
	Periods     int
}

// SummarizeWeeks groups days by ISO week, earliest week first.
func SummarizeWeeks(days []timesheet.Day) []WeekSummary {
	byWeek := make(map[time.Time][]timesheet.Day)
	var starts []time.Time
	for _, d := range days {
		monday, _ := dateutil.WeekRange(d.Date)
		if _, ok := byWeek[monday]; !ok {
			starts = append(starts, monday)
		}
		byWeek[monday] = append(byWeek[monday], d)
	}
	slices.SortFunc(starts, func(a, b time.Time) int { return a.Compare(b) })

	weeks := make([]WeekSummary, 0, len(starts))
	for _, start := range starts {
		weekDays := byWeek[start]
		monday, sunday := dateutil.WeekRange(start)

		seen := make(map[string]bool)
		for _, d := range weekDays {
			if len(d.Periods) > 0 {
				seen[d.Date.Format(dateutil.LayoutISO)] = true
			}
		}

		weeks = append(weeks, WeekSummary{
			Start: monday,
			End:   sunday,
			Days:  len(seen),
			Total: timesheet.TotalDuration(weekDays),
			Tasks: SummarizeTasks(weekDays),
		})
	}
	return weeks
}

// SummarizeTasks totals time per task, longest first.
func SummarizeTasks(days []timesheet.Day) []TaskTotal {
	index := make(map[string]int)
	var totals []TaskTotal
	for _, d := range days {
		for _, p := range d.Periods {
			key := "id:" + p.TaskID
			if p.TaskID == "" {
				key = "desc:" + p.Description
			}
			i, ok := index[key]
			if !ok {
				i = len(totals)
				index[key] = i
				totals = append(totals, TaskTotal{TaskID: p.TaskID, Description: p.Description})
			}
			totals[i].Duration += p.Duration()
			totals[i].Periods++
		}
	}

	slices.SortStableFunc(totals, func(a, b TaskTotal) int {
		return cmp.Compare(b.Duration, a.Duration)
	})
	return totals
}
