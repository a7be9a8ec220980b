package workday

import (
	"fmt"
	"testing"
	"time"
)

// wednesday is 2025-01-15.
var wednesday = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

func clock(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, time.UTC)
}

func mustSlot(t *testing.T, start time.Time, d time.Duration, taskID string) Slot {
	t.Helper()
	var task *Task
	if taskID != "" {
		task = &Task{ID: taskID, Description: "work on " + taskID}
	}
	s, err := NewSlot(start, d, task)
	if err != nil {
		t.Fatalf("NewSlot: %v", err)
	}
	return s
}

// layout renders slots as "HH:MM-HH:MM id" with "free" for free capacity.
func layout(slots []Slot) []string {
	result := make([]string, 0, len(slots))
	for _, s := range slots {
		label := "free"
		if s.Task != nil {
			label = s.Task.ID
		}
		result = append(result, fmt.Sprintf("%s-%s %s", s.Start.Format("15:04"), s.End().Format("15:04"), label))
	}
	return result
}

func assertLayout(t *testing.T, got []Slot, want []string) {
	t.Helper()
	gotLayout := layout(got)
	if len(gotLayout) != len(want) {
		t.Fatalf("got %d slots %v, want %d %v", len(gotLayout), gotLayout, len(want), want)
	}
	for i := range want {
		if gotLayout[i] != want[i] {
			t.Errorf("slot %d: got %q, want %q (full layout %v)", i, gotLayout[i], want[i], gotLayout)
		}
	}
}

// assertDayInvariants checks ordering, contiguity and capacity of a day.
func assertDayInvariants(t *testing.T, d *Day) {
	t.Helper()
	slots := d.Slots()
	for i := 0; i+1 < len(slots); i++ {
		if !slots[i].End().Equal(slots[i+1].Start) {
			t.Errorf("%s: slot %d ends %v but slot %d starts %v",
				d.Date.Format("2006-01-02"), i, slots[i].End(), i+1, slots[i+1].Start)
		}
	}
	for i, s := range slots {
		if s.Duration < 0 {
			t.Errorf("slot %d has negative duration %v", i, s.Duration)
		}
	}
	if d.TotalDuration() > d.Capacity() {
		t.Errorf("%s: occupied %v exceeds capacity %v", d.Date.Format("2006-01-02"), d.TotalDuration(), d.Capacity())
	}
}
