// Package workday implements the slot allocation engine: time slots inside a
// capacity-bounded working day, first-fit insertion with splitting, and a set
// of days that relocates work which does not fit to the next business day.
package workday

import (
	"errors"
	"fmt"
	"time"
)

// ErrNegativeDuration is returned when a slot is created with a negative duration.
var ErrNegativeDuration = errors.New("slot duration cannot be negative")

// Task is an opaque reference to the work a slot is booked for.
type Task struct {
	ID          string
	Description string
}

func (t *Task) clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// Slot is a contiguous interval of a day, either free or occupied by a task.
type Slot struct {
	Start    time.Time
	Duration time.Duration
	Task     *Task // nil means free capacity

	origin time.Time // start as first requested, used to measure relocation
}

// NewSlot creates a slot. A nil task makes it free capacity.
func NewSlot(start time.Time, duration time.Duration, task *Task) (Slot, error) {
	if duration < 0 {
		return Slot{}, fmt.Errorf("%w: %v", ErrNegativeDuration, duration)
	}
	return newSlot(start, duration, task), nil
}

func newSlot(start time.Time, duration time.Duration, task *Task) Slot {
	return Slot{
		Start:    start,
		Duration: duration,
		Task:     task.clone(),
		origin:   start,
	}
}

// End returns Start + Duration.
func (s Slot) End() time.Time {
	return s.Start.Add(s.Duration)
}

// IsFree returns true if no task occupies the slot.
func (s Slot) IsFree() bool {
	return s.Task == nil
}

// Shift returns how far the slot has moved from the start it was first requested at.
func (s Slot) Shift() time.Duration {
	if s.origin.IsZero() {
		return 0
	}
	return s.Start.Sub(s.origin)
}

func (s Slot) String() string {
	label := "free"
	if s.Task != nil {
		label = s.Task.Description
		if s.Task.ID != "" {
			label = fmt.Sprintf("%s [%s]", label, s.Task.ID)
		}
	}
	return fmt.Sprintf("%s %s-%s %s",
		s.Start.Format("2006-01-02"), s.Start.Format("15:04"), s.End().Format("15:04"), label)
}

// Insert carves other out of the free slot s.
//
// other.Start must lie within [s.Start, s.End()]. The returned parts replace s
// in its day and stay contiguous: an optional leading free part, the occupied
// part, and a trailing free part when other ends before s does. When other
// runs past s.End() the remainder is returned as overflow, carrying the same
// task, and must be placed elsewhere by the caller.
func (s Slot) Insert(other Slot) (parts []Slot, overflow *Slot) {
	if other.Start.After(s.Start) {
		parts = append(parts, newSlot(s.Start, other.Start.Sub(s.Start), nil))
	}

	end, otherEnd := s.End(), other.End()
	switch {
	case end.After(otherEnd):
		parts = append(parts,
			newSlot(other.Start, other.Duration, other.Task),
			newSlot(otherEnd, end.Sub(otherEnd), nil),
		)
	case end.Equal(otherEnd):
		parts = append(parts, newSlot(other.Start, end.Sub(other.Start), other.Task))
	default:
		parts = append(parts, newSlot(other.Start, end.Sub(other.Start), other.Task))
		rest := newSlot(end, otherEnd.Sub(end), other.Task)
		overflow = &rest
	}

	return parts, overflow
}
