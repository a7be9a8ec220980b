package workday

import (
	"slices"
	"time"

	"github.com/javiermolinar/timelog/internal/dateutil"
)

// Day holds the slots of one calendar date.
// Slots are sorted, contiguous and never overlap. Occupied time never
// exceeds the day's capacity and no slot runs past the following midnight.
type Day struct {
	Date     time.Time
	capacity time.Duration
	limit    time.Time // the following midnight
	slots    []Slot
}

// NewDay creates a Day whose single free slot starts dayStart after midnight
// and spans the full capacity, cut at the following midnight.
func NewDay(date time.Time, dayStart, capacity time.Duration) *Day {
	midnight := dateutil.TruncateToDay(date)
	limit := midnight.AddDate(0, 0, 1)
	start := midnight.Add(dayStart)
	if start.After(limit) {
		start = limit
	}
	return &Day{
		Date:     midnight,
		capacity: capacity,
		limit:    limit,
		slots:    []Slot{newSlot(start, min(capacity, limit.Sub(start)), nil)},
	}
}

// Slots returns a copy of the slot slice.
func (d *Day) Slots() []Slot {
	result := make([]Slot, len(d.slots))
	copy(result, d.slots)
	return result
}

// Occupied returns only the slots booked for a task.
func (d *Day) Occupied() []Slot {
	var result []Slot
	for _, s := range d.slots {
		if !s.IsFree() {
			result = append(result, s)
		}
	}
	return result
}

// Capacity returns the maximum occupiable time of the day.
func (d *Day) Capacity() time.Duration {
	return d.capacity
}

// TotalDuration returns the occupied time of the day.
func (d *Day) TotalDuration() time.Duration {
	var total time.Duration
	for _, s := range d.slots {
		if !s.IsFree() {
			total += s.Duration
		}
	}
	return total
}

// IsFull returns true once occupied time has reached capacity.
func (d *Day) IsFull() bool {
	return d.TotalDuration() >= d.capacity
}

// Start returns the start of the first slot.
func (d *Day) Start() time.Time {
	return d.slots[0].Start
}

// End returns the end of the last slot.
func (d *Day) End() time.Time {
	return d.slots[len(d.slots)-1].End()
}

// Add places req into the first free slot selected by mode.
//
// If req does not fit into the matched slot, or into the capacity left in the
// day, the remainder is returned as overflow for the caller to place. When no
// free slot matches, the day grows by appending free time up to its capacity
// and the match is retried. The day never grows past the following midnight:
// work that would land there is returned as overflow starting at that
// midnight. full is true when the day has no capacity left; the day is left
// unchanged in that case. A zero-length request places nothing.
func (d *Day) Add(req Slot, mode Mode) (overflow *Slot, full bool) {
	if req.Duration <= 0 {
		return nil, false
	}
	if d.IsFull() {
		return nil, true
	}

	// An exact instant already booked, or before the day begins, can never be
	// matched by growing the day.
	if mode == Exact && !d.exactPlaceable(req.Start) {
		mode = AnyFreeAfter
	}

	for {
		if i := d.match(req.Start, mode); i >= 0 {
			free := d.slots[i]
			if mode == AnyFree || (mode == AnyFreeAfter && free.Start.After(req.Start)) {
				req.Start = free.Start
			}
			return d.insertAt(i, req), false
		}

		grow := min(req.Duration, d.capacity-d.TotalDuration(), d.limit.Sub(d.End()))
		if grow <= 0 {
			rest := newSlot(d.limit, req.Duration, req.Task)
			return &rest, false
		}
		d.slots = append(d.slots, newSlot(d.End(), grow, nil))
	}
}

// insertAt splits the free slot at index i around req, placing no more than
// the remaining capacity. Whatever is not placed is returned as one overflow.
func (d *Day) insertAt(i int, req Slot) *Slot {
	var excess *Slot
	if remaining := d.capacity - d.TotalDuration(); req.Duration > remaining {
		rest := newSlot(req.Start.Add(remaining), req.Duration-remaining, req.Task)
		excess = &rest
		req.Duration = remaining
	}

	parts, overflow := d.slots[i].Insert(req)
	d.slots = slices.Replace(d.slots, i, i+1, parts...)

	if overflow == nil {
		return excess
	}
	if excess != nil {
		overflow.Duration += excess.Duration
	}
	return overflow
}

// match returns the index of the first free slot selected by mode, or -1.
func (d *Day) match(at time.Time, mode Mode) int {
	for i, s := range d.slots {
		if !s.IsFree() {
			continue
		}
		contains := !at.Before(s.Start) && at.Before(s.End())
		switch mode {
		case AnyFree:
			return i
		case AnyFreeAfter:
			if contains || !s.Start.Before(at) {
				return i
			}
		default:
			if contains {
				return i
			}
		}
	}
	return -1
}

// Limit returns the following midnight, past which the day holds no slots.
func (d *Day) Limit() time.Time {
	return d.limit
}

// exactPlaceable reports whether at lies in free time or past the day's end.
func (d *Day) exactPlaceable(at time.Time) bool {
	if at.Before(d.Start()) || !at.Before(d.limit) {
		return false
	}
	for _, s := range d.slots {
		if !at.Before(s.Start) && at.Before(s.End()) {
			return s.IsFree()
		}
	}
	return true
}
