package workday

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/javiermolinar/timelog/internal/scheduler"
	"github.com/javiermolinar/timelog/internal/timesheet"
)

// ErrRelocationGuardExceeded is returned when a request would be relocated
// further than the configured number of days from where it was requested.
var ErrRelocationGuardExceeded = errors.New("relocation guard exceeded")

// Defaults used for zero Config fields.
const (
	DefaultDayStart            = 8 * time.Hour
	DefaultCapacity            = 8 * time.Hour
	DefaultRelocationGuardDays = 5
)

// Calendar decides where relocated work moves to.
type Calendar interface {
	NextBusinessDay(t time.Time) time.Time
}

// Config holds the allocation settings of a Set.
type Config struct {
	DayStart            time.Duration // offset of the first slot from midnight
	Capacity            time.Duration // occupiable time per day
	RelocationGuardDays int
	Calendar            Calendar
	Logger              *log.Logger // optional, traces placements at debug level
}

// DefaultConfig returns an 08:00 start, 8 hour days, a 5 day guard and a
// monday to friday calendar.
func DefaultConfig() Config {
	return Config{
		DayStart:            DefaultDayStart,
		Capacity:            DefaultCapacity,
		RelocationGuardDays: DefaultRelocationGuardDays,
		Calendar:            scheduler.Default(),
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.DayStart < 0 || c.DayStart >= 24*time.Hour {
		c.DayStart = def.DayStart
	}
	if c.Capacity <= 0 {
		c.Capacity = def.Capacity
	}
	// A day must hold its capacity before midnight.
	c.Capacity = min(c.Capacity, 24*time.Hour-c.DayStart)
	if c.RelocationGuardDays <= 0 {
		c.RelocationGuardDays = def.RelocationGuardDays
	}
	if c.Calendar == nil {
		c.Calendar = def.Calendar
	}
	return c
}

type dateKey struct {
	year  int
	month time.Month
	day   int
}

func keyOf(t time.Time) dateKey {
	y, m, d := t.Date()
	return dateKey{year: y, month: m, day: d}
}

func compareKeys(a, b dateKey) int {
	if c := cmp.Compare(a.year, b.year); c != 0 {
		return c
	}
	if c := cmp.Compare(a.month, b.month); c != 0 {
		return c
	}
	return cmp.Compare(a.day, b.day)
}

// pending is a placement waiting in the worklist.
type pending struct {
	slot Slot
	mode Mode
}

// Set is a collection of working days keyed by date.
// It is meant for a single allocation pass and is not safe for concurrent use.
type Set struct {
	cfg   Config
	days  map[dateKey]*Day
	order []dateKey // sorted ascending
}

// NewSet creates an empty Set. Zero Capacity, RelocationGuardDays and
// Calendar take their defaults; a zero DayStart means midnight. Capacity is
// cut so the day ends by midnight.
func NewSet(cfg Config) *Set {
	return &Set{
		cfg:  cfg.withDefaults(),
		days: make(map[dateKey]*Day),
	}
}

// Add places req, splitting it across free slots and later business days
// as needed. Overflow from a split continues in AnyFreeAfter mode; a request
// hitting a full day, or overflow reaching midnight, moves to the next
// business day in AnyFree mode.
//
// Returns ErrRelocationGuardExceeded if any part of req would move more than
// the configured number of days. Parts placed before that stay in the set.
func (s *Set) Add(req Slot, mode Mode) error {
	if req.Duration < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeDuration, req.Duration)
	}
	if !mode.Valid() {
		return fmt.Errorf("invalid placement mode %d", int(mode))
	}
	if req.Duration == 0 {
		s.debug("skipping empty request", "slot", req)
		return nil
	}
	if req.origin.IsZero() {
		req.origin = req.Start
	}
	req.Task = req.Task.clone()

	queue := []pending{{slot: req, mode: mode}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		if days := int(p.slot.Shift() / (24 * time.Hour)); days > s.cfg.RelocationGuardDays {
			return fmt.Errorf("%w: %s moved %d days from %s",
				ErrRelocationGuardExceeded, p.slot, days, p.slot.origin.Format("2006-01-02"))
		}

		s.debug("placing", "slot", p.slot, "mode", p.mode)
		day := s.dayFor(p.slot.Start)
		overflow, full := day.Add(p.slot, p.mode)

		switch {
		case full:
			next := p.slot
			next.Start = s.cfg.Calendar.NextBusinessDay(p.slot.Start)
			s.debug("day is full, relocating", "slot", p.slot, "to", next.Start.Format("2006-01-02"))
			queue = append(queue, pending{slot: next, mode: AnyFree})
		case overflow != nil && !overflow.Start.Before(day.Limit()):
			next := *overflow
			next.Start = s.cfg.Calendar.NextBusinessDay(day.Date)
			s.debug("overflow past midnight, relocating", "slot", *overflow, "to", next.Start.Format("2006-01-02"))
			queue = append(queue, pending{slot: next, mode: AnyFree})
		case overflow != nil:
			s.debug("relocating overflow", "slot", *overflow)
			queue = append(queue, pending{slot: *overflow, mode: AnyFreeAfter})
		}
	}

	return nil
}

// dayFor returns the day for t's date, creating it if needed.
func (s *Set) dayFor(t time.Time) *Day {
	key := keyOf(t)
	if day, ok := s.days[key]; ok {
		return day
	}

	day := NewDay(t, s.cfg.DayStart, s.cfg.Capacity)
	s.days[key] = day
	i, _ := slices.BinarySearchFunc(s.order, key, compareKeys)
	s.order = slices.Insert(s.order, i, key)
	return day
}

// Day returns the day for date, if one has been created.
func (s *Set) Day(date time.Time) (*Day, bool) {
	day, ok := s.days[keyOf(date)]
	return day, ok
}

// Len returns the number of days in the set.
func (s *Set) Len() int {
	return len(s.order)
}

// All yields the days in ascending date order.
func (s *Set) All() iter.Seq[*Day] {
	return func(yield func(*Day) bool) {
		for _, key := range s.order {
			if !yield(s.days[key]) {
				return
			}
		}
	}
}

// Days returns the days in ascending date order.
func (s *Set) Days() []*Day {
	return slices.Collect(s.All())
}

// TotalDuration returns the occupied time across all days.
func (s *Set) TotalDuration() time.Duration {
	var total time.Duration
	for day := range s.All() {
		total += day.TotalDuration()
	}
	return total
}

// LogDays projects the occupied slots of every populated day, in date order.
func (s *Set) LogDays() []timesheet.Day {
	var result []timesheet.Day
	for day := range s.All() {
		occupied := day.Occupied()
		if len(occupied) == 0 {
			continue
		}
		periods := make([]timesheet.Period, 0, len(occupied))
		for _, slot := range occupied {
			periods = append(periods, timesheet.Period{
				Start:       slot.Start,
				End:         slot.End(),
				Description: slot.Task.Description,
				TaskID:      slot.Task.ID,
			})
		}
		result = append(result, timesheet.Day{Date: day.Date, Periods: periods})
	}
	return result
}

func (s *Set) debug(msg string, keyvals ...any) {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Debug(msg, keyvals...)
	}
}
