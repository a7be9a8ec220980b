package workday

import (
	"testing"
	"time"
)

func newTestDay() *Day {
	return NewDay(clock(wednesday, 13, 45), DefaultDayStart, DefaultCapacity)
}

func TestNewDay(t *testing.T) {
	d := newTestDay()

	if !d.Date.Equal(wednesday) {
		t.Errorf("got date %v, want %v", d.Date, wednesday)
	}
	assertLayout(t, d.Slots(), []string{"08:00-16:00 free"})
	if d.TotalDuration() != 0 {
		t.Errorf("got occupied %v, want 0", d.TotalDuration())
	}
	if d.IsFull() {
		t.Error("new day should not be full")
	}
}

func TestDay_AddExact(t *testing.T) {
	d := newTestDay()

	overflow, full := d.Add(mustSlot(t, clock(wednesday, 9, 0), time.Hour, "T1"), Exact)
	if overflow != nil || full {
		t.Fatalf("got overflow %v full %v", overflow, full)
	}
	assertLayout(t, d.Slots(), []string{"08:00-09:00 free", "09:00-10:00 T1", "10:00-16:00 free"})

	overflow, full = d.Add(mustSlot(t, clock(wednesday, 8, 30), time.Hour, "T2"), Exact)
	if full {
		t.Fatal("day should not be full")
	}
	if overflow == nil {
		t.Fatal("expected the part colliding with T1 to overflow")
	}
	assertLayout(t, []Slot{*overflow}, []string{"09:00-09:30 T2"})
	assertLayout(t, d.Slots(), []string{"08:00-08:30 free", "08:30-09:00 T2", "09:00-10:00 T1", "10:00-16:00 free"})
	assertDayInvariants(t, d)
}

func TestDay_AddAnyFree(t *testing.T) {
	d := newTestDay()
	d.Add(mustSlot(t, clock(wednesday, 8, 0), time.Hour, "T1"), Exact)

	// The requested start is ignored.
	overflow, full := d.Add(mustSlot(t, clock(wednesday, 14, 0), 30*time.Minute, "T2"), AnyFree)
	if overflow != nil || full {
		t.Fatalf("got overflow %v full %v", overflow, full)
	}
	assertLayout(t, d.Slots(), []string{"08:00-09:00 T1", "09:00-09:30 T2", "09:30-16:00 free"})
	assertDayInvariants(t, d)
}

func TestDay_AddAnyFreeAfter(t *testing.T) {
	t.Run("anchors at next free slot", func(t *testing.T) {
		d := newTestDay()
		d.Add(mustSlot(t, clock(wednesday, 9, 0), time.Hour, "T1"), Exact)

		d.Add(mustSlot(t, clock(wednesday, 9, 0), 30*time.Minute, "T2"), AnyFreeAfter)
		assertLayout(t, d.Slots(), []string{"08:00-09:00 free", "09:00-10:00 T1", "10:00-10:30 T2", "10:30-16:00 free"})
	})

	t.Run("keeps its start inside a free slot", func(t *testing.T) {
		d := newTestDay()

		d.Add(mustSlot(t, clock(wednesday, 10, 0), time.Hour, "T1"), AnyFreeAfter)
		assertLayout(t, d.Slots(), []string{"08:00-10:00 free", "10:00-11:00 T1", "11:00-16:00 free"})
	})

	t.Run("never places earlier", func(t *testing.T) {
		d := newTestDay()
		d.Add(mustSlot(t, clock(wednesday, 12, 0), 4*time.Hour, "T1"), Exact)

		// 08:00-12:00 is free but starts before the request.
		d.Add(mustSlot(t, clock(wednesday, 13, 0), time.Hour, "T2"), AnyFreeAfter)
		for _, s := range d.Occupied() {
			if s.Task.ID == "T2" && s.Start.Before(clock(wednesday, 13, 0)) {
				t.Errorf("T2 placed at %v, before its requested start", s.Start)
			}
		}
		assertDayInvariants(t, d)
	})
}

func TestDay_GrowsUpToCapacity(t *testing.T) {
	d := newTestDay()
	d.Add(mustSlot(t, clock(wednesday, 8, 0), 4*time.Hour, "T1"), Exact)

	overflow, _ := d.Add(mustSlot(t, clock(wednesday, 15, 0), 3*time.Hour, "T2"), AnyFreeAfter)
	if overflow == nil {
		t.Fatal("expected overflow past 16:00")
	}
	assertLayout(t, []Slot{*overflow}, []string{"16:00-18:00 T2"})

	// No free slot at or after 16:00: the day grows by the requested 2h.
	overflow, full := d.Add(*overflow, AnyFreeAfter)
	if overflow != nil || full {
		t.Fatalf("got overflow %v full %v", overflow, full)
	}
	assertLayout(t, d.Slots(), []string{
		"08:00-12:00 T1", "12:00-15:00 free", "15:00-16:00 T2", "16:00-18:00 T2",
	})
	if d.TotalDuration() != 7*time.Hour {
		t.Errorf("got occupied %v, want 7h", d.TotalDuration())
	}

	// Only 1h of capacity is left, so growth is capped there.
	overflow, full = d.Add(mustSlot(t, clock(wednesday, 18, 0), 2*time.Hour, "T3"), AnyFreeAfter)
	if full {
		t.Fatal("day should not be full before placing T3")
	}
	if overflow == nil {
		t.Fatal("expected T3 to overflow beyond capacity")
	}
	assertLayout(t, []Slot{*overflow}, []string{"19:00-20:00 T3"})
	if !d.IsFull() {
		t.Errorf("expected day to be full, occupied %v", d.TotalDuration())
	}
	assertDayInvariants(t, d)

	// Nothing matches and nothing is left to grow into.
	before := layout(d.Slots())
	overflow, full = d.Add(*overflow, AnyFreeAfter)
	if !full || overflow != nil {
		t.Fatalf("got overflow %v full %v, want full", overflow, full)
	}
	assertLayout(t, d.Slots(), before)
}

func TestDay_FullDayReportsFull(t *testing.T) {
	d := newTestDay()
	d.Add(mustSlot(t, clock(wednesday, 8, 0), 8*time.Hour, "T1"), Exact)

	for _, mode := range []Mode{Exact, AnyFree, AnyFreeAfter} {
		t.Run(mode.String(), func(t *testing.T) {
			overflow, full := d.Add(mustSlot(t, clock(wednesday, 10, 0), time.Hour, "T2"), mode)
			if !full {
				t.Error("expected full")
			}
			if overflow != nil {
				t.Errorf("unexpected overflow %v", overflow)
			}
		})
	}
}

func TestDay_ExactOnBookedTimeFallsForward(t *testing.T) {
	d := newTestDay()
	d.Add(mustSlot(t, clock(wednesday, 9, 0), 2*time.Hour, "T1"), Exact)

	overflow, full := d.Add(mustSlot(t, clock(wednesday, 10, 0), time.Hour, "T2"), Exact)
	if overflow != nil || full {
		t.Fatalf("got overflow %v full %v", overflow, full)
	}
	assertLayout(t, d.Slots(), []string{"08:00-09:00 free", "09:00-11:00 T1", "11:00-12:00 T2", "12:00-16:00 free"})
}

func TestDay_ExactBeforeDayStart(t *testing.T) {
	d := newTestDay()

	d.Add(mustSlot(t, clock(wednesday, 7, 0), time.Hour, "T1"), Exact)
	assertLayout(t, d.Slots(), []string{"08:00-09:00 T1", "09:00-16:00 free"})
}

func TestDay_ExactAfterDayEnd(t *testing.T) {
	d := newTestDay()
	d.Add(mustSlot(t, clock(wednesday, 8, 0), 6*time.Hour, "T1"), Exact)

	// The day grows by 1h to reach 16:30; the rest of the request overflows.
	overflow, full := d.Add(mustSlot(t, clock(wednesday, 16, 30), time.Hour, "T2"), Exact)
	if full {
		t.Fatal("day should not be full")
	}
	if overflow == nil {
		t.Fatal("expected overflow past the grown slot")
	}
	assertLayout(t, []Slot{*overflow}, []string{"17:00-17:30 T2"})
	assertLayout(t, d.Slots(), []string{
		"08:00-14:00 T1", "14:00-16:00 free", "16:00-16:30 free", "16:30-17:00 T2",
	})
	assertDayInvariants(t, d)
}

func TestDay_ZeroLengthRequest(t *testing.T) {
	d := newTestDay()
	overflow, full := d.Add(mustSlot(t, clock(wednesday, 9, 0), 0, "T1"), Exact)
	if overflow != nil || full {
		t.Fatalf("got overflow %v full %v", overflow, full)
	}
	assertLayout(t, d.Slots(), []string{"08:00-16:00 free"})
}

func TestDay_NeverExceedsCapacity(t *testing.T) {
	d := newTestDay()
	d.Add(mustSlot(t, clock(wednesday, 12, 0), 4*time.Hour, "T1"), Exact)
	d.Add(mustSlot(t, clock(wednesday, 16, 0), 3*time.Hour, "T2"), AnyFreeAfter)
	if d.TotalDuration() != 7*time.Hour {
		t.Fatalf("got occupied %v, want 7h", d.TotalDuration())
	}

	// 08:00-12:00 is still free, but only 1h of capacity is left.
	overflow, full := d.Add(mustSlot(t, clock(wednesday, 8, 0), 3*time.Hour, "T3"), Exact)
	if full {
		t.Fatal("day should accept the first hour")
	}
	if overflow == nil {
		t.Fatal("expected the excess to overflow")
	}
	assertLayout(t, []Slot{*overflow}, []string{"09:00-11:00 T3"})
	assertLayout(t, d.Slots(), []string{"08:00-09:00 T3", "09:00-12:00 free", "12:00-16:00 T1", "16:00-19:00 T2"})
	if !d.IsFull() {
		t.Errorf("expected full day, occupied %v", d.TotalDuration())
	}
	assertDayInvariants(t, d)
}

func TestDay_StopsAtMidnight(t *testing.T) {
	d := newTestDay()

	overflow, full := d.Add(mustSlot(t, clock(wednesday, 22, 0), 3*time.Hour, "T1"), AnyFreeAfter)
	if full {
		t.Fatal("day should not be full")
	}
	if overflow == nil {
		t.Fatal("expected the part past midnight to overflow")
	}
	if !overflow.Start.Equal(d.Limit()) {
		t.Errorf("got overflow start %v, want %v", overflow.Start, d.Limit())
	}
	assertLayout(t, []Slot{*overflow}, []string{"00:00-01:00 T1"})
	assertLayout(t, d.Slots(), []string{
		"08:00-16:00 free", "16:00-19:00 free", "19:00-22:00 free", "22:00-00:00 T1",
	})
	if got := d.End(); !got.Equal(d.Limit()) {
		t.Errorf("day ends at %v, want %v", got, d.Limit())
	}
	assertDayInvariants(t, d)

	// Nothing can start at or after midnight: the whole request overflows.
	before := layout(d.Slots())
	overflow, full = d.Add(mustSlot(t, clock(wednesday, 23, 30), time.Hour, "T2"), Exact)
	if full || overflow == nil {
		t.Fatalf("got overflow %v full %v, want overflow", overflow, full)
	}
	assertLayout(t, []Slot{*overflow}, []string{"00:00-01:00 T2"})
	assertLayout(t, d.Slots(), before)
}

func TestNewDay_CutAtMidnight(t *testing.T) {
	d := NewDay(wednesday, 20*time.Hour, 8*time.Hour)

	assertLayout(t, d.Slots(), []string{"20:00-00:00 free"})
	if !d.End().Equal(wednesday.AddDate(0, 0, 1)) {
		t.Errorf("got end %v, want next midnight", d.End())
	}
}
