package workday

import (
	"errors"
	"testing"
	"time"
)

func TestNewSlot(t *testing.T) {
	t.Run("negative duration", func(t *testing.T) {
		_, err := NewSlot(clock(wednesday, 8, 0), -time.Minute, nil)
		if !errors.Is(err, ErrNegativeDuration) {
			t.Errorf("got error %v, want %v", err, ErrNegativeDuration)
		}
	})

	t.Run("free and occupied", func(t *testing.T) {
		free := mustSlot(t, clock(wednesday, 8, 0), time.Hour, "")
		if !free.IsFree() {
			t.Error("expected slot without task to be free")
		}
		busy := mustSlot(t, clock(wednesday, 8, 0), time.Hour, "T1")
		if busy.IsFree() {
			t.Error("expected slot with task to be occupied")
		}
		if !busy.End().Equal(clock(wednesday, 9, 0)) {
			t.Errorf("got end %v, want 09:00", busy.End())
		}
	})

	t.Run("task is copied", func(t *testing.T) {
		task := &Task{ID: "T1", Description: "original"}
		s, err := NewSlot(clock(wednesday, 8, 0), time.Hour, task)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		task.Description = "changed"
		if s.Task.Description != "original" {
			t.Errorf("slot task aliased caller task: got %q", s.Task.Description)
		}
	})
}

func TestSlot_Shift(t *testing.T) {
	s := mustSlot(t, clock(wednesday, 9, 0), time.Hour, "T1")
	if s.Shift() != 0 {
		t.Errorf("new slot: got shift %v, want 0", s.Shift())
	}
	s.Start = s.Start.AddDate(0, 0, 2)
	if s.Shift() != 48*time.Hour {
		t.Errorf("moved slot: got shift %v, want 48h", s.Shift())
	}

	literal := Slot{Start: clock(wednesday, 9, 0), Duration: time.Hour}
	if literal.Shift() != 0 {
		t.Errorf("literal slot: got shift %v, want 0", literal.Shift())
	}
}

func TestSlot_Insert(t *testing.T) {
	free := mustSlot(t, clock(wednesday, 8, 0), 8*time.Hour, "")

	tests := []struct {
		name         string
		start        time.Time
		duration     time.Duration
		want         []string
		wantOverflow string
	}{
		{
			name:     "inside with free on both sides",
			start:    clock(wednesday, 9, 0),
			duration: time.Hour,
			want:     []string{"08:00-09:00 free", "09:00-10:00 T1", "10:00-16:00 free"},
		},
		{
			name:     "at the start",
			start:    clock(wednesday, 8, 0),
			duration: 2 * time.Hour,
			want:     []string{"08:00-10:00 T1", "10:00-16:00 free"},
		},
		{
			name:     "ending exactly at the end",
			start:    clock(wednesday, 14, 0),
			duration: 2 * time.Hour,
			want:     []string{"08:00-14:00 free", "14:00-16:00 T1"},
		},
		{
			name:     "filling the whole slot",
			start:    clock(wednesday, 8, 0),
			duration: 8 * time.Hour,
			want:     []string{"08:00-16:00 T1"},
		},
		{
			name:         "running past the end",
			start:        clock(wednesday, 15, 0),
			duration:     3 * time.Hour,
			want:         []string{"08:00-15:00 free", "15:00-16:00 T1"},
			wantOverflow: "16:00-18:00 T1",
		},
		{
			name:         "larger than the slot",
			start:        clock(wednesday, 8, 0),
			duration:     9 * time.Hour,
			want:         []string{"08:00-16:00 T1"},
			wantOverflow: "16:00-17:00 T1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts, overflow := free.Insert(mustSlot(t, tt.start, tt.duration, "T1"))
			assertLayout(t, parts, tt.want)

			if tt.wantOverflow == "" {
				if overflow != nil {
					t.Fatalf("unexpected overflow %v", overflow)
				}
			} else {
				if overflow == nil {
					t.Fatal("expected overflow, got nil")
				}
				assertLayout(t, []Slot{*overflow}, []string{tt.wantOverflow})
				if overflow.Duration <= 0 {
					t.Errorf("overflow must not be empty, got %v", overflow.Duration)
				}
			}

			// Parts plus overflow conserve the occupied duration.
			var occupied time.Duration
			for _, p := range parts {
				if !p.IsFree() {
					occupied += p.Duration
				}
			}
			if overflow != nil {
				occupied += overflow.Duration
			}
			if occupied != tt.duration {
				t.Errorf("occupied %v across parts and overflow, want %v", occupied, tt.duration)
			}

			// Parts cover exactly the original slot.
			if !parts[0].Start.Equal(free.Start) || !parts[len(parts)-1].End().Equal(free.End()) {
				t.Errorf("parts cover %v-%v, want %v-%v",
					parts[0].Start, parts[len(parts)-1].End(), free.Start, free.End())
			}
		})
	}
}

func TestSlot_InsertOverflowStartsFresh(t *testing.T) {
	free := mustSlot(t, clock(wednesday, 8, 0), 8*time.Hour, "")
	_, overflow := free.Insert(mustSlot(t, clock(wednesday, 15, 0), 2*time.Hour, "T1"))
	if overflow == nil {
		t.Fatal("expected overflow")
	}
	if overflow.Shift() != 0 {
		t.Errorf("overflow should measure relocation from its own start, got shift %v", overflow.Shift())
	}
	if overflow.Task == nil || overflow.Task.ID != "T1" {
		t.Errorf("overflow should carry the task, got %v", overflow.Task)
	}
}

func TestMode_String(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{Exact, "exact"},
		{AnyFree, "any-free"},
		{AnyFreeAfter, "any-free-after"},
		{Mode(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", int(tt.mode), got, tt.want)
		}
		if tt.mode.Valid() != (tt.want != "unknown") {
			t.Errorf("Mode(%d).Valid() = %v", int(tt.mode), tt.mode.Valid())
		}
	}
}
