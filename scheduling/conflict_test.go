package scheduling

import (
	"testing"
	"time"
)

func TestMarkConflicts(t *testing.T) {
	// Existing confirmed booking 09:00-10:00.
	busy := []Interval{{at(9, 0), at(10, 0)}}

	candidates := []Slot{
		{Start: at(8, 0), End: at(9, 0), Available: true},    // ends as booking starts
		{Start: at(9, 30), End: at(10, 30), Available: true}, // overlaps
		{Start: at(10, 0), End: at(11, 0), Available: true},  // starts as booking ends
	}

	marked := MarkConflicts(candidates, busy)

	expected := []bool{true, false, true}
	for i, want := range expected {
		if marked[i].Available != want {
			t.Fatalf("slot %v-%v: expected available=%v, got %v",
				marked[i].Start.Format("15:04"), marked[i].End.Format("15:04"), want, marked[i].Available)
		}
	}

	// The input slice is left untouched.
	for i, s := range candidates {
		if !s.Available {
			t.Fatalf("input slot %d mutated by MarkConflicts", i)
		}
	}
}

func TestMarkConflictsMultipleBookings(t *testing.T) {
	busy := []Interval{
		{at(9, 0), at(10, 0)},
		{at(13, 0), at(14, 30)},
	}

	candidates := []Slot{
		{Start: at(9, 0), End: at(10, 0), Available: true},
		{Start: at(11, 0), End: at(12, 0), Available: true},
		{Start: at(14, 0), End: at(15, 0), Available: true},
	}

	marked := MarkConflicts(candidates, busy)

	if marked[0].Available || marked[2].Available {
		t.Fatalf("expected first and last slots to conflict")
	}
	if !marked[1].Available {
		t.Fatalf("expected middle slot to stay available")
	}
}

func TestMarkConflictsNoBookings(t *testing.T) {
	candidates := []Slot{{Start: at(9, 0), End: at(10, 0), Available: true}}

	marked := MarkConflicts(candidates, nil)
	if !marked[0].Available {
		t.Fatalf("slot flagged without any bookings")
	}
}

func TestAvailableOnly(t *testing.T) {
	slots := []Slot{
		{Start: at(9, 0), End: at(10, 0), Available: true},
		{Start: at(10, 0), End: at(11, 0), Available: false},
		{Start: at(11, 0), End: at(12, 0), Available: true},
	}

	free := AvailableOnly(slots)
	if len(free) != 2 {
		t.Fatalf("expected 2 available slots, got %d", len(free))
	}
	for _, s := range free {
		if !s.Available {
			t.Fatalf("unavailable slot %v leaked through", s.Start)
		}
	}
	if !free[1].Start.Equal(at(11, 0)) {
		t.Fatalf("order not preserved: got %v", free[1].Start)
	}
}

func TestMarkConflictsUsesWallClockInstants(t *testing.T) {
	// A booking stored in another zone still conflicts when the instants
	// collide.
	est := time.FixedZone("UTC-5", -5*60*60)
	busy := []Interval{{at(9, 0).In(est), at(10, 0).In(est)}}

	candidates := []Slot{{Start: at(9, 30), End: at(10, 30), Available: true}}

	marked := MarkConflicts(candidates, busy)
	if marked[0].Available {
		t.Fatalf("zone conversion broke conflict detection")
	}
}
