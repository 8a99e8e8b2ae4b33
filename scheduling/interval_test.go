package scheduling

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2025, time.March, 3, hour, min, 0, 0, time.UTC)
}

func TestIntervalOverlaps(t *testing.T) {
	cases := []struct {
		name     string
		a, b     Interval
		overlaps bool
	}{
		{
			name:     "identical intervals overlap",
			a:        Interval{at(9, 0), at(10, 0)},
			b:        Interval{at(9, 0), at(10, 0)},
			overlaps: true,
		},
		{
			name:     "partial overlap",
			a:        Interval{at(9, 0), at(10, 0)},
			b:        Interval{at(9, 30), at(10, 30)},
			overlaps: true,
		},
		{
			name:     "containment",
			a:        Interval{at(9, 0), at(12, 0)},
			b:        Interval{at(10, 0), at(11, 0)},
			overlaps: true,
		},
		{
			name:     "touching endpoints do not overlap",
			a:        Interval{at(9, 0), at(10, 0)},
			b:        Interval{at(10, 0), at(11, 0)},
			overlaps: false,
		},
		{
			name:     "disjoint",
			a:        Interval{at(9, 0), at(10, 0)},
			b:        Interval{at(11, 0), at(12, 0)},
			overlaps: false,
		},
	}

	for _, c := range cases {
		if got := c.a.Overlaps(c.b); got != c.overlaps {
			t.Fatalf("%s: expected %v, got %v", c.name, c.overlaps, got)
		}
		// the overlap relation is symmetric
		if got := c.b.Overlaps(c.a); got != c.overlaps {
			t.Fatalf("%s (reversed): expected %v, got %v", c.name, c.overlaps, got)
		}
	}
}

func TestIntervalValid(t *testing.T) {
	if (Interval{at(9, 0), at(9, 0)}).Valid() {
		t.Fatalf("empty interval reported valid")
	}
	if (Interval{at(10, 0), at(9, 0)}).Valid() {
		t.Fatalf("inverted interval reported valid")
	}
	if !(Interval{at(9, 0), at(9, 1)}).Valid() {
		t.Fatalf("one minute interval reported invalid")
	}
}

func TestBusyInterval(t *testing.T) {
	iv := BusyInterval(at(9, 0), 90)
	if !iv.Start.Equal(at(9, 0)) || !iv.End.Equal(at(10, 30)) {
		t.Fatalf("expected 09:00-10:30, got %v-%v", iv.Start, iv.End)
	}
}
