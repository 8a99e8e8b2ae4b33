// Package scheduling expands weekly availability templates into concrete
// bookable slots and marks the ones that collide with existing bookings.
// Everything in here is pure computation; callers load the rows and persist
// the results.
package scheduling

import "time"

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether the interval is non-empty (Start strictly before End).
func (iv Interval) Valid() bool {
	return iv.Start.Before(iv.End)
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps uses half-open semantics: two intervals overlap iff each one
// starts before the other ends. Touching endpoints do not overlap, so a slot
// ending 10:00 never conflicts with a booking starting 10:00.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// BusyInterval builds the interval occupied by a booking.
func BusyInterval(scheduledAt time.Time, durationMinutes int) Interval {
	return Interval{
		Start: scheduledAt,
		End:   scheduledAt.Add(time.Duration(durationMinutes) * time.Minute),
	}
}
