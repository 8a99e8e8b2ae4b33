package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Slot is a concrete, dated interval a session could be booked into. Slots
// are computed per query and never persisted.
type Slot struct {
	Start     time.Time `json:"start_time"`
	End       time.Time `json:"end_time"`
	Available bool      `json:"available"`
	OwnerID   uuid.UUID `json:"owner_id"`
}

func (s Slot) Interval() Interval {
	return Interval{Start: s.Start, End: s.End}
}

// GenerateSlots expands the weekly template into dated candidate slots for
// every calendar day between from and to. Within a window, slots are
// SessionMinutes long and spaced by BufferMinutes; a slot is emitted only
// when it fits entirely inside its window and overlaps the queried range.
// Days covered by an exception span are skipped whole. Duplicate windows on
// the same weekday emit duplicate slots; dedup is the caller's decision.
//
// All slots start out Available; run MarkConflicts afterwards to flag the
// ones colliding with existing bookings.
func GenerateSlots(tpl Template, exceptions []DateSpan, from, to time.Time, ownerID uuid.UUID) ([]Slot, error) {
	if err := tpl.validate(); err != nil {
		return nil, err
	}

	slots := make([]Slot, 0)
	if !from.Before(to) || len(tpl.Windows) == 0 {
		return slots, nil
	}

	loc := tpl.location()
	queried := Interval{Start: from, End: to}
	step := time.Duration(tpl.SessionMinutes+tpl.BufferMinutes) * time.Minute
	length := time.Duration(tpl.SessionMinutes) * time.Minute

	first := from.In(loc)
	last := to.In(loc)
	fy, fm, fd := first.Date()
	ly, lm, ld := last.Date()

	end := time.Date(ly, lm, ld, 0, 0, 0, 0, loc)
	for day := time.Date(fy, fm, fd, 0, 0, 0, 0, loc); !day.After(end); day = day.AddDate(0, 0, 1) {
		if coveredByAny(day, exceptions) {
			continue
		}
		for _, w := range tpl.Windows {
			if w.Weekday != day.Weekday() {
				continue
			}
			windowEnd := day.Add(time.Duration(w.End) * time.Minute)
			for start := day.Add(time.Duration(w.Start) * time.Minute); !start.Add(length).After(windowEnd); start = start.Add(step) {
				slot := Slot{
					Start:     start,
					End:       start.Add(length),
					Available: true,
					OwnerID:   ownerID,
				}
				if slot.Interval().Overlaps(queried) {
					slots = append(slots, slot)
				}
			}
		}
	}

	return slots, nil
}

func coveredByAny(day time.Time, exceptions []DateSpan) bool {
	for _, span := range exceptions {
		if span.Covers(day) {
			return true
		}
	}
	return false
}
