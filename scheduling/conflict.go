package scheduling

// MarkConflicts returns a copy of the candidate slots with Available set to
// false on every slot that overlaps a busy interval. Busy intervals come
// from bookings still holding their time. The naive scan is intentional;
// slot and booking counts per query stay small.
func MarkConflicts(slots []Slot, busy []Interval) []Slot {
	out := make([]Slot, len(slots))
	copy(out, slots)

	for i := range out {
		if !out[i].Available {
			continue
		}
		for _, b := range busy {
			if out[i].Interval().Overlaps(b) {
				out[i].Available = false
				break
			}
		}
	}

	return out
}

// AvailableOnly filters a marked slot list down to the bookable ones.
func AvailableOnly(slots []Slot) []Slot {
	out := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if s.Available {
			out = append(out, s)
		}
	}
	return out
}
