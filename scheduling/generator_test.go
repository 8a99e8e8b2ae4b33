package scheduling

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func mustWindow(t *testing.T, weekday time.Weekday, start, end string) Window {
	t.Helper()
	w, err := NewWindow(weekday, start, end)
	if err != nil {
		t.Fatalf("window %s-%s: %v", start, end, err)
	}
	return w
}

// Monday 2025-03-03.
var monday = time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

func TestGenerateSlotsBufferScenario(t *testing.T) {
	// Monday 09:00-12:00, 60 minute sessions, 15 minute buffer. The buffer
	// consumes the room a third slot would need: 09:00-10:00, 10:15-11:15,
	// and the next start 11:30 no longer fits before 12:00.
	tpl := Template{
		SessionMinutes: 60,
		BufferMinutes:  15,
		Windows:        []Window{mustWindow(t, time.Monday, "09:00", "12:00")},
	}
	owner := uuid.New()

	slots, err := GenerateSlots(tpl, nil, monday, monday.AddDate(0, 0, 1), owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(slots) != 2 {
		t.Fatalf("expected exactly 2 slots, got %d", len(slots))
	}

	expected := []Interval{
		{monday.Add(9 * time.Hour), monday.Add(10 * time.Hour)},
		{monday.Add(10*time.Hour + 15*time.Minute), monday.Add(11*time.Hour + 15*time.Minute)},
	}
	for i, want := range expected {
		if !slots[i].Start.Equal(want.Start) || !slots[i].End.Equal(want.End) {
			t.Fatalf("slot %d: expected %v-%v, got %v-%v", i, want.Start, want.End, slots[i].Start, slots[i].End)
		}
		if !slots[i].Available {
			t.Fatalf("slot %d: expected available before conflict marking", i)
		}
		if slots[i].OwnerID != owner {
			t.Fatalf("slot %d: owner not carried through", i)
		}
	}
}

func TestGenerateSlotsZeroBuffer(t *testing.T) {
	tpl := Template{
		SessionMinutes: 60,
		BufferMinutes:  0,
		Windows:        []Window{mustWindow(t, time.Monday, "09:00", "12:00")},
	}

	slots, err := GenerateSlots(tpl, nil, monday, monday.AddDate(0, 0, 1), uuid.Nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("expected 3 back-to-back slots, got %d", len(slots))
	}
}

func TestGenerateSlotsZeroLengthRange(t *testing.T) {
	tpl := Template{
		SessionMinutes: 60,
		Windows:        []Window{mustWindow(t, time.Monday, "09:00", "12:00")},
	}

	slots, err := GenerateSlots(tpl, nil, monday, monday, uuid.Nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("zero-length range: expected no slots, got %d", len(slots))
	}
}

func TestGenerateSlotsSkipsOtherWeekdays(t *testing.T) {
	tpl := Template{
		SessionMinutes: 60,
		Windows:        []Window{mustWindow(t, time.Friday, "09:00", "11:00")},
	}

	// Monday through Thursday: no Friday in range.
	slots, err := GenerateSlots(tpl, nil, monday, monday.AddDate(0, 0, 4), uuid.Nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots outside configured weekday, got %d", len(slots))
	}

	// One full week picks the Friday up.
	slots, err = GenerateSlots(tpl, nil, monday, monday.AddDate(0, 0, 7), uuid.Nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 Friday slots, got %d", len(slots))
	}
	if slots[0].Start.Weekday() != time.Friday {
		t.Fatalf("expected Friday slot, got %v", slots[0].Start.Weekday())
	}
}

func TestGenerateSlotsExceptionSkipsWholeDay(t *testing.T) {
	tpl := Template{
		SessionMinutes: 60,
		Windows:        []Window{mustWindow(t, time.Monday, "09:00", "11:00")},
	}
	nextMonday := monday.AddDate(0, 0, 7)

	exceptions := []DateSpan{{From: monday, To: monday}}

	slots, err := GenerateSlots(tpl, exceptions, monday, monday.AddDate(0, 0, 8), uuid.Nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(slots) != 2 {
		t.Fatalf("expected only next Monday's 2 slots, got %d", len(slots))
	}
	for _, s := range slots {
		if s.Start.Before(nextMonday) {
			t.Fatalf("slot %v generated on excepted day", s.Start)
		}
	}
}

func TestGenerateSlotsDuplicateWindowsEmitDuplicates(t *testing.T) {
	// Two identical Monday windows produce the same slots twice; the
	// generator does not dedupe on the caller's behalf.
	w := mustWindow(t, time.Monday, "09:00", "10:00")
	tpl := Template{
		SessionMinutes: 60,
		Windows:        []Window{w, w},
	}

	slots, err := GenerateSlots(tpl, nil, monday, monday.AddDate(0, 0, 1), uuid.Nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected duplicate windows to emit 2 slots, got %d", len(slots))
	}
	if !slots[0].Start.Equal(slots[1].Start) {
		t.Fatalf("expected identical duplicate slots, got %v and %v", slots[0].Start, slots[1].Start)
	}
}

func TestGenerateSlotsRangeClipsPartialDays(t *testing.T) {
	tpl := Template{
		SessionMinutes: 60,
		Windows:        []Window{mustWindow(t, time.Monday, "09:00", "12:00")},
	}

	// Query starts 09:30: the 09:00 slot still overlaps the range and is
	// kept, consistent with the half-open overlap rule.
	slots, err := GenerateSlots(tpl, nil, monday.Add(9*time.Hour+30*time.Minute), monday.AddDate(0, 0, 1), uuid.Nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}

	// Query ending 09:00 excludes the slot that starts exactly there.
	slots, err = GenerateSlots(tpl, nil, monday, monday.Add(9*time.Hour), uuid.Nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots before 09:00, got %d", len(slots))
	}
}

func TestGenerateSlotsInvalidConfig(t *testing.T) {
	cases := []struct {
		name string
		tpl  Template
	}{
		{
			name: "zero session duration",
			tpl: Template{
				SessionMinutes: 0,
				Windows:        []Window{mustWindow(t, time.Monday, "09:00", "12:00")},
			},
		},
		{
			name: "negative buffer",
			tpl: Template{
				SessionMinutes: 60,
				BufferMinutes:  -5,
				Windows:        []Window{mustWindow(t, time.Monday, "09:00", "12:00")},
			},
		},
	}

	for _, c := range cases {
		_, err := GenerateSlots(c.tpl, nil, monday, monday.AddDate(0, 0, 1), uuid.Nil)
		if err == nil {
			t.Fatalf("%s: expected ConfigError", c.name)
		}
		var confErr *ConfigError
		if !errors.As(err, &confErr) {
			t.Fatalf("%s: expected ConfigError, got %T", c.name, err)
		}
	}
}

func TestGenerateSlotsHonoursLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	tpl := Template{
		SessionMinutes: 60,
		Windows:        []Window{mustWindow(t, time.Monday, "09:00", "10:00")},
		Location:       loc,
	}

	slots, err := GenerateSlots(tpl, nil, monday, monday.AddDate(0, 0, 1), uuid.Nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	// 09:00 in UTC+3 is 06:00 UTC.
	if !slots[0].Start.Equal(monday.Add(6 * time.Hour)) {
		t.Fatalf("expected 06:00 UTC start, got %v", slots[0].Start.UTC())
	}
}
