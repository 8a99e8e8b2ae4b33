package scheduling

import (
	"fmt"
	"time"
)

// ConfigError marks availability settings the owning tutor has to fix before
// slots can be generated. It is never retried.
type ConfigError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("availability config: %s %q: %s", e.Field, e.Value, e.Reason)
}

// MinuteOfDay is a wall-clock time expressed as minutes since midnight.
type MinuteOfDay int

func (m MinuteOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// ParseClock parses an "HH:MM" string into a MinuteOfDay.
func ParseClock(s string) (MinuteOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, &ConfigError{Field: "time", Value: s, Reason: "not a valid HH:MM time"}
	}
	return MinuteOfDay(t.Hour()*60 + t.Minute()), nil
}

// Window is one recurring availability window on a given weekday.
type Window struct {
	Weekday time.Weekday
	Start   MinuteOfDay
	End     MinuteOfDay
}

// NewWindow validates and builds a weekly window from stored "HH:MM" strings.
// Windows that span midnight (end at or before start) are not supported and
// are rejected rather than silently truncated.
func NewWindow(weekday time.Weekday, start, end string) (Window, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Window{}, err
	}
	if e <= s {
		return Window{}, &ConfigError{
			Field:  "window",
			Value:  fmt.Sprintf("%s-%s", start, end),
			Reason: "end must be after start on the same day",
		}
	}
	return Window{Weekday: weekday, Start: s, End: e}, nil
}

// Template is a tutor's recurring weekly availability pattern. Windows are
// wall-clock times in Location; slots are generated in that zone.
type Template struct {
	SessionMinutes int
	BufferMinutes  int
	Windows        []Window
	Location       *time.Location
}

func (t Template) validate() error {
	if t.SessionMinutes <= 0 {
		return &ConfigError{
			Field:  "session_minutes",
			Value:  fmt.Sprintf("%d", t.SessionMinutes),
			Reason: "session duration must be positive",
		}
	}
	if t.BufferMinutes < 0 {
		return &ConfigError{
			Field:  "buffer_minutes",
			Value:  fmt.Sprintf("%d", t.BufferMinutes),
			Reason: "buffer cannot be negative",
		}
	}
	return nil
}

func (t Template) location() *time.Location {
	if t.Location == nil {
		return time.UTC
	}
	return t.Location
}

// DateSpan is a whole-day unavailability override, inclusive of both ends.
// A single-day exception has From == To.
type DateSpan struct {
	From time.Time
	To   time.Time
}

// Covers reports whether the given day falls inside the span. Only the
// calendar date matters; time-of-day on either side is ignored.
func (s DateSpan) Covers(day time.Time) bool {
	d := dateOnly(day)
	return !d.Before(dateOnly(s.From)) && !d.After(dateOnly(s.To))
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
