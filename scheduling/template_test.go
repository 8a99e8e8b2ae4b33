package scheduling

import (
	"errors"
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		value   string
		minutes MinuteOfDay
		wantErr bool
	}{
		{value: "00:00", minutes: 0},
		{value: "09:00", minutes: 540},
		{value: "09:05", minutes: 545},
		{value: "14:35", minutes: 875},
		{value: "23:59", minutes: 1439},
		{value: "24:00", wantErr: true},
		{value: "12:60", wantErr: true},
		{value: "noon", wantErr: true},
		{value: "", wantErr: true},
		{value: "9am", wantErr: true},
	}

	for _, c := range cases {
		got, err := ParseClock(c.value)
		if c.wantErr {
			if err == nil {
				t.Fatalf("ParseClock(%q): expected error, got %d", c.value, got)
			}
			var confErr *ConfigError
			if !errors.As(err, &confErr) {
				t.Fatalf("ParseClock(%q): expected ConfigError, got %T", c.value, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseClock(%q): unexpected error %v", c.value, err)
		}
		if got != c.minutes {
			t.Fatalf("ParseClock(%q): expected %d, got %d", c.value, c.minutes, got)
		}
	}
}

func TestMinuteOfDayString(t *testing.T) {
	cases := []struct {
		minutes  MinuteOfDay
		expected string
	}{
		{minutes: 0, expected: "00:00"},
		{minutes: 15, expected: "00:15"},
		{minutes: 540, expected: "09:00"},
		{minutes: 875, expected: "14:35"},
		{minutes: 1439, expected: "23:59"},
	}

	for _, c := range cases {
		if got := c.minutes.String(); got != c.expected {
			t.Fatalf("expected %s, got %s", c.expected, got)
		}
	}
}

func TestNewWindowRejectsMidnightSpan(t *testing.T) {
	cases := []struct {
		start, end string
	}{
		{start: "22:00", end: "02:00"},
		{start: "09:00", end: "09:00"},
		{start: "10:00", end: "09:00"},
	}

	for _, c := range cases {
		_, err := NewWindow(time.Monday, c.start, c.end)
		if err == nil {
			t.Fatalf("window %s-%s: expected rejection", c.start, c.end)
		}
		var confErr *ConfigError
		if !errors.As(err, &confErr) {
			t.Fatalf("window %s-%s: expected ConfigError, got %T", c.start, c.end, err)
		}
	}
}

func TestDateSpanCovers(t *testing.T) {
	span := DateSpan{
		From: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC),
	}

	cases := []struct {
		day     time.Time
		covered bool
	}{
		{day: time.Date(2025, time.March, 9, 23, 0, 0, 0, time.UTC), covered: false},
		{day: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), covered: true},
		{day: time.Date(2025, time.March, 11, 15, 30, 0, 0, time.UTC), covered: true},
		{day: time.Date(2025, time.March, 12, 23, 59, 0, 0, time.UTC), covered: true},
		{day: time.Date(2025, time.March, 13, 0, 0, 0, 0, time.UTC), covered: false},
	}

	for _, c := range cases {
		if got := span.Covers(c.day); got != c.covered {
			t.Fatalf("Covers(%v): expected %v, got %v", c.day, c.covered, got)
		}
	}
}
