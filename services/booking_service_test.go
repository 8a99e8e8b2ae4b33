package services

import "testing"

func TestSessionAmount(t *testing.T) {
	cases := []struct {
		rate     float64
		minutes  int
		expected float64
	}{
		{40, 60, 40},
		{40, 90, 60},
		{40, 30, 20},
		{25.50, 45, 19.13},
		{0, 60, 0},
		{33.33, 60, 33.33},
		{10, 20, 3.33},
	}

	for _, c := range cases {
		if got := SessionAmount(c.rate, c.minutes); got != c.expected {
			t.Fatalf("rate %v x %d min: expected %v, got %v", c.rate, c.minutes, c.expected, got)
		}
	}
}

func TestTransitionAllowed(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{"pending", "confirmed", true},
		{"pending", "cancelled", true},
		{"pending", "completed", false},
		{"pending", "in_progress", false},
		{"confirmed", "in_progress", true},
		{"confirmed", "cancelled", true},
		{"confirmed", "no_show", true},
		{"confirmed", "pending", false},
		{"in_progress", "completed", true},
		{"in_progress", "cancelled", false},
		{"completed", "cancelled", false},
		{"cancelled", "pending", false},
		{"no_show", "confirmed", false},
	}

	for _, c := range cases {
		if got := transitionAllowed(c.from, c.to); got != c.allowed {
			t.Fatalf("%s -> %s: expected %v, got %v", c.from, c.to, c.allowed, got)
		}
	}
}
