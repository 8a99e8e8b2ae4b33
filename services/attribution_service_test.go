package services

import "testing"

func TestConversionRate(t *testing.T) {
	cases := []struct {
		numerator   int64
		denominator int64
		expected    float64
	}{
		{50, 100, 50},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{0, 100, 0},
		{10, 0, 0},
		{100, 100, 100},
	}

	for _, c := range cases {
		if got := ConversionRate(c.numerator, c.denominator); got != c.expected {
			t.Fatalf("%d/%d: expected %v, got %v", c.numerator, c.denominator, c.expected, got)
		}
	}
}

func TestSummaryColumn(t *testing.T) {
	cases := []struct {
		stage  string
		column string
		ok     bool
	}{
		{"page_view", "page_views", true},
		{"signup", "signups", true},
		{"booking", "bookings", true},
		{"purchase", "", false},
		{"", "", false},
	}

	for _, c := range cases {
		column, ok := summaryColumn(c.stage)
		if column != c.column || ok != c.ok {
			t.Fatalf("stage %q: expected (%q, %v), got (%q, %v)", c.stage, c.column, c.ok, column, ok)
		}
	}
}
