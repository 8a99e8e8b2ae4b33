package caas

import "testing"

func TestStepPointsBoundaries(t *testing.T) {
	tiers := []Tier{{80, 25}, {60, 13}, {0, 5}}

	cases := []struct {
		metric   float64
		expected float64
	}{
		{95, 25},
		{80, 25}, // exactly on a threshold wins that tier
		{79.9, 13},
		{60, 13},
		{59.9, 5},
		{0, 5},
		{-5, -1}, // below every threshold falls to the floor
	}

	for _, c := range cases {
		got := stepPoints(c.metric, tiers, -1)
		if got != c.expected {
			t.Fatalf("metric %v: expected %v points, got %v", c.metric, c.expected, got)
		}
	}
}

func TestStepPointsEmptyTable(t *testing.T) {
	if got := stepPoints(42, nil, 0); got != 0 {
		t.Fatalf("expected floor for empty table, got %v", got)
	}
}

// Every tier table must be declared in strictly descending threshold order
// with descending points, so a higher metric can never earn fewer points.
func TestBucketTablesMonotonic(t *testing.T) {
	buckets := []bucketSpec{
		deliveryBucket, satisfactionBucket, reliabilityBucket, engagementBucket,
		teamQualityBucket, networkGrowthBucket, integrationRateBucket, memberImprovementBucket,
	}

	for _, b := range buckets {
		for _, table := range [][]Tier{b.base, b.bonus} {
			for i := 1; i < len(table); i++ {
				if table[i].Threshold >= table[i-1].Threshold {
					t.Fatalf("%s: threshold %v not below %v", b.name, table[i].Threshold, table[i-1].Threshold)
				}
				if table[i].Points >= table[i-1].Points {
					t.Fatalf("%s: points %v not below %v", b.name, table[i].Points, table[i-1].Points)
				}
			}
		}
	}
}

func TestBucketTablesNeverExceedCap(t *testing.T) {
	buckets := []bucketSpec{
		deliveryBucket, satisfactionBucket, reliabilityBucket, engagementBucket,
		teamQualityBucket, networkGrowthBucket, integrationRateBucket, memberImprovementBucket,
	}

	for _, b := range buckets {
		top := b.base[0].Points + b.bonus[0].Points
		if top < b.max {
			t.Fatalf("%s: best case %v cannot reach cap %v", b.name, top, b.max)
		}
		if got := b.value(1e9, true); got != b.max {
			t.Fatalf("%s: expected cap %v at the top tier, got %v", b.name, b.max, got)
		}
	}
}

func TestBucketValueClampsAtMax(t *testing.T) {
	b := bucketSpec{
		name:  "synthetic",
		max:   10,
		base:  []Tier{{1, 9}},
		bonus: []Tier{{1, 5}},
	}

	if got := b.value(5, true); got != 10 {
		t.Fatalf("expected clamp at 10, got %v", got)
	}
	if got := b.value(5, false); got != 9 {
		t.Fatalf("expected base 9 without subscription, got %v", got)
	}
}
