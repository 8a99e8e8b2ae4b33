package caas

// bucketSpec describes one scoring bucket: a base tier table, an extra
// bonus table unlocked by an active subscription, and a hard cap.
type bucketSpec struct {
	name  string
	max   float64
	base  []Tier
	bonus []Tier
}

// value computes the bucket score for a metric. The bonus table only
// applies for subscribed profiles and the sum never exceeds the cap.
func (b bucketSpec) value(metric float64, subscribed bool) float64 {
	v := stepPoints(metric, b.base, 0)
	if subscribed {
		v += stepPoints(metric, b.bonus, 0)
	}
	if v > b.max {
		v = b.max
	}
	return v
}

// Tutor buckets. Caps sum to 100.
var (
	deliveryBucket = bucketSpec{
		name:  "delivery",
		max:   30,
		base:  []Tier{{150, 26}, {75, 22}, {40, 18}, {20, 14}, {10, 10}, {5, 6}, {1, 3}},
		bonus: []Tier{{20, 4}, {5, 2}},
	}
	satisfactionBucket = bucketSpec{
		name:  "satisfaction",
		max:   30,
		base:  []Tier{{4.8, 26}, {4.5, 22}, {4.0, 17}, {3.5, 12}, {3.0, 8}, {0.1, 4}},
		bonus: []Tier{{4.5, 4}, {4.0, 2}},
	}
	reliabilityBucket = bucketSpec{
		name:  "reliability",
		max:   25,
		base:  []Tier{{98, 21}, {95, 18}, {90, 15}, {80, 10}, {60, 5}},
		bonus: []Tier{{95, 4}, {90, 2}},
	}
	engagementBucket = bucketSpec{
		name:  "engagement",
		max:   15,
		base:  []Tier{{12, 13}, {8, 10}, {4, 7}, {1, 4}},
		bonus: []Tier{{8, 2}, {4, 1}},
	}
)

// Agent buckets. Caps sum to 100.
var (
	teamQualityBucket = bucketSpec{
		name:  "team_quality",
		max:   35,
		base:  []Tier{{85, 25}, {70, 19}, {55, 13}, {40, 8}, {1, 4}},
		bonus: []Tier{{80, 10}, {60, 5}},
	}
	networkGrowthBucket = bucketSpec{
		name:  "network_growth",
		max:   25,
		base:  []Tier{{50, 21}, {25, 17}, {10, 13}, {5, 9}, {1, 5}},
		bonus: []Tier{{25, 4}, {10, 2}},
	}
	integrationRateBucket = bucketSpec{
		name:  "integration_rate",
		max:   25,
		base:  []Tier{{80, 21}, {60, 16}, {40, 11}, {20, 6}, {1, 2}},
		bonus: []Tier{{60, 4}, {40, 2}},
	}
	memberImprovementBucket = bucketSpec{
		name:  "member_improvement",
		max:   15,
		base:  []Tier{{20, 13}, {10, 9}, {5, 6}, {1, 3}},
		bonus: []Tier{{10, 2}, {5, 1}},
	}
)
