package caas

// Tier awards Points once a metric reaches Threshold.
type Tier struct {
	Threshold float64
	Points    float64
}

// stepPoints walks tiers in descending threshold order and returns the
// points of the first tier the metric reaches. Metrics below every
// threshold earn the floor.
func stepPoints(metric float64, tiers []Tier, floor float64) float64 {
	for _, t := range tiers {
		if metric >= t.Threshold {
			return t.Points
		}
	}
	return floor
}
