// Package caas computes the credibility-as-a-score rating for tutors and
// agents. Every metric maps onto a bucket through a tiered step function,
// buckets are individually capped and the capped sum, never above 100,
// becomes the profile's credibility score. Unverified profiles are gated
// to zero before any bucket is looked at.
package caas

import "time"

// GateIdentityUnverified is recorded on the breakdown when the identity
// gate zeroes a score.
const GateIdentityUnverified = "identity_unverified"

// Breakdown records the per-bucket values behind a score. Tutor and agent
// buckets share the struct; the ones outside the profile's role stay zero.
type Breakdown struct {
	Delivery          float64   `json:"delivery"`
	Satisfaction      float64   `json:"satisfaction"`
	Reliability       float64   `json:"reliability"`
	Engagement        float64   `json:"engagement"`
	TeamQuality       float64   `json:"team_quality"`
	NetworkGrowth     float64   `json:"network_growth"`
	IntegrationRate   float64   `json:"integration_rate"`
	MemberImprovement float64   `json:"member_improvement"`
	GateReason        string    `json:"gate_reason,omitempty"`
	ComputedAt        time.Time `json:"computed_at"`
}

// Score is a computed credibility score with its breakdown. ComputedAt is
// stamped by the caller when the score is persisted, keeping the
// calculators deterministic.
type Score struct {
	Total     float64   `json:"total"`
	Breakdown Breakdown `json:"breakdown"`
}

// TutorInputs are the metrics a tutor score is computed from.
type TutorInputs struct {
	IdentityVerified  bool
	Subscribed        bool
	CompletedSessions int
	AverageRating     float64
	CompletionRate    float64
	RecentSessions    int
}

// AgentInputs are the metrics an agent score is computed from.
type AgentInputs struct {
	IdentityVerified   bool
	Subscribed         bool
	TeamAverageScore   float64
	RecruitCount       int
	IntegrationPercent float64
	AverageImprovement float64
}

func gated() Score {
	return Score{Total: 0, Breakdown: Breakdown{GateReason: GateIdentityUnverified}}
}

// CalculateTutor scores a tutor profile. Pure: identical inputs always
// produce an identical Score.
func CalculateTutor(in TutorInputs) Score {
	if !in.IdentityVerified {
		return gated()
	}
	b := Breakdown{
		Delivery:     deliveryBucket.value(float64(in.CompletedSessions), in.Subscribed),
		Satisfaction: satisfactionBucket.value(in.AverageRating, in.Subscribed),
		Reliability:  reliabilityBucket.value(in.CompletionRate, in.Subscribed),
		Engagement:   engagementBucket.value(float64(in.RecentSessions), in.Subscribed),
	}
	total := b.Delivery + b.Satisfaction + b.Reliability + b.Engagement
	return Score{Total: capTotal(total), Breakdown: b}
}

// CalculateAgent scores an agent profile. Pure: identical inputs always
// produce an identical Score.
func CalculateAgent(in AgentInputs) Score {
	if !in.IdentityVerified {
		return gated()
	}
	b := Breakdown{
		TeamQuality:       teamQualityBucket.value(in.TeamAverageScore, in.Subscribed),
		NetworkGrowth:     networkGrowthBucket.value(float64(in.RecruitCount), in.Subscribed),
		IntegrationRate:   integrationRateBucket.value(in.IntegrationPercent, in.Subscribed),
		MemberImprovement: memberImprovementBucket.value(in.AverageImprovement, in.Subscribed),
	}
	total := b.TeamQuality + b.NetworkGrowth + b.IntegrationRate + b.MemberImprovement
	return Score{Total: capTotal(total), Breakdown: b}
}

func capTotal(total float64) float64 {
	if total > 100 {
		return 100
	}
	return total
}
