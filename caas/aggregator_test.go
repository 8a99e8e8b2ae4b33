package caas

import (
	"reflect"
	"testing"
)

func TestCalculateTutor(t *testing.T) {
	cases := []struct {
		name     string
		in       TutorInputs
		expected float64
	}{
		{
			name: "established tutor",
			in: TutorInputs{
				IdentityVerified:  true,
				CompletedSessions: 80,
				AverageRating:     4.6,
				CompletionRate:    96,
				RecentSessions:    9,
			},
			// 22 + 22 + 18 + 10
			expected: 72,
		},
		{
			name: "established tutor with subscription",
			in: TutorInputs{
				IdentityVerified:  true,
				Subscribed:        true,
				CompletedSessions: 80,
				AverageRating:     4.6,
				CompletionRate:    96,
				RecentSessions:    9,
			},
			// 26 + 26 + 22 + 12
			expected: 86,
		},
		{
			name: "brand new tutor",
			in: TutorInputs{
				IdentityVerified: true,
			},
			expected: 0,
		},
		{
			name: "perfect tutor hits the total cap",
			in: TutorInputs{
				IdentityVerified:  true,
				Subscribed:        true,
				CompletedSessions: 500,
				AverageRating:     5,
				CompletionRate:    100,
				RecentSessions:    40,
			},
			expected: 100,
		},
	}

	for _, c := range cases {
		got := CalculateTutor(c.in)
		if got.Total != c.expected {
			t.Fatalf("%s: expected total %v, got %v", c.name, c.expected, got.Total)
		}
	}
}

func TestCalculateAgent(t *testing.T) {
	cases := []struct {
		name     string
		in       AgentInputs
		expected float64
	}{
		{
			name: "growing agency",
			in: AgentInputs{
				IdentityVerified:   true,
				TeamAverageScore:   72,
				RecruitCount:       12,
				IntegrationPercent: 45,
				AverageImprovement: 8,
			},
			// 19 + 13 + 11 + 6
			expected: 49,
		},
		{
			name: "growing agency with subscription",
			in: AgentInputs{
				IdentityVerified:   true,
				Subscribed:         true,
				TeamAverageScore:   72,
				RecruitCount:       12,
				IntegrationPercent: 45,
				AverageImprovement: 8,
			},
			// 24 + 15 + 13 + 7
			expected: 59,
		},
		{
			name: "shrinking team earns nothing for improvement",
			in: AgentInputs{
				IdentityVerified:   true,
				TeamAverageScore:   60,
				RecruitCount:       3,
				IntegrationPercent: 10,
				AverageImprovement: -12,
			},
			// 13 + 5 + 2 + 0
			expected: 20,
		},
	}

	for _, c := range cases {
		got := CalculateAgent(c.in)
		if got.Total != c.expected {
			t.Fatalf("%s: expected total %v, got %v", c.name, c.expected, got.Total)
		}
	}
}

func TestTeamQualityBucketValues(t *testing.T) {
	// An average of 72 lands in the 70+ tier: 19 base, +5 bonus when
	// subscribed.
	in := AgentInputs{IdentityVerified: true, TeamAverageScore: 72, RecruitCount: 1}

	got := CalculateAgent(in)
	if got.Breakdown.TeamQuality != 19 {
		t.Fatalf("expected team quality 19 without subscription, got %v", got.Breakdown.TeamQuality)
	}

	in.Subscribed = true
	got = CalculateAgent(in)
	if got.Breakdown.TeamQuality != 24 {
		t.Fatalf("expected team quality 24 with subscription, got %v", got.Breakdown.TeamQuality)
	}
}

func TestIdentityGateShortCircuits(t *testing.T) {
	tutor := TutorInputs{
		CompletedSessions: 500,
		AverageRating:     5,
		CompletionRate:    100,
		RecentSessions:    40,
		Subscribed:        true,
	}

	got := CalculateTutor(tutor)
	if got.Total != 0 {
		t.Fatalf("expected total 0 for unverified tutor, got %v", got.Total)
	}
	if got.Breakdown.GateReason != GateIdentityUnverified {
		t.Fatalf("expected gate reason %q, got %q", GateIdentityUnverified, got.Breakdown.GateReason)
	}
	if got.Breakdown.Delivery != 0 || got.Breakdown.Satisfaction != 0 {
		t.Fatalf("gated score leaked bucket values: %+v", got.Breakdown)
	}

	agent := AgentInputs{TeamAverageScore: 90, RecruitCount: 100, Subscribed: true}
	if got := CalculateAgent(agent); got.Total != 0 || got.Breakdown.GateReason != GateIdentityUnverified {
		t.Fatalf("expected gated agent score, got %+v", got)
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	in := TutorInputs{
		IdentityVerified:  true,
		Subscribed:        true,
		CompletedSessions: 37,
		AverageRating:     4.2,
		CompletionRate:    91.5,
		RecentSessions:    6,
	}

	first := CalculateTutor(in)
	second := CalculateTutor(in)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same inputs produced different scores: %+v vs %+v", first, second)
	}
}

func TestBonusRequiresSubscription(t *testing.T) {
	in := TutorInputs{IdentityVerified: true, AverageRating: 4.6}

	base := CalculateTutor(in).Breakdown.Satisfaction
	if base != 22 {
		t.Fatalf("expected satisfaction 22 without subscription, got %v", base)
	}

	in.Subscribed = true
	boosted := CalculateTutor(in).Breakdown.Satisfaction
	if boosted != 26 {
		t.Fatalf("expected satisfaction 26 with subscription, got %v", boosted)
	}
}
