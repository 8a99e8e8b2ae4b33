package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/tutorwise/tutorwise-api/caas"
	"github.com/tutorwise/tutorwise-api/models"
	"gorm.io/gorm"
)

var ErrNotScoreable = errors.New("only tutors and agents carry a credibility score")

type CaasService struct {
	db *gorm.DB
}

func NewCaasService(db *gorm.DB) *CaasService {
	return &CaasService{db: db}
}

// Recompute recalculates one profile's credibility score and persists
// score, breakdown and timestamp together. Every aggregate is fetched
// before anything is written; a failed fetch aborts the whole run so a
// half-sourced score can never land in the profile row.
func (s *CaasService) Recompute(profileID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", profileID).Error; err != nil {
		return nil, fmt.Errorf("load profile %s: %w", profileID, err)
	}

	var score caas.Score
	switch profile.Role {
	case "tutor":
		inputs, err := s.tutorInputs(&profile)
		if err != nil {
			return nil, err
		}
		score = caas.CalculateTutor(inputs)
	case "agent":
		inputs, err := s.agentInputs(&profile)
		if err != nil {
			return nil, err
		}
		score = caas.CalculateAgent(inputs)
	default:
		return nil, ErrNotScoreable
	}

	score.Breakdown.ComputedAt = time.Now()
	profile.CredibilityScore = score.Total
	profile.ScoreBreakdown = score.Breakdown

	if err := s.db.Save(&profile).Error; err != nil {
		return nil, fmt.Errorf("persist score for %s: %w", profileID, err)
	}
	return &profile, nil
}

// RecomputeAll refreshes every active tutor and agent. Per-profile
// failures are logged and skipped so one broken profile cannot stall the
// nightly sweep.
func (s *CaasService) RecomputeAll() (int, error) {
	var ids []uuid.UUID
	err := s.db.Model(&models.Profile{}).
		Where("role IN ? AND is_active = ?", []string{"tutor", "agent"}, true).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, fmt.Errorf("list scoreable profiles: %w", err)
	}

	updated := 0
	for _, id := range ids {
		if _, err := s.Recompute(id); err != nil {
			log.Printf("🔥 Failed to recompute score for %s: %v", id, err)
			continue
		}
		updated++
	}
	return updated, nil
}

func (s *CaasService) tutorInputs(profile *models.Profile) (caas.TutorInputs, error) {
	var zero caas.TutorInputs
	now := time.Now()

	completed, err := s.countBookings(profile.ID, "status = ?", "completed")
	if err != nil {
		return zero, err
	}
	noShows, err := s.countBookings(profile.ID, "status = ?", "no_show")
	if err != nil {
		return zero, err
	}
	cancelled, err := s.countBookings(profile.ID, "status = ?", "cancelled")
	if err != nil {
		return zero, err
	}
	recent, err := s.countBookings(profile.ID, "status = ? AND scheduled_at >= ?", "completed", now.AddDate(0, 0, -30))
	if err != nil {
		return zero, err
	}

	var avgRating float64
	err = s.db.Model(&models.SessionReview{}).
		Where("tutor_id = ?", profile.ID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avgRating).Error
	if err != nil {
		return zero, fmt.Errorf("load average rating for %s: %w", profile.ID, err)
	}

	completionRate := 0.0
	if terminal := completed + noShows + cancelled; terminal > 0 {
		completionRate = float64(completed) / float64(terminal) * 100
	}

	return caas.TutorInputs{
		IdentityVerified:  profile.IdentityVerified,
		Subscribed:        profile.Subscribed(now),
		CompletedSessions: int(completed),
		AverageRating:     avgRating,
		CompletionRate:    completionRate,
		RecentSessions:    int(recent),
	}, nil
}

func (s *CaasService) countBookings(tutorID uuid.UUID, query string, args ...interface{}) (int64, error) {
	var count int64
	err := s.db.Model(&models.Booking{}).
		Where("tutor_id = ?", tutorID).
		Where(query, args...).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count bookings for tutor %s: %w", tutorID, err)
	}
	return count, nil
}

func (s *CaasService) agentInputs(profile *models.Profile) (caas.AgentInputs, error) {
	var zero caas.AgentInputs
	now := time.Now()

	var edges []models.RecruitmentEdge
	err := s.db.Preload("Recruit").
		Where("agent_id = ?", profile.ID).
		Find(&edges).Error
	if err != nil {
		return zero, fmt.Errorf("load recruitment edges for %s: %w", profile.ID, err)
	}

	inputs := caas.AgentInputs{
		IdentityVerified: profile.IdentityVerified,
		Subscribed:       profile.Subscribed(now),
		RecruitCount:     len(edges),
	}
	if len(edges) == 0 {
		return inputs, nil
	}

	var scoreSum, improvementSum float64
	for _, edge := range edges {
		scoreSum += edge.Recruit.CredibilityScore
		improvementSum += edge.Recruit.CredibilityScore - edge.BaselineScore
	}
	inputs.TeamAverageScore = scoreSum / float64(len(edges))
	inputs.AverageImprovement = improvementSum / float64(len(edges))

	// A recruit is integrated once they have a published listing and at
	// least one completed session.
	var integrated int64
	err = s.db.Model(&models.Profile{}).
		Joins("JOIN recruitment_edges ON recruitment_edges.recruit_id = profiles.id").
		Where("recruitment_edges.agent_id = ?", profile.ID).
		Where("EXISTS (SELECT 1 FROM listings WHERE listings.tutor_id = profiles.id AND listings.status = 'published')").
		Where("EXISTS (SELECT 1 FROM bookings WHERE bookings.tutor_id = profiles.id AND bookings.status = 'completed')").
		Count(&integrated).Error
	if err != nil {
		return zero, fmt.Errorf("count integrated recruits for %s: %w", profile.ID, err)
	}
	inputs.IntegrationPercent = float64(integrated) / float64(len(edges)) * 100

	return inputs, nil
}
