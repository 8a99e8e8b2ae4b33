package services

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/tutorwise/tutorwise-api/models"
	"github.com/tutorwise/tutorwise-api/notifications"
	"gorm.io/gorm"
)

type RecruitmentService struct {
	db *gorm.DB
}

func NewRecruitmentService(db *gorm.DB) *RecruitmentService {
	return &RecruitmentService{db: db}
}

// LinkRecruit records the agent-recruit edge inside the registration
// transaction. The recruit's score at this moment becomes the baseline
// their improvement is measured against; profiles that have never been
// scored start from the midpoint instead of zero.
func (s *RecruitmentService) LinkRecruit(tx *gorm.DB, agent *models.Profile, recruit *models.Profile) error {
	baseline := 50.0
	if !recruit.ScoreBreakdown.ComputedAt.IsZero() {
		baseline = recruit.CredibilityScore
	}

	edge := models.RecruitmentEdge{
		AgentID:       agent.ID,
		RecruitID:     recruit.ID,
		Status:        "pending",
		BaselineScore: baseline,
	}
	return tx.Create(&edge).Error
}

// ActivateIfRecruited flips a pending edge to active once the recruit
// has delivered a session. Safe to call on every completion; it is a
// no-op for tutors nobody recruited.
func (s *RecruitmentService) ActivateIfRecruited(recruitID uuid.UUID) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var edge models.RecruitmentEdge
		err := tx.Preload("Agent").
			Where("recruit_id = ? AND status = ?", recruitID, "pending").
			First(&edge).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		edge.Status = "active"
		if err := tx.Save(&edge).Error; err != nil {
			return err
		}

		go notifications.SendEmail(
			edge.Agent.FullName,
			edge.Agent.Email,
			"Your Recruit Delivered Their First Session!",
			"<h1>Great News!</h1><p>A tutor you recruited has completed their first session. They now count toward your network score.</p>",
		)

		return nil
	})
	if err != nil {
		log.Printf("🔥 Error activating recruitment edge for %s: %v", recruitID, err)
	}
}

// RecruitsOf lists an agent's edges with the recruit profiles attached.
func (s *RecruitmentService) RecruitsOf(agentID uuid.UUID) ([]models.RecruitmentEdge, error) {
	var edges []models.RecruitmentEdge
	err := s.db.Preload("Recruit").
		Where("agent_id = ?", agentID).
		Order("created_at DESC").
		Find(&edges).Error
	if err != nil {
		return nil, err
	}
	return edges, nil
}
