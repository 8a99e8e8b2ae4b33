package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OnboardingProgress tracks the wizard per profile and role so someone
// can onboard as a client first and as a tutor later.
type OnboardingProgress struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProfileID uuid.UUID       `gorm:"not null;uniqueIndex:idx_onboarding_profile_role" json:"profile_id"`
	RoleType  string          `gorm:"size:20;not null;uniqueIndex:idx_onboarding_profile_role" json:"role_type"`
	Step      int             `gorm:"not null;default:1" json:"step"`
	Completed bool            `gorm:"default:false" json:"completed"`
	StepData  json.RawMessage `gorm:"type:jsonb" json:"step_data"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
