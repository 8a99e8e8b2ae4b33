package models

import (
	"time"

	"github.com/google/uuid"
)

// RecruitmentEdge links an agent to a tutor they brought onto the
// platform. BaselineScore freezes the recruit's credibility score at the
// moment the edge was created so improvement can be measured against it.
type RecruitmentEdge struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AgentID       uuid.UUID `gorm:"not null;index" json:"agent_id"`
	RecruitID     uuid.UUID `gorm:"not null;unique" json:"recruit_id"`
	Status        string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	BaselineScore float64   `gorm:"type:numeric(5,2);not null;default:50" json:"baseline_score"`

	Agent   Profile `gorm:"foreignkey:AgentID" json:"-"`
	Recruit Profile `gorm:"foreignkey:RecruitID" json:"recruit,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
