package models

import (
	"time"

	"github.com/google/uuid"
)

// CredibilityReport is a dated PDF snapshot of a profile's score, hosted
// on Cloudinary.
type CredibilityReport struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProfileID   uuid.UUID `gorm:"not null;index" json:"profile_id"`
	Total       float64   `gorm:"type:numeric(5,2);not null" json:"total"`
	ReportURL   string    `gorm:"type:text;not null" json:"report_url"`
	GeneratedAt time.Time `gorm:"not null" json:"generated_at"`

	Profile Profile `gorm:"foreignkey:ProfileID" json:"-"`
}
