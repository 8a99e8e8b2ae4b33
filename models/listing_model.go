package models

import (
	"time"

	"github.com/google/uuid"
)

type Listing struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TutorID        uuid.UUID `gorm:"not null;index" json:"tutor_id"`
	Subject        string    `gorm:"size:100;not null" json:"subject"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	Description    *string   `gorm:"type:text" json:"description"`
	HourlyRate     float64   `gorm:"type:numeric(10,2);not null" json:"hourly_rate"`
	Currency       string    `gorm:"size:3;not null;default:'USD'" json:"currency"`
	SessionMinutes int       `gorm:"not null;default:60" json:"session_minutes"`
	BufferMinutes  int       `gorm:"not null;default:0" json:"buffer_minutes"`
	Status         string    `gorm:"size:20;not null;default:'draft'" json:"status"`

	Tutor      Profile                 `gorm:"foreignkey:TutorID" json:"tutor,omitempty"`
	Windows    []AvailabilityWindow    `gorm:"foreignkey:ListingID" json:"windows,omitempty"`
	Exceptions []AvailabilityException `gorm:"foreignkey:ListingID" json:"exceptions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
