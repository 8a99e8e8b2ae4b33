package models

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityWindow is one recurring weekly block on a listing's
// template. Times are wall-clock "HH:MM" strings in the tutor's zone.
type AvailabilityWindow struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ListingID uuid.UUID `gorm:"not null;index" json:"-"`
	Weekday   int       `gorm:"not null" json:"weekday"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`
}

// AvailabilityException blanks out whole days, StartsOn through EndsOn
// inclusive.
type AvailabilityException struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ListingID uuid.UUID `gorm:"not null;index" json:"-"`
	StartsOn  time.Time `gorm:"type:date;not null" json:"starts_on"`
	EndsOn    time.Time `gorm:"type:date;not null" json:"ends_on"`
	Reason    *string   `gorm:"size:255" json:"reason"`
}
