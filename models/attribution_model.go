package models

import (
	"time"

	"github.com/google/uuid"
)

// AttributionEvent is one touch in the marketing funnel. Rows are
// insert-only; the matching summary row is bumped in the same
// transaction.
type AttributionEvent struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Source     string     `gorm:"size:100;not null;index" json:"source"`
	Medium     string     `gorm:"size:50" json:"medium"`
	Stage      string     `gorm:"size:20;not null" json:"stage"`
	ProfileID  *uuid.UUID `json:"profile_id,omitempty"`
	BookingID  *uuid.UUID `json:"booking_id,omitempty"`
	OccurredAt time.Time  `gorm:"not null" json:"occurred_at"`
}

type AttributionSummary struct {
	Source    string    `gorm:"size:100;primary_key" json:"source"`
	PageViews int64     `gorm:"not null;default:0" json:"page_views"`
	Signups   int64     `gorm:"not null;default:0" json:"signups"`
	Bookings  int64     `gorm:"not null;default:0" json:"bookings"`
	UpdatedAt time.Time `json:"updated_at"`
}
