package models

import (
	"time"

	"github.com/google/uuid"
)

// Statuses that hold a tutor's time. Overlap checks and the partial
// unique index only consider these.
var ActiveBookingStatuses = []string{"pending", "confirmed", "in_progress"}

type Booking struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ListingID       uuid.UUID  `gorm:"not null;index" json:"listing_id"`
	TutorID         uuid.UUID  `gorm:"not null;index" json:"tutor_id"`
	StudentID       uuid.UUID  `gorm:"not null;index" json:"student_id"`
	ClientID        *uuid.UUID `json:"client_id,omitempty"`
	ScheduledAt     time.Time  `gorm:"not null" json:"scheduled_at"`
	DurationMinutes int        `gorm:"not null" json:"duration_minutes"`
	Status          string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	Amount          float64    `gorm:"type:numeric(10,2);not null" json:"amount"`
	Currency        string     `gorm:"size:3" json:"currency"`
	PaymentStatus   string     `gorm:"size:20;not null;default:'unpaid'" json:"payment_status"`
	MeetingLink     *string    `gorm:"size:255" json:"meeting_link"`
	Source          *string    `gorm:"size:100" json:"source,omitempty"`
	CancelledBy     *uuid.UUID `json:"cancelled_by,omitempty"`

	Listing Listing `gorm:"foreignkey:ListingID" json:"listing,omitempty"`
	Tutor   Profile `gorm:"foreignkey:TutorID" json:"tutor,omitempty"`
	Student Profile `gorm:"foreignkey:StudentID" json:"student,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) EndsAt() time.Time {
	return b.ScheduledAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
}
