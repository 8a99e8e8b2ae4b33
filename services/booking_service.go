package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/tutorwise/tutorwise-api/models"
	"github.com/tutorwise/tutorwise-api/notifications"
	"github.com/tutorwise/tutorwise-api/scheduling"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrSlotTaken         = errors.New("the requested time is no longer available")
	ErrSlotNotOffered    = errors.New("the requested time is not on the tutor's availability")
	ErrInvalidTransition = errors.New("booking cannot change to that status")
	ErrNotParticipant    = errors.New("profile is not part of this booking")
)

// bookingTransitions is the allowed status machine. Bookings are never
// deleted, only moved along it.
var bookingTransitions = map[string][]string{
	"pending":     {"confirmed", "cancelled"},
	"confirmed":   {"in_progress", "cancelled", "no_show"},
	"in_progress": {"completed"},
}

func transitionAllowed(from, to string) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SessionAmount prices a session from the listing's hourly rate, rounded
// to cents.
func SessionAmount(hourlyRate float64, minutes int) float64 {
	return math.Round(hourlyRate*float64(minutes)/60*100) / 100
}

type BookingService struct {
	db           *gorm.DB
	availability *AvailabilityService
	attribution  *AttributionService
	recruitment  *RecruitmentService
}

func NewBookingService(db *gorm.DB, availability *AvailabilityService, attribution *AttributionService, recruitment *RecruitmentService) *BookingService {
	return &BookingService{db: db, availability: availability, attribution: attribution, recruitment: recruitment}
}

type BookingRequest struct {
	ListingID   uuid.UUID
	StudentID   uuid.UUID
	ClientID    *uuid.UUID
	ScheduledAt time.Time
	Source      *string
}

// Request books a session. The start time must match one of the
// listing's generated available slots, then the tutor's calendar is
// re-checked under a row lock so two clients racing for the same time
// cannot both win. The partial unique index on active bookings backstops
// the check.
func (s *BookingService) Request(req BookingRequest) (*models.Booking, error) {
	var listing models.Listing
	err := s.db.Preload("Tutor").
		Where("id = ? AND status = ?", req.ListingID, "published").
		First(&listing).Error
	if err != nil {
		return nil, fmt.Errorf("load listing %s: %w", req.ListingID, err)
	}

	offered, err := s.slotOffered(&listing, req.ScheduledAt)
	if err != nil {
		return nil, err
	}
	if !offered {
		return nil, ErrSlotNotOffered
	}

	booking := models.Booking{
		ListingID:       listing.ID,
		TutorID:         listing.TutorID,
		StudentID:       req.StudentID,
		ClientID:        req.ClientID,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: listing.SessionMinutes,
		Status:          "pending",
		Amount:          SessionAmount(listing.HourlyRate, listing.SessionMinutes),
		Currency:        listing.Currency,
		PaymentStatus:   "unpaid",
		Source:          req.Source,
	}

	requested := scheduling.BusyInterval(req.ScheduledAt, listing.SessionMinutes)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Serialize on the tutor row so concurrent requests for the same
		// calendar queue up instead of racing the overlap check.
		var tutor models.Profile
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&tutor, "id = ?", listing.TutorID).Error
		if err != nil {
			return fmt.Errorf("lock tutor calendar: %w", err)
		}

		var conflicting int64
		err = tx.Model(&models.Booking{}).
			Where("tutor_id = ? AND status IN ?", listing.TutorID, models.ActiveBookingStatuses).
			Where("scheduled_at < ? AND scheduled_at + (duration_minutes * interval '1 minute') > ?",
				requested.End, requested.Start).
			Count(&conflicting).Error
		if err != nil {
			return fmt.Errorf("check tutor calendar: %w", err)
		}
		if conflicting > 0 {
			return ErrSlotTaken
		}

		return tx.Create(&booking).Error
	})
	if err != nil {
		return nil, err
	}

	go notifications.SendEmail(
		listing.Tutor.FullName,
		listing.Tutor.Email,
		"New Session Request",
		fmt.Sprintf("<h1>New Session Request</h1><p>You have a new request for <b>%s</b> on %s. Confirm it from your dashboard.</p>",
			listing.Title, booking.ScheduledAt.Format("Mon, Jan 2 at 15:04 MST")),
	)

	return &booking, nil
}

// slotOffered re-generates the listing's slots around the requested start
// and accepts only an exact, still-available match.
func (s *BookingService) slotOffered(listing *models.Listing, scheduledAt time.Time) (bool, error) {
	windowEnd := scheduledAt.Add(time.Duration(listing.SessionMinutes) * time.Minute)
	slots, err := s.availability.BookableSlots(listing.ID, scheduledAt, windowEnd)
	if err != nil {
		return false, err
	}
	for _, slot := range slots {
		if slot.Start.Equal(scheduledAt) && slot.Available {
			return true, nil
		}
	}
	return false, nil
}

// Confirm moves a pending booking to confirmed. Tutor only.
func (s *BookingService) Confirm(bookingID, actorID uuid.UUID, meetingLink *string) (*models.Booking, error) {
	booking, err := s.transition(bookingID, "confirmed", func(b *models.Booking) error {
		if b.TutorID != actorID {
			return ErrNotParticipant
		}
		if meetingLink != nil {
			b.MeetingLink = meetingLink
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	go notifications.SendEmail(
		booking.Student.FullName,
		booking.Student.Email,
		"Session Confirmed",
		fmt.Sprintf("<h1>You're Booked!</h1><p>Your session on %s is confirmed.</p>",
			booking.ScheduledAt.Format("Mon, Jan 2 at 15:04 MST")),
	)

	return booking, nil
}

// Start moves a confirmed booking to in_progress. Tutor only.
func (s *BookingService) Start(bookingID, actorID uuid.UUID) (*models.Booking, error) {
	return s.transition(bookingID, "in_progress", func(b *models.Booking) error {
		if b.TutorID != actorID {
			return ErrNotParticipant
		}
		return nil
	})
}

// Complete closes an in_progress booking once its scheduled end has
// passed, then reports the conversion if the booking was attributed to a
// source.
func (s *BookingService) Complete(bookingID, actorID uuid.UUID) (*models.Booking, error) {
	booking, err := s.transition(bookingID, "completed", func(b *models.Booking) error {
		if b.TutorID != actorID {
			return ErrNotParticipant
		}
		if time.Now().Before(b.EndsAt()) {
			return fmt.Errorf("%w: session has not ended yet", ErrInvalidTransition)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if booking.Source != nil {
		event := models.AttributionEvent{
			Source:    *booking.Source,
			Stage:     "booking",
			ProfileID: &booking.StudentID,
			BookingID: &booking.ID,
		}
		if err := s.attribution.Record(&event); err != nil {
			log.Printf("🔥 Failed to record booking attribution for %s: %v", booking.ID, err)
		}
	}

	go s.recruitment.ActivateIfRecruited(booking.TutorID)

	return booking, nil
}

// Cancel lets either participant abandon a pending or confirmed booking.
// The canceller is recorded; rows stay for the reliability metric.
func (s *BookingService) Cancel(bookingID, actorID uuid.UUID) (*models.Booking, error) {
	booking, err := s.transition(bookingID, "cancelled", func(b *models.Booking) error {
		if b.TutorID != actorID && b.StudentID != actorID && (b.ClientID == nil || *b.ClientID != actorID) {
			return ErrNotParticipant
		}
		b.CancelledBy = &actorID
		return nil
	})
	if err != nil {
		return nil, err
	}

	go notifications.SendEmail(
		booking.Tutor.FullName,
		booking.Tutor.Email,
		"Session Cancelled",
		fmt.Sprintf("<h1>Session Cancelled</h1><p>The session on %s was cancelled.</p>",
			booking.ScheduledAt.Format("Mon, Jan 2 at 15:04 MST")),
	)

	return booking, nil
}

// transition locks the booking row, runs the guard, validates the status
// change and saves. The guard may mutate the booking before the save.
func (s *BookingService) transition(bookingID uuid.UUID, to string, guard func(*models.Booking) error) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Tutor").Preload("Student").
			First(&booking, "id = ?", bookingID).Error
		if err != nil {
			return fmt.Errorf("load booking %s: %w", bookingID, err)
		}

		if err := guard(&booking); err != nil {
			return err
		}
		if !transitionAllowed(booking.Status, to) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, to)
		}

		booking.Status = to
		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ForStudent lists sessions the profile booked or pays for, newest first.
func (s *BookingService) ForStudent(profileID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Preload("Tutor").Preload("Listing").
		Where("student_id = ? OR client_id = ?", profileID, profileID).
		Order("scheduled_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("load student bookings: %w", err)
	}
	return bookings, nil
}

// ForTutor lists the tutor's sessions, newest first.
func (s *BookingService) ForTutor(profileID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Preload("Student").Preload("Listing").
		Where("tutor_id = ?", profileID).
		Order("scheduled_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("load tutor bookings: %w", err)
	}
	return bookings, nil
}
