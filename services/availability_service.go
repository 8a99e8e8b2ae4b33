package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tutorwise/tutorwise-api/models"
	"github.com/tutorwise/tutorwise-api/scheduling"
	"gorm.io/gorm"
)

type AvailabilityService struct {
	db *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{db: db}
}

// BookableSlots expands a published listing's weekly template over
// [from, to) and flags every slot that collides with one of the tutor's
// active bookings. Conflicts are checked against all of the tutor's
// listings, one person cannot teach two sessions at once.
func (s *AvailabilityService) BookableSlots(listingID uuid.UUID, from, to time.Time) ([]scheduling.Slot, error) {
	var listing models.Listing
	err := s.db.Preload("Windows").Preload("Exceptions").Preload("Tutor").
		Where("id = ? AND status = ?", listingID, "published").
		First(&listing).Error
	if err != nil {
		return nil, fmt.Errorf("load listing %s: %w", listingID, err)
	}

	tpl, err := buildTemplate(&listing)
	if err != nil {
		return nil, err
	}

	exceptions := make([]scheduling.DateSpan, 0, len(listing.Exceptions))
	for _, ex := range listing.Exceptions {
		exceptions = append(exceptions, scheduling.DateSpan{From: ex.StartsOn, To: ex.EndsOn})
	}

	slots, err := scheduling.GenerateSlots(tpl, exceptions, from, to, listing.TutorID)
	if err != nil {
		return nil, err
	}

	// Edge slots can spill past the queried bounds; widen the busy fetch
	// so their conflicts are still seen.
	pad := time.Duration(listing.SessionMinutes) * time.Minute
	busy, err := s.busyIntervals(listing.TutorID, from.Add(-pad), to.Add(pad))
	if err != nil {
		return nil, err
	}

	return scheduling.MarkConflicts(slots, busy), nil
}

// buildTemplate converts a listing's stored windows into the generator's
// template. Malformed rows surface as *scheduling.ConfigError so the
// owning tutor gets told to fix their settings.
func buildTemplate(listing *models.Listing) (scheduling.Template, error) {
	tpl := scheduling.Template{
		SessionMinutes: listing.SessionMinutes,
		BufferMinutes:  listing.BufferMinutes,
		Location:       tutorLocation(&listing.Tutor),
	}

	for _, w := range listing.Windows {
		window, err := scheduling.NewWindow(time.Weekday(w.Weekday), w.StartTime, w.EndTime)
		if err != nil {
			return scheduling.Template{}, err
		}
		tpl.Windows = append(tpl.Windows, window)
	}

	return tpl, nil
}

func tutorLocation(tutor *models.Profile) *time.Location {
	if tutor.TimeZone == nil {
		return time.UTC
	}
	loc, err := time.LoadLocation(*tutor.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// busyIntervals loads the tutor's active bookings that touch [from, to).
func (s *AvailabilityService) busyIntervals(tutorID uuid.UUID, from, to time.Time) ([]scheduling.Interval, error) {
	var bookings []models.Booking
	err := s.db.
		Where("tutor_id = ? AND status IN ?", tutorID, models.ActiveBookingStatuses).
		Where("scheduled_at < ? AND scheduled_at + (duration_minutes * interval '1 minute') > ?", to, from).
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("load bookings for tutor %s: %w", tutorID, err)
	}

	busy := make([]scheduling.Interval, 0, len(bookings))
	for _, b := range bookings {
		busy = append(busy, scheduling.BusyInterval(b.ScheduledAt, b.DurationMinutes))
	}
	return busy, nil
}
