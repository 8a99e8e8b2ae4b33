package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tutorwise/tutorwise-api/database"
	"github.com/tutorwise/tutorwise-api/middleware"
	"github.com/tutorwise/tutorwise-api/models"
	"github.com/tutorwise/tutorwise-api/scheduling"
	"github.com/tutorwise/tutorwise-api/services"
	"gorm.io/gorm"
)

type BookingRequestBody struct {
	ListingID   string  `json:"listing_id" validate:"required,uuid"`
	ScheduledAt string  `json:"scheduled_at" validate:"required"`
	StudentID   *string `json:"student_id" validate:"omitempty,uuid"`
	Source      *string `json:"source,omitempty"`
}

type ConfirmRequest struct {
	MeetingLink *string `json:"meeting_link" validate:"omitempty,url"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// RequestBooking books a slot for the actor, or, when an agent supplies
// student_id, on a student's behalf with the agent recorded as payer.
func RequestBooking(booking *services.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := middleware.CurrentActor(c)

		var req BookingRequestBody
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
		}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "scheduled_at must be RFC3339"})
		}

		listingID, _ := uuid.Parse(req.ListingID)
		studentID := actor.ID
		var clientID *uuid.UUID
		if req.StudentID != nil {
			id, err := uuid.Parse(*req.StudentID)
			if err == nil && id != actor.ID {
				studentID = id
				payerID := actor.ID
				clientID = &payerID
			}
		}

		created, err := booking.Request(services.BookingRequest{
			ListingID:   listingID,
			StudentID:   studentID,
			ClientID:    clientID,
			ScheduledAt: scheduledAt,
			Source:      req.Source,
		})
		if err != nil {
			return bookingError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

func ConfirmBooking(booking *services.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := middleware.CurrentActor(c)
		bookingID, err := uuid.Parse(c.Params("bookingId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
		}

		var req ConfirmRequest
		if err := c.BodyParser(&req); err == nil {
			if err := validate.Struct(req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
		}

		confirmed, err := booking.Confirm(bookingID, actor.ID, req.MeetingLink)
		if err != nil {
			return bookingError(c, err)
		}
		return c.JSON(confirmed)
	}
}

func StartBooking(booking *services.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := middleware.CurrentActor(c)
		bookingID, err := uuid.Parse(c.Params("bookingId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
		}

		started, err := booking.Start(bookingID, actor.ID)
		if err != nil {
			return bookingError(c, err)
		}
		return c.JSON(started)
	}
}

func CompleteBooking(booking *services.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := middleware.CurrentActor(c)
		bookingID, err := uuid.Parse(c.Params("bookingId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
		}

		completed, err := booking.Complete(bookingID, actor.ID)
		if err != nil {
			return bookingError(c, err)
		}
		return c.JSON(completed)
	}
}

func CancelBooking(booking *services.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := middleware.CurrentActor(c)
		bookingID, err := uuid.Parse(c.Params("bookingId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
		}

		cancelled, err := booking.Cancel(bookingID, actor.ID)
		if err != nil {
			return bookingError(c, err)
		}
		return c.JSON(cancelled)
	}
}

func GetMyBookings(booking *services.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := middleware.CurrentActor(c)

		bookings, err := booking.ForStudent(actor.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load bookings"})
		}
		return c.JSON(bookings)
	}
}

func GetTutorBookings(booking *services.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := middleware.CurrentActor(c)

		bookings, err := booking.ForTutor(actor.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load bookings"})
		}
		return c.JSON(bookings)
	}
}

// CreateReview stores the student's review and refreshes the tutor's
// average rating in the same transaction.
func CreateReview(c *fiber.Ctx) error {
	actor := middleware.CurrentActor(c)
	bookingID := c.Params("bookingId")

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var newReview models.SessionReview
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, "id = ?", bookingID).Error; err != nil {
			return errors.New("booking not found")
		}
		if booking.StudentID != actor.ID {
			return errors.New("you are not the student for this booking")
		}
		if booking.Status != "completed" {
			return errors.New("reviews can only be submitted for completed sessions")
		}

		var existingReview models.SessionReview
		if err := tx.Where("booking_id = ?", bookingID).First(&existingReview).Error; err == nil {
			return errors.New("a review for this booking has already been submitted")
		}

		newReview = models.SessionReview{
			BookingID: booking.ID,
			StudentID: actor.ID,
			TutorID:   booking.TutorID,
			Rating:    req.Rating,
			Comment:   req.Comment,
		}
		if err := tx.Create(&newReview).Error; err != nil {
			return err
		}

		var result struct {
			Avg float64
		}
		tx.Model(&models.SessionReview{}).Where("tutor_id = ?", booking.TutorID).Select("avg(rating) as avg").Scan(&result)

		if err := tx.Model(&models.Profile{}).Where("id = ?", booking.TutorID).Update("avg_rating", result.Avg).Error; err != nil {
			return err
		}

		return nil
	})

	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(newReview)
}

func bookingError(c *fiber.Ctx, err error) error {
	var configErr *scheduling.ConfigError
	switch {
	case errors.Is(err, services.ErrSlotTaken), errors.Is(err, gorm.ErrDuplicatedKey):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": services.ErrSlotTaken.Error()})
	case errors.Is(err, services.ErrSlotNotOffered):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": services.ErrSlotNotOffered.Error()})
	case errors.Is(err, services.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNotParticipant):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": services.ErrNotParticipant.Error()})
	case errors.As(err, &configErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": configErr.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking or listing not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process booking"})
	}
}
