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

type ListingRequest struct {
	Subject        string  `json:"subject" validate:"required,min=2,max=100"`
	Title          string  `json:"title" validate:"required,min=5,max=255"`
	Description    *string `json:"description"`
	HourlyRate     float64 `json:"hourly_rate" validate:"required,gt=0"`
	Currency       string  `json:"currency" validate:"omitempty,len=3"`
	SessionMinutes int     `json:"session_minutes" validate:"required,gt=0"`
	BufferMinutes  int     `json:"buffer_minutes" validate:"min=0"`
}

type WindowRequest struct {
	Weekday   int    `json:"weekday" validate:"min=0,max=6"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type ExceptionRequest struct {
	StartsOn string  `json:"starts_on" validate:"required"`
	EndsOn   string  `json:"ends_on" validate:"required"`
	Reason   *string `json:"reason"`
}

func CreateListing(c *fiber.Ctx) error {
	actor := middleware.CurrentActor(c)

	var req ListingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	listing := models.Listing{
		TutorID:        actor.ID,
		Subject:        req.Subject,
		Title:          req.Title,
		Description:    req.Description,
		HourlyRate:     req.HourlyRate,
		Currency:       currency,
		SessionMinutes: req.SessionMinutes,
		BufferMinutes:  req.BufferMinutes,
		Status:         "draft",
	}
	if err := database.DB.Create(&listing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create listing"})
	}

	return c.Status(fiber.StatusCreated).JSON(listing)
}

func UpdateListing(c *fiber.Ctx) error {
	listing := ownListing(c)
	if listing == nil {
		return nil
	}

	var req ListingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	listing.Subject = req.Subject
	listing.Title = req.Title
	listing.Description = req.Description
	listing.HourlyRate = req.HourlyRate
	if req.Currency != "" {
		listing.Currency = req.Currency
	}
	listing.SessionMinutes = req.SessionMinutes
	listing.BufferMinutes = req.BufferMinutes

	if err := database.DB.Save(listing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update listing"})
	}

	return c.JSON(listing)
}

// PublishListing makes the listing bookable. A template with no windows
// is allowed but pointless, so it is rejected up front.
func PublishListing(c *fiber.Ctx) error {
	listing := ownListing(c)
	if listing == nil {
		return nil
	}

	var windows int64
	database.DB.Model(&models.AvailabilityWindow{}).Where("listing_id = ?", listing.ID).Count(&windows)
	if windows == 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Add availability windows before publishing"})
	}

	listing.Status = "published"
	if err := database.DB.Save(listing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to publish listing"})
	}

	return c.JSON(listing)
}

func ArchiveListing(c *fiber.Ctx) error {
	listing := ownListing(c)
	if listing == nil {
		return nil
	}

	listing.Status = "archived"
	if err := database.DB.Save(listing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to archive listing"})
	}

	return c.JSON(listing)
}

func GetMyListings(c *fiber.Ctx) error {
	actor := middleware.CurrentActor(c)

	var listings []models.Listing
	err := database.DB.Preload("Windows").Preload("Exceptions").
		Where("tutor_id = ?", actor.ID).
		Order("created_at DESC").
		Find(&listings).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load listings"})
	}

	return c.JSON(listings)
}

// ReplaceAvailability swaps the listing's whole weekly template in one
// transaction. Every window is validated before anything is deleted.
func ReplaceAvailability(c *fiber.Ctx) error {
	listing := ownListing(c)
	if listing == nil {
		return nil
	}

	var req struct {
		Windows []WindowRequest `json:"windows" validate:"required,dive"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	windows := make([]models.AvailabilityWindow, 0, len(req.Windows))
	for _, w := range req.Windows {
		if _, err := scheduling.NewWindow(time.Weekday(w.Weekday), w.StartTime, w.EndTime); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		windows = append(windows, models.AvailabilityWindow{
			ListingID: listing.ID,
			Weekday:   w.Weekday,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", listing.ID).Delete(&models.AvailabilityWindow{}).Error; err != nil {
			return err
		}
		if len(windows) == 0 {
			return nil
		}
		return tx.Create(&windows).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to replace availability"})
	}

	return c.JSON(windows)
}

func AddException(c *fiber.Ctx) error {
	listing := ownListing(c)
	if listing == nil {
		return nil
	}

	var req ExceptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	startsOn, err := time.Parse("2006-01-02", req.StartsOn)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "starts_on must be YYYY-MM-DD"})
	}
	endsOn, err := time.Parse("2006-01-02", req.EndsOn)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "ends_on must be YYYY-MM-DD"})
	}
	if endsOn.Before(startsOn) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "ends_on cannot be before starts_on"})
	}

	exception := models.AvailabilityException{
		ListingID: listing.ID,
		StartsOn:  startsOn,
		EndsOn:    endsOn,
		Reason:    req.Reason,
	}
	if err := database.DB.Create(&exception).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add exception"})
	}

	return c.Status(fiber.StatusCreated).JSON(exception)
}

func RemoveException(c *fiber.Ctx) error {
	listing := ownListing(c)
	if listing == nil {
		return nil
	}

	res := database.DB.
		Where("id = ? AND listing_id = ?", c.Params("exceptionId"), listing.ID).
		Delete(&models.AvailabilityException{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to remove exception"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exception not found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// BrowseListings is the public catalogue with subject and rating filters.
func BrowseListings(c *fiber.Ctx) error {
	query := database.DB.Preload("Tutor").Where("listings.status = ?", "published")

	if subject := c.Query("subject"); subject != "" {
		query = query.Where("subject ILIKE ?", "%"+subject+"%")
	}
	if minRating := c.QueryFloat("min_rating"); minRating > 0 {
		query = query.
			Joins("JOIN profiles ON profiles.id = listings.tutor_id").
			Where("profiles.avg_rating >= ?", minRating)
	}

	var listings []models.Listing
	if err := query.Order("listings.created_at DESC").Find(&listings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load listings"})
	}

	return c.JSON(listings)
}

func GetListing(c *fiber.Ctx) error {
	var listing models.Listing
	err := database.DB.Preload("Tutor").Preload("Windows").Preload("Exceptions").
		Where("id = ? AND status = ?", c.Params("listingId"), "published").
		First(&listing).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
	}

	return c.JSON(listing)
}

// GetListingSlots returns the bookable calendar for a listing over the
// requested range, conflicts already filtered out. Template problems are
// the tutor's to fix and come back as 422; anything else reads as a
// temporary failure.
func GetListingSlots(availability *services.AvailabilityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		listingID, err := uuid.Parse(c.Params("listingId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid listing id"})
		}

		from, err := parseSlotTime(c.Query("from"), time.Now())
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "from must be RFC3339 or YYYY-MM-DD"})
		}
		to, err := parseSlotTime(c.Query("to"), from.AddDate(0, 0, 7))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "to must be RFC3339 or YYYY-MM-DD"})
		}

		slots, err := availability.BookableSlots(listingID, from, to)
		if err != nil {
			var configErr *scheduling.ConfigError
			switch {
			case errors.As(err, &configErr):
				return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": configErr.Error()})
			case errors.Is(err, gorm.ErrRecordNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
			default:
				return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Unable to load availability, please try again"})
			}
		}

		return c.JSON(fiber.Map{"listing_id": listingID, "from": from, "to": to, "slots": slots})
	}
}

func parseSlotTime(raw string, fallback time.Time) (time.Time, error) {
	if raw == "" {
		return fallback, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// ownListing loads the listing from the route param and checks the actor
// owns it (admins pass). On failure the error response is already
// written and nil comes back.
func ownListing(c *fiber.Ctx) *models.Listing {
	actor := middleware.CurrentActor(c)

	var listing models.Listing
	if err := database.DB.Where("id = ?", c.Params("listingId")).First(&listing).Error; err != nil {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
		return nil
	}
	if listing.TutorID != actor.ID && !actor.IsAdmin() {
		_ = c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not own this listing"})
		return nil
	}
	return &listing
}
