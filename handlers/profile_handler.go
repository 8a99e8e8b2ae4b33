package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorwise/tutorwise-api/database"
	"github.com/tutorwise/tutorwise-api/middleware"
	"github.com/tutorwise/tutorwise-api/models"
)

type UpdateProfileRequest struct {
	FullName  *string `json:"full_name"`
	Headline  *string `json:"headline"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
	TimeZone  *string `json:"time_zone"`
	Country   *string `json:"country"`
}

func GetMyProfile(c *fiber.Ctx) error {
	actor := middleware.CurrentActor(c)

	var profile models.Profile
	if err := database.DB.Where("id = ?", actor.ID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	return c.JSON(profile)
}

func UpdateMyProfile(c *fiber.Ctx) error {
	actor := middleware.CurrentActor(c)

	var profile models.Profile
	if err := database.DB.Where("id = ?", actor.ID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.Headline != nil {
		profile.Headline = req.Headline
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = req.AvatarURL
	}
	if req.TimeZone != nil {
		profile.TimeZone = req.TimeZone
	}
	if req.Country != nil {
		profile.Country = req.Country
	}

	database.DB.Save(&profile)

	return c.JSON(profile)
}

// GetPublicTutor is the public tutor page: profile, score breakdown,
// published listings and the latest reviews.
func GetPublicTutor(c *fiber.Ctx) error {
	tutorID := c.Params("tutorId")

	var tutor models.Profile
	err := database.DB.
		Where("id = ? AND role = ? AND is_active = ?", tutorID, "tutor", true).
		First(&tutor).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor not found"})
	}

	var listings []models.Listing
	database.DB.Where("tutor_id = ? AND status = ?", tutor.ID, "published").Find(&listings)

	var reviews []models.SessionReview
	database.DB.Preload("Student").
		Where("tutor_id = ?", tutor.ID).
		Order("created_at DESC").
		Limit(10).
		Find(&reviews)

	return c.JSON(fiber.Map{
		"profile":  tutor,
		"listings": listings,
		"reviews":  reviews,
	})
}
