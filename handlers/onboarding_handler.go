package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tutorwise/tutorwise-api/database"
	"github.com/tutorwise/tutorwise-api/middleware"
	"github.com/tutorwise/tutorwise-api/models"
	"gorm.io/gorm"
)

type SaveOnboardingRequest struct {
	RoleType  string          `json:"role_type" validate:"required,oneof=client tutor agent"`
	Step      int             `json:"step" validate:"required,min=1,max=5"`
	Completed bool            `json:"completed"`
	StepData  json.RawMessage `json:"step_data"`
}

// SaveOnboardingProgress upserts the wizard state for one role. The same
// profile can hold separate progress as client and as tutor.
func SaveOnboardingProgress(c *fiber.Ctx) error {
	actor := middleware.CurrentActor(c)

	var req SaveOnboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var progress models.OnboardingProgress
	err := database.DB.
		Where("profile_id = ? AND role_type = ?", actor.ID, req.RoleType).
		First(&progress).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load onboarding progress"})
		}
		progress = models.OnboardingProgress{ProfileID: actor.ID, RoleType: req.RoleType}
	}

	progress.Step = req.Step
	progress.Completed = req.Completed
	if len(req.StepData) > 0 {
		progress.StepData = req.StepData
	}

	if err := database.DB.Save(&progress).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save onboarding progress"})
	}

	return c.JSON(progress)
}

func GetOnboardingProgress(c *fiber.Ctx) error {
	actor := middleware.CurrentActor(c)
	roleType := c.Query("role_type", string(actor.Role))

	var progress models.OnboardingProgress
	err := database.DB.
		Where("profile_id = ? AND role_type = ?", actor.ID, roleType).
		First(&progress).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No onboarding progress for that role"})
	}

	return c.JSON(progress)
}
