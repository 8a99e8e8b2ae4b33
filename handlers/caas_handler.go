package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tutorwise/tutorwise-api/database"
	"github.com/tutorwise/tutorwise-api/middleware"
	"github.com/tutorwise/tutorwise-api/models"
	"github.com/tutorwise/tutorwise-api/services"
	"gorm.io/gorm"
)

// GetMyScore returns the stored credibility score with its breakdown.
// It never recomputes; cron and explicit refresh own that.
func GetMyScore(c *fiber.Ctx) error {
	actor := middleware.CurrentActor(c)

	var profile models.Profile
	if err := database.DB.First(&profile, "id = ?", actor.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}
	if profile.Role != "tutor" && profile.Role != "agent" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": services.ErrNotScoreable.Error()})
	}

	return c.JSON(fiber.Map{
		"score":     profile.CredibilityScore,
		"breakdown": profile.ScoreBreakdown,
	})
}

func RecomputeMyScore(caasSvc *services.CaasService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := middleware.CurrentActor(c)

		profile, err := caasSvc.Recompute(actor.ID)
		if err != nil {
			if errors.Is(err, services.ErrNotScoreable) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to recompute score"})
		}

		return c.JSON(fiber.Map{
			"score":     profile.CredibilityScore,
			"breakdown": profile.ScoreBreakdown,
		})
	}
}

func GenerateMyReport(reports *services.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := middleware.CurrentActor(c)

		report, err := reports.Generate(actor.ID)
		if err != nil {
			if errors.Is(err, services.ErrNotScoreable) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate report"})
		}

		return c.Status(fiber.StatusCreated).JSON(report)
	}
}

func GetMyReports(reports *services.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := middleware.CurrentActor(c)

		list, err := reports.ForProfile(actor.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load reports"})
		}
		return c.JSON(list)
	}
}

func GetMyRecruits(recruitment *services.RecruitmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := middleware.CurrentActor(c)

		edges, err := recruitment.RecruitsOf(actor.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load recruits"})
		}
		return c.JSON(edges)
	}
}
