package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tutorwise/tutorwise-api/models"
	"github.com/tutorwise/tutorwise-api/services"
)

type TrackEventRequest struct {
	Source string `json:"source" validate:"required,min=2,max=64"`
	Medium string `json:"medium" validate:"max=64"`
}

// TrackEvent is the unauthenticated beacon the landing pages call.
// Only page views come in this way; signups and bookings are recorded
// server side where they actually happen.
func TrackEvent(attribution *services.AttributionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req TrackEventRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
		}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		event := models.AttributionEvent{
			Source:     req.Source,
			Medium:     req.Medium,
			Stage:      "page_view",
			OccurredAt: time.Now(),
		}
		if err := attribution.Record(&event); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record event"})
		}

		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "recorded"})
	}
}

func GetAttributionFunnel(attribution *services.AttributionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		days := c.QueryInt("days", 30)
		if days < 1 || days > 365 {
			days = 30
		}
		since := time.Now().AddDate(0, 0, -days)

		rows, err := attribution.Funnel(since)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load funnel"})
		}

		return c.JSON(fiber.Map{
			"since":  since,
			"funnel": rows,
		})
	}
}

func GetAttributionSummaries(attribution *services.AttributionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summaries, err := attribution.Summaries()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load summaries"})
		}
		return c.JSON(summaries)
	}
}
