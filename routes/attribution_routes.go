package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorwise/tutorwise-api/handlers"
	"github.com/tutorwise/tutorwise-api/services"
)

// AttributionRoutes mounts the public tracking beacon. The funnel
// dashboards live under the admin routes.
func AttributionRoutes(app *fiber.App, attribution *services.AttributionService) {
	api := app.Group("/api/v1")

	api.Post("/attribution/events", handlers.TrackEvent(attribution))
}
