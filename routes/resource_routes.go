package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorwise/tutorwise-api/handlers"
	"github.com/tutorwise/tutorwise-api/middleware"
)

func ResourceRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	resources := api.Group("/bookings/:bookingId/resources", middleware.Protected(), middleware.ResolveActor())
	resources.Post("", middleware.RequireCapability(middleware.CapShareResources), handlers.UploadResource)
	resources.Get("", handlers.GetBookingResources)
}
