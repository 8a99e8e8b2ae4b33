package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorwise/tutorwise-api/handlers"
	"github.com/tutorwise/tutorwise-api/services"
)

func AuthRoutes(app *fiber.App, recruitment *services.RecruitmentService, attribution *services.AttributionService) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.RegisterProfile(recruitment, attribution))
	auth.Post("/login", handlers.LoginProfile)
}
