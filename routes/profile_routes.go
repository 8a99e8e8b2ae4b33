package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorwise/tutorwise-api/handlers"
	"github.com/tutorwise/tutorwise-api/middleware"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profiles/me", middleware.Protected(), middleware.ResolveActor())
	profile.Get("", handlers.GetMyProfile)
	profile.Put("", handlers.UpdateMyProfile)
	profile.Get("/onboarding", handlers.GetOnboardingProgress)
	profile.Put("/onboarding", handlers.SaveOnboardingProgress)

	api.Get("/tutors/:tutorId", handlers.GetPublicTutor)
}
