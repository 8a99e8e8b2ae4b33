package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorwise/tutorwise-api/handlers"
	"github.com/tutorwise/tutorwise-api/middleware"
	"github.com/tutorwise/tutorwise-api/services"
)

func AdminRoutes(app *fiber.App, caasSvc *services.CaasService, attribution *services.AttributionService) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.ResolveActor(), middleware.RequireCapability(middleware.CapManagePlatform))

	admin.Get("/dashboard-analytics", handlers.GetPlatformAnalytics)

	admin.Get("/verification-queue", handlers.ListVerificationQueue)
	admin.Put("/verification-queue/:profileId", handlers.ReviewIdentity)

	admin.Post("/scores/recompute", handlers.RecomputeAllScores(caasSvc))

	attributionGroup := admin.Group("/attribution")
	attributionGroup.Get("/funnel", handlers.GetAttributionFunnel(attribution))
	attributionGroup.Get("/summaries", handlers.GetAttributionSummaries(attribution))

	profiles := admin.Group("/profiles")
	profiles.Get("", handlers.GetAllProfiles)
	profiles.Put("/:profileId/status", handlers.ToggleProfileStatus)
	profiles.Delete("/:profileId", handlers.AdminDeleteProfile)

	admin.Get("/bookings", handlers.AdminGetAllBookings)

	reviews := admin.Group("/reviews")
	reviews.Get("", handlers.AdminGetReviews)
	reviews.Delete("/:reviewId", handlers.AdminDeleteReview)
}
