package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorwise/tutorwise-api/handlers"
	"github.com/tutorwise/tutorwise-api/middleware"
	"github.com/tutorwise/tutorwise-api/services"
)

func CaasRoutes(app *fiber.App, caasSvc *services.CaasService, reports *services.ReportService, recruitment *services.RecruitmentService) {
	api := app.Group("/api/v1")

	score := api.Group("/score", middleware.Protected(), middleware.ResolveActor(), middleware.RequireCapability(middleware.CapViewScore))
	score.Get("/me", handlers.GetMyScore)
	score.Post("/me/recompute", handlers.RecomputeMyScore(caasSvc))
	score.Get("/me/reports", handlers.GetMyReports(reports))
	score.Post("/me/reports", handlers.GenerateMyReport(reports))

	recruits := api.Group("/recruits", middleware.Protected(), middleware.ResolveActor(), middleware.RequireCapability(middleware.CapRecruitTutors))
	recruits.Get("", handlers.GetMyRecruits(recruitment))
}
