package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorwise/tutorwise-api/services"
	"gorm.io/gorm"
)

// Setup builds the service layer once and hands each route area the
// services it needs.
func Setup(app *fiber.App, db *gorm.DB) {
	availability := services.NewAvailabilityService(db)
	attribution := services.NewAttributionService(db)
	recruitment := services.NewRecruitmentService(db)
	bookings := services.NewBookingService(db, availability, attribution, recruitment)
	caasSvc := services.NewCaasService(db)
	reports := services.NewReportService(db)

	AuthRoutes(app, recruitment, attribution)
	ProfileRoutes(app)
	UploadRoutes(app)
	ListingRoutes(app, availability)
	BookingRoutes(app, bookings)
	ResourceRoutes(app)
	MessagingRoutes(app)
	CaasRoutes(app, caasSvc, reports, recruitment)
	AttributionRoutes(app, attribution)
	AdminRoutes(app, caasSvc, attribution)
}
