package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorwise/tutorwise-api/handlers"
	"github.com/tutorwise/tutorwise-api/middleware"
	"github.com/tutorwise/tutorwise-api/services"
)

func BookingRoutes(app *fiber.App, bookings *services.BookingService) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings", middleware.Protected(), middleware.ResolveActor())
	booking.Get("/me", handlers.GetMyBookings(bookings))
	booking.Post("", middleware.RequireCapability(middleware.CapBookSessions), handlers.RequestBooking(bookings))
	booking.Post("/:bookingId/cancel", handlers.CancelBooking(bookings))
	booking.Post("/:bookingId/review", middleware.RequireCapability(middleware.CapReviewSessions), handlers.CreateReview)

	tutorBooking := api.Group("/tutor/bookings", middleware.Protected(), middleware.ResolveActor(), middleware.RequireCapability(middleware.CapManageListings))
	tutorBooking.Get("", handlers.GetTutorBookings(bookings))
	tutorBooking.Post("/:bookingId/confirm", handlers.ConfirmBooking(bookings))
	tutorBooking.Post("/:bookingId/start", handlers.StartBooking(bookings))
	tutorBooking.Post("/:bookingId/complete", handlers.CompleteBooking(bookings))
}
