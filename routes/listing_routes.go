package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tutorwise/tutorwise-api/handlers"
	"github.com/tutorwise/tutorwise-api/middleware"
	"github.com/tutorwise/tutorwise-api/services"
)

func ListingRoutes(app *fiber.App, availability *services.AvailabilityService) {
	api := app.Group("/api/v1")

	api.Get("/listings", handlers.BrowseListings)
	api.Get("/listings/:listingId", handlers.GetListing)
	api.Get("/listings/:listingId/slots", handlers.GetListingSlots(availability))

	manage := api.Group("/tutor/listings", middleware.Protected(), middleware.ResolveActor(), middleware.RequireCapability(middleware.CapManageListings))
	manage.Get("", handlers.GetMyListings)
	manage.Post("", handlers.CreateListing)
	manage.Put("/:listingId", handlers.UpdateListing)
	manage.Post("/:listingId/publish", handlers.PublishListing)
	manage.Post("/:listingId/archive", handlers.ArchiveListing)
	manage.Put("/:listingId/availability", handlers.ReplaceAvailability)
	manage.Post("/:listingId/exceptions", handlers.AddException)
	manage.Delete("/:listingId/exceptions/:exceptionId", handlers.RemoveException)
}
