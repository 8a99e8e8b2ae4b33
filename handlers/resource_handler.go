package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	config "github.com/tutorwise/tutorwise-api/configs"
	"github.com/tutorwise/tutorwise-api/database"
	"github.com/tutorwise/tutorwise-api/middleware"
	"github.com/tutorwise/tutorwise-api/models"
)

func isBookingParticipant(booking *models.Booking, profileID uuid.UUID) bool {
	if booking.TutorID == profileID || booking.StudentID == profileID {
		return true
	}
	return booking.ClientID != nil && *booking.ClientID == profileID
}

// UploadResource attaches session material to a booking. Both sides of
// the session may upload; the paying agent only gets read access.
func UploadResource(c *fiber.Ctx) error {
	actor := middleware.CurrentActor(c)
	bookingID := c.Params("bookingId")

	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}
	if booking.TutorID != actor.ID && booking.StudentID != actor.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only the tutor or the student can share resources on this booking."})
	}

	file, err := c.FormFile("resource")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Resource file is required."})
	}

	cld, _ := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadResult, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   "tutorwise_resources",
		PublicID: fmt.Sprintf("booking_%s_%s", bookingID, file.Filename),
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload file."})
	}

	resource := models.Resource{
		BookingID:  booking.ID,
		UploaderID: actor.ID,
		FileName:   file.Filename,
		FileURL:    uploadResult.SecureURL,
		UploadedAt: time.Now(),
	}
	database.DB.Create(&resource)

	return c.Status(fiber.StatusCreated).JSON(resource)
}

func GetBookingResources(c *fiber.Ctx) error {
	actor := middleware.CurrentActor(c)
	bookingID := c.Params("bookingId")

	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}
	if !isBookingParticipant(&booking, actor.ID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not have access to this booking's resources."})
	}

	var resources []models.Resource
	database.DB.Where("booking_id = ?", bookingID).Order("uploaded_at desc").Find(&resources)

	return c.JSON(resources)
}
