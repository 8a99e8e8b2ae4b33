package handlers

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tutorwise/tutorwise-api/database"
	"github.com/tutorwise/tutorwise-api/models"
	"github.com/tutorwise/tutorwise-api/notifications"
	"github.com/tutorwise/tutorwise-api/services"
	"gorm.io/gorm"
)

type monthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type PlatformAnalyticsResponse struct {
	TotalClients       int64            `json:"total_clients"`
	TotalTutors        int64            `json:"total_tutors"`
	TotalAgents        int64            `json:"total_agents"`
	PublishedListings  int64            `json:"published_listings"`
	BookingsLast30Days int64            `json:"bookings_last_30_days"`
	CompletedRevenue   float64          `json:"completed_revenue"`
	MonthlySignups     []monthlyCount   `json:"monthly_signups"`
	RecentBookings     []models.Booking `json:"recent_bookings"`
}

func GetPlatformAnalytics(c *fiber.Ctx) error {
	var response PlatformAnalyticsResponse
	var completedRevenue float64

	database.DB.Model(&models.Profile{}).Where("role = ?", "client").Count(&response.TotalClients)
	database.DB.Model(&models.Profile{}).Where("role = ?", "tutor").Count(&response.TotalTutors)
	database.DB.Model(&models.Profile{}).Where("role = ?", "agent").Count(&response.TotalAgents)
	database.DB.Model(&models.Listing{}).Where("status = ?", "published").Count(&response.PublishedListings)

	database.DB.Model(&models.Booking{}).Where("status = ?", "completed").Select("COALESCE(SUM(amount), 0)").Row().Scan(&completedRevenue)
	response.CompletedRevenue = completedRevenue

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&models.Booking{}).Where("created_at > ?", thirtyDaysAgo).Count(&response.BookingsLast30Days)

	twelveMonthsAgo := time.Now().AddDate(-1, 0, 0)
	database.DB.Model(&models.Profile{}).
		Select("to_char(created_at, 'YYYY-MM') as month, count(*) as count").
		Where("created_at > ?", twelveMonthsAgo).
		Group("month").
		Order("month asc").
		Scan(&response.MonthlySignups)

	database.DB.Order("created_at desc").Limit(5).Preload("Student").Preload("Tutor").Find(&response.RecentBookings)

	return c.JSON(response)
}

// ListVerificationQueue returns tutors and agents still waiting on an
// identity check. Their score stays gated at zero until approval.
func ListVerificationQueue(c *fiber.Ctx) error {
	var pending []models.Profile
	if err := database.DB.
		Where("identity_verified = ? AND role IN ?", false, []string{"tutor", "agent"}).
		Order("created_at asc").
		Find(&pending).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(pending)
}

func ReviewIdentity(c *fiber.Ctx) error {
	type MgtRequest struct {
		Decision string `json:"decision" validate:"required,oneof=approved rejected"`
	}

	var req MgtRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	profileID := c.Params("profileId")

	var profile models.Profile
	if err := database.DB.Where("id = ?", profileID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}
	if profile.Role != "tutor" && profile.Role != "agent" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Only tutors and agents go through identity verification"})
	}

	if req.Decision == "approved" {
		profile.IdentityVerified = true
		if err := database.DB.Save(&profile).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update verification status"})
		}
	}

	switch req.Decision {
	case "approved":
		go notifications.SendEmail(
			profile.FullName,
			profile.Email,
			"Your Identity Has Been Verified!",
			"<h1>You're Verified!</h1><p>Your identity check is complete. Your credibility score is now live and will update as you work on the platform.</p>",
		)
	case "rejected":
		go notifications.SendEmail(
			profile.FullName,
			profile.Email,
			"Update on Your Identity Verification",
			"<h1>Verification Update</h1><p>We could not verify your identity with the documents provided. Please upload a clearer document and try again.</p>",
		)
	}

	return c.JSON(fiber.Map{"message": "Verification decision recorded"})
}

// RecomputeAllScores triggers the same sweep the nightly cron runs.
func RecomputeAllScores(caasSvc *services.CaasService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		updated, err := caasSvc.RecomputeAll()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to recompute scores"})
		}
		return c.JSON(fiber.Map{"updated": updated})
	}
}

func GetAllProfiles(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	search := strings.TrimSpace(c.Query("search"))
	role := c.Query("role")
	offset := (page - 1) * limit

	var profiles []models.Profile
	var totalProfiles int64

	query := database.DB.Model(&models.Profile{})
	countQuery := database.DB.Model(&models.Profile{})

	if search != "" {
		searchTerm := "%" + search + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ?", searchTerm, searchTerm)
		countQuery = countQuery.Where("full_name ILIKE ? OR email ILIKE ?", searchTerm, searchTerm)
	}
	if role != "" {
		query = query.Where("role = ?", role)
		countQuery = countQuery.Where("role = ?", role)
	}

	countQuery.Count(&totalProfiles)
	query.Offset(offset).Limit(limit).Find(&profiles)

	return c.JSON(fiber.Map{
		"data": profiles,
		"meta": fiber.Map{
			"total_profiles": totalProfiles,
			"total_pages":    int(math.Ceil(float64(totalProfiles) / float64(limit))),
			"current_page":   page,
		},
	})
}

func ToggleProfileStatus(c *fiber.Ctx) error {
	profileID := c.Params("profileId")
	type Request struct {
		IsActive bool `json:"is_active"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := database.DB.Model(&models.Profile{}).Where("id = ?", profileID).Update("is_active", req.IsActive).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	return c.JSON(fiber.Map{"message": "Profile status updated successfully."})
}

func AdminGetAllBookings(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	status := c.Query("status")
	offset := (page - 1) * limit

	var bookings []models.Booking
	var totalBookings int64

	query := database.DB.Model(&models.Booking{})
	countQuery := database.DB.Model(&models.Booking{})

	if status != "" {
		query = query.Where("status = ?", status)
		countQuery = countQuery.Where("status = ?", status)
	}

	countQuery.Count(&totalBookings)
	query.Order("created_at desc").Offset(offset).Limit(limit).Preload("Student").Preload("Tutor").Find(&bookings)

	return c.JSON(fiber.Map{
		"data": bookings,
		"meta": fiber.Map{
			"total":     totalBookings,
			"page":      page,
			"last_page": int(math.Ceil(float64(totalBookings) / float64(limit))),
		},
	})
}

func AdminGetReviews(c *fiber.Ctx) error {
	var reviews []models.SessionReview
	database.DB.Order("created_at desc").Preload("Student").Preload("Tutor").Find(&reviews)
	return c.JSON(reviews)
}

func AdminDeleteReview(c *fiber.Ctx) error {
	reviewID := c.Params("reviewId")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var review models.SessionReview
		if err := tx.First(&review, "id = ?", reviewID).Error; err != nil {
			return errors.New("review not found")
		}

		tutorID := review.TutorID

		if err := tx.Delete(&review).Error; err != nil {
			return err
		}

		var result struct{ Avg float64 }
		tx.Model(&models.SessionReview{}).Where("tutor_id = ?", tutorID).Select("COALESCE(AVG(rating), 0) as avg").Scan(&result)

		if err := tx.Model(&models.Profile{}).Where("id = ?", tutorID).Update("avg_rating", result.Avg).Error; err != nil {
			return err
		}

		return nil
	})

	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func AdminDeleteProfile(c *fiber.Ctx) error {
	profileID := c.Params("profileId")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		if err := tx.First(&profile, "id = ?", profileID).Error; err != nil {
			return errors.New("profile not found")
		}

		if profile.Role == "tutor" {
			var listingIDs []string
			if err := tx.Model(&models.Listing{}).Where("tutor_id = ?", profileID).Pluck("id", &listingIDs).Error; err != nil {
				return err
			}
			if len(listingIDs) > 0 {
				if err := tx.Where("listing_id IN ?", listingIDs).Delete(&models.AvailabilityWindow{}).Error; err != nil {
					return err
				}
				if err := tx.Where("listing_id IN ?", listingIDs).Delete(&models.AvailabilityException{}).Error; err != nil {
					return err
				}
				if err := tx.Where("tutor_id = ?", profileID).Delete(&models.Listing{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("tutor_id = ?", profileID).Delete(&models.SessionReview{}).Error; err != nil {
				return err
			}
			if err := tx.Where("tutor_id = ?", profileID).Delete(&models.Booking{}).Error; err != nil {
				return err
			}
			if err := tx.Where("recruit_id = ?", profileID).Delete(&models.RecruitmentEdge{}).Error; err != nil {
				return err
			}
		}
		if profile.Role == "agent" {
			if err := tx.Where("agent_id = ?", profileID).Delete(&models.RecruitmentEdge{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("profile_id = ?", profileID).Delete(&models.OnboardingProgress{}).Error; err != nil {
			return err
		}

		if err := tx.Delete(&profile).Error; err != nil {
			return err
		}

		return nil
	})

	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
