package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	config "github.com/tutorwise/tutorwise-api/configs"
	"github.com/tutorwise/tutorwise-api/database"
	"github.com/tutorwise/tutorwise-api/models"
	"github.com/tutorwise/tutorwise-api/notifications"
	"github.com/tutorwise/tutorwise-api/services"
	"github.com/tutorwise/tutorwise-api/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var validate = validator.New()

type RegisterRequest struct {
	FullName       string  `json:"full_name" validate:"required,min=3"`
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=6"`
	Role           string  `json:"role" validate:"omitempty,oneof=client tutor agent"`
	ReferredByCode *string `json:"referred_by_code,omitempty"`
	Source         *string `json:"source,omitempty"`
}

type ProfileResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterProfile creates the account, and inside the same transaction
// links the new tutor to the recruiting agent when a valid agent code
// was supplied. A signup attribution event fires after commit when the
// registration carries a source.
func RegisterProfile(recruitment *services.RecruitmentService, attribution *services.AttributionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
		}
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
		}

		role := req.Role
		if role == "" {
			role = "client"
		}

		var newProfile models.Profile
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			var referrer *models.Profile
			if req.ReferredByCode != nil && *req.ReferredByCode != "" {
				referrer = &models.Profile{}
				if err := tx.Where("referral_code = ?", *req.ReferredByCode).First(referrer).Error; err != nil {
					log.Printf("Invalid referral code used: %s", *req.ReferredByCode)
					referrer = nil
				}
			}

			uniqueCode, err := utils.GenerateUniqueReferralCode(tx)
			if err != nil {
				return errors.New("failed to generate unique referral code")
			}

			newProfile = models.Profile{
				FullName:       req.FullName,
				Email:          req.Email,
				Password:       string(hashedPassword),
				Role:           role,
				ReferralCode:   &uniqueCode,
				ReferredByCode: req.ReferredByCode,
			}
			if err := tx.Create(&newProfile).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return errors.New("email already exists")
				}
				return err
			}

			if referrer != nil && referrer.Role == "agent" && role == "tutor" {
				if err := recruitment.LinkRecruit(tx, referrer, &newProfile); err != nil {
					return err
				}
			}
			return nil
		})

		if err != nil {
			if err.Error() == "email already exists" {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already exists"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create profile"})
		}

		if req.Source != nil && *req.Source != "" {
			event := models.AttributionEvent{
				Source:    *req.Source,
				Stage:     "signup",
				ProfileID: &newProfile.ID,
			}
			if err := attribution.Record(&event); err != nil {
				log.Printf("🔥 Failed to record signup attribution for %s: %v", newProfile.ID, err)
			}
		}

		go notifications.SendEmail(newProfile.FullName, newProfile.Email, "Welcome to TutorWise!", "<h1>Welcome!</h1><p>Thank you for joining TutorWise.</p>")

		response := ProfileResponse{
			ID:        newProfile.ID.String(),
			FullName:  newProfile.FullName,
			Email:     newProfile.Email,
			Role:      newProfile.Role,
			CreatedAt: newProfile.CreatedAt,
		}
		return c.Status(fiber.StatusCreated).JSON(response)
	}
}

func LoginProfile(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var profile models.Profile
	result := database.DB.Where("email = ? AND is_active = ?", req.Email, true).First(&profile)
	if result.Error != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(req.Password))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	claims := jwt.MapClaims{
		"user_id": profile.ID.String(),
		"role":    profile.Role,
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	t, err := token.SignedString([]byte(config.Config("JWT_SECRET")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.JSON(fiber.Map{"token": t})
}
