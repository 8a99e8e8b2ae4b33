package database

import (
	"fmt"
	"log"

	config "github.com/tutorwise/tutorwise-api/configs"
	"github.com/tutorwise/tutorwise-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
		Logger:                                   nil,
		NowFunc:                                  nil,
		Dialector:                                nil,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.Profile{},
		&models.Listing{},
		&models.AvailabilityWindow{},
		&models.AvailabilityException{},
		&models.Booking{},
		&models.SessionReview{},
		&models.RecruitmentEdge{},
		&models.AttributionEvent{},
		&models.AttributionSummary{},
		&models.OnboardingProgress{},
		&models.Resource{},
		&models.CredibilityReport{},
		&models.Conversation{},
		&models.Message{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}

	// A tutor can hold at most one active booking per start time. The
	// transactional overlap check closes the rest of the race window.
	err = DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_tutor_start_active
		ON bookings (tutor_id, scheduled_at)
		WHERE status IN ('pending', 'confirmed', 'in_progress')`).Error
	if err != nil {
		log.Fatalf("🔥 Failed to create booking uniqueness index: %v", err)
	}

	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	var count int64
	err := DB.Model(&models.Profile{}).Where("email = ?", adminEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin profile: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin profile already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	admin := models.Profile{
		FullName:         config.Config("ADMIN_FULL_NAME"),
		Email:            adminEmail,
		Password:         string(hashedPassword),
		Role:             "admin",
		IdentityVerified: true,
	}

	if err := DB.Create(&admin).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin profile: %v", err)
		return
	}

	log.Println("✅ Admin profile seeded successfully")
}
