package jobs

import (
	"log"
	"time"

	"github.com/tutorwise/tutorwise-api/database"
	"github.com/tutorwise/tutorwise-api/models"
)

// SweepNoShows marks confirmed sessions that ended over ten minutes ago
// and were never started by the tutor. No-shows count against the
// tutor's reliability on the next score run.
func SweepNoShows() {
	log.Println("Running job: SweepNoShows...")

	cutoff := time.Now().Add(-10 * time.Minute)

	var missedBookings []models.Booking

	err := database.DB.
		Where("status = ? AND scheduled_at + (duration_minutes * interval '1 minute') < ?", "confirmed", cutoff).
		Find(&missedBookings).Error

	if err != nil {
		log.Printf("Error checking for missed sessions: %v", err)
		return
	}

	if len(missedBookings) == 0 {
		log.Println("No missed sessions found.")
		return
	}

	for _, booking := range missedBookings {
		booking.Status = "no_show"
		database.DB.Save(&booking)
	}

	log.Printf("Marked %d booking(s) as no_show.", len(missedBookings))
}
