package jobs

import (
	"log"

	"github.com/tutorwise/tutorwise-api/database"
	"github.com/tutorwise/tutorwise-api/services"
)

// RecomputeCredibilityScores refreshes every active tutor and agent
// score from the day's bookings, reviews and recruitment activity.
func RecomputeCredibilityScores() {
	log.Println("Running job: RecomputeCredibilityScores...")

	caasSvc := services.NewCaasService(database.DB)
	updated, err := caasSvc.RecomputeAll()
	if err != nil {
		log.Printf("Error recomputing credibility scores: %v", err)
		return
	}

	log.Printf("Recomputed credibility scores for %d profile(s).", updated)
}
