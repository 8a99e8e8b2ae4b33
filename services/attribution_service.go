package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tutorwise/tutorwise-api/models"
	"gorm.io/gorm"
)

var ErrUnknownStage = errors.New("unknown attribution stage")

func summaryColumn(stage string) (string, bool) {
	switch stage {
	case "page_view":
		return "page_views", true
	case "signup":
		return "signups", true
	case "booking":
		return "bookings", true
	}
	return "", false
}

type AttributionService struct {
	db *gorm.DB
}

func NewAttributionService(db *gorm.DB) *AttributionService {
	return &AttributionService{db: db}
}

// Record appends a funnel event and bumps the per-source summary counter
// in the same transaction, so the cheap dashboard numbers can never
// drift from the event log.
func (s *AttributionService) Record(event *models.AttributionEvent) error {
	column, ok := summaryColumn(event.Stage)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStage, event.Stage)
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return fmt.Errorf("record attribution event: %w", err)
		}

		res := tx.Model(&models.AttributionSummary{}).
			Where("source = ?", event.Source).
			Updates(map[string]interface{}{
				column:       gorm.Expr(column + " + 1"),
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return fmt.Errorf("update attribution summary: %w", res.Error)
		}
		if res.RowsAffected > 0 {
			return nil
		}

		summary := models.AttributionSummary{Source: event.Source}
		switch event.Stage {
		case "page_view":
			summary.PageViews = 1
		case "signup":
			summary.Signups = 1
		case "booking":
			summary.Bookings = 1
		}
		return tx.Create(&summary).Error
	})
}

// FunnelRow is one source's funnel with stage-to-stage conversion rates.
type FunnelRow struct {
	Source      string  `json:"source"`
	PageViews   int64   `json:"page_views"`
	Signups     int64   `json:"signups"`
	Bookings    int64   `json:"bookings"`
	SignupRate  float64 `json:"signup_rate"`
	BookingRate float64 `json:"booking_rate"`
}

// ConversionRate is numerator over denominator as a percentage with two
// decimals. Zero denominator reads as zero, not a division error.
func ConversionRate(numerator, denominator int64) float64 {
	if denominator == 0 {
		return 0
	}
	return math.Round(float64(numerator)/float64(denominator)*10000) / 100
}

// Funnel aggregates the event log per source since the given time. The
// summaries table serves live counters; this reads the log itself so the
// window can be arbitrary.
func (s *AttributionService) Funnel(since time.Time) ([]FunnelRow, error) {
	var rows []FunnelRow
	err := s.db.Model(&models.AttributionEvent{}).
		Select(`source,
			COUNT(*) FILTER (WHERE stage = 'page_view') AS page_views,
			COUNT(*) FILTER (WHERE stage = 'signup') AS signups,
			COUNT(*) FILTER (WHERE stage = 'booking') AS bookings`).
		Where("occurred_at >= ?", since).
		Group("source").
		Order("page_views DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate attribution funnel: %w", err)
	}

	for i := range rows {
		rows[i].SignupRate = ConversionRate(rows[i].Signups, rows[i].PageViews)
		rows[i].BookingRate = ConversionRate(rows[i].Bookings, rows[i].Signups)
	}
	return rows, nil
}

// Summaries returns the denormalized per-source counters.
func (s *AttributionService) Summaries() ([]models.AttributionSummary, error) {
	var summaries []models.AttributionSummary
	err := s.db.Order("page_views DESC").Find(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("load attribution summaries: %w", err)
	}
	return summaries, nil
}
