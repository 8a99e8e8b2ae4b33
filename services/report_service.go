package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/tutorwise/tutorwise-api/caas"
	config "github.com/tutorwise/tutorwise-api/configs"
	"github.com/tutorwise/tutorwise-api/models"
	"gorm.io/gorm"
)

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

type reportBucket struct {
	Label string
	Value float64
	OutOf float64
}

type reportData struct {
	FullName   string
	Role       string
	Total      float64
	Buckets    []reportBucket
	GateReason string
	IssuedOn   string
}

// Generate renders the profile's current score into a PDF, uploads it to
// Cloudinary and stores the report row. The PDF is a snapshot; the live
// score keeps moving underneath it.
func (s *ReportService) Generate(profileID uuid.UUID) (*models.CredibilityReport, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", profileID).Error; err != nil {
		return nil, fmt.Errorf("load profile %s: %w", profileID, err)
	}
	if profile.Role != "tutor" && profile.Role != "agent" {
		return nil, ErrNotScoreable
	}

	htmlData, err := renderReportHTML(&profile)
	if err != nil {
		return nil, fmt.Errorf("render report for %s: %w", profileID, err)
	}

	pdfBytes, err := printToPDF(htmlData)
	if err != nil {
		return nil, fmt.Errorf("print report for %s: %w", profileID, err)
	}

	reportURL, err := uploadReportPDF(pdfBytes, profile.ID.String())
	if err != nil {
		return nil, fmt.Errorf("upload report for %s: %w", profileID, err)
	}

	report := models.CredibilityReport{
		ProfileID:   profile.ID,
		Total:       profile.CredibilityScore,
		ReportURL:   reportURL,
		GeneratedAt: time.Now(),
	}
	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("store report for %s: %w", profileID, err)
	}

	return &report, nil
}

// ForProfile lists a profile's past reports, newest first.
func (s *ReportService) ForProfile(profileID uuid.UUID) ([]models.CredibilityReport, error) {
	var reports []models.CredibilityReport
	err := s.db.Where("profile_id = ?", profileID).
		Order("generated_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("load reports for %s: %w", profileID, err)
	}
	return reports, nil
}

func renderReportHTML(profile *models.Profile) (string, error) {
	tmpl, err := template.ParseFiles("templates/credibility_report.html")
	if err != nil {
		return "", err
	}

	data := reportData{
		FullName:   profile.FullName,
		Role:       profile.Role,
		Total:      profile.CredibilityScore,
		Buckets:    breakdownRows(profile.Role, profile.ScoreBreakdown),
		GateReason: profile.ScoreBreakdown.GateReason,
		IssuedOn:   time.Now().Format("January 2, 2006"),
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func breakdownRows(role string, b caas.Breakdown) []reportBucket {
	if role == "agent" {
		return []reportBucket{
			{Label: "Team Quality", Value: b.TeamQuality, OutOf: 35},
			{Label: "Network Growth", Value: b.NetworkGrowth, OutOf: 25},
			{Label: "Integration Rate", Value: b.IntegrationRate, OutOf: 25},
			{Label: "Member Improvement", Value: b.MemberImprovement, OutOf: 15},
		}
	}
	return []reportBucket{
		{Label: "Session Delivery", Value: b.Delivery, OutOf: 30},
		{Label: "Client Satisfaction", Value: b.Satisfaction, OutOf: 30},
		{Label: "Reliability", Value: b.Reliability, OutOf: 25},
		{Label: "Recent Engagement", Value: b.Engagement, OutOf: 15},
	}
}

func printToPDF(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadReportPDF(fileBytes []byte, profileID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("reports/%s_%s", profileID, uuid.New().String()),
		Folder:       "tutorwise_reports",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
