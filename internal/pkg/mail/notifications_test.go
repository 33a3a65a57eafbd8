package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cactilog/cactilog/app/models"
)

func TestNotificationsSkippedWhenUnconfigured(t *testing.T) {
	// No SMTP_HOST/SMTP_PORT in the test environment: sends must be
	// skipped and reported as such, never attempted.
	report := &models.PhotoReport{ID: 7, PhotoID: 3, ReportType: models.ReportTypeCopyright}

	assert.False(t, Configured())
	assert.False(t, SendPhotoReportNotification("admin@example.com", report))
	assert.False(t, SendReportResolutionNotification("someone@example.com", report))
}

func TestPhotoReportBody(t *testing.T) {
	t.Parallel()

	report := &models.PhotoReport{
		ID:          12,
		PhotoID:     44,
		ReportType:  models.ReportTypeIncorrectSpecies,
		Description: "This is clearly a Lophophora, not a Trichocereus.",
	}

	body := photoReportBody(report)
	assert.Contains(t, body, "#12")
	assert.Contains(t, body, "#44")
	assert.Contains(t, body, models.ReportTypeIncorrectSpecies)
	assert.Contains(t, body, "clearly a Lophophora")
}

func TestReportResolutionBody(t *testing.T) {
	t.Parallel()

	notes := "verified license"
	report := &models.PhotoReport{
		ID:         9,
		Status:     models.ReportStatusResolved,
		AdminNotes: &notes,
	}

	body := reportResolutionBody(report)
	assert.Contains(t, body, "#9")
	assert.Contains(t, body, models.ReportStatusResolved)
	assert.Contains(t, body, "verified license")

	// Without notes the blockquote is omitted entirely.
	report.AdminNotes = nil
	assert.NotContains(t, reportResolutionBody(report), "blockquote")
}
