package mail

import (
	"fmt"
	"log"

	"github.com/cactilog/cactilog/app/models"
	"github.com/cactilog/cactilog/internal/pkg/env"
)

// AdminNotificationAddress is where new report notifications go.
func AdminNotificationAddress() string {
	return env.GetEnv("ADMIN_EMAIL", "")
}

// SendPhotoReportNotification mails the admin about a freshly filed report.
// Returns false when mail is unconfigured or the send failed; the report
// itself is the source of truth either way.
func SendPhotoReportNotification(adminEmail string, report *models.PhotoReport) bool {
	if !Configured() || adminEmail == "" {
		return false
	}

	subject := fmt.Sprintf("New photo report #%d (%s)", report.ID, report.ReportType)
	if err := SendMail(adminEmail, subject, photoReportBody(report)); err != nil {
		log.Printf("report notification for report %d failed: %v", report.ID, err)
		return false
	}
	return true
}

// SendReportResolutionNotification mails the original reporter once their
// report leaves the queue. No-op without a reporter address.
func SendReportResolutionNotification(reporterEmail string, report *models.PhotoReport) bool {
	if !Configured() || reporterEmail == "" {
		return false
	}

	subject := fmt.Sprintf("Your photo report #%d was %s", report.ID, report.Status)
	if err := SendMail(reporterEmail, subject, reportResolutionBody(report)); err != nil {
		log.Printf("resolution notification for report %d failed: %v", report.ID, err)
		return false
	}
	return true
}

func photoReportBody(report *models.PhotoReport) string {
	body := fmt.Sprintf(
		"<p>A new photo report was filed.</p>"+
			"<ul><li>Report: #%d</li><li>Photo: #%d</li><li>Type: %s</li></ul>",
		report.ID, report.PhotoID, report.ReportType,
	)
	if report.Description != "" {
		body += fmt.Sprintf("<p>Description:</p><blockquote>%s</blockquote>", report.Description)
	}
	return body
}

func reportResolutionBody(report *models.PhotoReport) string {
	body := fmt.Sprintf(
		"<p>Thanks for your report. Report #%d has been marked <b>%s</b>.</p>",
		report.ID, report.Status,
	)
	if report.AdminNotes != nil && *report.AdminNotes != "" {
		body += fmt.Sprintf("<p>Moderator notes:</p><blockquote>%s</blockquote>", *report.AdminNotes)
	}
	return body
}
