package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/cactilog/cactilog/app/models"
	"github.com/cactilog/cactilog/app/repository"
	"github.com/cactilog/cactilog/internal/pkg/mail"
	"github.com/cactilog/cactilog/internal/pkg/usercontext"
)

type resolveReportRequest struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"admin_notes"`
}

// HandleListReports returns the moderation queue, filtered by status
// (default pending).
func HandleListReports(c *fiber.Ctx) error {
	status := strings.TrimSpace(c.Query("status", models.ReportStatusPending))
	if !models.IsValidReportStatus(status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "unknown report status"})
	}

	offset, limit := ParsePagination(c)
	reports, err := repository.GetGlobalFactory().GetReportRepository().ListByStatus(status, offset, limit)
	if err != nil {
		fiberlog.Errorf("failed to list reports: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load reports"})
	}

	return c.JSON(fiber.Map{"reports": reports, "count": len(reports)})
}

// HandleResolveReport moves a pending report to reviewed, resolved or
// dismissed. The status change is a compare-and-swap against pending, so two
// admins racing on the same report leave exactly one winner; the loser gets a
// 409 with the current state.
func HandleResolveReport(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	reportID, err := ParseIDParam(c, "reportId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid report id"})
	}

	var req resolveReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid request body"})
	}
	req.Status = strings.TrimSpace(req.Status)

	if req.Status == models.ReportStatusPending || !models.IsValidReportStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "status must be reviewed, resolved or dismissed"})
	}

	reportRepo := repository.GetGlobalFactory().GetReportRepository()
	report, err := reportRepo.GetByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "report not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load report"})
	}

	// Already-processed reports answer 409 without touching the row; the CAS
	// below still guards against a race slipping in after this read.
	if !report.CanTransitionTo(req.Status) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "conflict",
			"message": "report was already processed",
			"status":  report.Status,
		})
	}

	won, err := reportRepo.TransitionFromPending(report.ID, req.Status, req.AdminNotes, uctx.UserID)
	if err != nil {
		fiberlog.Errorf("failed to transition report %d: %v", report.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not update report"})
	}
	if !won {
		current, err := reportRepo.GetByID(report.ID)
		if err != nil {
			current = report
		}
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "conflict",
			"message": "report was already processed",
			"status":  current.Status,
		})
	}

	updated, err := reportRepo.GetByID(report.ID)
	if err != nil {
		fiberlog.Errorf("failed to reload report %d: %v", report.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load report"})
	}

	// Tell the reporter, if they left an address. Best effort.
	if updated.ReporterEmail != nil {
		go func(addr string, r models.PhotoReport) {
			if !mail.SendReportResolutionNotification(addr, &r) {
				fiberlog.Infof("resolution notification for report %d skipped", r.ID)
			}
		}(*updated.ReporterEmail, *updated)
	}

	return c.JSON(updated)
}
