package controllers

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/cactilog/cactilog/app/models"
	"github.com/cactilog/cactilog/app/repository"
	"github.com/cactilog/cactilog/internal/pkg/mail"
)

var reportValidate = validator.New()

type createReportRequest struct {
	ReportType    string `json:"report_type" validate:"required"`
	Description   string `json:"description" validate:"max=2000"`
	ReporterEmail string `json:"reporter_email" validate:"omitempty,email,max=200"`
}

// HandleCreateReport files a moderation report against a photo. No login is
// required; the optional reporter email only exists so moderators can reply
// once the report is handled. The admin notification is best effort and runs
// off the request path.
func HandleCreateReport(c *fiber.Ctx) error {
	photoID, err := ParseIDParam(c, "imageId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid image id"})
	}

	var req createReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid request body"})
	}
	req.ReportType = strings.TrimSpace(req.ReportType)
	req.ReporterEmail = strings.TrimSpace(req.ReporterEmail)

	if !models.IsValidReportType(req.ReportType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "unknown report type"})
	}
	if err := reportValidate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": "invalid report fields"})
	}

	if _, err := repository.GetGlobalFactory().GetPhotoRepository().GetByID(photoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "photo not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not file report"})
	}

	ipv4, ipv6 := GetClientIP(c)
	report := &models.PhotoReport{
		PhotoID:      photoID,
		ReportType:   req.ReportType,
		Description:  req.Description,
		Status:       models.ReportStatusPending,
		ReporterIPv4: ipv4,
		ReporterIPv6: ipv6,
	}
	if req.ReporterEmail != "" {
		report.ReporterEmail = &req.ReporterEmail
	}

	if err := repository.GetGlobalFactory().GetReportRepository().Create(report); err != nil {
		fiberlog.Errorf("failed to create photo report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not file report"})
	}

	go func(r models.PhotoReport) {
		if !mail.SendPhotoReportNotification(mail.AdminNotificationAddress(), &r) {
			fiberlog.Infof("admin notification for report %d skipped", r.ID)
		}
	}(*report)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      report.ID,
		"status":  report.Status,
		"message": "report filed, thank you",
	})
}
