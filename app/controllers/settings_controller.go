package controllers

import (
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/cactilog/cactilog/app/models"
	"github.com/cactilog/cactilog/internal/pkg/database"
	"github.com/cactilog/cactilog/internal/pkg/usercontext"
)

type updateSettingsRequest struct {
	ShowInCommunity *bool   `json:"show_in_community"`
	DefaultFeedSort *string `json:"default_feed_sort"`
}

// HandleGetSettings returns the caller's preferences, creating defaults on
// first access.
func HandleGetSettings(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	settings, err := models.GetOrCreateUserSettings(database.GetDB(), uctx.UserID)
	if err != nil {
		fiberlog.Errorf("failed to load settings for user %d: %v", uctx.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load settings"})
	}
	return c.JSON(settings)
}

// HandleUpdateSettings applies a partial update to the caller's preferences.
// Turning show_in_community off pulls the user's photos from the public feed
// on the next read.
func HandleUpdateSettings(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	var req updateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid request body"})
	}
	if req.DefaultFeedSort != nil && !models.IsValidFeedSort(*req.DefaultFeedSort) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "unknown feed sort"})
	}

	db := database.GetDB()
	settings, err := models.GetOrCreateUserSettings(db, uctx.UserID)
	if err != nil {
		fiberlog.Errorf("failed to load settings for user %d: %v", uctx.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load settings"})
	}

	if req.ShowInCommunity != nil {
		settings.ShowInCommunity = *req.ShowInCommunity
	}
	if req.DefaultFeedSort != nil {
		settings.DefaultFeedSort = *req.DefaultFeedSort
	}

	if err := db.Save(settings).Error; err != nil {
		fiberlog.Errorf("failed to save settings for user %d: %v", uctx.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not save settings"})
	}

	return c.JSON(settings)
}
