package controllers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/cactilog/cactilog/app/models"
	"github.com/cactilog/cactilog/app/repository"
	"github.com/cactilog/cactilog/internal/pkg/cache"
	"github.com/cactilog/cactilog/internal/pkg/usercontext"
)

var plantValidate = validator.New()

// HandleCreatePlant adds a specimen to the caller's catalog. Optional
// taxonomy fields submitted as "" or "none" are stored as NULL.
func HandleCreatePlant(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	var in models.PlantInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid request body"})
	}
	in.Clean()

	if err := plantValidate.Struct(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": "genus is required"})
	}

	plant := &models.Plant{
		UserID:       uctx.UserID,
		CustomID:     in.CustomID,
		Genus:        in.Genus,
		Species:      in.Species,
		Cultivar:     in.Cultivar,
		Mutation:     in.Mutation,
		GroundType:   in.GroundType,
		AcquiredAt:   in.AcquiredAt,
		AcquiredFrom: in.AcquiredFrom,
		Notes:        in.Notes,
	}
	if in.IsPublic != nil {
		plant.IsPublic = *in.IsPublic
	}

	if err := repository.GetGlobalFactory().GetPlantRepository().Create(plant); err != nil {
		fiberlog.Errorf("failed to create plant: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not create plant"})
	}

	return c.Status(fiber.StatusCreated).JSON(plant)
}

// HandleListPlants returns the caller's catalog, paginated.
func HandleListPlants(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)
	offset, limit := ParsePagination(c)

	plantRepo := repository.GetGlobalFactory().GetPlantRepository()
	plants, err := plantRepo.GetByUserID(uctx.UserID, offset, limit)
	if err != nil {
		fiberlog.Errorf("failed to list plants for user %d: %v", uctx.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load plants"})
	}

	total, err := plantRepo.CountByUserID(uctx.UserID)
	if err != nil {
		fiberlog.Warnf("failed to count plants for user %d: %v", uctx.UserID, err)
	}

	return c.JSON(fiber.Map{"plants": plants, "total": total})
}

// HandleGetPlant returns a single plant from the caller's catalog.
func HandleGetPlant(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	plant, err := requireOwnPlant(c, uctx.UserID)
	if plant == nil {
		return err
	}
	return c.JSON(plant)
}

// HandleUpdatePlant applies a full update to one of the caller's plants.
// Flipping is_public off takes effect on the public feed immediately.
func HandleUpdatePlant(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	plant, err := requireOwnPlant(c, uctx.UserID)
	if plant == nil {
		return err
	}

	var in models.PlantInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid request body"})
	}
	in.Clean()

	if err := plantValidate.Struct(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": "genus is required"})
	}

	plant.CustomID = in.CustomID
	plant.Genus = in.Genus
	plant.Species = in.Species
	plant.Cultivar = in.Cultivar
	plant.Mutation = in.Mutation
	plant.GroundType = in.GroundType
	plant.AcquiredAt = in.AcquiredAt
	plant.AcquiredFrom = in.AcquiredFrom
	plant.Notes = in.Notes
	if in.IsPublic != nil {
		plant.IsPublic = *in.IsPublic
	}

	if err := repository.GetGlobalFactory().GetPlantRepository().Update(plant); err != nil {
		fiberlog.Errorf("failed to update plant %d: %v", plant.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not update plant"})
	}

	return c.JSON(plant)
}

// HandleDeletePlant removes a plant, its growth records and its photos
// (rows and bytes).
func HandleDeletePlant(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	plant, err := requireOwnPlant(c, uctx.UserID)
	if plant == nil {
		return err
	}

	photoRepo := repository.GetGlobalFactory().GetPhotoRepository()
	photos, err := photoRepo.ListByPlant(plant.ID)
	if err != nil {
		fiberlog.Errorf("failed to list photos for plant %d: %v", plant.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not delete plant"})
	}

	for i := range photos {
		if err := photoRepo.Delete(photos[i].ID); err != nil {
			fiberlog.Errorf("failed to delete photo %d: %v", photos[i].ID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not delete plant"})
		}
	}

	if err := repository.GetGlobalFactory().GetPlantRepository().Delete(plant.ID); err != nil {
		fiberlog.Errorf("failed to delete plant %d: %v", plant.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not delete plant"})
	}

	// Bytes last; leftovers from a crash are picked up by the orphan sweep.
	for i := range photos {
		removePhotoFiles(&photos[i])
	}
	cache.InvalidatePlantPhotos(plant.ID)

	return c.JSON(fiber.Map{"message": "plant deleted"})
}

type growthRecordRequest struct {
	RecordedAt *time.Time `json:"recorded_at"`
	HeightCm   *float64   `json:"height_cm"`
	WidthCm    *float64   `json:"width_cm"`
	Notes      string     `json:"notes"`
}

// HandleCreateGrowthRecord adds a measurement to one of the caller's plants.
func HandleCreateGrowthRecord(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	plant, err := requireOwnPlant(c, uctx.UserID)
	if plant == nil {
		return err
	}

	var req growthRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid request body"})
	}
	if req.HeightCm == nil && req.WidthCm == nil && req.Notes == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "a growth record needs at least one measurement or a note"})
	}

	record := &models.GrowthRecord{
		PlantID:    plant.ID,
		RecordedAt: time.Now(),
		HeightCm:   req.HeightCm,
		WidthCm:    req.WidthCm,
		Notes:      req.Notes,
	}
	if req.RecordedAt != nil {
		record.RecordedAt = *req.RecordedAt
	}

	if err := repository.GetGlobalFactory().GetGrowthRepository().Create(record); err != nil {
		fiberlog.Errorf("failed to create growth record: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not save growth record"})
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// HandleListGrowthRecords returns a plant's measurements in recording order.
func HandleListGrowthRecords(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	plant, err := requireOwnPlant(c, uctx.UserID)
	if plant == nil {
		return err
	}

	records, err := repository.GetGlobalFactory().GetGrowthRepository().ListByPlant(plant.ID)
	if err != nil {
		fiberlog.Errorf("failed to list growth records for plant %d: %v", plant.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load growth records"})
	}

	return c.JSON(fiber.Map{"records": records, "count": len(records)})
}

// HandleDeleteGrowthRecord removes a single measurement.
func HandleDeleteGrowthRecord(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	plant, err := requireOwnPlant(c, uctx.UserID)
	if plant == nil {
		return err
	}

	recordID, err := ParseIDParam(c, "recordId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid record id"})
	}

	growthRepo := repository.GetGlobalFactory().GetGrowthRepository()
	record, err := growthRepo.GetByID(recordID)
	if err != nil || record.PlantID != plant.ID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "growth record not found"})
	}

	if err := growthRepo.Delete(record.ID); err != nil {
		fiberlog.Errorf("failed to delete growth record %d: %v", record.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not delete growth record"})
	}

	return c.JSON(fiber.Map{"message": "growth record deleted"})
}
