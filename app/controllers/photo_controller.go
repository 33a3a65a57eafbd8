package controllers

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cactilog/cactilog/app/models"
	"github.com/cactilog/cactilog/app/repository"
	"github.com/cactilog/cactilog/internal/pkg/cache"
	"github.com/cactilog/cactilog/internal/pkg/imageprocessor"
	"github.com/cactilog/cactilog/internal/pkg/storage"
	"github.com/cactilog/cactilog/internal/pkg/upload"
	"github.com/cactilog/cactilog/internal/pkg/usercontext"
)

const plantPhotosCacheTTL = 10 * time.Minute

// feedItem is the public feed projection: photo plus just enough plant and
// owner context to render a card. Owner email never leaves the server.
type feedItem struct {
	PhotoUUID    string     `json:"photo_uuid"`
	FilePath     string     `json:"file_path"`
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	HasThumbnail bool       `json:"has_thumbnail"`
	TakenAt      *time.Time `json:"taken_at,omitempty"`
	UploadedAt   time.Time  `json:"uploaded_at"`
	PlantUUID    string     `json:"plant_uuid"`
	PlantName    string     `json:"plant_name"`
	Genus        string     `json:"genus"`
	OwnerName    string     `json:"owner_name"`
}

// HandleUploadPhoto accepts a multipart photo for one of the caller's plants.
// The file is validated (size cap, sniffed content type) before a single byte
// is written; the DB row is created only after the bytes are safely on disk,
// and a failed insert removes them again.
func HandleUploadPhoto(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	plant, err := requireOwnPlant(c, uctx.UserID)
	if plant == nil {
		return err
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "no photo file in request"})
	}

	if err := upload.ValidateSize(fileHeader.Size); err != nil {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "payload_too_large", "message": err.Error()})
	}

	src, err := fileHeader.Open()
	if err != nil {
		fiberlog.Errorf("failed to open uploaded file: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "upload failed"})
	}
	defer src.Close()

	head, err := upload.ReadSniffHead(src)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "photo file is empty"})
	}
	mimeType, err := upload.ValidateImageBySniff(fileHeader.Filename, head)
	if err != nil {
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{"error": "unsupported_media_type", "message": err.Error()})
	}
	if _, err := src.Seek(0, 0); err != nil {
		fiberlog.Errorf("failed to rewind upload stream: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "upload failed"})
	}

	photoUUID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	rel := storage.NewObjectPath(photoUUID, ext, time.Now())

	written, err := storage.Save(rel, src)
	if err != nil {
		fiberlog.Errorf("failed to store photo bytes: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not store photo"})
	}

	photo := &models.PlantPhoto{
		UUID:         photoUUID,
		PlantID:      plant.ID,
		FileName:     photoUUID + ext,
		OriginalName: fileHeader.Filename,
		FilePath:     rel,
		FileType:     mimeType,
		FileSize:     written,
	}

	photoRepo := repository.GetGlobalFactory().GetPhotoRepository()
	if err := photoRepo.Create(photo); err != nil {
		// Bytes without a row are orphans; clean up right away instead of
		// waiting for the sweep.
		if rmErr := storage.Remove(rel); rmErr != nil {
			fiberlog.Errorf("failed to remove orphaned photo bytes %s: %v", rel, rmErr)
		}
		fiberlog.Errorf("failed to create photo row: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not save photo"})
	}

	cache.InvalidatePlantPhotos(plant.ID)
	imageprocessor.ProcessPhoto(photo)

	return c.Status(fiber.StatusCreated).JSON(photo)
}

// HandleListPhotos returns the photos of one of the caller's plants in
// insertion order. The listing is cached per plant; uploads and deletes
// invalidate it.
func HandleListPhotos(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	plant, err := requireOwnPlant(c, uctx.UserID)
	if plant == nil {
		return err
	}

	key := cache.PlantPhotosKey(plant.ID)
	if cached, err := cache.Get(key); err == nil && cached != "" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(cached)
	}

	photos, err := repository.GetGlobalFactory().GetPhotoRepository().ListByPlant(plant.ID)
	if err != nil {
		fiberlog.Errorf("failed to list photos for plant %d: %v", plant.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load photos"})
	}

	payload := fiber.Map{"photos": photos, "count": len(photos)}
	if raw, err := json.Marshal(payload); err == nil {
		if err := cache.Set(key, string(raw), plantPhotosCacheTTL); err != nil {
			fiberlog.Warnf("failed to cache photo listing for plant %d: %v", plant.ID, err)
		}
	}

	return c.JSON(payload)
}

// HandleDeletePhoto removes a photo, its thumbnails and its reports. Deletes
// are idempotent from the caller's point of view: a second delete of the same
// photo is a plain 404.
func HandleDeletePhoto(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	plant, err := requireOwnPlant(c, uctx.UserID)
	if plant == nil {
		return err
	}

	photoID, err := ParseIDParam(c, "photoId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid photo id"})
	}

	photoRepo := repository.GetGlobalFactory().GetPhotoRepository()
	photo, err := photoRepo.GetByID(photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "photo not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load photo"})
	}
	if photo.PlantID != plant.ID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "photo not found"})
	}

	// Row first, then bytes: a failed file removal leaves an orphan for the
	// sweep instead of a dangling row pointing at nothing.
	if err := photoRepo.Delete(photo.ID); err != nil {
		fiberlog.Errorf("failed to delete photo row %d: %v", photo.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not delete photo"})
	}

	removePhotoFiles(photo)
	cache.InvalidatePlantPhotos(plant.ID)

	return c.JSON(fiber.Map{"message": "photo deleted"})
}

// HandlePhotoStatus reports whether the async pipeline has finished a photo:
// the Redis status key written by the worker plus the durable thumbnail flag.
// Clients poll this after an upload to swap the placeholder for a thumbnail.
func HandlePhotoStatus(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	plant, err := requireOwnPlant(c, uctx.UserID)
	if plant == nil {
		return err
	}

	photoID, err := ParseIDParam(c, "photoId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid photo id"})
	}

	photo, err := repository.GetGlobalFactory().GetPhotoRepository().GetByID(photoID)
	if err != nil || photo.PlantID != plant.ID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "photo not found"})
	}

	status, _ := imageprocessor.GetPhotoStatus(photo.UUID)
	return c.JSON(fiber.Map{
		"uuid":     photo.UUID,
		"status":   imageprocessor.NormalizeStatus(status),
		"complete": imageprocessor.IsPhotoProcessingComplete(photo.UUID),
	})
}

// HandlePublicFeed returns the community feed: photos of public plants whose
// owners have not opted out. Visibility is evaluated per request, so making a
// plant private removes its photos from the very next page load.
func HandlePublicFeed(c *fiber.Ctx) error {
	offset, limit := ParsePagination(c)

	photoRepo := repository.GetGlobalFactory().GetPhotoRepository()
	photos, err := photoRepo.GetPublicFeed(offset, limit)
	if err != nil {
		fiberlog.Errorf("failed to load public feed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load feed"})
	}

	total, err := photoRepo.CountPublicFeed()
	if err != nil {
		fiberlog.Warnf("failed to count public feed: %v", err)
	}

	return c.JSON(fiber.Map{
		"items": buildFeedItems(photos),
		"total": total,
	})
}

// buildFeedItems projects feed rows into the public shape.
func buildFeedItems(photos []models.PlantPhoto) []feedItem {
	items := make([]feedItem, 0, len(photos))
	for i := range photos {
		p := &photos[i]
		item := feedItem{
			PhotoUUID:    p.UUID,
			FilePath:     p.FilePath,
			Width:        p.Width,
			Height:       p.Height,
			HasThumbnail: p.HasThumbnail,
			TakenAt:      p.TakenAt,
			UploadedAt:   p.CreatedAt,
		}
		if p.Plant != nil {
			item.PlantUUID = p.Plant.UUID
			item.PlantName = p.Plant.DisplayName()
			item.Genus = p.Plant.Genus
			item.OwnerName = p.Plant.User.Name
		}
		items = append(items, item)
	}
	return items
}

// requireOwnPlant resolves the plantId path parameter and checks ownership.
// Foreign plants read as 404, not 403, so plant IDs stay unguessable. A nil
// plant means the response has already been written.
func requireOwnPlant(c *fiber.Ctx, userID uint) (*models.Plant, error) {
	plantID, err := ParseIDParam(c, "plantId")
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "invalid plant id"})
	}

	plant, err := repository.GetGlobalFactory().GetPlantRepository().GetByID(plantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "plant not found"})
		}
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "could not load plant"})
	}
	if plant.UserID != userID {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "plant not found"})
	}
	return plant, nil
}

// removePhotoFiles deletes the original and both thumbnail renditions.
// Missing files are fine; this runs after the row is already gone.
func removePhotoFiles(photo *models.PlantPhoto) {
	if err := storage.Remove(photo.FilePath); err != nil {
		fiberlog.Errorf("failed to remove photo bytes %s: %v", photo.FilePath, err)
	}
	for _, size := range []string{"small", "medium"} {
		rel := storage.ThumbnailPath(size, photo.FilePath, photo.UUID)
		if err := storage.Remove(rel); err != nil {
			fiberlog.Errorf("failed to remove %s thumbnail %s: %v", size, rel, err)
		}
	}
}
