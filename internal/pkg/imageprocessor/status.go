package imageprocessor

import (
	"fmt"
	"time"

	"github.com/cactilog/cactilog/app/models"
	"github.com/cactilog/cactilog/internal/pkg/cache"
	"github.com/cactilog/cactilog/internal/pkg/database"
)

// Cache key format for photo processing status
const (
	PhotoStatusKeyFormat = "photo:status:%s" // Format: photo:status:<uuid>
)

// Status constants for photo processing
const (
	STATUS_PENDING    = "pending"    // Photo is queued for processing
	STATUS_PROCESSING = "processing" // Photo is currently being processed
	STATUS_COMPLETED  = "completed"  // Photo processing is complete
	STATUS_FAILED     = "failed"     // Photo processing failed
)

// SetPhotoStatus sets the processing status of a photo in the cache
func SetPhotoStatus(photoUUID string, status string) error {
	key := fmt.Sprintf(PhotoStatusKeyFormat, photoUUID)
	return cache.Set(key, status, 24*time.Hour)
}

// GetPhotoStatus retrieves the processing status of a photo from the cache
func GetPhotoStatus(photoUUID string) (string, error) {
	key := fmt.Sprintf(PhotoStatusKeyFormat, photoUUID)
	return cache.Get(key)
}

// NormalizeStatus maps an absent or unknown cache value to pending. Status
// keys expire after a day, so old photos read as empty strings.
func NormalizeStatus(status string) string {
	switch status {
	case STATUS_PENDING, STATUS_PROCESSING, STATUS_COMPLETED, STATUS_FAILED:
		return status
	}
	return STATUS_PENDING
}

// IsPhotoProcessingComplete checks if thumbnail generation is complete. The
// original is always served straight from disk, so a photo whose processing
// stalled still renders; only the thumbnail flag waits on the worker.
func IsPhotoProcessingComplete(photoUUID string) bool {
	status, err := GetPhotoStatus(photoUUID)
	if err == nil && status == STATUS_COMPLETED {
		return true
	}

	db := database.GetDB()
	photo, err := models.FindPhotoByUUID(db, photoUUID)
	if err != nil {
		return false
	}

	if photo.HasThumbnail {
		SetPhotoStatus(photoUUID, STATUS_COMPLETED)
		return true
	}

	// Old rows predating the status cache: consider anything older than five
	// minutes done, the original is good enough to display.
	if status == "" && time.Since(photo.CreatedAt) > 5*time.Minute {
		SetPhotoStatus(photoUUID, STATUS_COMPLETED)
		return true
	}

	return false
}
