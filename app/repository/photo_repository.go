package repository

import (
	"gorm.io/gorm"

	"github.com/cactilog/cactilog/app/models"
)

// photoRepository implements the PhotoRepository interface
type photoRepository struct {
	db *gorm.DB
}

// NewPhotoRepository creates a new photo repository instance
func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

// Create creates a new photo record in the database
func (r *photoRepository) Create(photo *models.PlantPhoto) error {
	return r.db.Create(photo).Error
}

// GetByID retrieves a photo by its ID
func (r *photoRepository) GetByID(id uint) (*models.PlantPhoto, error) {
	var photo models.PlantPhoto
	err := r.db.Preload("Plant").First(&photo, id).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// GetByUUID retrieves a photo by its UUID
func (r *photoRepository) GetByUUID(uuid string) (*models.PlantPhoto, error) {
	var photo models.PlantPhoto
	err := r.db.Preload("Plant").Where("uuid = ?", uuid).First(&photo).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// ListByPlant returns a plant's photos in insertion order
func (r *photoRepository) ListByPlant(plantID uint) ([]models.PlantPhoto, error) {
	var photos []models.PlantPhoto
	err := r.db.Where("plant_id = ?", plantID).
		Order("created_at ASC, id ASC").Find(&photos).Error
	return photos, err
}

// Update updates an existing photo record
func (r *photoRepository) Update(photo *models.PlantPhoto) error {
	return r.db.Save(photo).Error
}

// Delete soft deletes a photo and its reports
func (r *photoRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("photo_id = ?", id).Delete(&models.PhotoReport{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.PlantPhoto{}, id).Error
	})
}

// List retrieves a paginated list of photos, oldest first. The maintenance
// tool iterates the whole table through this.
func (r *photoRepository) List(offset, limit int) ([]models.PlantPhoto, error) {
	var photos []models.PlantPhoto
	err := r.db.Order("id ASC").Offset(offset).Limit(limit).Find(&photos).Error
	return photos, err
}

// Count returns the total number of photos
func (r *photoRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.PlantPhoto{}).Count(&count).Error
	return count, err
}

// GetPublicFeed retrieves the community feed page. The joins re-check plant
// visibility and the owner's community opt-out on every read, so a plant
// toggled private after upload disappears immediately.
func (r *photoRepository) GetPublicFeed(offset, limit int) ([]models.PlantPhoto, error) {
	var photos []models.PlantPhoto
	err := r.feedQuery().
		Preload("Plant").Preload("Plant.User").
		Order("plants.updated_at DESC, plant_photos.id DESC").
		Offset(offset).Limit(limit).
		Find(&photos).Error
	return photos, err
}

// CountPublicFeed returns the total number of feed-visible photos
func (r *photoRepository) CountPublicFeed() (int64, error) {
	var count int64
	err := r.feedQuery().Count(&count).Error
	return count, err
}

func (r *photoRepository) feedQuery() *gorm.DB {
	return r.db.Model(&models.PlantPhoto{}).
		Joins("JOIN plants ON plants.id = plant_photos.plant_id AND plants.deleted_at IS NULL").
		Joins("JOIN users ON users.id = plants.user_id AND users.deleted_at IS NULL").
		Joins("LEFT JOIN user_settings ON user_settings.user_id = users.id AND user_settings.deleted_at IS NULL").
		Where("plants.is_public = ?", true).
		Where("user_settings.id IS NULL OR user_settings.show_in_community = ?", true)
}
