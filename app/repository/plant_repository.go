package repository

import (
	"gorm.io/gorm"

	"github.com/cactilog/cactilog/app/models"
)

// plantRepository implements the PlantRepository interface
type plantRepository struct {
	db *gorm.DB
}

// NewPlantRepository creates a new plant repository instance
func NewPlantRepository(db *gorm.DB) PlantRepository {
	return &plantRepository{db: db}
}

// Create creates a new plant in the database
func (r *plantRepository) Create(plant *models.Plant) error {
	return r.db.Create(plant).Error
}

// GetByID retrieves a plant by its ID
func (r *plantRepository) GetByID(id uint) (*models.Plant, error) {
	var plant models.Plant
	err := r.db.Preload("User").First(&plant, id).Error
	if err != nil {
		return nil, err
	}
	return &plant, nil
}

// GetByUUID retrieves a plant by its UUID
func (r *plantRepository) GetByUUID(uuid string) (*models.Plant, error) {
	var plant models.Plant
	err := r.db.Preload("User").Where("uuid = ?", uuid).First(&plant).Error
	if err != nil {
		return nil, err
	}
	return &plant, nil
}

// GetByUserID retrieves plants belonging to a specific user with pagination
func (r *plantRepository) GetByUserID(userID uint, offset, limit int) ([]models.Plant, error) {
	var plants []models.Plant
	err := r.db.Where("user_id = ?", userID).
		Order("updated_at DESC").Offset(offset).Limit(limit).Find(&plants).Error
	return plants, err
}

// Update updates an existing plant in the database
func (r *plantRepository) Update(plant *models.Plant) error {
	return r.db.Save(plant).Error
}

// Delete soft deletes a plant together with its growth records. Photo rows
// and bytes are removed by the caller so storage cleanup can run alongside.
func (r *plantRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plant_id = ?", id).Delete(&models.GrowthRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Plant{}, id).Error
	})
}

// CountByUserID returns the number of plants for a specific user
func (r *plantRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Plant{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
