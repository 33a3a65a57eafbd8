package repository

import (
	"gorm.io/gorm"

	"github.com/cactilog/cactilog/app/models"
)

// growthRepository implements the GrowthRepository interface
type growthRepository struct {
	db *gorm.DB
}

// NewGrowthRepository creates a new growth record repository instance
func NewGrowthRepository(db *gorm.DB) GrowthRepository {
	return &growthRepository{db: db}
}

// Create creates a new growth record
func (r *growthRepository) Create(record *models.GrowthRecord) error {
	return r.db.Create(record).Error
}

// GetByID retrieves a growth record by its ID
func (r *growthRepository) GetByID(id uint) (*models.GrowthRecord, error) {
	var record models.GrowthRecord
	err := r.db.First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListByPlant returns all growth records of a plant, newest measurement first
func (r *growthRepository) ListByPlant(plantID uint) ([]models.GrowthRecord, error) {
	var records []models.GrowthRecord
	err := r.db.Where("plant_id = ?", plantID).
		Order("recorded_at DESC, id DESC").Find(&records).Error
	return records, err
}

// Delete soft deletes a growth record
func (r *growthRepository) Delete(id uint) error {
	return r.db.Delete(&models.GrowthRecord{}, id).Error
}
