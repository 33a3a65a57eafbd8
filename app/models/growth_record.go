package models

import (
	"time"

	"gorm.io/gorm"
)

// GrowthRecord is a dated measurement of a plant.
type GrowthRecord struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	PlantID    uint           `gorm:"index;not null" json:"plant_id"`
	RecordedAt time.Time      `gorm:"not null" json:"recorded_at"`
	HeightCm   *float64       `gorm:"type:decimal(6,2)" json:"height_cm"`
	WidthCm    *float64       `gorm:"type:decimal(6,2)" json:"width_cm"`
	Notes      string         `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
