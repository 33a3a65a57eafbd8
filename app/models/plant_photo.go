package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlantPhoto is an uploaded image attached to exactly one plant. Bytes live
// on disk under the upload root; FileName is the generated on-disk name,
// OriginalName what the uploader called it. Visibility is inherited from the
// parent plant and the owner's community setting, never stored here.
type PlantPhoto struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UUID         string     `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"uuid"`
	PlantID      uint       `gorm:"index;not null" json:"plant_id"`
	Plant        *Plant     `gorm:"foreignKey:PlantID" json:"plant,omitempty"`
	FileName     string     `gorm:"type:varchar(255);not null" json:"file_name"`
	OriginalName string     `gorm:"type:varchar(255)" json:"original_name"`
	FilePath     string     `gorm:"type:varchar(255);not null" json:"file_path"`
	FileType     string     `gorm:"type:varchar(50)" json:"file_type"`
	FileSize     int64      `gorm:"type:bigint" json:"file_size"`
	Width        int        `gorm:"type:int" json:"width"`
	Height       int        `gorm:"type:int" json:"height"`
	HasThumbnail bool       `gorm:"default:false" json:"has_thumbnail"`
	CameraModel  *string    `gorm:"type:varchar(255)" json:"camera_model"`
	TakenAt      *time.Time `gorm:"type:datetime" json:"taken_at"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *PlantPhoto) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}
	return nil
}

// FindPhotoByUUID finds a photo by its UUID
func FindPhotoByUUID(db *gorm.DB, uuid string) (*PlantPhoto, error) {
	var photo PlantPhoto
	result := db.Where("uuid = ?", uuid).First(&photo)
	return &photo, result.Error
}
