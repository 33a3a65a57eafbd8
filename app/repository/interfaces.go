package repository

import (
	"gorm.io/gorm"

	"github.com/cactilog/cactilog/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Count() (int64, error)
}

// PlantRepository defines the interface for plant-related database operations
type PlantRepository interface {
	Create(plant *models.Plant) error
	GetByID(id uint) (*models.Plant, error)
	GetByUUID(uuid string) (*models.Plant, error)
	GetByUserID(userID uint, offset, limit int) ([]models.Plant, error)
	Update(plant *models.Plant) error
	Delete(id uint) error
	CountByUserID(userID uint) (int64, error)
}

// PhotoRepository defines the interface for photo-related database operations
type PhotoRepository interface {
	Create(photo *models.PlantPhoto) error
	GetByID(id uint) (*models.PlantPhoto, error)
	GetByUUID(uuid string) (*models.PlantPhoto, error)
	// ListByPlant returns a plant's photos in insertion order.
	ListByPlant(plantID uint) ([]models.PlantPhoto, error)
	Update(photo *models.PlantPhoto) error
	Delete(id uint) error
	List(offset, limit int) ([]models.PlantPhoto, error)
	Count() (int64, error)
	// GetPublicFeed returns photos whose parent plant is public and whose
	// owner has not opted out of the community feed. Visibility is checked
	// at read time against the joined rows, never against photo-side state.
	GetPublicFeed(offset, limit int) ([]models.PlantPhoto, error)
	CountPublicFeed() (int64, error)
}

// GrowthRepository defines the interface for growth record operations
type GrowthRepository interface {
	Create(record *models.GrowthRecord) error
	GetByID(id uint) (*models.GrowthRecord, error)
	ListByPlant(plantID uint) ([]models.GrowthRecord, error)
	Delete(id uint) error
}

// ReportRepository defines the interface for photo report operations
type ReportRepository interface {
	Create(report *models.PhotoReport) error
	GetByID(id uint) (*models.PhotoReport, error)
	ListByStatus(status string, offset, limit int) ([]models.PhotoReport, error)
	// TransitionFromPending performs a compare-and-swap on the status column:
	// the update only applies while the report is still pending. Returns
	// false when the report was already processed by someone else.
	TransitionFromPending(id uint, target string, adminNotes *string, resolvedByID uint) (bool, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User   UserRepository
	Plant  PlantRepository
	Photo  PhotoRepository
	Growth GrowthRepository
	Report ReportRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:   NewUserRepository(db),
		Plant:  NewPlantRepository(db),
		Photo:  NewPhotoRepository(db),
		Growth: NewGrowthRepository(db),
		Report: NewReportRepository(db),
	}
}
