package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Plant is a single specimen in a collector's catalog. Taxonomy fields past
// the genus are optional; the HTML form submits "none" or "" for unset
// selects, which the input cleaner normalizes to NULL before persisting.
type Plant struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UUID         string     `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"uuid"`
	UserID       uint       `gorm:"index;not null" json:"user_id"`
	User         User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CustomID     string     `gorm:"type:varchar(100)" json:"custom_id"`
	Genus        string     `gorm:"type:varchar(100);not null" json:"genus"`
	Species      *string    `gorm:"type:varchar(100)" json:"species"`
	Cultivar     *string    `gorm:"type:varchar(100)" json:"cultivar"`
	Mutation     *string    `gorm:"type:varchar(100)" json:"mutation"`
	GroundType   *string    `gorm:"type:varchar(50)" json:"ground_type"`
	AcquiredAt   *time.Time `json:"acquired_at"`
	AcquiredFrom *string    `gorm:"type:varchar(200)" json:"acquired_from"`
	Notes        string     `gorm:"type:text" json:"notes"`
	IsPublic     bool       `gorm:"default:false" json:"is_public"`

	Photos        []PlantPhoto   `gorm:"foreignKey:PlantID" json:"photos,omitempty"`
	GrowthRecords []GrowthRecord `gorm:"foreignKey:PlantID" json:"growth_records,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Plant) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}
	return nil
}

// DisplayName is the label shown in listings: genus plus whatever taxonomy
// detail is present.
func (p *Plant) DisplayName() string {
	parts := []string{p.Genus}
	if p.Species != nil {
		parts = append(parts, *p.Species)
	}
	if p.Cultivar != nil {
		parts = append(parts, "'"+*p.Cultivar+"'")
	}
	return strings.Join(parts, " ")
}

// PlantInput is the mutable subset of Plant accepted from the API.
type PlantInput struct {
	CustomID     string     `json:"custom_id"`
	Genus        string     `json:"genus" validate:"required,max=100"`
	Species      *string    `json:"species"`
	Cultivar     *string    `json:"cultivar"`
	Mutation     *string    `json:"mutation"`
	GroundType   *string    `json:"ground_type"`
	AcquiredAt   *time.Time `json:"acquired_at"`
	AcquiredFrom *string    `json:"acquired_from"`
	Notes        string     `json:"notes"`
	IsPublic     *bool      `json:"is_public"`
}

// Clean normalizes form placeholder values: "none" and "" on optional
// taxonomy fields become NULL, populated fields pass through unchanged.
func (in *PlantInput) Clean() {
	in.Genus = strings.TrimSpace(in.Genus)
	in.Species = cleanOptional(in.Species)
	in.Cultivar = cleanOptional(in.Cultivar)
	in.Mutation = cleanOptional(in.Mutation)
	in.GroundType = cleanOptional(in.GroundType)
	in.AcquiredFrom = cleanOptional(in.AcquiredFrom)
}

func cleanOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" || strings.EqualFold(v, "none") {
		return nil
	}
	return &v
}
