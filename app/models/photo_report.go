package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ReportStatusPending   = "pending"
	ReportStatusReviewed  = "reviewed"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

const (
	ReportTypeIncorrectSpecies = "incorrect_species"
	ReportTypeInappropriate    = "inappropriate"
	ReportTypeCopyright        = "copyright"
	ReportTypePoorQuality      = "poor_quality"
)

// PhotoReport is a moderation ticket filed against one photo. Anyone may
// file one, no login required; only admins move it out of pending.
type PhotoReport struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	PhotoID       uint           `gorm:"index;not null" json:"photo_id"`
	Photo         *PlantPhoto    `gorm:"foreignKey:PhotoID" json:"photo,omitempty"`
	ReportType    string         `gorm:"type:varchar(50);not null" json:"report_type"`
	Description   string         `gorm:"type:text" json:"description"`
	ReporterEmail *string        `gorm:"type:varchar(200)" json:"reporter_email"`
	Status        string         `gorm:"type:varchar(20);default:'pending'" json:"status"`
	AdminNotes    *string        `gorm:"type:text" json:"admin_notes"`
	ResolvedByID  *uint          `gorm:"index" json:"resolved_by_id,omitempty"`
	ResolvedBy    *User          `gorm:"foreignKey:ResolvedByID" json:"resolved_by,omitempty"`
	ResolvedAt    *time.Time     `json:"resolved_at,omitempty"`
	ReporterIPv4  string         `gorm:"type:varchar(15);default:null" json:"-"`
	ReporterIPv6  string         `gorm:"type:varchar(45);default:null" json:"-"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsValidReportType reports whether t is one of the four accepted kinds.
func IsValidReportType(t string) bool {
	switch t {
	case ReportTypeIncorrectSpecies, ReportTypeInappropriate, ReportTypeCopyright, ReportTypePoorQuality:
		return true
	}
	return false
}

// IsValidReportStatus reports whether s is a known status value.
func IsValidReportStatus(s string) bool {
	switch s {
	case ReportStatusPending, ReportStatusReviewed, ReportStatusResolved, ReportStatusDismissed:
		return true
	}
	return false
}

// CanTransitionTo reports whether a report may move to the target status.
// Transitions only leave pending; reviewed, resolved and dismissed are
// terminal.
func (r *PhotoReport) CanTransitionTo(target string) bool {
	if r.Status != ReportStatusPending {
		return false
	}
	switch target {
	case ReportStatusReviewed, ReportStatusResolved, ReportStatusDismissed:
		return true
	}
	return false
}
