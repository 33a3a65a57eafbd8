package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/cactilog/cactilog/app/models"
)

// reportRepository implements the ReportRepository interface
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository instance
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// Create creates a new photo report
func (r *reportRepository) Create(report *models.PhotoReport) error {
	return r.db.Create(report).Error
}

// GetByID retrieves a report by its ID
func (r *reportRepository) GetByID(id uint) (*models.PhotoReport, error) {
	var report models.PhotoReport
	err := r.db.Preload("Photo").Preload("ResolvedBy").First(&report, id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ListByStatus returns reports filtered by exactly one status, newest first
func (r *reportRepository) ListByStatus(status string, offset, limit int) ([]models.PhotoReport, error) {
	var reports []models.PhotoReport
	err := r.db.Preload("Photo").Preload("ResolvedBy").
		Where("status = ?", status).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&reports).Error
	return reports, err
}

// TransitionFromPending moves a report out of pending with a compare-and-swap
// on the status column. Concurrent moderators cannot double-process: the
// second update matches zero rows and reports a conflict.
func (r *reportRepository) TransitionFromPending(id uint, target string, adminNotes *string, resolvedByID uint) (bool, error) {
	now := time.Now()
	updates := map[string]interface{}{
		"status":         target,
		"resolved_by_id": resolvedByID,
		"resolved_at":    now,
	}
	if adminNotes != nil {
		updates["admin_notes"] = *adminNotes
	}

	result := r.db.Model(&models.PhotoReport{}).
		Where("id = ? AND status = ?", id, models.ReportStatusPending).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
