package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	FeedSortNewest  = "newest"
	FeedSortOldest  = "oldest"
	FeedSortByGenus = "genus"
)

// UserSettings stores per-user preferences. ShowInCommunity is the opt-out
// switch for the public feed: photos of a user who disabled it never appear
// there, regardless of per-plant visibility.
type UserSettings struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"uniqueIndex" json:"user_id"`
	ShowInCommunity bool           `gorm:"default:true" json:"show_in_community"`
	DefaultFeedSort string         `gorm:"type:varchar(20);default:'newest'" json:"default_feed_sort"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// GetOrCreateUserSettings returns existing settings or creates defaults
func GetOrCreateUserSettings(db *gorm.DB, userID uint) (*UserSettings, error) {
	var us UserSettings
	if err := db.Where("user_id = ?", userID).First(&us).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			us = UserSettings{UserID: userID, ShowInCommunity: true, DefaultFeedSort: FeedSortNewest}
			if err := db.Create(&us).Error; err != nil {
				return nil, err
			}
			return &us, nil
		}
		return nil, err
	}
	return &us, nil
}

// IsValidFeedSort reports whether s is one of the supported feed sort keys.
func IsValidFeedSort(s string) bool {
	switch s {
	case FeedSortNewest, FeedSortOldest, FeedSortByGenus:
		return true
	}
	return false
}
