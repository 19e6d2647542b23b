package services

import (
	"travelex-backend/models"

	"gorm.io/gorm"
)

const defaultActivityLogLimit = 50

// ActivityLogService is the gorm-backed ActivityLogStore.
type ActivityLogService struct {
	DB *gorm.DB
}

func NewActivityLogService(db *gorm.DB) *ActivityLogService {
	return &ActivityLogService{DB: db}
}

func (s *ActivityLogService) CreateActivityLog(entry *models.ActivityLog) (*models.ActivityLog, error) {
	if err := s.DB.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// GetActivityLogs lists the newest entries first. A non-positive limit
// falls back to 50.
func (s *ActivityLogService) GetActivityLogs(limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = defaultActivityLogLimit
	}
	var logs []models.ActivityLog
	err := s.DB.Order("created_at DESC").Limit(limit).Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
