package services

import (
	"encoding/json"

	apperrors "wheeltradr/internal/errors"
	"wheeltradr/internal/logger"
	"wheeltradr/internal/models"

	"gorm.io/gorm"
)

// activityService handles activity log recording.
type activityService struct {
	db *gorm.DB
}

// NewActivityService creates a new ActivityServicer.
func NewActivityService(db *gorm.DB) ActivityServicer {
	return &activityService{db: db}
}

// Log records a journal write. Errors are logged but never propagate
// to avoid disrupting the main operation.
func (s *activityService) Log(action, tradeID string, changes map[string]interface{}) {
	log := logger.With("action", action, "trade_id", tradeID)

	var changesJSON string
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			log.Errorw("failed to marshal activity changes", "error", err)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	entry := &models.ActivityLog{
		Action:  action,
		TradeID: tradeID,
		Changes: changesJSON,
	}

	if err := s.db.Create(entry).Error; err != nil {
		log.Errorw("failed to create activity log entry", "error", err)
	}
}

// Recent returns the latest entries, newest first.
func (s *activityService) Recent(limit int) ([]models.ActivityLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var entries []models.ActivityLog
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}

// noopActivity discards entries. Used when a service is built without a log.
type noopActivity struct{}

func (noopActivity) Log(string, string, map[string]interface{}) {}

func (noopActivity) Recent(int) ([]models.ActivityLog, error) { return []models.ActivityLog{}, nil }
