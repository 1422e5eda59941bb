package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "wheeltradr/internal/errors"
	"wheeltradr/internal/metrics"
	"wheeltradr/internal/models"
	"wheeltradr/internal/pagination"
)

// performanceSnapshotService handles daily performance snapshots.
type performanceSnapshotService struct {
	db        *gorm.DB
	analytics AnalyticsServicer
}

// NewPerformanceSnapshotService creates a new PerformanceSnapshotServicer.
func NewPerformanceSnapshotService(db *gorm.DB, analytics AnalyticsServicer) PerformanceSnapshotServicer {
	return &performanceSnapshotService{db: db, analytics: analytics}
}

// RecordSnapshot computes the journal's current figures and stores them under
// the given day, replacing any snapshot already taken that day.
func (s *performanceSnapshotService) RecordSnapshot(on models.Date) (*models.PerformanceSnapshot, error) {
	if !on.IsSet() {
		on = models.DateOf(now())
	}

	dashboard, err := s.analytics.Dashboard()
	if err != nil {
		return nil, err
	}
	snapshot := snapshotOf(on, dashboard)

	// Upsert: check for existing snapshot on the same day
	var existing models.PerformanceSnapshot
	err = s.db.Where("recorded_on = ?", on).First(&existing).Error
	switch {
	case err == nil:
		if err := s.db.Model(&existing).Updates(map[string]interface{}{
			"realized_pnl":     snapshot.RealizedPnL,
			"deployed_capital": snapshot.DeployedCapital,
			"open_positions":   snapshot.OpenPositions,
			"win_rate":         snapshot.WinRate,
		}).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		snapshot.ID = existing.ID
		snapshot.CreatedAt = existing.CreatedAt
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.db.Create(snapshot).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	default:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return snapshot, nil
}

func snapshotOf(on models.Date, dashboard *metrics.Snapshot) *models.PerformanceSnapshot {
	return &models.PerformanceSnapshot{
		RecordedOn:      on,
		RealizedPnL:     dashboard.TotalPnL,
		DeployedCapital: dashboard.Exposure.Total,
		OpenPositions:   dashboard.OpenPositions,
		WinRate:         dashboard.WinRate,
	}
}

// GetSnapshots returns paginated snapshots within an inclusive date range,
// newest first. An unset bound leaves that side open.
func (s *performanceSnapshotService) GetSnapshots(from, to models.Date, page pagination.PageRequest) (*pagination.PageResponse[models.PerformanceSnapshot], error) {
	page.Defaults()
	if from.IsSet() && to.IsSet() && to.Before(from) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "to must not be before from")
	}

	window := func(db *gorm.DB) *gorm.DB {
		if from.IsSet() {
			db = db.Where("recorded_on >= ?", from)
		}
		if to.IsSet() {
			db = db.Where("recorded_on <= ?", to)
		}
		return db
	}

	var totalItems int64
	if err := s.db.Model(&models.PerformanceSnapshot{}).Scopes(window).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var snapshots []models.PerformanceSnapshot
	if err := s.db.Scopes(window).Order("recorded_on DESC").Scopes(pagination.Paginate(page)).Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(snapshots, page.Page, page.PageSize, totalItems)
	return &result, nil
}
