package services

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"gorm.io/gorm"

	apperrors "wheeltradr/internal/errors"
	"wheeltradr/internal/models"
)

// settingsService handles the single settings row.
type settingsService struct {
	db       *gorm.DB
	activity ActivityServicer

	mu      sync.Mutex
	version atomic.Uint64
}

// NewSettingsService creates a new SettingsServicer. activity may be nil.
func NewSettingsService(db *gorm.DB, activity ActivityServicer) SettingsServicer {
	if activity == nil {
		activity = noopActivity{}
	}
	return &settingsService{db: db, activity: activity}
}

// Version changes whenever the settings change.
func (s *settingsService) Version() uint64 {
	return s.version.Load()
}

// Invalidate marks the settings changed by a writer outside this service.
func (s *settingsService) Invalidate() {
	s.version.Add(1)
}

// Get returns the settings, creating the defaults on first use.
func (s *settingsService) Get() (*models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *settingsService) load() (*models.Settings, error) {
	var settings models.Settings
	err := s.db.First(&settings, models.SettingsID).Error
	if err == nil {
		settings.Normalize()
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	settings = models.DefaultSettings()
	if err := s.db.Create(&settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &settings, nil
}

// mutate applies fn to the stored settings and saves the result.
func (s *settingsService) mutate(fn func(*models.Settings), changes map[string]interface{}) (*models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.load()
	if err != nil {
		return nil, err
	}
	fn(settings)
	settings.Normalize()
	if err := s.db.Save(settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.version.Add(1)
	if changes != nil {
		s.activity.Log(models.ActionSettings, "", changes)
	}
	return settings, nil
}

// Update applies the non-nil fields of update.
func (s *settingsService) Update(update SettingsUpdate) (*models.Settings, error) {
	changes := map[string]interface{}{}
	return s.mutate(func(settings *models.Settings) {
		if update.TotalAccountValue != nil {
			settings.SetAccountValue(*update.TotalAccountValue)
			changes["total_account_value"] = *update.TotalAccountValue
		}
		if update.IncomeTargetPercent != nil {
			settings.SetIncomeTargetPercent(*update.IncomeTargetPercent)
			changes["income_target_percent"] = *update.IncomeTargetPercent
		}
		if update.MonthlyGoal != nil {
			settings.SetMonthlyGoal(*update.MonthlyGoal)
			changes["monthly_goal"] = *update.MonthlyGoal
		}
		if update.FinnhubAPIKey != nil {
			settings.FinnhubAPIKey = strings.TrimSpace(*update.FinnhubAPIKey)
			changes["finnhub_api_key"] = "updated"
		}
		if update.ManualVix != nil {
			settings.SetManualVix(*update.ManualVix)
			changes["manual_vix"] = *update.ManualVix
		}
	}, changes)
}

// SetTickerPrice stores a manually entered current price.
func (s *settingsService) SetTickerPrice(ticker string, price float64) (*models.Settings, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Ticker is required")
	}
	if price < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Price must not be negative")
	}
	return s.mutate(func(settings *models.Settings) {
		settings.SetTickerPrice(ticker, price)
	}, map[string]interface{}{"ticker": ticker, "price": price})
}

// SetManualVix stores a manually entered VIX and drops the fetched one.
func (s *settingsService) SetManualVix(vix float64) (*models.Settings, error) {
	if vix < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "VIX must not be negative")
	}
	return s.mutate(func(settings *models.Settings) {
		settings.SetManualVix(vix)
	}, map[string]interface{}{"manual_vix": vix})
}

// RecordMarketData merges fetched quotes and, when present, the fetched VIX.
func (s *settingsService) RecordMarketData(prices map[string]float64, vix *float64) (*models.Settings, error) {
	return s.mutate(func(settings *models.Settings) {
		for ticker, price := range prices {
			if price > 0 {
				settings.SetTickerPrice(ticker, price)
			}
		}
		if vix != nil && *vix > 0 {
			settings.LastVix = *vix
		}
	}, nil)
}
