package services

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	apperrors "wheeltradr/internal/errors"
	"wheeltradr/internal/logger"
	"wheeltradr/internal/models"
)

// BackupFormatVersion is written into every export.
const BackupFormatVersion = 1

// backupService handles journal export and import.
type backupService struct {
	db       *gorm.DB
	trades   TradeServicer
	settings SettingsServicer
	activity ActivityServicer
}

// NewBackupService creates a new BackupServicer. activity may be nil.
func NewBackupService(db *gorm.DB, trades TradeServicer, settings SettingsServicer, activity ActivityServicer) BackupServicer {
	if activity == nil {
		activity = noopActivity{}
	}
	return &backupService{db: db, trades: trades, settings: settings, activity: activity}
}

// Export returns the whole journal and the settings.
func (s *backupService) Export() (*BackupDocument, error) {
	trades, err := s.trades.AllTrades()
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Get()
	if err != nil {
		return nil, err
	}
	return &BackupDocument{Version: BackupFormatVersion, Trades: trades, Settings: settings}, nil
}

// Import replaces the journal with the trades of payload, and the settings
// when the payload carries them. payload is either a backup document or a bare
// trade array. Nothing is written unless the whole payload is valid.
func (s *backupService) Import(payload []byte) (*ImportResult, error) {
	trades, settings, err := decodeBackup(payload)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidImport, err)
	}

	result := &ImportResult{Trades: len(trades), SettingsApplied: settings != nil}
	seen := make(map[string]struct{}, len(trades))
	for i := range trades {
		t := &trades[i]
		if !t.Strategy.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidImport, fmt.Sprintf("Trade %d has an unknown strategy %q", i, t.Strategy))
		}
		if !t.Status.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidImport, fmt.Sprintf("Trade %d has an unknown status %q", i, t.Status))
		}
		if t.ID != "" {
			if _, dup := seen[t.ID]; dup {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidImport, fmt.Sprintf("Duplicate trade id %q", t.ID))
			}
			seen[t.ID] = struct{}{}
		}
		t.Normalize()
		if t.MigrateLegacyLots() {
			result.LegacyMigrated++
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Trade{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if len(trades) > 0 {
			if err := tx.CreateInBatches(&trades, 100).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInvalidImport, err)
			}
		}
		if settings != nil {
			if err := tx.Save(settings).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		logger.Get().Errorw("journal import failed", "error", err)
		return nil, err
	}

	s.trades.Invalidate()
	if settings != nil {
		s.settings.Invalidate()
	}
	s.activity.Log(models.ActionImport, "", map[string]interface{}{
		"trades":           result.Trades,
		"settings_applied": result.SettingsApplied,
		"legacy_migrated":  result.LegacyMigrated,
	})
	return result, nil
}

// decodeBackup accepts a bare trade array or an object with a trades array
// and optional settings. Settings fields missing from the payload keep their
// defaults.
func decodeBackup(payload []byte) ([]models.Trade, *models.Settings, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, nil, fmt.Errorf("empty payload")
	}

	if trimmed[0] == '[' {
		var trades []models.Trade
		if err := json.Unmarshal(trimmed, &trades); err != nil {
			return nil, nil, fmt.Errorf("decoding trade array: %w", err)
		}
		return nonNil(trades), nil, nil
	}

	var doc struct {
		Trades   json.RawMessage `json:"trades"`
		Settings json.RawMessage `json:"settings"`
	}
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, nil, fmt.Errorf("decoding backup document: %w", err)
	}
	rawTrades := bytes.TrimSpace(doc.Trades)
	if len(rawTrades) == 0 || rawTrades[0] != '[' {
		return nil, nil, fmt.Errorf("backup document has no trades array")
	}

	var trades []models.Trade
	if err := json.Unmarshal(rawTrades, &trades); err != nil {
		return nil, nil, fmt.Errorf("decoding trades: %w", err)
	}

	rawSettings := bytes.TrimSpace(doc.Settings)
	if len(rawSettings) == 0 || bytes.Equal(rawSettings, []byte("null")) {
		return nonNil(trades), nil, nil
	}
	settings := models.DefaultSettings()
	if err := json.Unmarshal(rawSettings, &settings); err != nil {
		return nil, nil, fmt.Errorf("decoding settings: %w", err)
	}
	settings.Normalize()
	return nonNil(trades), &settings, nil
}

func nonNil(trades []models.Trade) []models.Trade {
	if trades == nil {
		return []models.Trade{}
	}
	return trades
}
