package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gorm.io/gorm"

	apperrors "wheeltradr/internal/errors"
	"wheeltradr/internal/logger"
	"wheeltradr/internal/models"
	"wheeltradr/internal/pagination"
	"wheeltradr/internal/transition"
)

// now is the service clock. Tests replace it to pin dates.
var now = time.Now

// tradeService handles trade persistence and the save-time transitions.
type tradeService struct {
	db       *gorm.DB
	activity ActivityServicer

	// mu serializes writes so each read-modify-write of a trade is atomic.
	mu      sync.Mutex
	version atomic.Uint64
}

// NewTradeService creates a new TradeServicer. activity may be nil.
func NewTradeService(db *gorm.DB, activity ActivityServicer) TradeServicer {
	if activity == nil {
		activity = noopActivity{}
	}
	return &tradeService{db: db, activity: activity}
}

// Version changes whenever the trade set changes.
func (s *tradeService) Version() uint64 {
	return s.version.Load()
}

// Invalidate marks the trade set changed by a writer outside this service.
func (s *tradeService) Invalidate() {
	s.version.Add(1)
}

// scope applies the filter to a trade query.
func (f TradeFilter) scope(db *gorm.DB) *gorm.DB {
	if f.Ticker != "" {
		db = db.Where("ticker LIKE ?", "%"+strings.ToUpper(strings.TrimSpace(f.Ticker))+"%")
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	switch f.Strategy {
	case "":
	case StrategyGroupStock:
		db = db.Where("strategy IN ?", []models.StrategyType{models.StrategyStockBuy, models.StrategyStockSell})
	default:
		db = db.Where("strategy = ?", f.Strategy)
	}
	if f.CycleID != "" {
		db = db.Where("cycle_id = ?", f.CycleID)
	}
	return db
}

// ListTrades returns paginated trades matching the filter, newest entry first.
func (s *tradeService) ListTrades(filter TradeFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Trade{}).Scopes(filter.scope).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var trades []models.Trade
	if err := s.db.Scopes(filter.scope).
		Order("entry_date DESC").Order("id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&trades).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(trades, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// AllTrades returns the whole journal, newest entry first.
func (s *tradeService) AllTrades() ([]models.Trade, error) {
	var trades []models.Trade
	if err := s.db.Order("entry_date DESC").Order("id DESC").Find(&trades).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if trades == nil {
		trades = []models.Trade{}
	}
	return trades, nil
}

// GetTrade retrieves a trade by id.
func (s *tradeService) GetTrade(id string) (*models.Trade, error) {
	var trade models.Trade
	if err := s.db.First(&trade, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTradeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &trade, nil
}

// CreateTrade stores a new trade. A new put without a cycle starts its own
// cycle, and a put entered as already assigned spawns its stock position.
func (s *tradeService) CreateTrade(trade models.Trade) (*SaveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trade.ID = ""
	prepared := transition.Prepare(nil, trade, now())

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return persist(tx, &prepared, tx.Create)
	})
	if err != nil {
		return nil, err
	}

	s.version.Add(1)
	s.activity.Log(models.ActionTradeCreated, prepared.Trade.ID, tradeChanges(&prepared.Trade))
	s.logSpawn(&prepared)
	return resultOf(prepared), nil
}

// UpdateTrade replaces the stored fields of a trade with the given ones.
func (s *tradeService) UpdateTrade(id string, trade models.Trade) (*SaveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var prepared transition.Result
	found := true

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var prev models.Trade
		if err := tx.First(&prev, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				found = false
				return nil
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		trade.ID = prev.ID
		trade.CreatedAt = prev.CreatedAt
		prepared = transition.Prepare(&prev, trade, now())
		return persist(tx, &prepared, tx.Save)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	s.version.Add(1)
	s.activity.Log(models.ActionTradeUpdated, id, tradeChanges(&prepared.Trade))
	s.logSpawn(&prepared)
	return resultOf(prepared), nil
}

// DeleteTrade removes a trade. Unknown ids are ignored.
func (s *tradeService) DeleteTrade(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := s.db.Delete(&models.Trade{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil
	}

	s.version.Add(1)
	s.activity.Log(models.ActionTradeDeleted, id, nil)
	return nil
}

// QuickClose closes a trade today at closePrice, adding exitFee (or the
// default per-contract fee) to its fees. Only open puts, covered calls and
// LEAPS qualify; anything else is INVALID_INPUT.
func (s *tradeService) QuickClose(id string, closePrice float64, exitFee *float64) (*SaveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var closed models.Trade
	found := true

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var trade models.Trade
		if err := tx.First(&trade, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				found = false
				return nil
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if !transition.CanQuickClose(&trade) {
			return apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("a %s %s trade cannot be quick-closed", trade.Status, trade.Strategy))
		}

		closed = transition.QuickClose(trade, closePrice, exitFee, now())
		if err := tx.Save(&closed).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	s.version.Add(1)
	s.activity.Log(models.ActionTradeClosed, id, map[string]interface{}{
		"close_price": closePrice,
		"fees":        closed.Fees,
		"pnl":         closed.RealizedPnL(),
	})
	return &SaveResult{Trade: &closed}, nil
}

// MigrateLegacyLots rewrites stock purchases stored as raw shares into lots
// of 100 and returns how many records changed.
func (s *tradeService) MigrateLegacyLots() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var legacy []models.Trade
	if err := s.db.Where("strategy = ?", models.StrategyStockBuy).Find(&legacy).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	migrated := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range legacy {
			if !legacy[i].MigrateLegacyLots() {
				continue
			}
			if err := tx.Model(&legacy[i]).Update("contracts", legacy[i].Contracts).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			migrated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if migrated > 0 {
		s.version.Add(1)
		logger.Get().Infow("migrated legacy stock lots", "count", migrated)
	}
	return migrated, nil
}

// SeedDemoTrades stores the demo journal when no trades exist yet.
func (s *tradeService) SeedDemoTrades() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	if err := s.db.Model(&models.Trade{}).Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return 0, nil
	}

	trades := demoTrades()
	if err := s.db.Create(&trades).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.version.Add(1)
	return len(trades), nil
}

// persist writes a prepared trade and its spawned position in one transaction.
func persist(tx *gorm.DB, prepared *transition.Result, write func(value interface{}) *gorm.DB) error {
	if err := write(&prepared.Trade).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if prepared.Spawned != nil {
		if err := tx.Create(prepared.Spawned).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}

func (s *tradeService) logSpawn(prepared *transition.Result) {
	if prepared.Spawned == nil {
		return
	}
	s.activity.Log(models.ActionTradeSpawned, prepared.Spawned.ID, map[string]interface{}{
		"parent_id": prepared.Trade.ID,
		"cycle_id":  prepared.Spawned.CycleID,
	})
}

func resultOf(prepared transition.Result) *SaveResult {
	trade := prepared.Trade
	return &SaveResult{Trade: &trade, Spawned: prepared.Spawned}
}

func tradeChanges(t *models.Trade) map[string]interface{} {
	changes := map[string]interface{}{
		"ticker":   t.Ticker,
		"strategy": t.Strategy,
		"status":   t.Status,
	}
	if t.PnL != nil {
		changes["pnl"] = *t.PnL
	}
	if t.CycleID != "" {
		changes["cycle_id"] = t.CycleID
	}
	return changes
}
