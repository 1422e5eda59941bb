package services

import (
	"context"

	"wheeltradr/internal/cycles"
	"wheeltradr/internal/metrics"
	"wheeltradr/internal/models"
	"wheeltradr/internal/pagination"
)

// TradeFilter holds optional filter parameters for listing trades.
type TradeFilter struct {
	// Ticker matches as a case-insensitive substring.
	Ticker string
	Status models.TradeStatus
	// Strategy is a strategy label, or StrategyGroupStock for both stock legs.
	Strategy string
	CycleID  string
}

// StrategyGroupStock filters on assignment purchases and called-away sales together.
const StrategyGroupStock = "STOCK"

// SaveResult is a stored trade plus the stock position its save spawned.
type SaveResult struct {
	Trade   *models.Trade `json:"trade"`
	Spawned *models.Trade `json:"spawned,omitempty"`
}

// TradeServicer defines the contract for the trade store.
//
// UpdateTrade and QuickClose return a nil result and a nil error when the id
// does not resolve. DeleteTrade of an unknown id is a no-op.
type TradeServicer interface {
	ListTrades(filter TradeFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error)
	AllTrades() ([]models.Trade, error)
	GetTrade(id string) (*models.Trade, error)
	CreateTrade(trade models.Trade) (*SaveResult, error)
	UpdateTrade(id string, trade models.Trade) (*SaveResult, error)
	DeleteTrade(id string) error
	QuickClose(id string, closePrice float64, exitFee *float64) (*SaveResult, error)
	MigrateLegacyLots() (int, error)
	SeedDemoTrades() (int, error)
	Version() uint64
	Invalidate()
}

// SettingsUpdate carries the settings fields a caller wants to change. Nil
// fields are left alone. Account value and percent re-derive the goal; an
// explicit goal re-derives the percent and is applied after them.
type SettingsUpdate struct {
	TotalAccountValue   *float64 `json:"total_account_value" binding:"omitempty,gte=0"`
	IncomeTargetPercent *float64 `json:"income_target_percent" binding:"omitempty,gte=0,lte=100"`
	MonthlyGoal         *float64 `json:"monthly_goal" binding:"omitempty,gte=0"`
	FinnhubAPIKey       *string  `json:"finnhub_api_key"`
	ManualVix           *float64 `json:"manual_vix" binding:"omitempty,gte=0"`
}

// SettingsServicer defines the contract for the single settings record.
type SettingsServicer interface {
	Get() (*models.Settings, error)
	Update(update SettingsUpdate) (*models.Settings, error)
	SetTickerPrice(ticker string, price float64) (*models.Settings, error)
	SetManualVix(vix float64) (*models.Settings, error)
	RecordMarketData(prices map[string]float64, vix *float64) (*models.Settings, error)
	Version() uint64
	Invalidate()
}

// BackupDocument is the export format of the journal.
type BackupDocument struct {
	Version  int              `json:"version"`
	Trades   []models.Trade   `json:"trades"`
	Settings *models.Settings `json:"settings,omitempty"`
}

// ImportResult reports what an import replaced.
type ImportResult struct {
	Trades          int  `json:"trades"`
	SettingsApplied bool `json:"settings_applied"`
	LegacyMigrated  int  `json:"legacy_migrated"`
}

// BackupServicer defines the contract for journal export and import.
type BackupServicer interface {
	Export() (*BackupDocument, error)
	Import(payload []byte) (*ImportResult, error)
}

// SummaryRequest selects the trades a range summary covers.
type SummaryRequest struct {
	Range  metrics.Range
	Params metrics.RangeParams
	Ticker string
}

// AnalyticsServicer defines the contract for the read-side projections.
type AnalyticsServicer interface {
	Dashboard() (*metrics.Snapshot, error)
	Cycles() ([]cycles.Cycle, error)
	Cycle(id string) (*cycles.Cycle, error)
	CycleOptions(ticker string) ([]cycles.Option, error)
	Summary(req SummaryRequest) (*metrics.Summary, error)
	Calendar(year, month int) (*metrics.Calendar, error)
}

// RefreshResult reports the outcome of a market data refresh.
type RefreshResult struct {
	Prices map[string]float64 `json:"prices"`
	Vix    *float64           `json:"vix,omitempty"`
	Failed []string           `json:"failed"`
}

// MarketServicer defines the contract for refreshing quotes and the VIX.
type MarketServicer interface {
	Refresh(ctx context.Context) (*RefreshResult, error)
}

// ActivityServicer defines the contract for activity logging.
type ActivityServicer interface {
	Log(action, tradeID string, changes map[string]interface{})
	Recent(limit int) ([]models.ActivityLog, error)
}

// PerformanceSnapshotServicer defines the contract for daily performance snapshots.
type PerformanceSnapshotServicer interface {
	RecordSnapshot(on models.Date) (*models.PerformanceSnapshot, error)
	GetSnapshots(from, to models.Date, page pagination.PageRequest) (*pagination.PageResponse[models.PerformanceSnapshot], error)
}

// AuthServicer defines the contract for the single-user passphrase login.
type AuthServicer interface {
	Enabled() bool
	VerifyPassphrase(passphrase string) error
}
