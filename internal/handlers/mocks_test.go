package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"wheeltradr/internal/cycles"
	"wheeltradr/internal/metrics"
	"wheeltradr/internal/models"
	"wheeltradr/internal/pagination"
	"wheeltradr/internal/services"
	"wheeltradr/internal/validator"
)

// --- mock services ---

type mockTradeService struct {
	listTradesFn func(filter services.TradeFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error)
	getTradeFn   func(id string) (*models.Trade, error)
	createFn     func(trade models.Trade) (*services.SaveResult, error)
	updateFn     func(id string, trade models.Trade) (*services.SaveResult, error)
	deleteFn     func(id string) error
	quickCloseFn func(id string, closePrice float64, exitFee *float64) (*services.SaveResult, error)
}

var _ services.TradeServicer = (*mockTradeService)(nil)

func (m *mockTradeService) ListTrades(filter services.TradeFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error) {
	if m.listTradesFn != nil {
		return m.listTradesFn(filter, page)
	}
	resp := pagination.NewPageResponse([]models.Trade{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockTradeService) AllTrades() ([]models.Trade, error) { return []models.Trade{}, nil }

func (m *mockTradeService) GetTrade(id string) (*models.Trade, error) {
	if m.getTradeFn != nil {
		return m.getTradeFn(id)
	}
	return &models.Trade{Base: models.Base{ID: id}}, nil
}

func (m *mockTradeService) CreateTrade(trade models.Trade) (*services.SaveResult, error) {
	if m.createFn != nil {
		return m.createFn(trade)
	}
	return &services.SaveResult{Trade: &trade}, nil
}

func (m *mockTradeService) UpdateTrade(id string, trade models.Trade) (*services.SaveResult, error) {
	if m.updateFn != nil {
		return m.updateFn(id, trade)
	}
	trade.ID = id
	return &services.SaveResult{Trade: &trade}, nil
}

func (m *mockTradeService) DeleteTrade(id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

func (m *mockTradeService) QuickClose(id string, closePrice float64, exitFee *float64) (*services.SaveResult, error) {
	if m.quickCloseFn != nil {
		return m.quickCloseFn(id, closePrice, exitFee)
	}
	return nil, nil
}

func (m *mockTradeService) MigrateLegacyLots() (int, error) { return 0, nil }
func (m *mockTradeService) SeedDemoTrades() (int, error)    { return 0, nil }
func (m *mockTradeService) Version() uint64                 { return 0 }
func (m *mockTradeService) Invalidate()                     {}

type mockAnalyticsService struct {
	dashboardFn    func() (*metrics.Snapshot, error)
	cyclesFn       func() ([]cycles.Cycle, error)
	cycleFn        func(id string) (*cycles.Cycle, error)
	cycleOptionsFn func(ticker string) ([]cycles.Option, error)
	summaryFn      func(req services.SummaryRequest) (*metrics.Summary, error)
	calendarFn     func(year, month int) (*metrics.Calendar, error)
}

var _ services.AnalyticsServicer = (*mockAnalyticsService)(nil)

func (m *mockAnalyticsService) Dashboard() (*metrics.Snapshot, error) {
	if m.dashboardFn != nil {
		return m.dashboardFn()
	}
	return &metrics.Snapshot{}, nil
}

func (m *mockAnalyticsService) Cycles() ([]cycles.Cycle, error) {
	if m.cyclesFn != nil {
		return m.cyclesFn()
	}
	return []cycles.Cycle{}, nil
}

func (m *mockAnalyticsService) Cycle(id string) (*cycles.Cycle, error) {
	if m.cycleFn != nil {
		return m.cycleFn(id)
	}
	return &cycles.Cycle{ID: id}, nil
}

func (m *mockAnalyticsService) CycleOptions(ticker string) ([]cycles.Option, error) {
	if m.cycleOptionsFn != nil {
		return m.cycleOptionsFn(ticker)
	}
	return []cycles.Option{}, nil
}

func (m *mockAnalyticsService) Summary(req services.SummaryRequest) (*metrics.Summary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(req)
	}
	return &metrics.Summary{}, nil
}

func (m *mockAnalyticsService) Calendar(year, month int) (*metrics.Calendar, error) {
	if m.calendarFn != nil {
		return m.calendarFn(year, month)
	}
	return &metrics.Calendar{Year: year, Month: month}, nil
}

type mockSettingsService struct {
	getFn            func() (*models.Settings, error)
	updateFn         func(update services.SettingsUpdate) (*models.Settings, error)
	setTickerPriceFn func(ticker string, price float64) (*models.Settings, error)
	setManualVixFn   func(vix float64) (*models.Settings, error)
}

var _ services.SettingsServicer = (*mockSettingsService)(nil)

func defaultSettings() *models.Settings {
	s := models.DefaultSettings()
	return &s
}

func (m *mockSettingsService) Get() (*models.Settings, error) {
	if m.getFn != nil {
		return m.getFn()
	}
	return defaultSettings(), nil
}

func (m *mockSettingsService) Update(update services.SettingsUpdate) (*models.Settings, error) {
	if m.updateFn != nil {
		return m.updateFn(update)
	}
	return defaultSettings(), nil
}

func (m *mockSettingsService) SetTickerPrice(ticker string, price float64) (*models.Settings, error) {
	if m.setTickerPriceFn != nil {
		return m.setTickerPriceFn(ticker, price)
	}
	return defaultSettings(), nil
}

func (m *mockSettingsService) SetManualVix(vix float64) (*models.Settings, error) {
	if m.setManualVixFn != nil {
		return m.setManualVixFn(vix)
	}
	return defaultSettings(), nil
}

func (m *mockSettingsService) RecordMarketData(_ map[string]float64, _ *float64) (*models.Settings, error) {
	return defaultSettings(), nil
}

func (m *mockSettingsService) Version() uint64 { return 0 }
func (m *mockSettingsService) Invalidate()     {}

type mockBackupService struct {
	exportFn func() (*services.BackupDocument, error)
	importFn func(payload []byte) (*services.ImportResult, error)
}

var _ services.BackupServicer = (*mockBackupService)(nil)

func (m *mockBackupService) Export() (*services.BackupDocument, error) {
	if m.exportFn != nil {
		return m.exportFn()
	}
	return &services.BackupDocument{Version: services.BackupFormatVersion, Trades: []models.Trade{}}, nil
}

func (m *mockBackupService) Import(payload []byte) (*services.ImportResult, error) {
	if m.importFn != nil {
		return m.importFn(payload)
	}
	return &services.ImportResult{}, nil
}

type mockMarketService struct {
	refreshFn func(ctx context.Context) (*services.RefreshResult, error)
}

var _ services.MarketServicer = (*mockMarketService)(nil)

func (m *mockMarketService) Refresh(ctx context.Context) (*services.RefreshResult, error) {
	if m.refreshFn != nil {
		return m.refreshFn(ctx)
	}
	return &services.RefreshResult{Prices: map[string]float64{}, Failed: []string{}}, nil
}

type mockSnapshotService struct {
	getSnapshotsFn func(from, to models.Date, page pagination.PageRequest) (*pagination.PageResponse[models.PerformanceSnapshot], error)
}

var _ services.PerformanceSnapshotServicer = (*mockSnapshotService)(nil)

func (m *mockSnapshotService) RecordSnapshot(on models.Date) (*models.PerformanceSnapshot, error) {
	return &models.PerformanceSnapshot{RecordedOn: on}, nil
}

func (m *mockSnapshotService) GetSnapshots(from, to models.Date, page pagination.PageRequest) (*pagination.PageResponse[models.PerformanceSnapshot], error) {
	if m.getSnapshotsFn != nil {
		return m.getSnapshotsFn(from, to, page)
	}
	resp := pagination.NewPageResponse([]models.PerformanceSnapshot{}, 1, 20, 0)
	return &resp, nil
}

type mockAuthService struct {
	enabled  bool
	verifyFn func(passphrase string) error
}

var _ services.AuthServicer = (*mockAuthService)(nil)

func (m *mockAuthService) Enabled() bool { return m.enabled }

func (m *mockAuthService) VerifyPassphrase(passphrase string) error {
	if m.verifyFn != nil {
		return m.verifyFn(passphrase)
	}
	return nil
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func ptr(v float64) *float64 { return &v }

func contains(s, sub string) bool { return strings.Contains(s, sub) }
