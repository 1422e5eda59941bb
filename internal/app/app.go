// Package app opens the journal store and wires the services shared by the
// API server and the operator CLI.
package app

import (
	"fmt"

	"wheeltradr/internal/config"
	"wheeltradr/internal/database"
	"wheeltradr/internal/logger"
	"wheeltradr/internal/market"
	"wheeltradr/internal/router"
	"wheeltradr/internal/services"
)

// App is an opened journal with its services.
type App struct {
	Config    *config.Config
	Activity  services.ActivityServicer
	Trades    services.TradeServicer
	Settings  services.SettingsServicer
	Analytics services.AnalyticsServicer
	Snapshots services.PerformanceSnapshotServicer
	Backup    services.BackupServicer
	Market    services.MarketServicer
	Auth      services.AuthServicer

	db *database.Manager
}

// Open connects to the configured database, applies pending migrations and
// runs the startup maintenance: legacy stock lot migration and, when enabled,
// demo data for an empty journal.
func Open(cfg *config.Config) (*App, error) {
	log := logger.Get()

	dbConfig, err := database.NewConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		_ = dbManager.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	a := wire(cfg, dbManager)

	migrated, err := a.Trades.MigrateLegacyLots()
	if err != nil {
		_ = dbManager.Close()
		return nil, fmt.Errorf("failed to migrate legacy stock lots: %w", err)
	}
	if migrated > 0 {
		log.Infow("migrated legacy stock lots", "trades", migrated)
	}

	if cfg.SeedDemoData {
		seeded, err := a.Trades.SeedDemoTrades()
		if err != nil {
			_ = dbManager.Close()
			return nil, fmt.Errorf("failed to seed demo trades: %w", err)
		}
		if seeded > 0 {
			log.Infow("seeded demo trades", "trades", seeded)
		}
	}

	return a, nil
}

func wire(cfg *config.Config, dbManager *database.Manager) *App {
	db := dbManager.DB()
	opts := market.Options{Timeout: cfg.MarketTimeout}

	activity := services.NewActivityService(db)
	trades := services.NewTradeService(db, activity)
	settings := services.NewSettingsService(db, activity)
	analytics := services.NewAnalyticsService(trades, settings)

	return &App{
		Config:    cfg,
		Activity:  activity,
		Trades:    trades,
		Settings:  settings,
		Analytics: analytics,
		Snapshots: services.NewPerformanceSnapshotService(db, analytics),
		Backup:    services.NewBackupService(db, trades, settings, activity),
		Market: services.NewMarketService(trades, settings, activity,
			func(apiKey string) market.QuoteProvider { return market.NewFinnhubProvider(apiKey, opts) },
			market.NewYahooVix(opts), cfg.FinnhubAPIKey),
		Auth: services.NewAuthService(cfg.JournalPassphraseHash),
		db:   dbManager,
	}
}

// RouterDeps returns the dependencies of the HTTP API.
func (a *App) RouterDeps() router.Deps {
	return router.Deps{
		Trades:    a.Trades,
		Settings:  a.Settings,
		Analytics: a.Analytics,
		Snapshots: a.Snapshots,
		Backup:    a.Backup,
		Market:    a.Market,
		Auth:      a.Auth,
		JWTSecret: a.Config.JWTSecret,
		TokenTTL:  a.Config.JWTExpirationDur,
	}
}

// Close releases the database connection.
func (a *App) Close() error {
	return a.db.Close()
}
