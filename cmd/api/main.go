package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wheeltradr/internal/app"
	"wheeltradr/internal/config"
	"wheeltradr/internal/logger"
	"wheeltradr/internal/router"
	"wheeltradr/internal/scheduler"
	"wheeltradr/internal/validator"
)

// @title           Wheeltradr API
// @version         1.0
// @description     A personal journal for the options wheel: trades, realized P&L, cycles and exposure.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	journal, err := app.Open(appConfig)
	if err != nil {
		return err
	}
	defer func() {
		if err := journal.Close(); err != nil {
			log.Warnw("failed to close database", "error", err)
		}
	}()

	jobs := scheduler.New(log)
	if err := jobs.AddJob(appConfig.QuoteRefreshSchedule, scheduler.NewQuoteRefreshJob(journal.Market, appConfig.MarketTimeout)); err != nil {
		return fmt.Errorf("invalid QUOTE_REFRESH_SCHEDULE: %w", err)
	}
	snapshotJob := scheduler.NewSnapshotJob(journal.Snapshots)
	if err := jobs.AddJob(appConfig.SnapshotSchedule, snapshotJob); err != nil {
		return fmt.Errorf("invalid SNAPSHOT_SCHEDULE: %w", err)
	}
	// Today's row is upserted, so a restart only refreshes it.
	if err := jobs.RunNow(snapshotJob); err != nil {
		log.Warnw("initial performance snapshot failed", "error", err)
	}
	jobs.Start()
	defer jobs.Stop()

	validator.Register()
	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router.New(journal.RouterDeps()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting wheeltradr server on port %s (auth enabled: %v)", appConfig.Port, appConfig.AuthEnabled())
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Infow("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
