package scheduler

import (
	"context"
	"time"

	"wheeltradr/internal/models"
	"wheeltradr/internal/services"
)

// QuoteRefreshJob pulls current quotes for open positions and the VIX.
type QuoteRefreshJob struct {
	market  services.MarketServicer
	timeout time.Duration
}

// NewQuoteRefreshJob creates a quote refresh job. Each run is bounded by timeout.
func NewQuoteRefreshJob(market services.MarketServicer, timeout time.Duration) *QuoteRefreshJob {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &QuoteRefreshJob{market: market, timeout: timeout}
}

// Name returns the job name
func (j *QuoteRefreshJob) Name() string { return "quote_refresh" }

// Run refreshes market data once.
func (j *QuoteRefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	_, err := j.market.Refresh(ctx)
	return err
}

// SnapshotJob records the day's performance snapshot.
type SnapshotJob struct {
	snapshots services.PerformanceSnapshotServicer
	clock     func() time.Time
}

// NewSnapshotJob creates a daily snapshot job.
func NewSnapshotJob(snapshots services.PerformanceSnapshotServicer) *SnapshotJob {
	return &SnapshotJob{snapshots: snapshots, clock: time.Now}
}

// Name returns the job name
func (j *SnapshotJob) Name() string { return "performance_snapshot" }

// Run records a snapshot for today.
func (j *SnapshotJob) Run() error {
	_, err := j.snapshots.RecordSnapshot(models.DateOf(j.clock()))
	return err
}
