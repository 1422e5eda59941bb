package services

import (
	"testing"

	"wheeltradr/internal/models"
	"wheeltradr/internal/pagination"
	"wheeltradr/internal/testutil"
)

func TestRecordSnapshot(t *testing.T) {
	t.Run("records_dashboard_figures", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		pinNow(t, march8)
		trades := NewTradeService(db, nil)
		svc := NewPerformanceSnapshotService(db, NewAnalyticsService(trades, NewSettingsService(db, nil)))

		_, err := trades.SeedDemoTrades()
		testutil.AssertNoError(t, err)

		snap, err := svc.RecordSnapshot(models.Date{})
		testutil.AssertNoError(t, err)

		if snap.ID == "" {
			t.Fatal("expected snapshot ID")
		}
		if snap.RecordedOn.String() != "2024-03-08" {
			t.Errorf("expected today, got %s", snap.RecordedOn)
		}
		if snap.RealizedPnL != 358.70 || snap.OpenPositions != 2 || snap.WinRate != 100 {
			t.Errorf("unexpected figures %+v", snap)
		}
		// AMD stock at its 110 basis plus PLTR put collateral
		if snap.DeployedCapital != 18500 {
			t.Errorf("expected deployed capital 18500, got %v", snap.DeployedCapital)
		}
	})

	t.Run("upserts_by_day", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		pinNow(t, march8)
		trades := NewTradeService(db, nil)
		svc := NewPerformanceSnapshotService(db, NewAnalyticsService(trades, NewSettingsService(db, nil)))
		day := models.MustParseDate("2024-03-08")

		first, err := svc.RecordSnapshot(day)
		testutil.AssertNoError(t, err)

		testutil.CreateTestTrade(t, db, testutil.Closed("2024-03-08", 75))
		trades.Invalidate()

		second, err := svc.RecordSnapshot(day)
		testutil.AssertNoError(t, err)
		if second.ID != first.ID {
			t.Errorf("expected the same snapshot to be updated")
		}

		var count int64
		db.Model(&models.PerformanceSnapshot{}).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 snapshot, got %d", count)
		}
		var stored models.PerformanceSnapshot
		db.First(&stored, "id = ?", first.ID)
		if stored.RealizedPnL != 75 {
			t.Errorf("expected updated pnl 75, got %v", stored.RealizedPnL)
		}
	})
}

func TestGetSnapshots(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPerformanceSnapshotService(db, nil)

	for _, day := range []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04"} {
		snap := models.PerformanceSnapshot{RecordedOn: models.MustParseDate(day), RealizedPnL: 1}
		if err := db.Create(&snap).Error; err != nil {
			t.Fatalf("failed to create snapshot: %v", err)
		}
	}

	page, err := svc.GetSnapshots(models.MustParseDate("2024-03-02"), models.MustParseDate("2024-03-03"), pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if page.TotalItems != 2 || len(page.Data) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", page.TotalItems)
	}
	if page.Data[0].RecordedOn.String() != "2024-03-03" {
		t.Errorf("expected newest first, got %s", page.Data[0].RecordedOn)
	}

	open, err := svc.GetSnapshots(models.Date{}, models.Date{}, pagination.PageRequest{Page: 1, PageSize: 3})
	testutil.AssertNoError(t, err)
	if open.TotalItems != 4 || len(open.Data) != 3 || open.TotalPages != 2 {
		t.Errorf("unexpected open window page %+v", open)
	}

	_, err = svc.GetSnapshots(models.MustParseDate("2024-03-05"), models.MustParseDate("2024-03-01"), pagination.PageRequest{})
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}
