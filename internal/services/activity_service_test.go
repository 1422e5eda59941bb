package services

import (
	"math"
	"testing"

	"wheeltradr/internal/models"
	"wheeltradr/internal/testutil"
)

func TestActivityLog(t *testing.T) {
	t.Run("records_entries_newest_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewActivityService(db)

		svc.Log(models.ActionTradeCreated, "t1", map[string]interface{}{"ticker": "AMD"})
		svc.Log(models.ActionTradeDeleted, "t1", nil)

		entries, err := svc.Recent(10)
		testutil.AssertNoError(t, err)
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		var created models.ActivityLog
		for _, e := range entries {
			if e.Action == models.ActionTradeCreated {
				created = e
			}
		}
		if created.Changes != `{"ticker":"AMD"}` {
			t.Errorf("unexpected changes %q", created.Changes)
		}
	})

	t.Run("unmarshalable_changes_still_log", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewActivityService(db)

		svc.Log(models.ActionTradeUpdated, "t1", map[string]interface{}{"pnl": math.NaN()})

		var entry models.ActivityLog
		if err := db.First(&entry).Error; err != nil {
			t.Fatalf("expected an entry: %v", err)
		}
		if entry.Changes != "{}" {
			t.Errorf("expected placeholder changes, got %q", entry.Changes)
		}
	})

	t.Run("storage_failure_is_swallowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewActivityService(db)
		testutil.TeardownTestDB(t, db)

		svc.Log(models.ActionTradeCreated, "t1", nil)
	})
}
