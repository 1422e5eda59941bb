package services

import (
	"testing"

	"wheeltradr/internal/models"
	"wheeltradr/internal/testutil"
)

func TestSettingsGet(t *testing.T) {
	t.Run("creates_defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db, nil)

		settings, err := svc.Get()
		testutil.AssertNoError(t, err)

		if settings.MonthlyGoal != 1000 || settings.TotalAccountValue != 33000 || settings.IncomeTargetPercent != 3 {
			t.Errorf("unexpected defaults %+v", settings)
		}
		if settings.ManualVix != 15 || settings.EffectiveVix() != 15 {
			t.Errorf("expected manual vix 15, got %v", settings.ManualVix)
		}
		if settings.TickerPrices == nil {
			t.Error("expected empty ticker price map")
		}

		var count int64
		db.Model(&models.Settings{}).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 settings row, got %d", count)
		}
	})

	t.Run("reads_stored_row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestSettings(t, db, func(s *models.Settings) { s.MonthlyGoal = 2500 })
		svc := NewSettingsService(db, nil)

		settings, err := svc.Get()
		testutil.AssertNoError(t, err)
		if settings.MonthlyGoal != 2500 {
			t.Errorf("expected goal 2500, got %v", settings.MonthlyGoal)
		}
	})
}

func TestSettingsUpdate(t *testing.T) {
	t.Run("account_value_derives_goal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db, nil)

		settings, err := svc.Update(SettingsUpdate{TotalAccountValue: ptr(50000)})
		testutil.AssertNoError(t, err)
		if settings.MonthlyGoal != 1500 {
			t.Errorf("expected goal 1500, got %v", settings.MonthlyGoal)
		}
	})

	t.Run("goal_derives_percent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db, NewActivityService(db))

		before := svc.Version()
		settings, err := svc.Update(SettingsUpdate{MonthlyGoal: ptr(1234)})
		testutil.AssertNoError(t, err)
		if settings.IncomeTargetPercent != 3.74 {
			t.Errorf("expected percent 3.74, got %v", settings.IncomeTargetPercent)
		}
		if svc.Version() == before {
			t.Error("expected version to change")
		}

		reloaded, err := svc.Get()
		testutil.AssertNoError(t, err)
		if reloaded.MonthlyGoal != 1234 {
			t.Errorf("update was not persisted: %+v", reloaded)
		}

		var logs int64
		db.Model(&models.ActivityLog{}).Where("action = ?", models.ActionSettings).Count(&logs)
		if logs != 1 {
			t.Errorf("expected 1 settings activity entry, got %d", logs)
		}
	})

	t.Run("key_and_vix", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db, nil)

		_, err := svc.RecordMarketData(nil, ptr(28))
		testutil.AssertNoError(t, err)

		key := "  abc123 "
		settings, err := svc.Update(SettingsUpdate{FinnhubAPIKey: &key, ManualVix: ptr(22)})
		testutil.AssertNoError(t, err)
		if settings.FinnhubAPIKey != "abc123" {
			t.Errorf("expected trimmed key, got %q", settings.FinnhubAPIKey)
		}
		if settings.LastVix != 0 || settings.EffectiveVix() != 22 {
			t.Errorf("manual vix should replace the fetched one, got last %v effective %v", settings.LastVix, settings.EffectiveVix())
		}
	})
}

func TestSetTickerPrice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSettingsService(db, nil)

	settings, err := svc.SetTickerPrice("amd", 161.25)
	testutil.AssertNoError(t, err)
	if settings.TickerPrices["AMD"] != 161.25 {
		t.Errorf("expected AMD 161.25, got %v", settings.TickerPrices)
	}

	_, err = svc.SetTickerPrice(" ", 1)
	testutil.AssertAppError(t, err, "INVALID_INPUT")

	_, err = svc.SetTickerPrice("AMD", -1)
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestRecordMarketData(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSettingsService(db, nil)

	_, err := svc.SetTickerPrice("PLTR", 20)
	testutil.AssertNoError(t, err)

	settings, err := svc.RecordMarketData(map[string]float64{"amd": 150, "NVDA": 0}, ptr(18.5))
	testutil.AssertNoError(t, err)

	if settings.TickerPrices["AMD"] != 150 || settings.TickerPrices["PLTR"] != 20 {
		t.Errorf("expected merged prices, got %v", settings.TickerPrices)
	}
	if _, ok := settings.TickerPrices["NVDA"]; ok {
		t.Error("zero quotes must be skipped")
	}
	if settings.EffectiveVix() != 18.5 {
		t.Errorf("expected fetched vix 18.5, got %v", settings.EffectiveVix())
	}

	_, err = svc.SetManualVix(-2)
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}
