package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Run("plain_date", func(t *testing.T) {
		d, err := ParseDate("2024-03-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Year() != 2024 || d.Month() != time.March || d.Day() != 15 {
			t.Errorf("unexpected date %v", d)
		}
	})

	t.Run("iso_timestamp_truncated", func(t *testing.T) {
		d, err := ParseDate("2024-03-15T18:30:00.000Z")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.String() != "2024-03-15" {
			t.Errorf("expected 2024-03-15, got %s", d)
		}
	})

	t.Run("empty_is_unset", func(t *testing.T) {
		d, err := ParseDate("  ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.IsSet() {
			t.Error("expected unset date")
		}
	})

	t.Run("garbage_rejected", func(t *testing.T) {
		if _, err := ParseDate("15/03/2024"); err == nil {
			t.Error("expected error")
		}
	})
}

func TestDateJSON(t *testing.T) {
	type wrapper struct {
		When Date `json:"when"`
	}

	data, err := json.Marshal(wrapper{When: NewDate(2024, time.January, 2)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"when":"2024-01-02"}` {
		t.Errorf("unexpected json %s", data)
	}

	data, _ = json.Marshal(wrapper{})
	if string(data) != `{"when":""}` {
		t.Errorf("expected empty string for unset date, got %s", data)
	}

	for _, in := range []string{`{"when":null}`, `{"when":""}`, `{}`} {
		var w wrapper
		if err := json.Unmarshal([]byte(in), &w); err != nil {
			t.Fatalf("unmarshal %s: %v", in, err)
		}
		if w.When.IsSet() {
			t.Errorf("%s: expected unset date", in)
		}
	}

	var w wrapper
	if err := json.Unmarshal([]byte(`{"when":12}`), &w); err == nil {
		t.Error("expected error for numeric date")
	}
}

func TestDateScanValue(t *testing.T) {
	var d Date
	if err := d.Scan("2024-05-06"); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if d.String() != "2024-05-06" {
		t.Errorf("got %s", d)
	}

	if err := d.Scan(time.Date(2024, 5, 7, 23, 59, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan time: %v", err)
	}
	if d.String() != "2024-05-07" {
		t.Errorf("got %s", d)
	}

	if err := d.Scan(nil); err != nil || d.IsSet() {
		t.Errorf("expected nil scan to clear date, got %v (%v)", d, err)
	}

	v, err := Date{}.Value()
	if err != nil || v != nil {
		t.Errorf("expected nil value for unset date, got %v", v)
	}
	v, _ = NewDate(2024, 1, 1).Value()
	if v != "2024-01-01" {
		t.Errorf("unexpected value %v", v)
	}

	if err := d.Scan(42); err == nil {
		t.Error("expected error scanning int")
	}
}

func TestDateArithmetic(t *testing.T) {
	a := NewDate(2024, time.January, 1)
	b := NewDate(2024, time.March, 1)
	if got := a.DaysUntil(b); got != 60 {
		t.Errorf("expected 60 days, got %v", got)
	}
	if !a.Before(b) || !b.After(a) {
		t.Error("ordering broken")
	}
	if a.AddDays(-1).String() != "2023-12-31" {
		t.Errorf("unexpected %s", a.AddDays(-1))
	}
	if b.MonthKey() != "2024-03" {
		t.Errorf("unexpected month key %s", b.MonthKey())
	}
}
