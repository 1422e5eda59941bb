package services

import (
	"testing"
	"time"
)

// pinNow fixes the service clock for the duration of a test.
func pinNow(t *testing.T, at time.Time) {
	t.Helper()
	previous := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = previous })
}

func ptr(v float64) *float64 { return &v }

var march8 = time.Date(2024, time.March, 8, 14, 30, 0, 0, time.UTC)
