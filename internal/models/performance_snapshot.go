package models

import (
	"time"

	"wheeltradr/internal/uuid"

	"gorm.io/gorm"
)

// PerformanceSnapshot is one day's record of the journal's realized results and
// open exposure. It is append-only time-series data keyed by date.
type PerformanceSnapshot struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	RecordedOn      Date      `gorm:"not null;uniqueIndex" json:"recorded_on"`
	RealizedPnL     float64   `gorm:"column:realized_pnl;not null" json:"realized_pnl"`
	DeployedCapital float64   `gorm:"not null" json:"deployed_capital"`
	OpenPositions   int       `gorm:"not null" json:"open_positions"`
	WinRate         float64   `gorm:"not null" json:"win_rate"`
	CreatedAt       time.Time `json:"created_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (p *PerformanceSnapshot) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New()
	}
	return nil
}
