package models

import (
	"time"

	"wheeltradr/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for journal tables. Ids are opaque strings;
// records arriving through an import keep the id they were exported with.
type Base struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
