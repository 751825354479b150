package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Target represents a savings goal.
type Target struct {
	ID              uint            `gorm:"primaryKey"`
	UserID          uint            `gorm:"index;not null"`
	Name            string          `gorm:"size:128;not null"`
	TargetAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CurrentProgress decimal.Decimal `gorm:"type:decimal(15,2)"`
	Deadline        string          `gorm:"size:10;not null"` // YYYY-MM-DD
	IsCompleted     bool            `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
