package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single income or expense record.
//
// The id is supplied by the client (the mobile app generates them) and is
// globally unique: posting an existing id updates the row instead of
// inserting a duplicate.
//
// UserID is nullable on purpose. Rows written before the client logged in
// have no owner ("legacy" rows) and stay that way until a user claims them.
// Once set, UserID never goes back to NULL.
type Transaction struct {
	ID          string          `gorm:"primaryKey;size:255"`
	UserID      *uint           `gorm:"index"`
	Type        string          `gorm:"size:16;not null"` // income / expense
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Category    string          `gorm:"size:100;not null"`
	Description string          `gorm:"type:text"`
	Date        string          `gorm:"size:10;index;not null"` // YYYY-MM-DD
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
