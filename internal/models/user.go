package models

import "time"

// User represents application user.
// APIToken is the opaque credential presented by clients on every request.
// It is minted at registration; older accounts that predate tokens get one
// lazily on their next successful login.
type User struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"size:64;uniqueIndex;not null"`
	Email        string    `gorm:"size:128"`
	PasswordHash string    `gorm:"size:255;not null"`
	APIToken     string    `gorm:"size:128;index"`
	ProfilePhoto string    `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
