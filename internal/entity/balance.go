package entity

import "time"

// Balance holds the spendable amount of one resource type for one user.
type Balance struct {
	UserID       string `gorm:"primaryKey"`
	ResourceType string `gorm:"primaryKey"`
	Amount       int64

	CreatedAt time.Time
	UpdatedAt time.Time
}
