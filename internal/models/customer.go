package models

import "time"

// Customer entity. Create-only: the app has no edit or delete flow for
// customers, so jobs may keep a dangling CustomerID without a cascade policy.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}
