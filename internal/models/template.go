package models

import "time"

// PriceTemplate is a named, reusable set of the five unit prices. Name is
// the natural key; templates are never mutated after creation.
type PriceTemplate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Door      float64   `json:"door"`
	Beading   float64   `json:"beading"`
	Frame     float64   `json:"frame"`
	Paling    float64   `json:"paling"`
	Polish    float64   `json:"polish"`
	CreatedAt time.Time `json:"createdAt"`
}
