package models

import "time"

// Job is the invoiceable unit of work: a titled set of doors billed to an
// optional customer. GrandTotal is a cached derived value, recomputed and
// overwritten on every save.
type Job struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Notes      string    `json:"notes"`
	Date       time.Time `gorm:"not null" json:"date"`
	CustomerID *uint     `gorm:"index" json:"customerId"`
	GrandTotal float64   `gorm:"not null" json:"grandTotal"`
	Doors      []Door    `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"doors"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

// Door is one line item of a job: five measurements, each paired with the
// unit price that was active when the job was saved. Prices are frozen
// copies, never references to a template, so historical jobs stay stable
// when templates change.
type Door struct {
	ID       uint `gorm:"primaryKey" json:"-"`
	JobID    uint `gorm:"not null;index" json:"-"`
	Position int  `gorm:"not null" json:"position"`

	Area         float64 `json:"area"`
	AreaPrice    float64 `json:"areaPrice"`
	Beading      float64 `json:"beading"`
	BeadingPrice float64 `json:"beadingPrice"`
	Frame        float64 `json:"frame"`
	FramePrice   float64 `json:"framePrice"`
	Paling       float64 `json:"paling"`
	PalingPrice  float64 `json:"palingPrice"`
	Polish       float64 `json:"polish"`
	PolishPrice  float64 `json:"polishPrice"`

	Subtotal float64 `json:"subtotal"`
}
