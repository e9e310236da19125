package models

import "time"

// Branding defaults shown until the operator customizes them.
const (
	DefaultBrandName   = "WoodWork Pro"
	DefaultCompanyInfo = "123 Woodwork Lane, Timber Town"
	DefaultLanguage    = "en"
)

// BrandingSettings is a single-row table holding the invoice branding and
// the UI language preference. LogoPath points at a local file; it is read
// and embedded only at export time.
type BrandingSettings struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	BrandName   string    `gorm:"not null" json:"brandName"`
	CompanyInfo string    `json:"companyInfo"`
	LogoPath    string    `json:"logo"`
	Language    string    `gorm:"not null;default:'en'" json:"language"`
	UpdatedAt   time.Time `json:"-"`
}
