package db

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/woodworkpro/woodwork-server/internal/models"
)

// Storage keys used by the legacy mobile app. The combined record is
// authoritative; the two per-entity keys are an older scheme it superseded
// and only contribute ids the combined record does not have.
const (
	legacyCombinedKey  = "woodwork-pro-app-storage"
	legacyJobsKey      = "WOODWORK_PRO_JOBS"
	legacyCustomersKey = "WOODWORK_PRO_CUSTOMERS"
)

// legacyImport records a completed import so it never reruns.
type legacyImport struct {
	ID         uint   `gorm:"primaryKey"`
	Source     string `gorm:"not null"`
	ImportedAt time.Time
}

func (legacyImport) TableName() string { return "legacy_imports" }

type legacyCustomer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type legacyDoor struct {
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
	Subtotal     float64 `json:"subtotal"`
}

type legacyJob struct {
	ID         int64        `json:"id"`
	Title      string       `json:"title"`
	Notes      string       `json:"notes"`
	Date       string       `json:"date"`
	CustomerID *int64       `json:"customerId"`
	GrandTotal float64      `json:"grandTotal"`
	Doors      []legacyDoor `json:"doors"`
}

type legacyTemplate struct {
	Name    string  `json:"name"`
	Door    float64 `json:"door"`
	Beading float64 `json:"beading"`
	Frame   float64 `json:"frame"`
	Paling  float64 `json:"paling"`
	Polish  float64 `json:"polish"`
}

type legacyState struct {
	BrandName   string           `json:"brandName"`
	CompanyInfo string           `json:"companyInfo"`
	Logo        *string          `json:"logo"`
	Language    string           `json:"language"`
	Templates   []legacyTemplate `json:"templates"`
	Jobs        []legacyJob      `json:"jobs"`
	Customers   []legacyCustomer `json:"customers"`
}

// ImportLegacy imports a key-value export of the legacy app (a JSON object
// mapping storage keys to their string values, as dumped from the device
// key-value store) into the database. The import runs at most once per
// database; subsequent calls are no-ops.
func ImportLegacy(dbConn *gorm.DB, path string) error {
	if err := dbConn.AutoMigrate(&legacyImport{}); err != nil {
		return errors.Wrap(err, "migrate legacy_imports")
	}
	var count int64
	if err := dbConn.Model(&legacyImport{}).Count(&count).Error; err != nil {
		return errors.Wrap(err, "check legacy import state")
	}
	if count > 0 {
		log.Debug("legacy import already applied; skipping")
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read legacy export")
	}
	var dump map[string]string
	if err := json.Unmarshal(raw, &dump); err != nil {
		return errors.Wrap(err, "parse legacy export")
	}

	var state legacyState
	if blob, ok := dump[legacyCombinedKey]; ok {
		// The combined record is wrapped as {"state": {...}, "version": n}.
		var wrapper struct {
			State legacyState `json:"state"`
		}
		if err := json.Unmarshal([]byte(blob), &wrapper); err != nil {
			return errors.Wrap(err, "parse combined record")
		}
		state = wrapper.State
	}

	seenJobs := map[int64]bool{}
	for _, j := range state.Jobs {
		seenJobs[j.ID] = true
	}
	seenCustomers := map[int64]bool{}
	for _, c := range state.Customers {
		seenCustomers[c.ID] = true
	}
	if blob, ok := dump[legacyJobsKey]; ok {
		var extra []legacyJob
		if err := json.Unmarshal([]byte(blob), &extra); err == nil {
			for _, j := range extra {
				if !seenJobs[j.ID] {
					state.Jobs = append(state.Jobs, j)
					seenJobs[j.ID] = true
				}
			}
		} else {
			log.WithError(err).Warn("skipping unreadable legacy jobs key")
		}
	}
	if blob, ok := dump[legacyCustomersKey]; ok {
		var extra []legacyCustomer
		if err := json.Unmarshal([]byte(blob), &extra); err == nil {
			for _, c := range extra {
				if !seenCustomers[c.ID] {
					state.Customers = append(state.Customers, c)
					seenCustomers[c.ID] = true
				}
			}
		} else {
			log.WithError(err).Warn("skipping unreadable legacy customers key")
		}
	}

	err = dbConn.Transaction(func(tx *gorm.DB) error {
		for _, c := range state.Customers {
			cust := models.Customer{ID: uint(c.ID), Name: c.Name, Phone: c.Phone, Address: c.Address}
			if err := tx.Create(&cust).Error; err != nil {
				return errors.Wrapf(err, "import customer %d", c.ID)
			}
		}
		for _, j := range state.Jobs {
			job := models.Job{
				ID:         uint(j.ID),
				Title:      j.Title,
				Notes:      j.Notes,
				Date:       parseLegacyDate(j.Date),
				GrandTotal: j.GrandTotal,
			}
			if j.CustomerID != nil {
				id := uint(*j.CustomerID)
				job.CustomerID = &id
			}
			for i, d := range j.Doors {
				job.Doors = append(job.Doors, models.Door{
					Position: i,
					Area:     d.Area, AreaPrice: d.AreaPrice,
					Beading: d.Beading, BeadingPrice: d.BeadingPrice,
					Frame: d.Frame, FramePrice: d.FramePrice,
					Paling: d.Paling, PalingPrice: d.PalingPrice,
					Polish: d.Polish, PolishPrice: d.PolishPrice,
					Subtotal: d.Subtotal,
				})
			}
			if err := tx.Create(&job).Error; err != nil {
				return errors.Wrapf(err, "import job %d", j.ID)
			}
		}
		for _, t := range state.Templates {
			tpl := models.PriceTemplate{Name: t.Name, Door: t.Door, Beading: t.Beading, Frame: t.Frame, Paling: t.Paling, Polish: t.Polish}
			if err := tx.Create(&tpl).Error; err != nil {
				return errors.Wrapf(err, "import template %q", t.Name)
			}
		}
		branding := models.BrandingSettings{
			BrandName:   state.BrandName,
			CompanyInfo: state.CompanyInfo,
			Language:    state.Language,
		}
		if branding.BrandName == "" {
			branding.BrandName = models.DefaultBrandName
		}
		if branding.CompanyInfo == "" {
			branding.CompanyInfo = models.DefaultCompanyInfo
		}
		if branding.Language == "" {
			branding.Language = models.DefaultLanguage
		}
		if state.Logo != nil {
			branding.LogoPath = *state.Logo
		}
		if err := tx.Create(&branding).Error; err != nil {
			return errors.Wrap(err, "import branding")
		}
		return tx.Create(&legacyImport{Source: path, ImportedAt: time.Now()}).Error
	})
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"customers": len(state.Customers),
		"jobs":      len(state.Jobs),
		"templates": len(state.Templates),
	}).Info("legacy data imported")
	return nil
}

func parseLegacyDate(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Now()
}
