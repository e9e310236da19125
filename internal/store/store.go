// Package store holds the application state: a snapshot of customers, jobs,
// price templates and branding, mutated only through actions that write
// through to the database. The snapshot is updated only after the durable
// write commits, so a caller that gets a nil error knows the data is on disk.
package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/woodworkpro/woodwork-server/internal/models"
	"github.com/woodworkpro/woodwork-server/internal/services"
)

var (
	ErrNameRequired      = errors.New("name is required")
	ErrEmptyJob          = errors.New("job has no non-zero measurement")
	ErrDuplicateTemplate = errors.New("template name already exists")
	ErrUnknownLanguage   = errors.New("unsupported language")
)

// JobDraft is the editor's save payload: sanitized measurements plus the
// active price set whose values get frozen into each door.
type JobDraft struct {
	ID         uint // 0 means create
	Title      string
	Notes      string
	CustomerID *uint
	Prices     services.PriceSet
	Doors      []services.DoorMeasurements
}

// BrandingPatch shallow-merges only the fields that are set.
type BrandingPatch struct {
	BrandName   *string
	CompanyInfo *string
	Logo        *string
}

type Store struct {
	db      *gorm.DB
	pricing *services.PricingService

	mu        sync.RWMutex
	customers []models.Customer
	jobs      []models.Job
	templates []models.PriceTemplate
	branding  models.BrandingSettings
}

// New loads the full snapshot from the database. A missing branding row is
// created with defaults.
func New(dbConn *gorm.DB) (*Store, error) {
	s := &Store{db: dbConn, pricing: services.NewPricingService()}
	if err := dbConn.Order("id").Find(&s.customers).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load customers")
	}
	if err := dbConn.Preload("Doors", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position")
	}).Order("id").Find(&s.jobs).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load jobs")
	}
	if err := dbConn.Order("id").Find(&s.templates).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load templates")
	}
	err := dbConn.First(&s.branding).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.branding = models.BrandingSettings{
			BrandName:   models.DefaultBrandName,
			CompanyInfo: models.DefaultCompanyInfo,
			Language:    models.DefaultLanguage,
		}
		if err := dbConn.Create(&s.branding).Error; err != nil {
			return nil, pkgerrors.Wrap(err, "create branding defaults")
		}
	} else if err != nil {
		return nil, pkgerrors.Wrap(err, "load branding")
	}
	return s, nil
}

// Ping verifies database connectivity.
func (s *Store) Ping() error {
	return s.db.Exec("SELECT 1").Error
}

// --- Read accessors (return copies, never internal slices) ---

func (s *Store) Customers() []models.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

func (s *Store) Jobs() []models.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Job, len(s.jobs))
	copy(out, s.jobs)
	return out
}

// Job returns a job by id, or false when it does not exist.
func (s *Store) Job(id uint) (models.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, j := range s.jobs {
		if j.ID == id {
			return j, true
		}
	}
	return models.Job{}, false
}

func (s *Store) Customer(id uint) (models.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if c.ID == id {
			return c, true
		}
	}
	return models.Customer{}, false
}

func (s *Store) Templates() []models.PriceTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.PriceTemplate, len(s.templates))
	copy(out, s.templates)
	return out
}

// TemplateByName looks a template up by its natural key.
func (s *Store) TemplateByName(name string) (models.PriceTemplate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.templates {
		if t.Name == name {
			return t, true
		}
	}
	return models.PriceTemplate{}, false
}

func (s *Store) Branding() models.BrandingSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.branding
}

// --- Mutating actions ---

// AddCustomer appends a customer. Name is required; there is no uniqueness
// check beyond the generated id.
func (s *Store) AddCustomer(c models.Customer) (models.Customer, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return models.Customer{}, ErrNameRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.Create(&c).Error; err != nil {
		return models.Customer{}, pkgerrors.Wrap(err, "persist customer")
	}
	s.customers = append(s.customers, c)
	return c, nil
}

// AddTemplate appends a price template. Name is the natural key and must be
// unique; prices are clamped so a negative rate can never be stored.
func (s *Store) AddTemplate(t models.PriceTemplate) (models.PriceTemplate, error) {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return models.PriceTemplate{}, ErrNameRequired
	}
	t.Door = services.Coerce(t.Door)
	t.Beading = services.Coerce(t.Beading)
	t.Frame = services.Coerce(t.Frame)
	t.Paling = services.Coerce(t.Paling)
	t.Polish = services.Coerce(t.Polish)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.templates {
		if existing.Name == t.Name {
			return models.PriceTemplate{}, ErrDuplicateTemplate
		}
	}
	if err := s.db.Create(&t).Error; err != nil {
		return models.PriceTemplate{}, pkgerrors.Wrap(err, "persist template")
	}
	s.templates = append(s.templates, t)
	return t, nil
}

// SaveJob creates a job (draft.ID == 0) or replaces one by id. Subtotals and
// the grand total are recomputed from the draft, never trusted from stale
// form state. A draft whose doors are all zero is rejected with ErrEmptyJob.
// Updating an id that does not exist is a silent no-op returning (nil, nil).
func (s *Store) SaveJob(draft JobDraft) (*models.Job, error) {
	doors := s.pricing.BuildDoors(draft.Doors, draft.Prices)
	if !s.pricing.HasBillableWork(doors) {
		return nil, ErrEmptyJob
	}
	now := time.Now()
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		title = services.UntitledTitle(now)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if draft.ID == 0 {
		job := models.Job{
			Title:      title,
			Notes:      draft.Notes,
			Date:       now,
			CustomerID: draft.CustomerID,
			GrandTotal: s.pricing.GrandTotal(doors),
			Doors:      doors,
		}
		if err := s.db.Create(&job).Error; err != nil {
			return nil, pkgerrors.Wrap(err, "persist job")
		}
		s.jobs = append(s.jobs, job)
		return &job, nil
	}

	idx := -1
	for i, j := range s.jobs {
		if j.ID == draft.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		// update silently drops unmatched ids rather than erroring
		log.WithField("job_id", draft.ID).Debug("update for unknown job ignored")
		return nil, nil
	}

	job := models.Job{
		ID:         draft.ID,
		Title:      title,
		Notes:      draft.Notes,
		Date:       s.jobs[idx].Date, // creation date is preserved on edit
		CustomerID: draft.CustomerID,
		GrandTotal: s.pricing.GrandTotal(doors),
		Doors:      doors,
		CreatedAt:  s.jobs[idx].CreatedAt,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", draft.ID).Delete(&models.Door{}).Error; err != nil {
			return err
		}
		updates := map[string]any{
			"title":       job.Title,
			"notes":       job.Notes,
			"customer_id": job.CustomerID,
			"grand_total": job.GrandTotal,
		}
		if err := tx.Model(&models.Job{}).Where("id = ?", draft.ID).Updates(updates).Error; err != nil {
			return err
		}
		for i := range job.Doors {
			job.Doors[i].JobID = draft.ID
		}
		return tx.Create(&job.Doors).Error
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "replace job")
	}
	s.jobs[idx] = job
	return &job, nil
}

// DeleteJob removes a job; deleting an absent id is a no-op.
func (s *Store) DeleteJob(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, j := range s.jobs {
		if j.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.Door{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Job{}, id).Error
	})
	if err != nil {
		return pkgerrors.Wrap(err, "delete job")
	}
	s.jobs = append(s.jobs[:idx], s.jobs[idx+1:]...)
	return nil
}

// UpdateBranding shallow-merges only the provided fields.
func (s *Store) UpdateBranding(patch BrandingPatch) (models.BrandingSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.branding
	if patch.BrandName != nil {
		next.BrandName = *patch.BrandName
	}
	if patch.CompanyInfo != nil {
		next.CompanyInfo = *patch.CompanyInfo
	}
	if patch.Logo != nil {
		next.LogoPath = *patch.Logo
	}
	if err := s.db.Save(&next).Error; err != nil {
		return models.BrandingSettings{}, pkgerrors.Wrap(err, "persist branding")
	}
	s.branding = next
	return next, nil
}

// SetLanguage switches the stored UI language.
func (s *Store) SetLanguage(lang string) error {
	if lang != "en" && lang != "ur" {
		return ErrUnknownLanguage
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.branding
	next.Language = lang
	if err := s.db.Save(&next).Error; err != nil {
		return pkgerrors.Wrap(err, "persist language")
	}
	s.branding = next
	return nil
}

// Reload replaces the snapshot from the database. Used after out-of-band
// writes such as the legacy import.
func (s *Store) Reload() error {
	fresh, err := New(s.db)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = fresh.customers
	s.jobs = fresh.jobs
	s.templates = fresh.templates
	s.branding = fresh.branding
	return nil
}
