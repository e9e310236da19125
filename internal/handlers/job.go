package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/woodworkpro/woodwork-server/internal/httpx"
	"github.com/woodworkpro/woodwork-server/internal/i18n"
	"github.com/woodworkpro/woodwork-server/internal/middleware"
	"github.com/woodworkpro/woodwork-server/internal/services"
	"github.com/woodworkpro/woodwork-server/internal/store"
)

type JobHandler struct {
	Store *store.Store
}

func NewJobHandler(st *store.Store) *JobHandler { return &JobHandler{Store: st} }

// doorReq accepts measurements as numbers, numeric strings, blanks or null;
// anything malformed coerces to 0 rather than erroring.
type doorReq struct {
	Area    services.Measurement `json:"area"`
	Beading services.Measurement `json:"beading"`
	Frame   services.Measurement `json:"frame"`
	Paling  services.Measurement `json:"paling"`
	Polish  services.Measurement `json:"polish"`
}

type priceReq struct {
	Door    services.Measurement `json:"door"`
	Beading services.Measurement `json:"beading"`
	Frame   services.Measurement `json:"frame"`
	Paling  services.Measurement `json:"paling"`
	Polish  services.Measurement `json:"polish"`
}

type jobReq struct {
	Title      string `json:"title"`
	Notes      string `json:"notes"`
	CustomerID *uint  `json:"customerId"`
	// Template, when set, applies that template's whole price set; explicit
	// prices win when both are present.
	Template string    `json:"template"`
	Prices   *priceReq `json:"prices"`
	Doors    []doorReq `json:"doors"`
}

func (h *JobHandler) draftFrom(req jobReq, lang string) (store.JobDraft, string) {
	prices := services.DefaultPrices()
	if req.Template != "" {
		t, ok := h.Store.TemplateByName(req.Template)
		if !ok {
			return store.JobDraft{}, i18n.T(lang, "not_found")
		}
		prices = services.ApplyTemplate(t)
	}
	if req.Prices != nil {
		prices = services.PriceSet{
			Door:    float64(req.Prices.Door),
			Beading: float64(req.Prices.Beading),
			Frame:   float64(req.Prices.Frame),
			Paling:  float64(req.Prices.Paling),
			Polish:  float64(req.Prices.Polish),
		}
	}
	draft := store.JobDraft{
		Title:      req.Title,
		Notes:      req.Notes,
		CustomerID: req.CustomerID,
		Prices:     prices,
	}
	for _, d := range req.Doors {
		draft.Doors = append(draft.Doors, services.DoorMeasurements{
			Area:    float64(d.Area),
			Beading: float64(d.Beading),
			Frame:   float64(d.Frame),
			Paling:  float64(d.Paling),
			Polish:  float64(d.Polish),
		})
	}
	return draft, ""
}

// List: GET /jobs?q=&page=&limit=. Newest first, title search.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs := h.Store.Jobs()
	// newest first
	for i, j := 0, len(jobs)-1; i < j; i, j = i+1, j-1 {
		jobs[i], jobs[j] = jobs[j], jobs[i]
	}
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	if q != "" {
		filtered := jobs[:0]
		for _, j := range jobs {
			if strings.Contains(strings.ToLower(j.Title), q) {
				filtered = append(filtered, j)
			}
		}
		jobs = filtered
	}
	total := len(jobs)
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	offset := 0
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			offset = (n - 1) * limit
		}
	}
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": jobs[offset:end], "total": total, "limit": limit, "offset": offset})
}

// Get: GET /jobs/{id}
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	id, ok := jobID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", "", nil)
		return
	}
	job, found := h.Store.Job(id)
	if !found {
		httpx.JSONError(w, http.StatusNotFound, "not_found", i18n.T(lang, "not_found"), nil)
		return
	}
	httpx.JSON(w, http.StatusOK, job)
}

// Create: POST /jobs
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, 0)
}

// Update: PUT /jobs/{id}. Replaces by id; an unmatched id is a silent no-op.
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := jobID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", "", nil)
		return
	}
	h.save(w, r, id)
}

func (h *JobHandler) save(w http.ResponseWriter, r *http.Request, id uint) {
	lang := middleware.LangFrom(r)
	var req jobReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", i18n.T(lang, "invalid_json"), nil)
		return
	}
	draft, failMsg := h.draftFrom(req, lang)
	if failMsg != "" {
		httpx.JSONError(w, http.StatusBadRequest, "unknown_template", failMsg, nil)
		return
	}
	draft.ID = id

	job, err := h.Store.SaveJob(draft)
	switch {
	case err == store.ErrEmptyJob:
		httpx.JSONError(w, http.StatusBadRequest, "job_empty", i18n.T(lang, "job_empty"), nil)
		return
	case err != nil:
		log.WithError(err).Error("job save failed")
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_save_job", "", nil)
		return
	}
	if job == nil {
		// update referenced a missing id; state unchanged
		httpx.JSON(w, http.StatusOK, map[string]any{"updated": false, "job": nil})
		return
	}
	status := http.StatusCreated
	if id != 0 {
		status = http.StatusOK
	}
	httpx.JSON(w, status, job)
}

// Delete: DELETE /jobs/{id}. Absent ids are a no-op.
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := jobID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", "", nil)
		return
	}
	if err := h.Store.DeleteJob(id); err != nil {
		log.WithError(err).Error("job delete failed")
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_job", "", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func jobID(r *http.Request) (uint, bool) {
	n, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
