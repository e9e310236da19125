package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/woodworkpro/woodwork-server/internal/httpx"
	"github.com/woodworkpro/woodwork-server/internal/i18n"
	"github.com/woodworkpro/woodwork-server/internal/middleware"
	"github.com/woodworkpro/woodwork-server/internal/models"
	"github.com/woodworkpro/woodwork-server/internal/services"
	"github.com/woodworkpro/woodwork-server/internal/store"
	"github.com/woodworkpro/woodwork-server/internal/validation"
)

type TemplateHandler struct {
	Store *store.Store
}

func NewTemplateHandler(st *store.Store) *TemplateHandler { return &TemplateHandler{Store: st} }

// List: GET /templates
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates := h.Store.Templates()
	httpx.JSON(w, http.StatusOK, map[string]any{"items": templates, "total": len(templates)})
}

// Create: POST /templates
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	var req struct {
		Name    string               `json:"name"`
		Door    services.Measurement `json:"door"`
		Beading services.Measurement `json:"beading"`
		Frame   services.Measurement `json:"frame"`
		Paling  services.Measurement `json:"paling"`
		Polish  services.Measurement `json:"polish"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", i18n.T(lang, "invalid_json"), nil)
		return
	}

	v := validation.Violations{}
	validation.Required("name", req.Name, v)
	validation.PositiveFloat("door", float64(req.Door), v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", i18n.T(lang, "required"), v)
		return
	}

	created, err := h.Store.AddTemplate(models.PriceTemplate{
		Name:    req.Name,
		Door:    float64(req.Door),
		Beading: float64(req.Beading),
		Frame:   float64(req.Frame),
		Paling:  float64(req.Paling),
		Polish:  float64(req.Polish),
	})
	if err == store.ErrDuplicateTemplate {
		httpx.JSONError(w, http.StatusConflict, "template_exists", i18n.T(lang, "template_exists"), nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_template", "", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}
