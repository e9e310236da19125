package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/woodworkpro/woodwork-server/internal/httpx"
	"github.com/woodworkpro/woodwork-server/internal/i18n"
	"github.com/woodworkpro/woodwork-server/internal/middleware"
	"github.com/woodworkpro/woodwork-server/internal/models"
	"github.com/woodworkpro/woodwork-server/internal/store"
	"github.com/woodworkpro/woodwork-server/internal/validation"
)

type CustomerHandler struct {
	Store *store.Store
}

func NewCustomerHandler(st *store.Store) *CustomerHandler { return &CustomerHandler{Store: st} }

// List: GET /customers?q=. Filters by name or phone, case-insensitive.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers := h.Store.Customers()
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	if q != "" {
		filtered := customers[:0]
		for _, c := range customers {
			if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Phone), q) {
				filtered = append(filtered, c)
			}
		}
		customers = filtered
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": customers, "total": len(customers)})
}

// Create: POST /customers. Accepts JSON or form bodies.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	var c models.Customer
	ct := r.Header.Get("Content-Type")
	if strings.Contains(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", i18n.T(lang, "invalid_json"), nil)
			return
		}
	} else if err := r.ParseForm(); err == nil {
		c.Name = r.Form.Get("name")
		c.Phone = r.Form.Get("phone")
		c.Address = r.Form.Get("address")
	}
	c.ID = 0 // ids are always generated

	v := validation.Violations{}
	validation.Required("name", c.Name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", i18n.T(lang, "name_required"), v)
		return
	}

	created, err := h.Store.AddCustomer(c)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_customer", "", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}
