package handlers

import (
	"net/http"

	"github.com/woodworkpro/woodwork-server/internal/httpx"
	"github.com/woodworkpro/woodwork-server/internal/services"
	"github.com/woodworkpro/woodwork-server/internal/store"
)

type AnalyticsHandler struct {
	Store *store.Store
}

func NewAnalyticsHandler(st *store.Store) *AnalyticsHandler { return &AnalyticsHandler{Store: st} }

// Summary: GET /analytics. Totals, revenue by month, material usage.
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, services.Summarize(h.Store.Jobs()))
}
