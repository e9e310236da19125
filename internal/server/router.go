package server

import (
	"net/http"

	"github.com/woodworkpro/woodwork-server/internal/config"
	"github.com/woodworkpro/woodwork-server/internal/handlers"
	"github.com/woodworkpro/woodwork-server/internal/httpx"
	"github.com/woodworkpro/woodwork-server/internal/middleware"
	"github.com/woodworkpro/woodwork-server/internal/services"
	"github.com/woodworkpro/woodwork-server/internal/store"
)

// New constructs the root http.Handler with all routes and the language
// middleware applied.
func New(st *store.Store, cfg config.Config) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		// lightweight DB check; detailed errors stay out of the body
		if err := st.Ping(); err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	ch := handlers.NewCustomerHandler(st)
	mux.HandleFunc("GET /customers", ch.List)
	mux.HandleFunc("POST /customers", ch.Create)

	jh := handlers.NewJobHandler(st)
	mux.HandleFunc("GET /jobs", jh.List)
	mux.HandleFunc("POST /jobs", jh.Create)
	mux.HandleFunc("GET /jobs/{id}", jh.Get)
	mux.HandleFunc("PUT /jobs/{id}", jh.Update)
	mux.HandleFunc("DELETE /jobs/{id}", jh.Delete)

	ih := handlers.NewInvoiceHandler(st, services.NewInvoiceService(), cfg.ExportDir())
	mux.HandleFunc("GET /jobs/{id}/invoice", ih.Export)

	th := handlers.NewTemplateHandler(st)
	mux.HandleFunc("GET /templates", th.List)
	mux.HandleFunc("POST /templates", th.Create)

	bh := handlers.NewBrandingHandler(st, cfg.LogoDir())
	mux.HandleFunc("GET /branding", bh.Get)
	mux.HandleFunc("PUT /branding", bh.Update)
	mux.HandleFunc("POST /branding/logo", bh.UploadLogo)
	mux.HandleFunc("PUT /language", bh.SetLanguage)

	ah := handlers.NewAnalyticsHandler(st)
	mux.HandleFunc("GET /analytics", ah.Summary)

	lang := middleware.Language(func() string { return st.Branding().Language })
	return lang(mux)
}
