package handlers

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/woodworkpro/woodwork-server/internal/httpx"
	"github.com/woodworkpro/woodwork-server/internal/i18n"
	"github.com/woodworkpro/woodwork-server/internal/middleware"
	"github.com/woodworkpro/woodwork-server/internal/models"
	"github.com/woodworkpro/woodwork-server/internal/pdf"
	"github.com/woodworkpro/woodwork-server/internal/services"
	"github.com/woodworkpro/woodwork-server/internal/store"
	"github.com/woodworkpro/woodwork-server/internal/view"
)

// InvoiceHandler exports saved jobs as printable invoices.
type InvoiceHandler struct {
	Store     *store.Store
	Svc       *services.InvoiceService
	ExportDir string
}

func NewInvoiceHandler(st *store.Store, svc *services.InvoiceService, exportDir string) *InvoiceHandler {
	return &InvoiceHandler{Store: st, Svc: svc, ExportDir: exportDir}
}

// Export: GET /jobs/{id}/invoice?format=html|pdf
//
// The document is built strictly from persisted fields, so the export always
// matches what was saved. A copy of the artifact is kept under the export
// dir; failing to keep the copy never fails the request.
func (h *InvoiceHandler) Export(w http.ResponseWriter, r *http.Request) {
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
	var customer *models.Customer
	if job.CustomerID != nil {
		if c, ok := h.Store.Customer(*job.CustomerID); ok {
			customer = &c
		}
	}
	doc := h.Svc.BuildInvoice(job, customer, h.Store.Branding(), lang)

	switch r.URL.Query().Get("format") {
	case "pdf":
		out, err := pdf.Render(doc)
		if err != nil {
			log.WithError(err).Error("invoice pdf render failed")
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_render_invoice", "", nil)
			return
		}
		h.keepArtifact(out, ".pdf")
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="invoice.pdf"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out)
	default:
		var buf bytes.Buffer
		if err := view.Render(&buf, lang, "invoice.html", doc); err != nil {
			log.WithError(err).Error("invoice html render failed")
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_render_invoice", "", nil)
			return
		}
		h.keepArtifact(buf.Bytes(), ".html")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

func (h *InvoiceHandler) keepArtifact(content []byte, ext string) {
	if h.ExportDir == "" {
		return
	}
	if err := os.MkdirAll(h.ExportDir, 0o755); err != nil {
		log.WithError(err).Warn("could not create export dir")
		return
	}
	path := filepath.Join(h.ExportDir, uuid.NewString()+ext)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		log.WithError(err).Warn("could not keep invoice artifact")
	}
}
