package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/woodworkpro/woodwork-server/internal/models"
	"github.com/woodworkpro/woodwork-server/internal/services"
	"github.com/woodworkpro/woodwork-server/internal/store"
)

// newTestMux wires every handler onto a mux the way the server does, against
// a fresh in-memory database.
func newTestMux(t *testing.T) (*http.ServeMux, *store.Store) {
	t.Helper()
	dsn := fmt.Sprintf("file:h_%s?mode=memory&cache=shared", t.Name())
	dbConn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(
		&models.Customer{}, &models.PriceTemplate{}, &models.Job{}, &models.Door{}, &models.BrandingSettings{},
	))
	st, err := store.New(dbConn)
	require.NoError(t, err)

	mux := http.NewServeMux()
	ch := NewCustomerHandler(st)
	mux.HandleFunc("GET /customers", ch.List)
	mux.HandleFunc("POST /customers", ch.Create)
	jh := NewJobHandler(st)
	mux.HandleFunc("GET /jobs", jh.List)
	mux.HandleFunc("POST /jobs", jh.Create)
	mux.HandleFunc("GET /jobs/{id}", jh.Get)
	mux.HandleFunc("PUT /jobs/{id}", jh.Update)
	mux.HandleFunc("DELETE /jobs/{id}", jh.Delete)
	ih := NewInvoiceHandler(st, services.NewInvoiceService(), t.TempDir())
	mux.HandleFunc("GET /jobs/{id}/invoice", ih.Export)
	th := NewTemplateHandler(st)
	mux.HandleFunc("GET /templates", th.List)
	mux.HandleFunc("POST /templates", th.Create)
	bh := NewBrandingHandler(st, t.TempDir())
	mux.HandleFunc("GET /branding", bh.Get)
	mux.HandleFunc("PUT /branding", bh.Update)
	mux.HandleFunc("POST /branding/logo", bh.UploadLogo)
	mux.HandleFunc("PUT /language", bh.SetLanguage)
	ah := NewAnalyticsHandler(st)
	mux.HandleFunc("GET /analytics", ah.Summary)
	return mux, st
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func doRaw(t *testing.T, mux *http.ServeMux, method, path, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func jobDraft(title string) store.JobDraft {
	return store.JobDraft{
		Title:  title,
		Prices: services.DefaultPrices(),
		Doors:  []services.DoorMeasurements{{Area: 2}},
	}
}

func seedJob(t *testing.T, st *store.Store) *models.Job {
	t.Helper()
	job, err := st.SaveJob(jobDraft("Seeded"))
	require.NoError(t, err)
	require.NotNil(t, job)
	return job
}

func jobPath(id uint) string {
	return fmt.Sprintf("/jobs/%d", id)
}
