package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/woodworkpro/woodwork-server/internal/config"
	"github.com/woodworkpro/woodwork-server/internal/i18n"
	"github.com/woodworkpro/woodwork-server/internal/models"
	"github.com/woodworkpro/woodwork-server/internal/services"
	"github.com/woodworkpro/woodwork-server/internal/store"
)

func testHandler(t *testing.T) (http.Handler, *store.Store) {
	t.Helper()
	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", t.Name())
	dbConn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(
		&models.Customer{}, &models.PriceTemplate{}, &models.Job{}, &models.Door{}, &models.BrandingSettings{},
	))
	st, err := store.New(dbConn)
	require.NoError(t, err)
	cfg := config.Config{DataDir: t.TempDir()}
	return New(st, cfg), st
}

func get(h http.Handler, path string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	h, _ := testHandler(t)

	rec := get(h, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)

	rec = get(h, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	h, _ := testHandler(t)
	rec := get(h, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLanguageResolution(t *testing.T) {
	h, st := testHandler(t)
	job, err := st.SaveJob(store.JobDraft{
		Title:  "Doors",
		Prices: services.DefaultPrices(),
		Doors:  []services.DoorMeasurements{{Area: 2}},
	})
	require.NoError(t, err)
	path := fmt.Sprintf("/jobs/%d/invoice", job.ID)

	// default stored language is en
	rec := get(h, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), i18n.T("en", "invoice"))

	// explicit query parameter wins over everything
	rec = get(h, path+"?lang=ur", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), i18n.T("ur", "invoice"))

	// stored preference beats the Accept-Language header
	require.NoError(t, st.SetLanguage("ur"))
	rec = get(h, path, map[string]string{"Accept-Language": "en-US,en;q=0.9"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), i18n.T("ur", "invoice"))
}
