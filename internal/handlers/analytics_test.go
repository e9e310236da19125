package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woodworkpro/woodwork-server/internal/services"
	"github.com/woodworkpro/woodwork-server/internal/store"
)

func TestAnalyticsSummary(t *testing.T) {
	mux, st := newTestMux(t)

	_, err := st.SaveJob(store.JobDraft{
		Title:  "Doors",
		Prices: services.DefaultPrices(),
		Doors:  []services.DoorMeasurements{{Area: 10, Beading: 5}},
	})
	require.NoError(t, err)

	rec := doJSON(t, mux, http.MethodGet, "/analytics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var sum services.Summary
	decode(t, rec, &sum)
	assert.Equal(t, 1, sum.TotalJobs)
	assert.Equal(t, 3500.0, sum.TotalRevenue)
	require.Len(t, sum.RevenueByMonth, 1)
	assert.Equal(t, 10.0, sum.Materials.Area)
}
