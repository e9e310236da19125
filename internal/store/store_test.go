package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/woodworkpro/woodwork-server/internal/models"
	"github.com/woodworkpro/woodwork-server/internal/services"
)

func setupStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbConn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&models.Customer{}, &models.PriceTemplate{}, &models.Job{}, &models.Door{}, &models.BrandingSettings{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	st, err := New(dbConn)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return st, dbConn
}

func draftWith(doors ...services.DoorMeasurements) JobDraft {
	return JobDraft{Prices: services.DefaultPrices(), Doors: doors}
}

func TestAddCustomer(t *testing.T) {
	st, dbConn := setupStore(t)

	_, err := st.AddCustomer(models.Customer{Name: "   "})
	assert.ErrorIs(t, err, ErrNameRequired)

	c, err := st.AddCustomer(models.Customer{Name: "Ali", Phone: "0300", Address: "X"})
	require.NoError(t, err)
	assert.NotZero(t, c.ID)

	// write-through: the row is durable before the action returns
	var count int64
	dbConn.Model(&models.Customer{}).Count(&count)
	assert.EqualValues(t, 1, count)
	assert.Len(t, st.Customers(), 1)
}

func TestAddTemplateUniqueName(t *testing.T) {
	st, _ := setupStore(t)

	_, err := st.AddTemplate(models.PriceTemplate{Name: "Standard", Door: 300})
	require.NoError(t, err)
	_, err = st.AddTemplate(models.PriceTemplate{Name: "Standard", Door: 999})
	assert.ErrorIs(t, err, ErrDuplicateTemplate)
	assert.Len(t, st.Templates(), 1)
}

func TestAddTemplateClampsNegativePrices(t *testing.T) {
	st, _ := setupStore(t)
	tpl, err := st.AddTemplate(models.PriceTemplate{Name: "Odd", Door: -5, Beading: 10})
	require.NoError(t, err)
	assert.Equal(t, 0.0, tpl.Door)
	assert.Equal(t, 10.0, tpl.Beading)
}

func TestSaveJobRejectsAllZero(t *testing.T) {
	st, dbConn := setupStore(t)

	_, err := st.SaveJob(draftWith(services.DoorMeasurements{}, services.DoorMeasurements{}))
	assert.ErrorIs(t, err, ErrEmptyJob)

	var count int64
	dbConn.Model(&models.Job{}).Count(&count)
	assert.EqualValues(t, 0, count)
	assert.Empty(t, st.Jobs())
}

func TestSaveJobEndToEnd(t *testing.T) {
	st, _ := setupStore(t)

	cust, err := st.AddCustomer(models.Customer{Name: "Ali", Phone: "0300", Address: "X"})
	require.NoError(t, err)

	draft := draftWith(services.DoorMeasurements{Area: 10, Beading: 5})
	draft.CustomerID = &cust.ID
	job, err := st.SaveJob(draft)
	require.NoError(t, err)
	require.NotNil(t, job)

	require.Len(t, job.Doors, 1)
	assert.Equal(t, 3500.0, job.Doors[0].Subtotal)
	assert.Equal(t, 3500.0, job.GrandTotal)
	assert.Equal(t, &cust.ID, job.CustomerID)
	assert.NotEmpty(t, job.Title) // untitled fallback kicks in
}

func TestSaveJobTwoDoorsOneZero(t *testing.T) {
	st, _ := setupStore(t)

	job, err := st.SaveJob(draftWith(services.DoorMeasurements{}, services.DoorMeasurements{Area: 4}))
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, 1200.0, job.GrandTotal)
}

func TestSaveJobFreezesTemplatePrices(t *testing.T) {
	st, _ := setupStore(t)

	tpl, err := st.AddTemplate(models.PriceTemplate{Name: "T", Door: 400, Beading: 120, Frame: 60, Paling: 70, Polish: 110})
	require.NoError(t, err)

	draft := draftWith(services.DoorMeasurements{Area: 2, Beading: 1, Frame: 1, Paling: 1, Polish: 1})
	draft.Title = "Frozen"
	draft.Prices = services.ApplyTemplate(tpl)
	job, err := st.SaveJob(draft)
	require.NoError(t, err)

	// later template additions must not affect the saved job
	_, err = st.AddTemplate(models.PriceTemplate{Name: "T2", Door: 9999})
	require.NoError(t, err)

	saved, ok := st.Job(job.ID)
	require.True(t, ok)
	d := saved.Doors[0]
	assert.Equal(t, 400.0, d.AreaPrice)
	assert.Equal(t, 120.0, d.BeadingPrice)
	assert.Equal(t, 60.0, d.FramePrice)
	assert.Equal(t, 70.0, d.PalingPrice)
	assert.Equal(t, 110.0, d.PolishPrice)
}

func TestUpdateJobReplacesDoors(t *testing.T) {
	st, dbConn := setupStore(t)

	job, err := st.SaveJob(draftWith(services.DoorMeasurements{Area: 4}, services.DoorMeasurements{Beading: 2}))
	require.NoError(t, err)
	created := job.Date

	update := draftWith(services.DoorMeasurements{Area: 1})
	update.ID = job.ID
	update.Title = "Edited"
	updated, err := st.SaveJob(update)
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "Edited", updated.Title)
	assert.Equal(t, 300.0, updated.GrandTotal)
	require.Len(t, updated.Doors, 1)
	// creation date survives an edit
	assert.True(t, updated.Date.Equal(created))

	// old door rows are gone from the database
	var doorCount int64
	dbConn.Model(&models.Door{}).Where("job_id = ?", job.ID).Count(&doorCount)
	assert.EqualValues(t, 1, doorCount)
}

func TestUpdateJobUnknownIDIsNoop(t *testing.T) {
	st, _ := setupStore(t)

	_, err := st.SaveJob(draftWith(services.DoorMeasurements{Area: 4}))
	require.NoError(t, err)
	before := st.Jobs()

	update := draftWith(services.DoorMeasurements{Area: 99})
	update.ID = 424242
	job, err := st.SaveJob(update)
	require.NoError(t, err)
	assert.Nil(t, job)
	assert.Equal(t, before, st.Jobs())
}

func TestDeleteJob(t *testing.T) {
	st, dbConn := setupStore(t)

	job, err := st.SaveJob(draftWith(services.DoorMeasurements{Area: 4}))
	require.NoError(t, err)

	// deleting a non-existent id leaves the list unchanged
	require.NoError(t, st.DeleteJob(999))
	assert.Len(t, st.Jobs(), 1)

	require.NoError(t, st.DeleteJob(job.ID))
	assert.Empty(t, st.Jobs())
	var count int64
	dbConn.Model(&models.Door{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestUpdateBrandingShallowMerge(t *testing.T) {
	st, _ := setupStore(t)

	b := st.Branding()
	assert.Equal(t, models.DefaultBrandName, b.BrandName)

	name := "Karim Doors"
	updated, err := st.UpdateBranding(BrandingPatch{BrandName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Karim Doors", updated.BrandName)
	// untouched fields keep their values
	assert.Equal(t, models.DefaultCompanyInfo, updated.CompanyInfo)
	assert.Equal(t, models.DefaultLanguage, updated.Language)
}

func TestSetLanguage(t *testing.T) {
	st, _ := setupStore(t)

	assert.ErrorIs(t, st.SetLanguage("fr"), ErrUnknownLanguage)
	require.NoError(t, st.SetLanguage("ur"))
	assert.Equal(t, "ur", st.Branding().Language)
}

func TestSnapshotSurvivesReload(t *testing.T) {
	st, dbConn := setupStore(t)

	_, err := st.AddCustomer(models.Customer{Name: "Ali"})
	require.NoError(t, err)
	_, err = st.SaveJob(draftWith(services.DoorMeasurements{Area: 2}))
	require.NoError(t, err)

	// a second store over the same database sees identical state
	st2, err := New(dbConn)
	require.NoError(t, err)
	assert.Len(t, st2.Customers(), 1)
	require.Len(t, st2.Jobs(), 1)
	assert.Equal(t, st.Jobs()[0].GrandTotal, st2.Jobs()[0].GrandTotal)
}
