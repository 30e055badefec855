package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-vaccination-registry/internal/models"
)

func TestVaccineService_CreateThenList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.vaccines.Create(ctx, models.VaccineInput{Name: "Pfizer"})
	require.NoError(t, err)
	list, err := f.vaccines.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	created, err := f.vaccines.Create(ctx, models.VaccineInput{Name: " Coronavac "})
	require.NoError(t, err)
	assert.Equal(t, "Coronavac", created.Name)

	list, err = f.vaccines.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Coronavac", list[0].Name)
}

func TestVaccineService_ListCachedWithinTTL(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.vaccines.Create(ctx, models.VaccineInput{Name: "Pfizer"})
	require.NoError(t, err)

	_, err = f.vaccines.List(ctx)
	require.NoError(t, err)
	_, err = f.vaccines.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), f.base.lists.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CatalogHits))

	f.clock.Add(601 * time.Second)
	_, err = f.vaccines.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.base.lists.Load())
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.CatalogMisses))
}

func TestVaccineService_EmployeeViewsShareCatalog(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.employees.Create(ctx, loadEmployees(t)[0])
	require.NoError(t, err)
	vaccine, err := f.vaccines.Create(ctx, models.VaccineInput{Name: "Pfizer"})
	require.NoError(t, err)
	_, err = f.employees.AddDose(ctx, "52998224725", doseFor(vaccine.ID))
	require.NoError(t, err)

	before := f.base.lists.Load()
	for i := 0; i < 3; i++ {
		_, err = f.employees.Doses(ctx, "52998224725")
		require.NoError(t, err)
	}
	assert.Equal(t, before, f.base.lists.Load())
}

func TestVaccineService_Get(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.employees.Create(ctx, loadEmployees(t)[0])
	require.NoError(t, err)
	vaccine, err := f.vaccines.Create(ctx, models.VaccineInput{Name: "Pfizer"})
	require.NoError(t, err)
	_, err = f.employees.AddDose(ctx, "52998224725", doseFor(vaccine.ID))
	require.NoError(t, err)

	got, err := f.vaccines.Get(ctx, vaccine.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pfizer", got.Name)
	require.Len(t, got.Doses, 1)
	assert.Equal(t, "529.xxx.xxx-25", got.Doses[0].EmployeeID)

	_, err = f.vaccines.Get(ctx, 404)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, CodeVaccineNotFound, TextCode(err))
}

func TestVaccineService_Update(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	vaccine, err := f.vaccines.Create(ctx, models.VaccineInput{Name: "Pfizer"})
	require.NoError(t, err)
	_, err = f.vaccines.List(ctx)
	require.NoError(t, err)

	updated, err := f.vaccines.Update(ctx, vaccine.ID, models.VaccinePatch{Name: ptr("Comirnaty")})
	require.NoError(t, err)
	assert.Equal(t, "Comirnaty", updated.Name)

	list, err := f.vaccines.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Comirnaty", list[0].Name)

	_, err = f.vaccines.Update(ctx, vaccine.ID, models.VaccinePatch{})
	assert.Equal(t, CodeEmptyPatch, TextCode(err))

	_, err = f.vaccines.Update(ctx, 999, models.VaccinePatch{Name: ptr("X")})
	assert.True(t, IsNotFound(err))
}

func TestVaccineService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.employees.Create(ctx, loadEmployees(t)[0])
	require.NoError(t, err)
	used, err := f.vaccines.Create(ctx, models.VaccineInput{Name: "Pfizer"})
	require.NoError(t, err)
	unused, err := f.vaccines.Create(ctx, models.VaccineInput{Name: "Janssen"})
	require.NoError(t, err)
	_, err = f.employees.AddDose(ctx, "52998224725", doseFor(used.ID))
	require.NoError(t, err)

	_, err = f.vaccines.Delete(ctx, used.ID)
	assert.True(t, IsInvalidInput(err))
	assert.Equal(t, CodeVaccineInUse, TextCode(err))

	deleted, err := f.vaccines.Delete(ctx, unused.ID)
	require.NoError(t, err)
	assert.Equal(t, "Janssen", deleted.Name)

	list, err := f.vaccines.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Pfizer", list[0].Name)

	_, err = f.vaccines.Delete(ctx, unused.ID)
	assert.True(t, IsNotFound(err))
}

func TestVaccineService_CreateRejectsBlankName(t *testing.T) {
	_, err := newFixture(t).vaccines.Create(context.Background(), models.VaccineInput{Name: "  "})
	assert.True(t, IsInvalidInput(err))
	assert.Equal(t, CodeInvalidInput, TextCode(err))
}
