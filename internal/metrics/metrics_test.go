package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.CatalogMiss()
	m.CatalogHit()
	m.CatalogHit()
	m.CatalogInvalidated()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CatalogHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogMisses))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogInvalidations))
}

func TestDomainCounters(t *testing.T) {
	m := New(nil)

	m.IncrementEmployeesCreated()
	m.IncrementDosesRecorded()
	m.IncrementDosesRecorded()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmployeesCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DosesRecorded))
}

func TestObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRequest(http.MethodGet, "/vaccines", http.StatusOK, time.Now())

	count, err := testutil.GatherAndCount(reg, "vaccination_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNew_RegistersOncePerRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	assert.Panics(t, func() { New(reg) })
}
