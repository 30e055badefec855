package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/viccon/sturdyc"

	"github.com/goliatone/go-vaccination-registry/cache"
	"github.com/goliatone/go-vaccination-registry/internal/metrics"
	"github.com/goliatone/go-vaccination-registry/internal/models"
	"github.com/goliatone/go-vaccination-registry/internal/store"
	"github.com/goliatone/go-vaccination-registry/internal/store/bunstore"
	"github.com/goliatone/go-vaccination-registry/pkg/testsupport"
	"github.com/goliatone/go-vaccination-registry/repositorycache"
)

// countingVaccineStore counts catalog reads reaching storage.
type countingVaccineStore struct {
	store.VaccineStore
	lists atomic.Int32
}

func (c *countingVaccineStore) ListVaccines(ctx context.Context) ([]*models.Vaccine, error) {
	c.lists.Add(1)
	return c.VaccineStore.ListVaccines(ctx)
}

type fixture struct {
	employees *EmployeeService
	vaccines  *VaccineService
	base      *countingVaccineStore
	clock     *sturdyc.TestClock
	metrics   *metrics.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s := bunstore.New(testsupport.OpenTestDB(t))
	base := &countingVaccineStore{VaccineStore: s}

	clock := sturdyc.NewTestClock(time.Now())
	cfg := cache.DefaultConfig().WithTTL(600 * time.Second)
	cfg.Clock = clock
	svc, err := cache.NewCacheService(cfg)
	require.NoError(t, err)

	m := metrics.New(prometheus.NewRegistry())
	cached := repositorycache.New(base, svc, cache.NewKeySerializer("vaccines"), repositorycache.WithRecorder(m))

	return &fixture{
		employees: NewEmployeeService(s, cached, WithMetrics(m)),
		vaccines:  NewVaccineService(cached, WithMetrics(m)),
		base:      base,
		clock:     clock,
		metrics:   m,
	}
}

type employeeFixture struct {
	Document       string    `json:"document"`
	FullName       string    `json:"fullName"`
	BirthDate      time.Time `json:"birthDate"`
	HasComorbidity bool      `json:"hasComorbidity"`
}

func loadEmployees(t *testing.T) []models.EmployeeInput {
	t.Helper()
	var rows []employeeFixture
	testsupport.LoadFixtureJSON(t, testsupport.FixturePath("employees.json"), &rows)

	out := make([]models.EmployeeInput, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.EmployeeInput{
			Document:       r.Document,
			FullName:       r.FullName,
			BirthDate:      r.BirthDate,
			HasComorbidity: r.HasComorbidity,
		})
	}
	return out
}

func doseFor(vaccineID int64) models.DoseInput {
	return models.DoseInput{
		VaccineID:        vaccineID,
		DateAdministered: time.Date(2023, 4, 10, 0, 0, 0, 0, time.UTC),
		Batch:            "FF8841",
		ExpirationDate:   time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC),
	}
}

func ptr[T any](v T) *T { return &v }
