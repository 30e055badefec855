package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registry.
// Tracks catalog cache traffic, domain writes and request durations.
type Metrics struct {
	CatalogHits          prometheus.Counter
	CatalogMisses        prometheus.Counter
	CatalogInvalidations prometheus.Counter
	EmployeesCreated     prometheus.Counter
	DosesRecorded        prometheus.Counter
	RequestDuration      *prometheus.HistogramVec
}

// New creates a Metrics instance with every collector registered on reg.
// A nil reg uses a fresh private registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		CatalogHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "vaccination_catalog_cache_hits_total",
			Help: "Vaccine catalog reads served from the cache",
		}),
		CatalogMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "vaccination_catalog_cache_misses_total",
			Help: "Vaccine catalog reads that went to storage",
		}),
		CatalogInvalidations: factory.NewCounter(prometheus.CounterOpts{
			Name: "vaccination_catalog_cache_invalidations_total",
			Help: "Vaccine catalog invalidations after writes",
		}),
		EmployeesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "vaccination_employees_created_total",
			Help: "Total number of employees created",
		}),
		DosesRecorded: factory.NewCounter(prometheus.CounterOpts{
			Name: "vaccination_doses_recorded_total",
			Help: "Total number of doses recorded",
		}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vaccination_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route pattern and status",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) CatalogHit()         { m.CatalogHits.Inc() }
func (m *Metrics) CatalogMiss()        { m.CatalogMisses.Inc() }
func (m *Metrics) CatalogInvalidated() { m.CatalogInvalidations.Inc() }

// IncrementEmployeesCreated records a successful employee creation.
func (m *Metrics) IncrementEmployeesCreated() {
	m.EmployeesCreated.Inc()
}

// IncrementDosesRecorded records a successful dose creation.
func (m *Metrics) IncrementDosesRecorded() {
	m.DosesRecorded.Inc()
}

// ObserveRequest records the duration of one request.
// Call with time.Now() taken when the request arrived.
func (m *Metrics) ObserveRequest(method, route string, status int, start time.Time) {
	m.RequestDuration.
		WithLabelValues(method, route, strconv.Itoa(status)).
		Observe(time.Since(start).Seconds())
}
