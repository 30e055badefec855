// Package httpapi exposes the registry over HTTP with a chi router.
package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-vaccination-registry/internal/metrics"
	"github.com/goliatone/go-vaccination-registry/internal/models"
	"github.com/goliatone/go-vaccination-registry/internal/service"
)

// EmployeeService is the employee use case surface the handlers call.
type EmployeeService interface {
	List(ctx context.Context) ([]service.EmployeeView, error)
	Get(ctx context.Context, token string) (service.EmployeeView, error)
	Create(ctx context.Context, in models.EmployeeInput) (service.EmployeeView, error)
	Update(ctx context.Context, token string, patch models.EmployeePatch) (service.EmployeeView, error)
	Delete(ctx context.Context, token string) (service.EmployeeView, error)
	Doses(ctx context.Context, token string) ([]service.DoseView, error)
	AddDose(ctx context.Context, token string, in models.DoseInput) (service.EmployeeView, error)
	DeleteDose(ctx context.Context, token string, doseID int64) (service.DoseView, error)
	NonVaccinatedReport(ctx context.Context) ([]service.NonVaccinatedView, error)
}

// VaccineService is the catalog use case surface the handlers call.
type VaccineService interface {
	List(ctx context.Context) ([]service.VaccineView, error)
	Get(ctx context.Context, id int64) (service.VaccineView, error)
	Create(ctx context.Context, in models.VaccineInput) (service.VaccineView, error)
	Update(ctx context.Context, id int64, patch models.VaccinePatch) (service.VaccineView, error)
	Delete(ctx context.Context, id int64) (service.VaccineView, error)
}

type Dependencies struct {
	Logger    *slog.Logger
	Addr      string
	Employees EmployeeService
	Vaccines  VaccineService
	// Metrics and Gatherer are optional. Without a Gatherer /metrics is not mounted.
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	// RequestTimeout bounds each request. Zero uses 30s.
	RequestTimeout time.Duration
}

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	employees  EmployeeService
	vaccines   VaccineService
}

func NewServer(d Dependencies) *Server {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	timeout := d.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	s := &Server{
		logger:    logger,
		employees: d.Employees,
		vaccines:  d.Vaccines,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger, d.Metrics))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/employees", func(r chi.Router) {
		r.Get("/", s.handleListEmployees)
		r.Post("/", s.handleCreateEmployee)
		r.Get("/report/non-vaccinated", s.handleNonVaccinatedReport)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetEmployee)
			r.Patch("/", s.handleUpdateEmployee)
			r.Delete("/", s.handleDeleteEmployee)
			r.Get("/doses", s.handleEmployeeDoses)
			r.Post("/dose", s.handleAddDose)
			r.Delete("/dose/{doseId}", s.handleDeleteDose)
		})
	})

	r.Route("/vaccines", func(r chi.Router) {
		r.Get("/", s.handleListVaccines)
		r.Post("/", s.handleCreateVaccine)
		r.Get("/{id}", s.handleGetVaccine)
		r.Patch("/{id}", s.handleUpdateVaccine)
		r.Delete("/{id}", s.handleDeleteVaccine)
	})

	s.httpServer = &http.Server{
		Addr:              d.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Start blocks serving until Shutdown. It returns http.ErrServerClosed after
// a clean shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
