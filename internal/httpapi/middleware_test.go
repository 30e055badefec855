package httpapi

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/goliatone/go-vaccination-registry/internal/metrics"
)

func newLoggedRouter(buf *bytes.Buffer, m *metrics.Metrics) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(buf, nil))
	s := &Server{logger: logger}

	r := chi.NewRouter()
	r.Use(requestLogger(logger, m))
	r.Get("/employees/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"ok": "yes"})
	})
	r.Delete("/employees/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.writeServiceError(w, r, errors.New("disk on fire"))
	})
	return r
}

func TestRequestLogger_LogsRoutePatternOnly(t *testing.T) {
	var buf bytes.Buffer
	reg := prometheus.NewRegistry()
	router := newLoggedRouter(&buf, metrics.New(reg))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees/52998224725", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/employees/52998224725", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	out := buf.String()
	assert.Contains(t, out, "route=/employees/{id}")
	assert.NotContains(t, out, "52998224725")

	n, err := testutil.GatherAndCount(reg, "vaccination_http_request_duration_seconds")
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRequestLogger_UnmatchedRoute(t *testing.T) {
	var buf bytes.Buffer
	router := newLoggedRouter(&buf, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope/52998224725", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, buf.String(), "route=unmatched")
	assert.NotContains(t, buf.String(), "52998224725")
}
