package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/goliatone/go-vaccination-registry/internal/service"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// writeServiceError picks the status from the error category. Internal
// failures are logged and answered with a generic message.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case service.IsNotFound(err):
		writeError(w, http.StatusNotFound, service.TextCode(err), errorMessage(err))
	case service.IsInvalidInput(err):
		writeError(w, http.StatusBadRequest, service.TextCode(err), errorMessage(err))
	default:
		s.logger.ErrorContext(r.Context(), "request failed", "route", routePattern(r), "error", err)
		writeError(w, http.StatusInternalServerError, service.CodeInternal, "unexpected server error")
	}
}
