package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := s.employees.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, employees)
}

func (s *Server) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := s.employees.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, employee)
}

func (s *Server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	employee, err := s.employees.Create(r.Context(), req.input())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, employee)
}

func (s *Server) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	patch, err := decodeEmployeePatch(w, r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	employee, err := s.employees.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, employee)
}

func (s *Server) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if _, err := s.employees.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Employee deleted successfully"})
}

func (s *Server) handleEmployeeDoses(w http.ResponseWriter, r *http.Request) {
	doses, err := s.employees.Doses(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doses)
}

func (s *Server) handleAddDose(w http.ResponseWriter, r *http.Request) {
	var req doseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	employee, err := s.employees.AddDose(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, employee)
}

func (s *Server) handleDeleteDose(w http.ResponseWriter, r *http.Request) {
	doseID, err := pathInt(r, "doseId")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	if _, err := s.employees.DeleteDose(r.Context(), chi.URLParam(r, "id"), doseID); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Dose deleted successfully"})
}

func (s *Server) handleNonVaccinatedReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.employees.NonVaccinatedReport(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
