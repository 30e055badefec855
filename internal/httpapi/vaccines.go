package httpapi

import (
	"net/http"

	"github.com/goliatone/go-vaccination-registry/internal/models"
)

func (s *Server) handleListVaccines(w http.ResponseWriter, r *http.Request) {
	vaccines, err := s.vaccines.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vaccines)
}

func (s *Server) handleGetVaccine(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	vaccine, err := s.vaccines.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vaccine)
}

func (s *Server) handleCreateVaccine(w http.ResponseWriter, r *http.Request) {
	var req vaccineRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	in := models.VaccineInput{}
	if req.Name != nil {
		in.Name = *req.Name
	}
	vaccine, err := s.vaccines.Create(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, vaccine)
}

func (s *Server) handleUpdateVaccine(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	var req vaccineRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	vaccine, err := s.vaccines.Update(r.Context(), id, models.VaccinePatch{Name: req.Name})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vaccine)
}

func (s *Server) handleDeleteVaccine(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	if _, err := s.vaccines.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Vaccine deleted successfully"})
}
