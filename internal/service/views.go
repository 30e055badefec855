package service

import (
	"time"

	"github.com/goliatone/go-vaccination-registry/internal/models"
	"github.com/goliatone/go-vaccination-registry/pkg/document"
)

// Views are the only shapes that leave the service layer. Every document
// in them has been passed through document.Anonymize exactly once.

type EmployeeView struct {
	Document       string     `json:"document"`
	UUID           string     `json:"uuid"`
	FullName       string     `json:"fullName"`
	BirthDate      time.Time  `json:"birthDate"`
	HasComorbidity bool       `json:"hasComorbidity"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	Doses          []DoseView `json:"doses"`
}

type DoseView struct {
	ID               int64        `json:"id"`
	EmployeeID       string       `json:"employeeId"`
	VaccineID        int64        `json:"vaccineId"`
	DateAdministered time.Time    `json:"dateAdministered"`
	Batch            string       `json:"batch"`
	ExpirationDate   time.Time    `json:"expirationDate"`
	Vaccine          *VaccineView `json:"vaccine,omitempty"`
}

type VaccineView struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Doses     []DoseView `json:"doses,omitempty"`
}

type NonVaccinatedView struct {
	Document string `json:"document"`
	FullName string `json:"fullName"`
}

// catalog indexes the cached vaccine list by id.
type catalog map[int64]*models.Vaccine

func newCatalog(vaccines []*models.Vaccine) catalog {
	c := make(catalog, len(vaccines))
	for _, v := range vaccines {
		c[v.ID] = v
	}
	return c
}

func newEmployeeView(e *models.Employee, vaccines catalog) EmployeeView {
	return EmployeeView{
		Document:       document.Anonymize(e.Document),
		UUID:           e.SecondaryID,
		FullName:       e.FullName,
		BirthDate:      e.BirthDate,
		HasComorbidity: e.HasComorbidity,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
		Doses:          newDoseViews(e.Doses, vaccines),
	}
}

func newDoseViews(doses []*models.Dose, vaccines catalog) []DoseView {
	out := make([]DoseView, 0, len(doses))
	for _, d := range doses {
		out = append(out, newDoseView(d, vaccines))
	}
	return out
}

// newDoseView attaches the vaccine loaded with the dose, falling back to the
// catalog. A nil catalog leaves Vaccine empty.
func newDoseView(d *models.Dose, vaccines catalog) DoseView {
	view := DoseView{
		ID:               d.ID,
		EmployeeID:       document.Anonymize(d.EmployeeDocument),
		VaccineID:        d.VaccineID,
		DateAdministered: d.DateAdministered,
		Batch:            d.Batch,
		ExpirationDate:   d.ExpirationDate,
	}

	v := d.Vaccine
	if v == nil {
		v = vaccines[d.VaccineID]
	}
	if v != nil {
		vv := newVaccineView(v, false)
		view.Vaccine = &vv
	}
	return view
}

func newVaccineView(v *models.Vaccine, withDoses bool) VaccineView {
	view := VaccineView{
		ID:        v.ID,
		Name:      v.Name,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
	if withDoses {
		view.Doses = newDoseViews(v.Doses, nil)
	}
	return view
}

func newVaccineViews(vaccines []*models.Vaccine) []VaccineView {
	out := make([]VaccineView, 0, len(vaccines))
	for _, v := range vaccines {
		out = append(out, newVaccineView(v, false))
	}
	return out
}

func newNonVaccinatedViews(rows []models.NonVaccinated) []NonVaccinatedView {
	out := make([]NonVaccinatedView, 0, len(rows))
	for _, r := range rows {
		out = append(out, NonVaccinatedView{
			Document: document.Anonymize(r.Document),
			FullName: r.FullName,
		})
	}
	return out
}
