// Package store defines the storage gateway the services depend on.
package store

import (
	"context"
	"errors"

	"github.com/goliatone/go-vaccination-registry/internal/models"
)

// Sentinel errors for storage facts. Implementations return these, optionally
// wrapped, so services can translate them without inspecting driver errors.
var (
	ErrNotFound = errors.New("record not found")
	// ErrConflict reports a unique constraint violation.
	ErrConflict = errors.New("record already exists")
	// ErrReferenced reports a write rejected because other records point at
	// the target, or because a referenced record does not exist.
	ErrReferenced = errors.New("record is referenced")
)

// EmployeeStore persists employees and their doses.
type EmployeeStore interface {
	// FindEmployee returns the employee whose document or secondary id
	// equals token, with doses loaded. Both keys are matched in one query.
	FindEmployee(ctx context.Context, token string) (*models.Employee, error)
	// ListEmployees returns every employee with doses, most recently updated first.
	ListEmployees(ctx context.Context) ([]*models.Employee, error)
	CreateEmployee(ctx context.Context, in models.EmployeeInput) (*models.Employee, error)
	// UpdateEmployee and DeleteEmployee are keyed on the document only.
	UpdateEmployee(ctx context.Context, document string, patch models.EmployeePatch) (*models.Employee, error)
	DeleteEmployee(ctx context.Context, document string) (*models.Employee, error)
	CreateDose(ctx context.Context, document string, in models.DoseInput) (*models.Dose, error)
	// DeleteDose removes doseID only if it belongs to document.
	DeleteDose(ctx context.Context, document string, doseID int64) (*models.Dose, error)
	ListEmployeesWithNoDoses(ctx context.Context) ([]models.NonVaccinated, error)
}

// VaccineStore persists the vaccine catalog.
type VaccineStore interface {
	// ListVaccines returns the catalog ordered by last update, newest first.
	ListVaccines(ctx context.Context) ([]*models.Vaccine, error)
	GetVaccine(ctx context.Context, id int64) (*models.Vaccine, error)
	CreateVaccine(ctx context.Context, in models.VaccineInput) (*models.Vaccine, error)
	UpdateVaccine(ctx context.Context, id int64, patch models.VaccinePatch) (*models.Vaccine, error)
	DeleteVaccine(ctx context.Context, id int64) (*models.Vaccine, error)
}
