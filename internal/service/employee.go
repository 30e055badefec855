package service

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/goliatone/go-vaccination-registry/internal/models"
	"github.com/goliatone/go-vaccination-registry/internal/store"
)

// EmployeeService manages employees and their doses.
type EmployeeService struct {
	employees store.EmployeeStore
	vaccines  store.VaccineStore
	deps
}

// NewEmployeeService wires the service. vaccines should be the cached
// catalog store; it is only used to attach vaccines to dose views.
func NewEmployeeService(employees store.EmployeeStore, vaccines store.VaccineStore, opts ...Option) *EmployeeService {
	return &EmployeeService{
		employees: employees,
		vaccines:  vaccines,
		deps:      newDeps(opts),
	}
}

func (s *EmployeeService) List(ctx context.Context) (_ []EmployeeView, err error) {
	ctx, span := s.start(ctx, "EmployeeService.List")
	defer func() { end(span, err) }()

	employees, err := s.employees.ListEmployees(ctx)
	if err != nil {
		return nil, s.internal(ctx, err, "list employees")
	}
	vaccines, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]EmployeeView, 0, len(employees))
	for _, e := range employees {
		out = append(out, newEmployeeView(e, vaccines))
	}
	return out, nil
}

// Get resolves token as a document or a secondary id.
func (s *EmployeeService) Get(ctx context.Context, token string) (_ EmployeeView, err error) {
	ctx, span := s.start(ctx, "EmployeeService.Get")
	defer func() { end(span, err) }()

	emp, err := s.resolve(ctx, token)
	if err != nil {
		return EmployeeView{}, err
	}
	return s.view(ctx, emp)
}

func (s *EmployeeService) Create(ctx context.Context, in models.EmployeeInput) (_ EmployeeView, err error) {
	ctx, span := s.start(ctx, "EmployeeService.Create")
	defer func() { end(span, err) }()

	if err := in.Validate(); err != nil {
		return EmployeeView{}, validationFailed(err, "employee")
	}

	emp, err := s.employees.CreateEmployee(ctx, in.Normalized())
	switch {
	case errors.Is(err, store.ErrConflict):
		return EmployeeView{}, wrapInvalid(err, CodeDuplicateDocument, "an employee with this document already exists")
	case err != nil:
		return EmployeeView{}, s.internal(ctx, err, "create employee")
	}

	if s.metrics != nil {
		s.metrics.IncrementEmployeesCreated()
	}
	s.logger.InfoContext(ctx, "employee created", "uuid", emp.SecondaryID)
	return newEmployeeView(emp, nil), nil
}

// Update applies patch to the employee addressed by token. A patch that
// carries a document, even an unchanged one, is rejected.
func (s *EmployeeService) Update(ctx context.Context, token string, patch models.EmployeePatch) (_ EmployeeView, err error) {
	ctx, span := s.start(ctx, "EmployeeService.Update")
	defer func() { end(span, err) }()

	if patch.Document != nil {
		return EmployeeView{}, invalid(CodeDocumentImmutable, "document cannot be updated")
	}
	if err := patch.Validate(); err != nil {
		return EmployeeView{}, validationFailed(err, "employee update")
	}
	if patch.IsEmpty() {
		return EmployeeView{}, invalid(CodeEmptyPatch, "no fields to update")
	}

	emp, err := s.resolve(ctx, token)
	if err != nil {
		return EmployeeView{}, err
	}

	updated, err := s.employees.UpdateEmployee(ctx, emp.Document, patch.Normalized())
	if err != nil {
		return EmployeeView{}, s.employeeStoreErr(ctx, err, "update employee")
	}
	return s.view(ctx, updated)
}

// Delete removes the employee addressed by token together with its doses
// and returns the removed record.
func (s *EmployeeService) Delete(ctx context.Context, token string) (_ EmployeeView, err error) {
	ctx, span := s.start(ctx, "EmployeeService.Delete")
	defer func() { end(span, err) }()

	emp, err := s.resolve(ctx, token)
	if err != nil {
		return EmployeeView{}, err
	}

	deleted, err := s.employees.DeleteEmployee(ctx, emp.Document)
	if err != nil {
		return EmployeeView{}, s.employeeStoreErr(ctx, err, "delete employee")
	}
	s.logger.InfoContext(ctx, "employee deleted", "uuid", deleted.SecondaryID, "doses", len(deleted.Doses))
	return s.view(ctx, deleted)
}

// Doses lists the doses of the employee addressed by token with their
// vaccines attached from the catalog.
func (s *EmployeeService) Doses(ctx context.Context, token string) (_ []DoseView, err error) {
	ctx, span := s.start(ctx, "EmployeeService.Doses")
	defer func() { end(span, err) }()

	emp, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	vaccines, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return newDoseViews(emp.Doses, vaccines), nil
}

// AddDose records a dose for the employee addressed by token and returns the
// employee with all doses.
func (s *EmployeeService) AddDose(ctx context.Context, token string, in models.DoseInput) (_ EmployeeView, err error) {
	ctx, span := s.start(ctx, "EmployeeService.AddDose")
	defer func() { end(span, err) }()

	if err := in.Validate(); err != nil {
		return EmployeeView{}, validationFailed(err, "dose")
	}

	emp, err := s.resolve(ctx, token)
	if err != nil {
		return EmployeeView{}, err
	}

	dose, err := s.employees.CreateDose(ctx, emp.Document, in.Normalized())
	if err != nil {
		return EmployeeView{}, s.employeeStoreErr(ctx, err, "add dose")
	}
	span.SetAttributes(attribute.Int64("dose.id", dose.ID))
	if s.metrics != nil {
		s.metrics.IncrementDosesRecorded()
	}

	updated, err := s.employees.FindEmployee(ctx, emp.Document)
	if err != nil {
		return EmployeeView{}, s.employeeStoreErr(ctx, err, "reload employee")
	}
	return s.view(ctx, updated)
}

// DeleteDose removes doseID if it belongs to the employee addressed by token.
func (s *EmployeeService) DeleteDose(ctx context.Context, token string, doseID int64) (_ DoseView, err error) {
	ctx, span := s.start(ctx, "EmployeeService.DeleteDose")
	defer func() { end(span, err) }()
	span.SetAttributes(attribute.Int64("dose.id", doseID))

	emp, err := s.resolve(ctx, token)
	if err != nil {
		return DoseView{}, err
	}

	dose, err := s.employees.DeleteDose(ctx, emp.Document, doseID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return DoseView{}, notFound(CodeDoseNotFound, "dose not found")
	case err != nil:
		return DoseView{}, s.internal(ctx, err, "delete dose")
	}

	vaccines, err := s.catalog(ctx)
	if err != nil {
		return DoseView{}, err
	}
	return newDoseView(dose, vaccines), nil
}

// NonVaccinatedReport lists employees without any dose.
func (s *EmployeeService) NonVaccinatedReport(ctx context.Context) (_ []NonVaccinatedView, err error) {
	ctx, span := s.start(ctx, "EmployeeService.NonVaccinatedReport")
	defer func() { end(span, err) }()

	rows, err := s.employees.ListEmployeesWithNoDoses(ctx)
	if err != nil {
		return nil, s.internal(ctx, err, "non vaccinated report")
	}
	return newNonVaccinatedViews(rows), nil
}

// resolve finds the employee whose document or secondary id equals token.
func (s *EmployeeService) resolve(ctx context.Context, token string) (*models.Employee, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, invalid(CodeInvalidInput, "employee identifier is required")
	}

	emp, err := s.employees.FindEmployee(ctx, token)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, notFound(CodeEmployeeNotFound, "employee not found")
	case err != nil:
		return nil, s.internal(ctx, err, "resolve employee")
	}
	return emp, nil
}

// employeeStoreErr translates store errors on the write paths. A record that
// disappeared after resolve is reported as not found.
func (s *EmployeeService) employeeStoreErr(ctx context.Context, err error, op string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return notFound(CodeEmployeeNotFound, "employee not found")
	case errors.Is(err, store.ErrReferenced):
		return wrapInvalid(err, CodeUnknownVaccine, "vaccine does not exist")
	case errors.Is(err, store.ErrConflict):
		return wrapInvalid(err, CodeInvalidInput, "conflicting record")
	}
	return s.internal(ctx, err, op)
}

func (s *EmployeeService) view(ctx context.Context, emp *models.Employee) (EmployeeView, error) {
	vaccines, err := s.catalog(ctx)
	if err != nil {
		return EmployeeView{}, err
	}
	return newEmployeeView(emp, vaccines), nil
}

func (s *EmployeeService) catalog(ctx context.Context) (catalog, error) {
	vaccines, err := s.vaccines.ListVaccines(ctx)
	if err != nil {
		return nil, s.internal(ctx, err, "load vaccine catalog")
	}
	return newCatalog(vaccines), nil
}
