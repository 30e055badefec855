package bunstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-vaccination-registry/internal/models"
	"github.com/goliatone/go-vaccination-registry/internal/store"
)

func withDoses(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Relation("Doses", func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("d.id ASC")
	})
}

// FindEmployee resolves token against both the document and the secondary id
// with a single predicate.
func (s *Store) FindEmployee(ctx context.Context, token string) (*models.Employee, error) {
	return findEmployee(ctx, s.db, "e.document = ? OR e.secondary_id = ?", token, token)
}

func findEmployee(ctx context.Context, db bun.IDB, where string, args ...any) (*models.Employee, error) {
	emp := new(models.Employee)
	err := withDoses(db.NewSelect().Model(emp)).
		Where(where, args...).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, translate(err, "find employee")
	}
	return emp, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	employees := make([]*models.Employee, 0)
	err := withDoses(s.db.NewSelect().Model(&employees)).
		OrderExpr("e.updated_at DESC, e.document ASC").
		Scan(ctx)
	if err != nil {
		return nil, translate(err, "list employees")
	}
	return employees, nil
}

func (s *Store) CreateEmployee(ctx context.Context, in models.EmployeeInput) (*models.Employee, error) {
	now := s.timestamp()
	emp := &models.Employee{
		Document:       in.Document,
		SecondaryID:    uuid.NewString(),
		FullName:       in.FullName,
		BirthDate:      in.BirthDate,
		HasComorbidity: in.HasComorbidity,
		CreatedAt:      now,
		UpdatedAt:      now,
		Doses:          []*models.Dose{},
	}

	if _, err := s.db.NewInsert().Model(emp).Exec(ctx); err != nil {
		return nil, translate(err, "create employee")
	}
	return emp, nil
}

// UpdateEmployee applies the set fields of patch. The document itself is
// never written.
func (s *Store) UpdateEmployee(ctx context.Context, document string, patch models.EmployeePatch) (*models.Employee, error) {
	var out *models.Employee
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		q := tx.NewUpdate().
			Model((*models.Employee)(nil)).
			Set("updated_at = ?", s.timestamp()).
			Where("document = ?", document)
		if patch.FullName != nil {
			q = q.Set("full_name = ?", *patch.FullName)
		}
		if patch.BirthDate != nil {
			q = q.Set("birth_date = ?", *patch.BirthDate)
		}
		if patch.HasComorbidity != nil {
			q = q.Set("has_comorbidity = ?", *patch.HasComorbidity)
		}

		res, err := q.Exec(ctx)
		if err != nil {
			return translate(err, "update employee")
		}
		if err := requireAffected(res, "update employee"); err != nil {
			return err
		}

		out, err = findEmployee(ctx, tx, "e.document = ?", document)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteEmployee removes the employee and its doses and returns the record as
// it was before removal.
func (s *Store) DeleteEmployee(ctx context.Context, document string) (*models.Employee, error) {
	var out *models.Employee
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		emp, err := findEmployee(ctx, tx, "e.document = ?", document)
		if err != nil {
			return err
		}

		if _, err := tx.NewDelete().
			Model((*models.Dose)(nil)).
			Where("employee_document = ?", document).
			Exec(ctx); err != nil {
			return translate(err, "delete employee doses")
		}

		res, err := tx.NewDelete().
			Model((*models.Employee)(nil)).
			Where("document = ?", document).
			Exec(ctx)
		if err != nil {
			return translate(err, "delete employee")
		}
		if err := requireAffected(res, "delete employee"); err != nil {
			return err
		}

		out = emp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateDose records a dose for document. A missing employee is ErrNotFound;
// a vaccine id that does not exist is ErrReferenced.
func (s *Store) CreateDose(ctx context.Context, document string, in models.DoseInput) (*models.Dose, error) {
	var out *models.Dose
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*models.Employee)(nil)).
			Where("e.document = ?", document).
			Exists(ctx)
		if err != nil {
			return translate(err, "create dose")
		}
		if !exists {
			return fmt.Errorf("create dose: employee %s: %w", document, store.ErrNotFound)
		}

		vaccine := new(models.Vaccine)
		err = tx.NewSelect().Model(vaccine).Where("v.id = ?", in.VaccineID).Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("create dose: vaccine %d: %w", in.VaccineID, store.ErrReferenced)
		}
		if err != nil {
			return translate(err, "create dose")
		}

		dose := &models.Dose{
			EmployeeDocument: document,
			VaccineID:        in.VaccineID,
			DateAdministered: in.DateAdministered,
			Batch:            in.Batch,
			ExpirationDate:   in.ExpirationDate,
		}
		if _, err := tx.NewInsert().Model(dose).Exec(ctx); err != nil {
			return translate(err, "create dose")
		}

		if _, err := tx.NewUpdate().
			Model((*models.Employee)(nil)).
			Set("updated_at = ?", s.timestamp()).
			Where("document = ?", document).
			Exec(ctx); err != nil {
			return translate(err, "touch employee")
		}

		dose.Vaccine = vaccine
		out = dose
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteDose(ctx context.Context, document string, doseID int64) (*models.Dose, error) {
	var out *models.Dose
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		dose := new(models.Dose)
		err := tx.NewSelect().
			Model(dose).
			Where("d.id = ? AND d.employee_document = ?", doseID, document).
			Scan(ctx)
		if err != nil {
			return translate(err, "delete dose")
		}

		res, err := tx.NewDelete().
			Model((*models.Dose)(nil)).
			Where("id = ?", doseID).
			Exec(ctx)
		if err != nil {
			return translate(err, "delete dose")
		}
		if err := requireAffected(res, "delete dose"); err != nil {
			return err
		}

		out = dose
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListEmployeesWithNoDoses reports employees that have no dose recorded,
// ordered by name.
func (s *Store) ListEmployeesWithNoDoses(ctx context.Context) ([]models.NonVaccinated, error) {
	rows := make([]models.NonVaccinated, 0)
	err := s.db.NewSelect().
		Model((*models.Employee)(nil)).
		ColumnExpr("e.document, e.full_name").
		Where("NOT EXISTS (SELECT 1 FROM doses AS d WHERE d.employee_document = e.document)").
		OrderExpr("e.full_name ASC, e.document ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, translate(err, "list non vaccinated")
	}
	return rows, nil
}
