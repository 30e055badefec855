package db

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-vaccination-registry/internal/models"
)

// Migrate creates the tables if they do not exist. Doses cascade with their
// employee and block deletion of the vaccine they reference.
func Migrate(ctx context.Context, db *bun.DB) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewCreateTable().
			Model((*models.Employee)(nil)).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("create employees: %w", err)
		}

		if _, err := tx.NewCreateTable().
			Model((*models.Vaccine)(nil)).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("create vaccines: %w", err)
		}

		if _, err := tx.NewCreateTable().
			Model((*models.Dose)(nil)).
			IfNotExists().
			ForeignKey(`("employee_document") REFERENCES "employees" ("document") ON DELETE CASCADE`).
			ForeignKey(`("vaccine_id") REFERENCES "vaccines" ("id")`).
			Exec(ctx); err != nil {
			return fmt.Errorf("create doses: %w", err)
		}

		if _, err := tx.NewCreateIndex().
			Model((*models.Dose)(nil)).
			Index("doses_employee_document_idx").
			Column("employee_document").
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("index doses: %w", err)
		}

		return nil
	})
}
