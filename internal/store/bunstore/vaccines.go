package bunstore

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-vaccination-registry/internal/models"
	"github.com/goliatone/go-vaccination-registry/internal/store"
)

// ListVaccines returns the catalog without doses.
func (s *Store) ListVaccines(ctx context.Context) ([]*models.Vaccine, error) {
	vaccines := make([]*models.Vaccine, 0)
	err := s.db.NewSelect().
		Model(&vaccines).
		OrderExpr("v.updated_at DESC, v.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, translate(err, "list vaccines")
	}
	return vaccines, nil
}

// GetVaccine returns one vaccine with its doses loaded.
func (s *Store) GetVaccine(ctx context.Context, id int64) (*models.Vaccine, error) {
	return getVaccine(ctx, s.db, id)
}

func getVaccine(ctx context.Context, db bun.IDB, id int64) (*models.Vaccine, error) {
	vaccine := new(models.Vaccine)
	err := db.NewSelect().
		Model(vaccine).
		Relation("Doses", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("d.id ASC")
		}).
		Where("v.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, translate(err, "get vaccine")
	}
	return vaccine, nil
}

func (s *Store) CreateVaccine(ctx context.Context, in models.VaccineInput) (*models.Vaccine, error) {
	now := s.timestamp()
	vaccine := &models.Vaccine{
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
		Doses:     []*models.Dose{},
	}
	if _, err := s.db.NewInsert().Model(vaccine).Exec(ctx); err != nil {
		return nil, translate(err, "create vaccine")
	}
	return vaccine, nil
}

func (s *Store) UpdateVaccine(ctx context.Context, id int64, patch models.VaccinePatch) (*models.Vaccine, error) {
	var out *models.Vaccine
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		q := tx.NewUpdate().
			Model((*models.Vaccine)(nil)).
			Set("updated_at = ?", s.timestamp()).
			Where("id = ?", id)
		if patch.Name != nil {
			q = q.Set("name = ?", *patch.Name)
		}

		res, err := q.Exec(ctx)
		if err != nil {
			return translate(err, "update vaccine")
		}
		if err := requireAffected(res, "update vaccine"); err != nil {
			return err
		}

		out, err = getVaccine(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteVaccine removes a vaccine. Doses pointing at it make the delete fail
// with ErrReferenced.
func (s *Store) DeleteVaccine(ctx context.Context, id int64) (*models.Vaccine, error) {
	var out *models.Vaccine
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		vaccine, err := getVaccine(ctx, tx, id)
		if err != nil {
			return err
		}
		if len(vaccine.Doses) > 0 {
			return fmt.Errorf("delete vaccine %d: %d doses: %w", id, len(vaccine.Doses), store.ErrReferenced)
		}

		res, err := tx.NewDelete().
			Model((*models.Vaccine)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return translate(err, "delete vaccine")
		}
		if err := requireAffected(res, "delete vaccine"); err != nil {
			return err
		}

		out = vaccine
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
