package service

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/goliatone/go-vaccination-registry/internal/models"
	"github.com/goliatone/go-vaccination-registry/internal/store"
)

// VaccineService manages the vaccine catalog. Pass the cached store so List
// is served from the cache and writes invalidate it.
type VaccineService struct {
	vaccines store.VaccineStore
	deps
}

func NewVaccineService(vaccines store.VaccineStore, opts ...Option) *VaccineService {
	return &VaccineService{vaccines: vaccines, deps: newDeps(opts)}
}

// List returns the catalog, newest update first, without doses.
func (s *VaccineService) List(ctx context.Context) (_ []VaccineView, err error) {
	ctx, span := s.start(ctx, "VaccineService.List")
	defer func() { end(span, err) }()

	vaccines, err := s.vaccines.ListVaccines(ctx)
	if err != nil {
		return nil, s.internal(ctx, err, "list vaccines")
	}
	return newVaccineViews(vaccines), nil
}

// Get returns one vaccine with its doses.
func (s *VaccineService) Get(ctx context.Context, id int64) (_ VaccineView, err error) {
	ctx, span := s.start(ctx, "VaccineService.Get")
	defer func() { end(span, err) }()
	span.SetAttributes(attribute.Int64("vaccine.id", id))

	v, err := s.vaccines.GetVaccine(ctx, id)
	if err != nil {
		return VaccineView{}, s.storeErr(ctx, err, "get vaccine")
	}
	return newVaccineView(v, true), nil
}

func (s *VaccineService) Create(ctx context.Context, in models.VaccineInput) (_ VaccineView, err error) {
	ctx, span := s.start(ctx, "VaccineService.Create")
	defer func() { end(span, err) }()

	if err := in.Validate(); err != nil {
		return VaccineView{}, validationFailed(err, "vaccine")
	}
	in.Name = strings.TrimSpace(in.Name)

	v, err := s.vaccines.CreateVaccine(ctx, in)
	if err != nil {
		return VaccineView{}, s.storeErr(ctx, err, "create vaccine")
	}
	s.logger.InfoContext(ctx, "vaccine created", "vaccine_id", v.ID)
	return newVaccineView(v, false), nil
}

func (s *VaccineService) Update(ctx context.Context, id int64, patch models.VaccinePatch) (_ VaccineView, err error) {
	ctx, span := s.start(ctx, "VaccineService.Update")
	defer func() { end(span, err) }()
	span.SetAttributes(attribute.Int64("vaccine.id", id))

	if err := patch.Validate(); err != nil {
		return VaccineView{}, validationFailed(err, "vaccine update")
	}
	if patch.IsEmpty() {
		return VaccineView{}, invalid(CodeEmptyPatch, "no fields to update")
	}
	name := strings.TrimSpace(*patch.Name)
	patch.Name = &name

	v, err := s.vaccines.UpdateVaccine(ctx, id, patch)
	if err != nil {
		return VaccineView{}, s.storeErr(ctx, err, "update vaccine")
	}
	return newVaccineView(v, false), nil
}

// Delete removes a vaccine no dose refers to.
func (s *VaccineService) Delete(ctx context.Context, id int64) (_ VaccineView, err error) {
	ctx, span := s.start(ctx, "VaccineService.Delete")
	defer func() { end(span, err) }()
	span.SetAttributes(attribute.Int64("vaccine.id", id))

	v, err := s.vaccines.DeleteVaccine(ctx, id)
	if err != nil {
		return VaccineView{}, s.storeErr(ctx, err, "delete vaccine")
	}
	s.logger.InfoContext(ctx, "vaccine deleted", "vaccine_id", v.ID)
	return newVaccineView(v, false), nil
}

func (s *VaccineService) storeErr(ctx context.Context, err error, op string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return notFound(CodeVaccineNotFound, "vaccine not found")
	case errors.Is(err, store.ErrReferenced):
		return wrapInvalid(err, CodeVaccineInUse, "vaccine has recorded doses")
	case errors.Is(err, store.ErrConflict):
		return wrapInvalid(err, CodeInvalidInput, "conflicting record")
	}
	return s.internal(ctx, err, op)
}
