package models

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-vaccination-registry/pkg/document"
)

// EmployeeInput carries the fields accepted when creating an employee.
type EmployeeInput struct {
	Document       string
	FullName       string
	BirthDate      time.Time
	HasComorbidity bool
}

// Validate checks required fields and the document check digits.
func (in EmployeeInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Document, validation.Required, validation.By(validDocument)),
		validation.Field(&in.FullName, validation.Required, validation.By(notBlank)),
		validation.Field(&in.BirthDate, validation.Required),
	)
}

// Normalized returns a copy with dates shifted by DateOffset and the name trimmed.
func (in EmployeeInput) Normalized() EmployeeInput {
	in.FullName = strings.TrimSpace(in.FullName)
	in.BirthDate = NormalizeDate(in.BirthDate)
	return in
}

// EmployeePatch carries a partial update. A nil field is left untouched.
//
// Document is present only so that callers can report that the client tried
// to send one; it is never applied.
type EmployeePatch struct {
	Document       *string
	FullName       *string
	BirthDate      *time.Time
	HasComorbidity *bool
}

// Validate checks the fields that are set.
func (p EmployeePatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.FullName, validation.NilOrNotEmpty, validation.By(notBlank)),
		validation.Field(&p.BirthDate, validation.NilOrNotEmpty),
	)
}

// IsEmpty reports whether the patch changes nothing.
func (p EmployeePatch) IsEmpty() bool {
	return p.FullName == nil && p.BirthDate == nil && p.HasComorbidity == nil
}

// Normalized returns a copy with dates shifted by DateOffset and the name trimmed.
func (p EmployeePatch) Normalized() EmployeePatch {
	if p.FullName != nil {
		name := strings.TrimSpace(*p.FullName)
		p.FullName = &name
	}
	p.BirthDate = normalizeDatePtr(p.BirthDate)
	return p
}

// DoseInput carries the fields accepted when recording a dose.
type DoseInput struct {
	VaccineID        int64
	DateAdministered time.Time
	Batch            string
	ExpirationDate   time.Time
}

// Validate checks required fields.
func (in DoseInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.VaccineID, validation.Required, validation.Min(int64(1))),
		validation.Field(&in.DateAdministered, validation.Required),
		validation.Field(&in.Batch, validation.Required, validation.By(notBlank)),
		validation.Field(&in.ExpirationDate, validation.Required),
	)
}

// Normalized returns a copy with dates shifted by DateOffset and the batch trimmed.
func (in DoseInput) Normalized() DoseInput {
	in.Batch = strings.TrimSpace(in.Batch)
	in.DateAdministered = NormalizeDate(in.DateAdministered)
	in.ExpirationDate = NormalizeDate(in.ExpirationDate)
	return in
}

// VaccineInput carries the fields accepted when creating a vaccine.
type VaccineInput struct {
	Name string
}

// Validate checks required fields.
func (in VaccineInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.By(notBlank)),
	)
}

// VaccinePatch carries a partial vaccine update.
type VaccinePatch struct {
	Name *string
}

// Validate checks the fields that are set.
func (p VaccinePatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.NilOrNotEmpty, validation.By(notBlank)),
	)
}

// IsEmpty reports whether the patch changes nothing.
func (p VaccinePatch) IsEmpty() bool {
	return p.Name == nil
}

func validDocument(value any) error {
	s, _ := value.(string)
	return document.Validate(s)
}

func notBlank(value any) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return nil
		}
		s = *v
	default:
		return nil
	}
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_blank", "cannot be blank")
	}
	return nil
}
