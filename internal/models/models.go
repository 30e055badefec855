// Package models holds the persisted entities and the write inputs accepted
// by the services.
package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Employee is keyed by its document. SecondaryID is an alternate key that is
// generated on insert and only ever used for lookups.
type Employee struct {
	bun.BaseModel `bun:"table:employees,alias:e"`

	Document       string    `bun:"document,pk"`
	SecondaryID    string    `bun:"secondary_id,notnull,unique"`
	FullName       string    `bun:"full_name,notnull"`
	BirthDate      time.Time `bun:"birth_date,notnull"`
	HasComorbidity bool      `bun:"has_comorbidity,notnull"`
	CreatedAt      time.Time `bun:"created_at,notnull"`
	UpdatedAt      time.Time `bun:"updated_at,notnull"`

	Doses []*Dose `bun:"rel:has-many,join:document=employee_document"`
}

// Vaccine is a catalog entry. Doses are loaded only when a single vaccine is
// read by id; the cached catalog never carries them.
type Vaccine struct {
	bun.BaseModel `bun:"table:vaccines,alias:v"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Name      string    `bun:"name,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`

	Doses []*Dose `bun:"rel:has-many,join:id=vaccine_id"`
}

// Dose is one administration of a vaccine to an employee.
type Dose struct {
	bun.BaseModel `bun:"table:doses,alias:d"`

	ID               int64     `bun:"id,pk,autoincrement"`
	EmployeeDocument string    `bun:"employee_document,notnull"`
	VaccineID        int64     `bun:"vaccine_id,notnull"`
	DateAdministered time.Time `bun:"date_administered,notnull"`
	Batch            string    `bun:"batch,notnull"`
	ExpirationDate   time.Time `bun:"expiration_date,notnull"`

	Vaccine *Vaccine `bun:"rel:belongs-to,join:vaccine_id=id"`
}

// NonVaccinated is a row of the report of employees without doses.
type NonVaccinated struct {
	Document string `bun:"document"`
	FullName string `bun:"full_name"`
}
