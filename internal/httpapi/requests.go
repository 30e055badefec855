package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-vaccination-registry/internal/models"
)

const maxBodyBytes = 1 << 20

// jsonDate accepts "2006-01-02" or an RFC 3339 timestamp.
type jsonDate time.Time

func (d *jsonDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string")
	}
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = jsonDate(t.UTC())
			return nil
		}
	}
	return fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC 3339", s)
}

func (d *jsonDate) time() time.Time {
	if d == nil {
		return time.Time{}
	}
	return time.Time(*d)
}

func (d *jsonDate) timePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := time.Time(*d)
	return &t
}

type createEmployeeRequest struct {
	Document       string    `json:"document"`
	FullName       string    `json:"fullName"`
	BirthDate      *jsonDate `json:"birthDate"`
	HasComorbidity bool      `json:"hasComorbidity"`
}

func (r createEmployeeRequest) input() models.EmployeeInput {
	return models.EmployeeInput{
		Document:       r.Document,
		FullName:       r.FullName,
		BirthDate:      r.BirthDate.time(),
		HasComorbidity: r.HasComorbidity,
	}
}

type updateEmployeeRequest struct {
	Document       *string   `json:"document"`
	FullName       *string   `json:"fullName"`
	BirthDate      *jsonDate `json:"birthDate"`
	HasComorbidity *bool     `json:"hasComorbidity"`
}

type doseRequest struct {
	VaccineID        int64     `json:"vaccineId"`
	DateAdministered *jsonDate `json:"dateAdministered"`
	Batch            string    `json:"batch"`
	ExpirationDate   *jsonDate `json:"expirationDate"`
}

func (r doseRequest) input() models.DoseInput {
	return models.DoseInput{
		VaccineID:        r.VaccineID,
		DateAdministered: r.DateAdministered.time(),
		Batch:            r.Batch,
		ExpirationDate:   r.ExpirationDate.time(),
	}
}

type vaccineRequest struct {
	Name *string `json:"name"`
}

// readBody reads a bounded JSON object body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, badRequest("request body too large or unreadable")
	}
	return body, nil
}

func decodeStrict(body []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return badRequest("invalid JSON body: " + err.Error())
	}
	return nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	return decodeStrict(body, dst)
}

// decodeEmployeePatch keeps track of a "document" key even when its value
// is null, so that any attempt to send one is rejected downstream.
func decodeEmployeePatch(w http.ResponseWriter, r *http.Request) (models.EmployeePatch, error) {
	body, err := readBody(w, r)
	if err != nil {
		return models.EmployeePatch{}, err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return models.EmployeePatch{}, badRequest("invalid JSON body: " + err.Error())
	}
	var req updateEmployeeRequest
	if err := decodeStrict(body, &req); err != nil {
		return models.EmployeePatch{}, err
	}

	patch := models.EmployeePatch{
		Document:       req.Document,
		FullName:       req.FullName,
		BirthDate:      req.BirthDate.timePtr(),
		HasComorbidity: req.HasComorbidity,
	}
	if _, ok := keys["document"]; ok && patch.Document == nil {
		empty := ""
		patch.Document = &empty
	}
	return patch, nil
}

func pathInt(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, badRequest(fmt.Sprintf("%s must be a positive integer", name))
	}
	return id, nil
}

func badRequest(message string) error {
	return goerrors.New(message, goerrors.CategoryValidation).WithTextCode("BAD_REQUEST")
}

func errorMessage(err error) string {
	var e *goerrors.Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}
