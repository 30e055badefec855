package service

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Text codes carried by service errors. Callers decide on status by
// category; the code tells clients which rule failed.
const (
	CodeInvalidInput      = "INVALID_INPUT"
	CodeInvalidDocument   = "INVALID_DOCUMENT"
	CodeDocumentImmutable = "DOCUMENT_IMMUTABLE"
	CodeDuplicateDocument = "DUPLICATE_DOCUMENT"
	CodeEmptyPatch        = "EMPTY_PATCH"
	CodeUnknownVaccine    = "UNKNOWN_VACCINE"
	CodeVaccineInUse      = "VACCINE_IN_USE"
	CodeEmployeeNotFound  = "EMPLOYEE_NOT_FOUND"
	CodeVaccineNotFound   = "VACCINE_NOT_FOUND"
	CodeDoseNotFound      = "DOSE_NOT_FOUND"
	CodeInternal          = "INTERNAL"
)

func notFound(code, message string) error {
	return goerrors.New(message, goerrors.CategoryNotFound).WithTextCode(code)
}

func invalid(code, message string) error {
	return goerrors.New(message, goerrors.CategoryValidation).WithTextCode(code)
}

func wrapInvalid(err error, code, message string) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, message).WithTextCode(code)
}

func wrapInternal(err error, message string) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, message).WithTextCode(CodeInternal)
}

// validationFailed turns an ozzo-validation result into an InvalidInput
// error. A failing document gets its own code.
func validationFailed(err error, what string) error {
	code := CodeInvalidInput
	var fields validation.Errors
	if errors.As(err, &fields) {
		if _, ok := fields["Document"]; ok {
			code = CodeInvalidDocument
		}
	}
	return wrapInvalid(err, code, "invalid "+what+": "+err.Error())
}

func hasCategory(err error, category goerrors.Category) bool {
	var e *goerrors.Error
	return errors.As(err, &e) && e.Category == category
}

// IsNotFound reports whether err means the addressed record does not exist.
func IsNotFound(err error) bool {
	return hasCategory(err, goerrors.CategoryNotFound)
}

// IsInvalidInput reports whether err was caused by the request content.
func IsInvalidInput(err error) bool {
	return hasCategory(err, goerrors.CategoryValidation)
}

// TextCode returns the text code carried by err, or CodeInternal.
func TextCode(err error) string {
	var e *goerrors.Error
	if errors.As(err, &e) && e.TextCode != "" {
		return e.TextCode
	}
	return CodeInternal
}
