// Package document validates and masks employee national identifiers.
//
// A document is an 11 digit string whose last two digits are mod-11 check
// digits computed over the preceding digits. Nothing here touches storage,
// and Anonymize is meant to run exactly once, at the point a record leaves
// the service.
package document

import (
	"errors"

	"github.com/paemuri/brdoc"
)

// Length is the number of digits in a well formed document.
const Length = 11

// minMaskable is the shortest input Anonymize will mask.
const minMaskable = 5

var (
	// ErrLength is returned when the input is not exactly Length characters.
	ErrLength = errors.New("document must have 11 digits")
	// ErrNonDigit is returned when the input contains anything but ASCII digits.
	ErrNonDigit = errors.New("document must contain only digits")
	// ErrRepeated is returned for inputs made of a single repeated digit,
	// which satisfy the checksum but are never issued.
	ErrRepeated = errors.New("document cannot be a repeated digit sequence")
	// ErrChecksum is returned when either check digit does not match.
	ErrChecksum = errors.New("document check digits do not match")
)

// Validate reports whether doc is a well formed document. Shape problems
// are reported locally; the check digits are verified by brdoc.
func Validate(doc string) error {
	if len(doc) != Length {
		return ErrLength
	}

	repeated := true
	for i := 0; i < Length; i++ {
		c := doc[i]
		if c < '0' || c > '9' {
			return ErrNonDigit
		}
		if c != doc[0] {
			repeated = false
		}
	}

	if repeated {
		return ErrRepeated
	}

	if !brdoc.IsCPF(doc) {
		return ErrChecksum
	}
	return nil
}

// IsValid is a convenience wrapper around Validate.
func IsValid(doc string) bool {
	return Validate(doc) == nil
}

// Anonymize masks the middle of doc, keeping the first three and last two
// characters: "12345678901" becomes "123.xxx.xxx-01". Inputs shorter than
// five characters are returned unchanged.
//
// Callers apply it once, when building the outward representation of a
// record. Masked output is never fed back into the stores.
func Anonymize(doc string) string {
	if len(doc) < minMaskable {
		return doc
	}
	return doc[:3] + ".xxx.xxx-" + doc[len(doc)-2:]
}
