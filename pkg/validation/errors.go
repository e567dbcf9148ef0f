package validation

import (
	"errors"
	"sort"
	"strings"

	"github.com/goliatone/go-rentalcontract/pkg/contract"
)

// Kind classifies a field error.
type Kind string

const (
	KindRequired     Kind = "required"
	KindDateOrdering Kind = "date_ordering"
	KindInvalidValue Kind = "invalid_value"
)

var (
	// ErrMissingRequiredField is matched by errors for empty required fields.
	ErrMissingRequiredField = errors.New("validation: missing required field")
	// ErrInvalidDateOrdering is matched when the return date does not follow
	// the departure date.
	ErrInvalidDateOrdering = errors.New("validation: return date must follow departure date")
	// ErrInvalidValue is matched by values that cannot be read as the field's
	// type (number, date, time, enumeration).
	ErrInvalidValue = errors.New("validation: invalid value")
)

// FieldError is the single error reported for one field.
type FieldError struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Unwrap exposes the sentinel matching the error kind.
func (e FieldError) Unwrap() error {
	switch e.Kind {
	case KindRequired:
		return ErrMissingRequiredField
	case KindDateOrdering:
		return ErrInvalidDateOrdering
	case KindInvalidValue:
		return ErrInvalidValue
	default:
		return nil
	}
}

// FieldErrors maps field names to their error. A nil or empty FieldErrors
// means the input is valid.
type FieldErrors map[string]FieldError

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation: no errors"
	}
	parts := make([]string, 0, len(fe))
	for _, name := range fe.Fields() {
		parts = append(parts, fe[name].Error())
	}
	return "validation: " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is match any contained sentinel.
func (fe FieldErrors) Unwrap() []error {
	out := make([]error, 0, len(fe))
	for _, name := range fe.Fields() {
		out = append(out, fe[name])
	}
	return out
}

// Has reports whether name has an error.
func (fe FieldErrors) Has(name string) bool {
	_, ok := fe[name]
	return ok
}

// Fields lists the fields in error, in form order. Unknown names sort last.
func (fe FieldErrors) Fields() []string {
	names := make([]string, 0, len(fe))
	for name := range fe {
		names = append(names, name)
	}
	rank := func(name string) int {
		for i, candidate := range contract.FieldNames {
			if candidate == name {
				return i
			}
		}
		return len(contract.FieldNames)
	}
	sort.SliceStable(names, func(i, j int) bool {
		ri, rj := rank(names[i]), rank(names[j])
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})
	return names
}

// Messages converts the errors into the field → messages payload renderers
// consume.
func (fe FieldErrors) Messages() map[string][]string {
	if len(fe) == 0 {
		return nil
	}
	out := make(map[string][]string, len(fe))
	for name, err := range fe {
		out[name] = []string{err.Message}
	}
	return out
}

// Only returns the subset of errors whose field is in keep.
func (fe FieldErrors) Only(keep map[string]bool) FieldErrors {
	out := make(FieldErrors)
	for name, err := range fe {
		if keep[name] {
			out[name] = err
		}
	}
	return out
}
