// Package validation holds the rental contract rule table. Each field owns an
// ordered list of rules and reports at most one error: the first rule that
// fails. Errors unwrap to ErrMissingRequiredField, ErrInvalidDateOrdering or
// ErrInvalidValue.
package validation
