// Package form tracks a contract form being filled in. State is a value;
// every transition returns a new State and leaves its argument untouched.
package form

import (
	"github.com/goliatone/go-rentalcontract/pkg/contract"
	"github.com/goliatone/go-rentalcontract/pkg/validation"
)

// Phase is the lifecycle stage of a form.
type Phase string

const (
	// PhaseEditing accepts changes and validates incrementally.
	PhaseEditing Phase = "editing"
	// PhaseFinalized holds a frozen record ready for rendering.
	PhaseFinalized Phase = "finalized"
)

// State is the form snapshot: values as typed, current errors for every
// field, which fields the user has left, and the record once finalized.
type State struct {
	Phase   Phase
	Values  contract.Values
	Errors  validation.FieldErrors
	Touched map[string]bool
	Record  *contract.Record
}

// New starts an editing session seeded with initial values.
func New(initial contract.Values) State {
	s := State{
		Phase:   PhaseEditing,
		Values:  initial.Clone(),
		Touched: make(map[string]bool),
	}
	s.Errors = validation.Check(s.Values)
	return s
}

// Reset begins a new submission, discarding the previous one.
func Reset() State {
	return New(nil)
}

// Change records a new value for field.
func Change(s State, field, value string) State {
	if s.Phase != PhaseEditing {
		return s
	}
	next := s.clone()
	next.Values[field] = value
	next.Errors = validation.Check(next.Values)
	return next
}

// Blur marks field as touched so its error becomes visible.
func Blur(s State, field string) State {
	if s.Phase != PhaseEditing {
		return s
	}
	next := s.clone()
	next.Touched[field] = true
	next.Errors = validation.Check(next.Values)
	return next
}

// Submit touches every field and validates the whole form. A valid form
// moves to PhaseFinalized with its record frozen; otherwise it stays in
// PhaseEditing with all errors visible.
func Submit(s State) State {
	if s.Phase != PhaseEditing {
		return s
	}
	next := s.clone()
	for _, name := range contract.FieldNames {
		next.Touched[name] = true
	}
	record, err := validation.ValidateValues(next.Values)
	if err != nil {
		next.Errors = validation.Check(next.Values)
		return next
	}
	next.Errors = validation.FieldErrors{}
	next.Phase = PhaseFinalized
	next.Record = &record
	return next
}

// VisibleErrors returns the messages of touched fields only.
func VisibleErrors(s State) map[string][]string {
	return s.Errors.Only(s.Touched).Messages()
}

// Finalized reports whether the form produced a record.
func (s State) Finalized() bool {
	return s.Phase == PhaseFinalized && s.Record != nil
}

func (s State) clone() State {
	next := s
	next.Values = s.Values.Clone()
	next.Touched = make(map[string]bool, len(s.Touched))
	for k, v := range s.Touched {
		next.Touched[k] = v
	}
	return next
}
