package render

import (
	"github.com/goliatone/go-rentalcontract/pkg/clauses"
	"github.com/goliatone/go-rentalcontract/pkg/locale"
)

// RenderOptions describe per-request data document renderers use without
// touching the record.
type RenderOptions struct {
	// Formatter renders dates and amounts. Renderers fall back to the default
	// French formatter when nil.
	Formatter *locale.Formatter
	// Agency is the lessor name printed in the header and signature block.
	Agency string
	// Clauses are printed after the contract body, in order.
	Clauses []clauses.Clause
	// Hidden carries the record through the contract view so the download
	// buttons can post it back.
	Hidden []HiddenField
	// Downloads lists the renderer names offered as download buttons.
	Downloads []string
}

// FormatterOrDefault returns opts.Formatter or a default French formatter.
func (o RenderOptions) FormatterOrDefault() *locale.Formatter {
	if o.Formatter != nil {
		return o.Formatter
	}
	return locale.New("")
}

// FormOptions pre-populate the editable form.
type FormOptions struct {
	// Values holds the raw values keyed by field name.
	Values map[string]string
	// Errors holds visible field errors keyed by field name.
	Errors map[string][]string
	// FormErrors are messages that do not belong to a single field.
	FormErrors []string
}
