// Package locale formats contract values for display in French.
package locale

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/goliatone/go-rentalcontract/pkg/contract"
)

// Unspecified replaces values left empty.
const Unspecified = "Non spécifié"

// DefaultCurrency is appended to amounts when none is configured.
const DefaultCurrency = "€"

var months = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// Formatter renders dates, times and amounts. It is safe for concurrent use.
type Formatter struct {
	printer  *message.Printer
	currency string
}

// New returns a French formatter suffixing amounts with currency.
func New(currency string) *Formatter {
	currency = strings.TrimSpace(currency)
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Formatter{
		printer:  message.NewPrinter(language.French),
		currency: currency,
	}
}

// Currency returns the configured symbol.
func (f *Formatter) Currency() string {
	return f.currency
}

// Date formats t as "02 janvier 2006".
func (f *Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return Unspecified
	}
	return t.Format("02") + " " + months[t.Month()-1] + " " + t.Format("2006")
}

// Time formats a clock as HH:mm.
func (f *Formatter) Time(c contract.Clock) string {
	return c.String()
}

// Number formats n with French grouping and decimal comma, up to two
// fraction digits.
func (f *Formatter) Number(n float64) string {
	out := f.printer.Sprint(number.Decimal(n, number.MaxFractionDigits(2)))
	return normalizeSpaces(out)
}

// Amount formats n followed by the currency symbol.
func (f *Formatter) Amount(n float64) string {
	return f.Number(n) + " " + f.currency
}

// Distance formats a kilometer reading.
func (f *Formatter) Distance(n float64) string {
	return f.Number(n) + " km"
}

// OrUnspecified returns s, or Unspecified when s is blank.
func OrUnspecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return Unspecified
	}
	return s
}

// normalizeSpaces maps the narrow no-break space used by CLDR for French
// grouping to U+00A0, which every output encoding here can carry.
func normalizeSpaces(s string) string {
	return strings.ReplaceAll(s, "\u202f", "\u00a0")
}
