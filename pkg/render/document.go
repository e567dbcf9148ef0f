package render

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/goliatone/go-rentalcontract/pkg/contract"
	"github.com/goliatone/go-rentalcontract/pkg/pricing"
)

// DefaultFileName is used when the renter names yield no usable characters.
const DefaultFileName = "contrat-location"

// Document is what renderers receive: a frozen record, its computed amounts
// and the identity of this issue of the contract.
type Document struct {
	Reference string            `json:"reference"`
	IssuedAt  time.Time         `json:"issuedAt"`
	Record    contract.Record   `json:"record"`
	Breakdown pricing.Breakdown `json:"breakdown"`

	// FileName has no extension; see FileNameFor.
	FileName string `json:"fileName"`
}

// NewDocument issues a contract for record with a fresh reference.
func NewDocument(record contract.Record, issuedAt time.Time) Document {
	return Document{
		Reference: uuid.NewString(),
		IssuedAt:  issuedAt,
		Record:    record,
		Breakdown: record.Breakdown(),
		FileName:  FileName(record),
	}
}

// FileNameFor returns the download name for renderer r.
func (d Document) FileNameFor(r Renderer) string {
	name := d.FileName
	if name == "" {
		name = DefaultFileName
	}
	if r == nil {
		return name
	}
	return name + r.Extension()
}

// FileName derives a readable, ASCII-only name from the renter names, for
// example "contrat-location-awa-diop".
func FileName(record contract.Record) string {
	slug := slugify(record.FirstName + " " + record.LastName)
	if slug == "" {
		return DefaultFileName
	}
	return DefaultFileName + "-" + slug
}

func slugify(s string) string {
	folding := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folding, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
