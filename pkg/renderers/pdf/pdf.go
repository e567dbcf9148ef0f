// Package pdf renders the finalized contract as an A4 PDF document.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-rentalcontract/pkg/render"
)

const (
	fontFamily = "Helvetica"
	lineHeight = 6.0
)

type rgb struct{ r, g, b int }

var defaultHeading = rgb{0x19, 0x76, 0xd2}

type Option func(*Renderer)

// WithCompression toggles stream compression. Tests disable it to inspect
// the page content.
func WithCompression(enabled bool) Option {
	return func(r *Renderer) {
		r.compress = enabled
	}
}

// WithTheme colours the section headings with the "primary" token.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(r *Renderer) {
		if cfg == nil {
			return
		}
		if color, ok := parseHex(cfg.Tokens["primary"]); ok {
			r.heading = color
		}
	}
}

// Renderer implements render.Renderer with fpdf core fonts. Text is
// translated to cp1252 so accents and the euro sign print correctly.
type Renderer struct {
	compress bool
	heading  rgb
}

var _ render.Renderer = (*Renderer)(nil)

func New(options ...Option) *Renderer {
	r := &Renderer{compress: true, heading: defaultHeading}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string        { return "pdf" }
func (r *Renderer) ContentType() string { return "application/pdf" }
func (r *Renderer) Extension() string   { return ".pdf" }

func (r *Renderer) Render(ctx context.Context, doc render.Document, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	layout := render.BuildLayout(doc, options)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetTitle(layout.Title, true)
	pdf.SetSubject(layout.Reference, true)
	pdf.SetCreator("go-rentalcontract", true)
	if layout.Agency != "" {
		pdf.SetAuthor(layout.Agency, true)
	}
	if !doc.IssuedAt.IsZero() {
		pdf.SetCreationDate(doc.IssuedAt)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Référence %s - page %d", layout.Reference, pdf.PageNo())), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 16)
	pdf.SetTextColor(r.heading.r, r.heading.g, r.heading.b)
	pdf.CellFormat(0, 10, tr(layout.Title), "", 1, "C", false, 0, "")

	pdf.SetFont(fontFamily, "", 9)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 5, tr(metaLine(layout)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, section := range layout.Sections {
		r.heading2(pdf, tr, section.Title)
		for _, line := range section.Lines {
			pdf.SetFont(fontFamily, "", 10)
			pdf.MultiCell(0, lineHeight, tr(line.Label+": "+line.Value), "", "L", false)
		}
		pdf.Ln(2)
	}

	if len(layout.Clauses) > 0 {
		r.heading2(pdf, tr, "Conditions générales")
		for _, clause := range layout.Clauses {
			if clause.Title != "" {
				pdf.SetFont(fontFamily, "B", 10)
				pdf.MultiCell(0, lineHeight, tr(clause.Title), "", "L", false)
			}
			pdf.SetFont(fontFamily, "", 9)
			pdf.MultiCell(0, 5, tr(clause.Text), "", "J", false)
			pdf.Ln(1)
		}
	}

	signatures(pdf, tr, layout.Signatures)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf renderer: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) heading2(pdf *fpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont(fontFamily, "B", 12)
	pdf.SetTextColor(r.heading.r, r.heading.g, r.heading.b)
	pdf.CellFormat(0, 8, tr(title), "B", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(1)
}

// signatures draws the blocks side by side with room to sign above a rule.
func signatures(pdf *fpdf.Fpdf, tr func(string) string, labels []string) {
	if len(labels) == 0 {
		return
	}
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	width := (pageWidth - left - right) / float64(len(labels))

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	if pdf.GetY()+40 > pageHeight-bottom {
		pdf.AddPage()
	}

	pdf.Ln(8)
	pdf.SetFont(fontFamily, "", 10)
	pdf.SetTextColor(0, 0, 0)
	y := pdf.GetY()
	for i, label := range labels {
		x := left + float64(i)*width
		pdf.SetXY(x, y)
		pdf.CellFormat(width, lineHeight, tr(label), "", 0, "L", false, 0, "")
		pdf.Line(x, y+28, x+width-10, y+28)
	}
	pdf.SetY(y + 32)
}

func metaLine(layout render.Layout) string {
	parts := make([]string, 0, 3)
	if layout.Agency != "" {
		parts = append(parts, layout.Agency)
	}
	parts = append(parts, "Référence "+layout.Reference)
	if layout.IssuedOn != "" {
		parts = append(parts, layout.IssuedOn)
	}
	return strings.Join(parts, " - ")
}

func parseHex(value string) (rgb, bool) {
	value = strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(value) != 6 {
		return rgb{}, false
	}
	n, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return rgb{}, false
	}
	return rgb{int(n >> 16 & 0xff), int(n >> 8 & 0xff), int(n & 0xff)}, true
}
