// Package rentalcontract validates vehicle rental submissions and issues the
// contract as a PDF, HTML or text document.
package rentalcontract

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-rentalcontract/pkg/contract"
	"github.com/goliatone/go-rentalcontract/pkg/render"
	"github.com/goliatone/go-rentalcontract/pkg/renderers/html"
	"github.com/goliatone/go-rentalcontract/pkg/renderers/pdf"
	"github.com/goliatone/go-rentalcontract/pkg/renderers/text"
	"github.com/goliatone/go-rentalcontract/pkg/validation"
)

// Values are the raw answers keyed by field name.
type Values = contract.Values

// Record is a validated submission.
type Record = contract.Record

// Document is an issued contract.
type Document = render.Document

// RenderOptions carry the formatter, agency and clauses.
type RenderOptions = render.RenderOptions

// FieldErrors is returned when a submission fails validation.
type FieldErrors = validation.FieldErrors

// Option configures a Generator.
type Option func(*Generator)

// WithRegistry replaces the default pdf/html/text registry.
func WithRegistry(registry *render.Registry) Option {
	return func(g *Generator) {
		if registry != nil {
			g.documents = registry
		}
	}
}

// WithRenderOptions sets the options passed to every renderer.
func WithRenderOptions(options RenderOptions) Option {
	return func(g *Generator) {
		g.options = options
	}
}

// Generator validates values and renders the resulting contract.
type Generator struct {
	documents *render.Registry
	options   RenderOptions
}

// Result is one rendered contract.
type Result struct {
	Document    Document
	FileName    string
	ContentType string
	Body        []byte
}

// New returns a generator with the PDF, HTML and text renderers. PDF is the
// default format.
func New(options ...Option) (*Generator, error) {
	g := &Generator{}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	if g.documents == nil {
		registry, err := DefaultRegistry()
		if err != nil {
			return nil, err
		}
		g.documents = registry
	}
	return g, nil
}

// DefaultRegistry registers pdf, html and text in that order.
func DefaultRegistry() (*render.Registry, error) {
	page, err := html.New()
	if err != nil {
		return nil, err
	}
	plain, err := text.New()
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	for _, renderer := range []render.Renderer{pdf.New(), page, plain} {
		if err := registry.Register(renderer); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Formats lists the available formats.
func (g *Generator) Formats() []string {
	return g.documents.List()
}

// Validate checks values and returns the frozen record. Failures are
// FieldErrors.
func (g *Generator) Validate(values Values) (Record, error) {
	return validation.ValidateValues(values)
}

// Issue validates values, issues a contract at now and renders it in format.
// An empty format selects the default.
func (g *Generator) Issue(ctx context.Context, values Values, format string, now time.Time) (Result, error) {
	renderer, err := g.documents.Resolve(format)
	if err != nil {
		return Result{}, err
	}
	record, err := g.Validate(values)
	if err != nil {
		return Result{}, err
	}
	doc := render.NewDocument(record, now)
	body, err := renderer.Render(ctx, doc, g.options)
	if err != nil {
		return Result{}, fmt.Errorf("rentalcontract: render %s: %w", renderer.Name(), err)
	}
	return Result{
		Document:    doc,
		FileName:    doc.FileNameFor(renderer),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}
