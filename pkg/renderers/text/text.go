// Package text renders the finalized contract as plain text for terminals
// and .txt downloads.
package text

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-rentalcontract/pkg/render"
	rendertemplate "github.com/goliatone/go-rentalcontract/pkg/render/template"
	gotemplate "github.com/goliatone/go-rentalcontract/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

const contractTemplate = "templates/contract.tpl"

// TemplatesFS exposes the embedded plain-text template.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("text renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string        { return "text" }
func (r *Renderer) ContentType() string { return "text/plain; charset=utf-8" }
func (r *Renderer) Extension() string   { return ".txt" }

func (r *Renderer) Render(ctx context.Context, doc render.Document, options render.RenderOptions) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, errors.New("text renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	layout := render.BuildLayout(doc, options)

	sections := make([]section, 0, len(layout.Sections))
	for _, s := range layout.Sections {
		sections = append(sections, section{
			Title: s.Title,
			Rule:  rule(s.Title, '-'),
			Lines: s.Lines,
		})
	}

	out, err := r.templates.RenderTemplate(contractTemplate, map[string]any{
		"layout":     layout,
		"title_rule": rule(layout.Title, '='),
		"sections":   sections,
	})
	if err != nil {
		return nil, fmt.Errorf("text renderer: render template: %w", err)
	}
	return []byte(out), nil
}

type section struct {
	Title string        `json:"title"`
	Rule  string        `json:"rule"`
	Lines []render.Line `json:"lines"`
}

func rule(title string, char rune) string {
	return strings.Repeat(string(char), utf8.RuneCountInString(title))
}
