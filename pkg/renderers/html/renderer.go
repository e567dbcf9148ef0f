package html

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-rentalcontract/pkg/model"
	"github.com/goliatone/go-rentalcontract/pkg/render"
	rendertemplate "github.com/goliatone/go-rentalcontract/pkg/render/template"
	gotemplate "github.com/goliatone/go-rentalcontract/pkg/render/template/gotemplate"
)

const (
	formTemplate     = "templates/form.tpl"
	viewTemplate     = "templates/view.tpl"
	documentTemplate = "templates/document.tpl"

	// DefaultDownloadPath receives the download forms of the contract view.
	DefaultDownloadPath = "/contract/download"
	// DefaultHomePath is linked from the contract view to start over.
	DefaultHomePath = "/"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
	downloadPath     string
	homePath         string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
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

// WithTheme sets the palette and stylesheet URL. See ThemeConfig.
func WithTheme(themeCfg *theme.RendererConfig) Option {
	return func(cfg *config) {
		if themeCfg != nil {
			cfg.theme = themeCfg
		}
	}
}

// WithDownloadPath changes where download buttons post the record.
func WithDownloadPath(path string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(path) != "" {
			cfg.downloadPath = strings.TrimSpace(path)
		}
	}
}

// WithHomePath changes the "Nouveau contrat" link target.
func WithHomePath(path string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(path) != "" {
			cfg.homePath = strings.TrimSpace(path)
		}
	}
}

// Renderer draws the form page, the contract view and the downloadable HTML
// document.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	theme        *theme.RendererConfig
	downloadPath string
	homePath     string
}

var (
	_ render.Renderer     = (*Renderer)(nil)
	_ render.FormRenderer = (*Renderer)(nil)
)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:   TemplatesFS(),
		downloadPath: DefaultDownloadPath,
		homePath:     DefaultHomePath,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.theme == nil {
		selector, err := NewSelector(DefaultThemeName, "")
		if err != nil {
			return nil, fmt.Errorf("html renderer: default theme: %w", err)
		}
		selection, err := selector.Select("", "")
		if err != nil {
			return nil, fmt.Errorf("html renderer: default theme: %w", err)
		}
		cfg.theme = ThemeConfig(selection)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:    renderer,
		theme:        cfg.theme,
		downloadPath: cfg.downloadPath,
		homePath:     cfg.homePath,
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Extension() string {
	return ".html"
}

// Render produces a self-contained page: the stylesheet is inlined so the
// downloaded file prints the same offline.
func (r *Renderer) Render(ctx context.Context, doc render.Document, options render.RenderOptions) ([]byte, error) {
	layout := render.BuildLayout(doc, options)
	inline := buildThemeView(r.theme)
	inline.Stylesheet = ""
	return r.execute(ctx, documentTemplate, map[string]any{
		"title":      layout.Title,
		"layout":     layout,
		"theme":      inline,
		"inline_css": defaultStylesheet(),
	})
}

// RenderView draws the finalized contract with one download button per
// renderer listed in options.Downloads. Each button posts options.Hidden.
func (r *Renderer) RenderView(ctx context.Context, doc render.Document, options render.RenderOptions) ([]byte, error) {
	layout := render.BuildLayout(doc, options)
	return r.execute(ctx, viewTemplate, map[string]any{
		"title":     layout.Title,
		"layout":    layout,
		"theme":     buildThemeView(r.theme),
		"hidden":    options.Hidden,
		"downloads": r.downloads(options.Downloads),
		"home":      r.homePath,
	})
}

// RenderForm draws the editable form with values and visible errors.
func (r *Renderer) RenderForm(ctx context.Context, form model.FormModel, options render.FormOptions) ([]byte, error) {
	return r.execute(ctx, formTemplate, map[string]any{
		"title": form.Title,
		"form":  buildFormView(form, options),
		"theme": buildThemeView(r.theme),
	})
}

func (r *Renderer) execute(ctx context.Context, name string, data map[string]any) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, errors.New("html renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

type downloadView struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Action string `json:"action"`
}

var downloadLabels = map[string]string{
	"pdf":  "Télécharger le PDF",
	"html": "Télécharger la page HTML",
	"text": "Télécharger le texte",
}

func (r *Renderer) downloads(names []string) []downloadView {
	out := make([]downloadView, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		label, ok := downloadLabels[name]
		if !ok {
			label = "Télécharger (" + name + ")"
		}
		out = append(out, downloadView{
			Name:   name,
			Label:  label,
			Action: r.downloadPath + "?format=" + name,
		})
	}
	return out
}
