// Package app assembles the form, renderers and print options from the
// contract configuration. The server and the CLI share it.
package app

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-rentalcontract/internal/config"
	"github.com/goliatone/go-rentalcontract/pkg/clauses"
	"github.com/goliatone/go-rentalcontract/pkg/contract"
	"github.com/goliatone/go-rentalcontract/pkg/locale"
	"github.com/goliatone/go-rentalcontract/pkg/model"
	"github.com/goliatone/go-rentalcontract/pkg/render"
	"github.com/goliatone/go-rentalcontract/pkg/renderers/html"
	"github.com/goliatone/go-rentalcontract/pkg/renderers/pdf"
	"github.com/goliatone/go-rentalcontract/pkg/renderers/text"
)

// BuiltinClauses selects the embedded clause set in clauses_file.
const BuiltinClauses = "builtin"

// Components holds everything needed to draw forms and documents.
type Components struct {
	Form      model.FormModel
	Pages     *html.Renderer
	Documents *render.Registry
	Theme     *theme.RendererConfig
	Print     render.RenderOptions
	Downloads []string
}

// Build wires the renderers for cfg. The PDF renderer is registered first
// and is the default download format.
func Build(cfg config.ContractConfig) (*Components, error) {
	form, err := model.Apply(contract.Form(), contract.CurrencyLabels(cfg.Currency))
	if err != nil {
		return nil, fmt.Errorf("app: decorate form: %w", err)
	}

	selector, err := html.NewSelector(cfg.Theme, cfg.Variant)
	if err != nil {
		return nil, fmt.Errorf("app: theme: %w", err)
	}
	selection, err := selector.Select("", "")
	if err != nil {
		return nil, fmt.Errorf("app: theme: %w", err)
	}
	themeCfg := html.ThemeConfig(selection)

	pages, err := html.New(html.WithTheme(themeCfg))
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	plain, err := text.New()
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	documents := render.NewRegistry()
	for _, renderer := range []render.Renderer{pdf.New(pdf.WithTheme(themeCfg)), pages, plain} {
		if err := documents.Register(renderer); err != nil {
			return nil, fmt.Errorf("app: register %s: %w", renderer.Name(), err)
		}
	}

	clauseSet, err := loadClauses(cfg.ClausesFile)
	if err != nil {
		return nil, err
	}

	downloads := make([]string, 0, len(cfg.Downloads))
	for _, name := range cfg.Downloads {
		if !documents.Has(name) {
			return nil, fmt.Errorf("app: download format %q: %w", name, render.ErrUnknownRenderer)
		}
		downloads = append(downloads, strings.ToLower(strings.TrimSpace(name)))
	}
	if len(downloads) == 0 {
		downloads = documents.List()
	}

	return &Components{
		Form:      form,
		Pages:     pages,
		Documents: documents,
		Theme:     themeCfg,
		Print: render.RenderOptions{
			Formatter: locale.New(cfg.Currency),
			Agency:    strings.TrimSpace(cfg.Agency),
			Clauses:   clauseSet,
		},
		Downloads: downloads,
	}, nil
}

func loadClauses(path string) ([]clauses.Clause, error) {
	switch strings.TrimSpace(path) {
	case "":
		return nil, nil
	case BuiltinClauses:
		set, err := clauses.Defaults()
		if err != nil {
			return nil, fmt.Errorf("app: builtin clauses: %w", err)
		}
		return set, nil
	default:
		set, err := clauses.Load(path)
		if err != nil {
			return nil, fmt.Errorf("app: clauses: %w", err)
		}
		return set, nil
	}
}
