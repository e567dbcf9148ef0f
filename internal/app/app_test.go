package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-rentalcontract/internal/config"
	"github.com/goliatone/go-rentalcontract/pkg/contract"
	"github.com/goliatone/go-rentalcontract/pkg/render"
)

func TestBuild_Defaults(t *testing.T) {
	components, err := Build(config.Default().Contract)
	require.NoError(t, err)

	assert.Equal(t, []string{"html", "pdf", "text"}, components.Documents.List())
	fallback, err := components.Documents.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "pdf", fallback.Name())

	assert.Equal(t, []string{"pdf", "html", "text"}, components.Downloads)
	assert.Empty(t, components.Print.Clauses)
	assert.Equal(t, "€", components.Print.Formatter.Currency())

	field, ok := components.Form.Field(contract.FieldDailyRate)
	require.True(t, ok)
	assert.Equal(t, "Prix par jour (€)", field.Label)
	assert.Equal(t, "#1976d2", components.Theme.Tokens["primary"])
}

func TestBuild_Options(t *testing.T) {
	cfg := config.Default().Contract
	cfg.Currency = "FCFA"
	cfg.Agency = "  Location Dakar "
	cfg.Variant = "print"
	cfg.ClausesFile = BuiltinClauses
	cfg.Downloads = []string{"text"}

	components, err := Build(cfg)
	require.NoError(t, err)

	assert.Equal(t, "Location Dakar", components.Print.Agency)
	assert.NotEmpty(t, components.Print.Clauses)
	assert.Equal(t, []string{"text"}, components.Downloads)
	assert.Equal(t, "print", components.Theme.Variant)
}

func TestBuild_ClausesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clauses.yaml")
	require.NoError(t, os.WriteFile(path, []byte("clauses:\n  - id: one\n    title: Un\n    body: Premier article.\n"), 0o644))

	cfg := config.Default().Contract
	cfg.ClausesFile = path
	components, err := Build(cfg)
	require.NoError(t, err)
	require.Len(t, components.Print.Clauses, 1)
	assert.Equal(t, "Premier article.", components.Print.Clauses[0].Text())
}

func TestBuild_Errors(t *testing.T) {
	cfg := config.Default().Contract
	cfg.Downloads = []string{"docx"}
	_, err := Build(cfg)
	assert.ErrorIs(t, err, render.ErrUnknownRenderer)

	cfg = config.Default().Contract
	cfg.Theme = "acme"
	_, err = Build(cfg)
	assert.Error(t, err)

	cfg = config.Default().Contract
	cfg.ClausesFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = Build(cfg)
	assert.Error(t, err)
}
