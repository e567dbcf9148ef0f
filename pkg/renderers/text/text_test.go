package text

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-rentalcontract/pkg/clauses"
	"github.com/goliatone/go-rentalcontract/pkg/render"
	"github.com/goliatone/go-rentalcontract/pkg/testsupport"
)

func renderText(t *testing.T, opts render.RenderOptions) string {
	t.Helper()
	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	record := testsupport.MustRecord(t, testsupport.ValidValues())
	doc := render.NewDocument(record, time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC))
	doc.Reference = "ref-0001"

	out, err := renderer.Render(context.Background(), doc, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return strings.ReplaceAll(string(out), "\u00a0", " ")
}

func TestRenderer_Metadata(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if renderer.Name() != "text" || renderer.Extension() != ".txt" || renderer.ContentType() != "text/plain; charset=utf-8" {
		t.Fatalf("metadata = %s %s %s", renderer.Name(), renderer.Extension(), renderer.ContentType())
	}
}

func TestRenderer_Render(t *testing.T) {
	out := renderText(t, render.RenderOptions{Agency: "Location Dakar"})
	lines := strings.Split(out, "\n")

	want := []string{
		"Contrat de Location de Véhicule",
		"===============================",
		"Location Dakar",
		"Référence : ref-0001",
		"Émis le : 01 janvier 2024",
		"",
		"Informations du locataire",
		"-------------------------",
		"Nom: Diop Awa",
	}
	if diff := cmp.Diff(want, lines[:len(want)]); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}

	for _, fragment := range []string{
		"Numéro d'immatriculation: DK-1234-AB",
		"Date de retour: 02 janvier 2024 à 14:00",
		"Kilométrage d'arrivée: 1 500 km",
		"Net à payer: 65 000 €",
		"Détail: 2 jours × 20 000 € + 500 km × 50 €",
		"Signature du locataire: ______",
		"Signature du loueur: ______",
	} {
		if !strings.Contains(out, fragment) {
			t.Errorf("expected output to contain %q", fragment)
		}
	}
	if strings.Contains(out, "&#39;") || strings.Contains(out, "Conditions générales") {
		t.Fatalf("unexpected escaping or clauses in output:\n%s", out)
	}
}

func TestRenderer_Clauses(t *testing.T) {
	out := renderText(t, render.RenderOptions{Clauses: []clauses.Clause{
		{ID: "fuel", Title: "Carburant", Body: "Le véhicule est rendu avec <strong>le plein</strong>."},
	}})
	if !strings.Contains(out, "Conditions générales\n--------------------\nCarburant\nLe véhicule est rendu avec le plein.\n") {
		t.Fatalf("clauses block missing:\n%s", out)
	}
}

func TestRule(t *testing.T) {
	if got := rule("Véhicule", '-'); got != "--------" {
		t.Fatalf("rule = %q", got)
	}
}
