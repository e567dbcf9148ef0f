package render_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-rentalcontract/pkg/clauses"
	"github.com/goliatone/go-rentalcontract/pkg/contract"
	"github.com/goliatone/go-rentalcontract/pkg/locale"
	"github.com/goliatone/go-rentalcontract/pkg/render"
	"github.com/goliatone/go-rentalcontract/pkg/testsupport"
)

func layoutFor(t *testing.T, overrides map[string]string, opts render.RenderOptions) render.Layout {
	t.Helper()
	record := testsupport.MustRecord(t, testsupport.ValidValuesWith(overrides))
	doc := render.NewDocument(record, time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC))
	return render.BuildLayout(doc, opts)
}

func sectionTitles(layout render.Layout) []string {
	out := make([]string, 0, len(layout.Sections))
	for _, section := range layout.Sections {
		out = append(out, section.Title)
	}
	return out
}

func lineValue(t *testing.T, layout render.Layout, section, label string) string {
	t.Helper()
	for _, s := range layout.Sections {
		if s.Title != section {
			continue
		}
		for _, line := range s.Lines {
			if line.Label == label {
				return line.Value
			}
		}
	}
	t.Fatalf("line %s/%s not found", section, label)
	return ""
}

func squash(s string) string {
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == '\u00a0' }), " ")
}

func TestBuildLayoutSections(t *testing.T) {
	layout := layoutFor(t, nil, render.RenderOptions{})
	want := []string{
		"Informations du locataire",
		"Documents",
		"Véhicule",
		"Détails de la location",
		"Kilométrage et prix",
		"Paiement",
	}
	if diff := cmp.Diff(want, sectionTitles(layout)); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}
	if layout.Title != render.ContractTitle || layout.IssuedOn != "01 janvier 2024" {
		t.Fatalf("header = %q %q", layout.Title, layout.IssuedOn)
	}
	if diff := cmp.Diff([]string{"Signature du locataire:", "Signature du loueur:"}, layout.Signatures); diff != "" {
		t.Fatalf("signatures mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildLayoutValues(t *testing.T) {
	layout := layoutFor(t, nil, render.RenderOptions{})

	cases := []struct {
		section, label, want string
	}{
		{"Informations du locataire", "Nom", "Diop Awa"},
		{"Informations du locataire", "Date de naissance", "17 mai 1990 à Thiès"},
		{"Détails de la location", "Date de départ", "01 janvier 2024 à 10:00"},
		{"Détails de la location", "Date de retour", "02 janvier 2024 à 14:00"},
		{"Kilométrage et prix", "Kilométrage de départ", "1 000 km"},
		{"Kilométrage et prix", "Prix par jour", "20 000 €"},
		{"Paiement", "Mode de paiement", "Wave"},
		{"Paiement", "Net à payer", "65 000 €"},
		{"Paiement", "Détail", "2 jours × 20 000 € + 500 km × 50 €"},
		{"Paiement", "Montant saisi", "65 000 €"},
		{"Paiement", "Caution", "100 000 €"},
		{"Paiement", "Carburant", "Diesel"},
	}
	for _, tc := range cases {
		if got := squash(lineValue(t, layout, tc.section, tc.label)); got != tc.want {
			t.Errorf("%s/%s = %q, want %q", tc.section, tc.label, got, tc.want)
		}
	}
}

func TestBuildLayoutAdditionalDriver(t *testing.T) {
	layout := layoutFor(t, map[string]string{contract.FieldAdditionalDriverName: "Moussa Ndiaye"}, render.RenderOptions{})
	if got := lineValue(t, layout, "Conducteur additionnel", "Nom"); got != "Moussa Ndiaye" {
		t.Fatalf("driver name = %q", got)
	}
	if got := lineValue(t, layout, "Conducteur additionnel", "Coordonnées"); got != locale.Unspecified {
		t.Fatalf("driver contact = %q", got)
	}
}

func TestBuildLayoutOptions(t *testing.T) {
	layout := layoutFor(t, nil, render.RenderOptions{
		Formatter: locale.New("FCFA"),
		Agency:    "Location Dakar",
		Clauses:   []clauses.Clause{{ID: "a", Title: "Usage", Body: "Ne pas <em>sous-louer</em>."}},
	})
	if layout.Agency != "Location Dakar" || layout.Currency != "FCFA" {
		t.Fatalf("agency/currency = %q %q", layout.Agency, layout.Currency)
	}
	if got := squash(lineValue(t, layout, "Paiement", "Net à payer")); got != "65 000 FCFA" {
		t.Fatalf("net = %q", got)
	}
	want := []render.ClauseView{{Title: "Usage", HTML: "Ne pas <em>sous-louer</em>.", Text: "Ne pas sous-louer."}}
	if diff := cmp.Diff(want, layout.Clauses); diff != "" {
		t.Fatalf("clauses mismatch (-want +got):\n%s", diff)
	}
}
