package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-rentalcontract/pkg/contract"
	"github.com/goliatone/go-rentalcontract/pkg/render"
)

func TestMapErrorPayload(t *testing.T) {
	payload := map[string][]string{
		"/values/dailyRate":     {"must be a string"},
		"body.lastName":         {"Le nom est requis", " Le nom est requis "},
		"$.values.fuelType":     {"Carburant : choix invalide"},
		"record/returnDate":     {"La date de retour doit être ultérieure à la date de départ"},
		"touched[3]":            {"unknown field name"},
		"non_field_errors":      {"Form level error"},
		"/values/unknown-field": {"Should fall back to form errors"},
		"":                      {"Unscoped form error"},
		"/values/perKmRate":     {"   "},
	}

	mapped := render.MapErrorPayload(contract.Form(), payload)

	wantFields := map[string][]string{
		contract.FieldDailyRate:  {"must be a string"},
		contract.FieldLastName:   {"Le nom est requis"},
		contract.FieldFuelType:   {"Carburant : choix invalide"},
		contract.FieldReturnDate: {"La date de retour doit être ultérieure à la date de départ"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{
		"unknown field name",
		"Form level error",
		"Should fall back to form errors",
		"Unscoped form error",
	}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayloadEmpty(t *testing.T) {
	mapped := render.MapErrorPayload(contract.Form(), nil)
	if mapped.Fields != nil || mapped.Form != nil {
		t.Fatalf("expected empty mapping, got %+v", mapped)
	}
}

func TestMergeFormErrors(t *testing.T) {
	got := render.MergeFormErrors([]string{"a", " b "}, "b", "", "c")
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}
