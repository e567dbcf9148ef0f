package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleForm() FormModel {
	return FormModel{
		ID:       "sample",
		Sections: []Section{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}},
		Fields: []Field{
			{Name: "one", Type: FieldTypeText, Section: "a"},
			{Name: "two", Type: FieldTypeSelect, Section: "b", Options: []Option{{Value: "x", Label: "Ex"}}},
			{Name: "three", Type: FieldTypeNumber, Section: "a", Metadata: map[string]string{"unit": "km"}},
		},
	}
}

func TestFormModelLookups(t *testing.T) {
	form := sampleForm()

	if got := form.FieldNames(); !cmp.Equal(got, []string{"one", "two", "three"}) {
		t.Fatalf("field names: %v", got)
	}

	field, ok := form.Field(" two ")
	if !ok {
		t.Fatalf("expected field two")
	}
	if got := field.OptionLabel("x"); got != "Ex" {
		t.Fatalf("option label = %q", got)
	}
	if got := field.OptionLabel("y"); got != "y" {
		t.Fatalf("unknown option label = %q", got)
	}
	if field.HasOption("y") {
		t.Fatalf("y is not an option")
	}

	var names []string
	for _, f := range form.SectionFields("a") {
		names = append(names, f.Name)
	}
	if diff := cmp.Diff([]string{"one", "three"}, names); diff != "" {
		t.Fatalf("section fields mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	form := sampleForm()

	out, err := Apply(form, DecoratorFunc(func(m *FormModel) error {
		m.Fields[2].Label = "Trois"
		m.Fields[2].Metadata["unit"] = "mi"
		return nil
	}))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if out.Fields[2].Label != "Trois" || out.Fields[2].Metadata["unit"] != "mi" {
		t.Fatalf("decorator not applied: %+v", out.Fields[2])
	}
	if diff := cmp.Diff(sampleForm(), form); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}
}

func TestApplyStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Apply(sampleForm(), nil, DecoratorFunc(func(*FormModel) error { return boom }))
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
