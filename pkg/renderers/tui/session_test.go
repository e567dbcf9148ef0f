package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-rentalcontract/pkg/contract"
	"github.com/goliatone/go-rentalcontract/pkg/model"
	"github.com/goliatone/go-rentalcontract/pkg/testsupport"
	"github.com/goliatone/go-rentalcontract/pkg/validation"
)

// stubDriver answers prompts by message. Unscripted prompts accept their
// default, as pressing Enter would.
type stubDriver struct {
	inputs  map[string][]string
	selects map[string]int
	confirm []bool
	fail    map[string]error

	asked      []string
	infos      []string
	validators map[string]func(string) error
	confirmPos int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.asked = append(s.asked, cfg.Message)
	if err := s.fail[cfg.Message]; err != nil {
		return "", err
	}
	if s.validators == nil {
		s.validators = make(map[string]func(string) error)
	}
	s.validators[cfg.Message] = cfg.Validator

	queue := s.inputs[cfg.Message]
	if len(queue) == 0 {
		return cfg.Default, nil
	}
	s.inputs[cfg.Message] = queue[1:]
	return queue[0], nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.asked = append(s.asked, cfg.Message)
	if s.confirmPos >= len(s.confirm) {
		return cfg.Default, nil
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.asked = append(s.asked, cfg.Message)
	if idx, ok := s.selects[cfg.Message]; ok {
		return idx, nil
	}
	return cfg.DefaultIndex, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func validAnswers() map[string][]string {
	v := testsupport.ValidValues()
	return map[string][]string{
		"Nom *":                      {v[contract.FieldLastName]},
		"Prénom *":                   {v[contract.FieldFirstName]},
		"Coordonnées *":              {v[contract.FieldContactInfo]},
		"Date de naissance *":        {v[contract.FieldBirthDate]},
		"Lieu de naissance *":        {v[contract.FieldBirthPlace]},
		"Adresse *":                  {v[contract.FieldAddress]},
		"Profession *":               {v[contract.FieldOccupation]},
		"Numéro CNI *":               {v[contract.FieldNationalIDNumber]},
		"Numéro de permis *":         {v[contract.FieldLicenseNumber]},
		"Numéro d'immatriculation *": {v[contract.FieldPlateNumber]},
		"Marque du véhicule *":       {v[contract.FieldVehicleMake]},
		"Type de véhicule *":         {v[contract.FieldVehicleType]},
		"Date de départ *":           {v[contract.FieldDepartureDate]},
		"Heure de départ *":          {v[contract.FieldDepartureTime]},
		"Date de retour *":           {v[contract.FieldReturnDate]},
		"Heure de retour *":          {v[contract.FieldReturnTime]},
		"Lieu de livraison *":        {v[contract.FieldDeliveryLocation]},
		"Lieu de récupération *":     {v[contract.FieldPickupLocation]},
		"Destination *":              {v[contract.FieldDestination]},
		"Kilométrage de départ *":    {v[contract.FieldStartOdometer]},
		"Kilométrage d'arrivée *":    {v[contract.FieldEndOdometer]},
		"Prix par jour *":            {v[contract.FieldDailyRate]},
		"Prix par km *":              {v[contract.FieldPerKmRate]},
		"Net à payer *":              {v[contract.FieldNetPayable]},
		"Caution *":                  {v[contract.FieldDeposit]},
	}
}

func validSelects() map[string]int {
	return map[string]int{
		"Mode de paiement": 1, // wave
		"Carburant":        1, // diesel
	}
}

func TestSession_RunCollectsRecord(t *testing.T) {
	driver := &stubDriver{inputs: validAnswers(), selects: validSelects(), confirm: []bool{false}}

	record, err := New(WithPromptDriver(driver)).Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := testsupport.MustRecord(t, testsupport.ValidValues())
	if diff := cmp.Diff(want, record); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}

	wantSections := []string{
		"== Informations personnelles",
		"== Documents",
		"== Véhicule",
		"== Location",
		"== Kilométrage et prix",
		"== Conducteur additionnel",
		"== Paiement",
	}
	if diff := cmp.Diff(wantSections, driver.infos); diff != "" {
		t.Fatalf("infos mismatch (-want +got):\n%s", diff)
	}
	for _, msg := range driver.asked {
		if msg == "Nom du conducteur additionnel" {
			t.Fatalf("driver fields asked although the section was declined")
		}
	}
}

func TestSession_RepromptsInvalidAnswers(t *testing.T) {
	answers := validAnswers()
	answers["Nom *"] = []string{"  ", "Diop"}
	answers["Date de retour *"] = []string{"2023-12-31", "2024-01-02"}
	answers["Prix par jour *"] = []string{"vingt mille", "20 000"}
	driver := &stubDriver{inputs: answers, selects: validSelects(), confirm: []bool{false}}

	values, err := New(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "x "})).Collect(context.Background(), nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if values[contract.FieldLastName] != "Diop" || values[contract.FieldDailyRate] != "20 000" {
		t.Fatalf("values = %v", values)
	}

	want := []string{
		"x Le nom est requis",
		"x " + validation.DateOrderingMessage,
		"x Prix par jour doit être un nombre",
	}
	var errs []string
	for _, msg := range driver.infos {
		if len(msg) > 2 && msg[:2] == "x " {
			errs = append(errs, msg)
		}
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("error messages mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_InputValidator(t *testing.T) {
	driver := &stubDriver{inputs: validAnswers(), selects: validSelects(), confirm: []bool{false}}
	if _, err := New(WithPromptDriver(driver)).Collect(context.Background(), nil); err != nil {
		t.Fatalf("collect: %v", err)
	}
	validate := driver.validators["Heure de départ *"]
	if validate == nil {
		t.Fatalf("expected a validator on the time prompt")
	}
	if err := validate("25:00"); err == nil {
		t.Fatalf("expected invalid time to be rejected")
	}
	if err := validate("09h30"); err != nil {
		t.Fatalf("valid time rejected: %v", err)
	}
}

func TestSession_DefaultsFromInitialValues(t *testing.T) {
	initial := testsupport.ValidValuesWith(map[string]string{
		contract.FieldAdditionalDriverName: "Moussa Ndiaye",
	})
	driver := &stubDriver{}

	values, err := New(WithPromptDriver(driver)).Collect(context.Background(), initial)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if diff := cmp.Diff(initial, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_DeclinedDriverClearsValues(t *testing.T) {
	initial := testsupport.ValidValuesWith(map[string]string{
		contract.FieldAdditionalDriverName:    "Moussa Ndiaye",
		contract.FieldAdditionalDriverContact: "+221 70 000 00 00",
	})
	driver := &stubDriver{confirm: []bool{false}}

	record, err := New(WithPromptDriver(driver)).Run(context.Background(), initial)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if record.HasAdditionalDriver() {
		t.Fatalf("expected additional driver cleared, got %+v", record)
	}
}

func TestSession_AdditionalDriver(t *testing.T) {
	answers := validAnswers()
	answers["Nom du conducteur additionnel"] = []string{"Moussa Ndiaye"}
	driver := &stubDriver{inputs: answers, selects: validSelects(), confirm: []bool{true}}

	record, err := New(WithPromptDriver(driver)).Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if record.AdditionalDriverName != "Moussa Ndiaye" || record.AdditionalDriverContact != "" {
		t.Fatalf("driver = %q / %q", record.AdditionalDriverName, record.AdditionalDriverContact)
	}
}

func TestSession_Aborted(t *testing.T) {
	driver := &stubDriver{
		inputs: validAnswers(),
		fail:   map[string]error{"Adresse *": ErrAborted},
	}
	_, err := New(WithPromptDriver(driver)).Collect(context.Background(), nil)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestSession_TooManyAttempts(t *testing.T) {
	driver := &stubDriver{inputs: map[string][]string{"Nom *": {"", "", ""}}}
	_, err := New(WithPromptDriver(driver), WithMaxAttempts(2)).Collect(context.Background(), nil)
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestSession_CurrencyForm(t *testing.T) {
	decorated, err := model.Apply(contract.Form(), contract.CurrencyLabels("FCFA"))
	if err != nil {
		t.Fatalf("decorate: %v", err)
	}
	driver := &stubDriver{}
	if _, err := New(WithPromptDriver(driver), WithForm(decorated)).Collect(context.Background(), testsupport.ValidValues()); err != nil {
		t.Fatalf("collect: %v", err)
	}
	for _, msg := range driver.asked {
		if msg == "Prix par jour (FCFA) *" {
			return
		}
	}
	t.Fatalf("expected the decorated labels to be prompted, asked %v", driver.asked)
}
