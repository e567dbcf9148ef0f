package validation

import (
	"fmt"

	"github.com/goliatone/go-rentalcontract/pkg/contract"
	"github.com/goliatone/go-rentalcontract/pkg/model"
)

// Rule is one predicate of a field. Check returns true when the input
// satisfies the rule.
type Rule struct {
	Kind    Kind
	Message string
	Check   func(contract.Input) bool
}

// Required fails when field holds no value.
func Required(field, message string) Rule {
	return Rule{
		Kind:    KindRequired,
		Message: message,
		Check: func(in contract.Input) bool {
			return in.Present(field)
		},
	}
}

// ReturnAfterDeparture fails when both dates are set and the return date is
// not strictly later than the departure date. Times of day are ignored.
func ReturnAfterDeparture(message string) Rule {
	return Rule{
		Kind:    KindDateOrdering,
		Message: message,
		Check: func(in contract.Input) bool {
			if in.DepartureDate == nil || in.ReturnDate == nil {
				return true
			}
			return in.ReturnDate.After(*in.DepartureDate)
		},
	}
}

// Schema is an ordered rule table. The first failing rule of a field is that
// field's only error.
type Schema struct {
	order   []string
	rules   map[string][]Rule
	invalid map[string]string
}

// NewSchema returns an empty schema.
func NewSchema() *Schema {
	return &Schema{
		rules:   make(map[string][]Rule),
		invalid: make(map[string]string),
	}
}

// Add appends rules to field, registering the field on first use.
func (s *Schema) Add(field string, rules ...Rule) *Schema {
	if _, ok := s.rules[field]; !ok {
		s.order = append(s.order, field)
	}
	s.rules[field] = append(s.rules[field], rules...)
	return s
}

// InvalidMessage sets the message reported when field cannot be parsed.
func (s *Schema) InvalidMessage(field, message string) *Schema {
	s.invalid[field] = message
	return s
}

// Fields lists the fields with rules, in registration order.
func (s *Schema) Fields() []string {
	return append([]string(nil), s.order...)
}

// Rules returns a copy of the rules registered for field.
func (s *Schema) Rules(field string) []Rule {
	return append([]Rule(nil), s.rules[field]...)
}

// CheckField evaluates the rules of a single field.
func (s *Schema) CheckField(in contract.Input, field string) (FieldError, bool) {
	for _, rule := range s.rules[field] {
		if rule.Check == nil || rule.Check(in) {
			continue
		}
		return FieldError{Field: field, Kind: rule.Kind, Message: rule.Message}, true
	}
	return FieldError{}, false
}

// Check evaluates every field. The result is empty when in is valid.
func (s *Schema) Check(in contract.Input) FieldErrors {
	errs := make(FieldErrors)
	for _, field := range s.order {
		if fieldErr, failed := s.CheckField(in, field); failed {
			errs[field] = fieldErr
		}
	}
	return errs
}

// CheckValues parses values then evaluates every field. A value that cannot
// be parsed reports KindInvalidValue in place of the field's rules.
func (s *Schema) CheckValues(values contract.Values) (contract.Input, FieldErrors) {
	in, parseErrs := contract.Parse(values)
	errs := s.Check(in)
	for field := range parseErrs {
		errs[field] = FieldError{Field: field, Kind: KindInvalidValue, Message: s.invalidMessage(field)}
	}
	return in, errs
}

// Validate checks in as a whole and freezes it into a Record on success. On
// failure the error is a FieldErrors.
func (s *Schema) Validate(in contract.Input) (contract.Record, error) {
	if errs := s.Check(in); len(errs) > 0 {
		return contract.Record{}, errs
	}
	return freeze(in)
}

// ValidateValues parses and validates raw values.
func (s *Schema) ValidateValues(values contract.Values) (contract.Record, error) {
	in, errs := s.CheckValues(values)
	if len(errs) > 0 {
		return contract.Record{}, errs
	}
	return freeze(in)
}

func (s *Schema) invalidMessage(field string) string {
	if msg, ok := s.invalid[field]; ok {
		return msg
	}
	return "Valeur invalide"
}

func freeze(in contract.Input) (contract.Record, error) {
	record, err := in.Record()
	if err != nil {
		return contract.Record{}, fmt.Errorf("validation: %w", err)
	}
	return record, nil
}

var requiredMessages = map[string]string{
	contract.FieldLastName:         "Le nom est requis",
	contract.FieldFirstName:        "Le prénom est requis",
	contract.FieldContactInfo:      "Les coordonnées sont requises",
	contract.FieldBirthDate:        "La date de naissance est requise",
	contract.FieldBirthPlace:       "Le lieu de naissance est requis",
	contract.FieldAddress:          "L'adresse est requise",
	contract.FieldOccupation:       "La profession est requise",
	contract.FieldNationalIDNumber: "Le numéro CNI est requis",
	contract.FieldLicenseNumber:    "Le numéro de permis est requis",
	contract.FieldPlateNumber:      "Le numéro d'immatriculation est requis",
	contract.FieldVehicleMake:      "La marque du véhicule est requise",
	contract.FieldVehicleType:      "Le type de véhicule est requis",
	contract.FieldDepartureDate:    "La date de départ est requise",
	contract.FieldDepartureTime:    "L'heure de départ est requise",
	contract.FieldReturnDate:       "La date de retour est requise",
	contract.FieldReturnTime:       "L'heure de retour est requise",
	contract.FieldDeliveryLocation: "Le lieu de livraison est requis",
	contract.FieldPickupLocation:   "Le lieu de récupération est requis",
	contract.FieldDestination:      "La destination est requise",
	contract.FieldStartOdometer:    "Le kilométrage de départ est requis",
	contract.FieldEndOdometer:      "Le kilométrage d'arrivée est requis",
	contract.FieldDailyRate:        "Le prix par jour est requis",
	contract.FieldPerKmRate:        "Le prix par km est requis",
	contract.FieldPaymentMethod:    "Le mode de paiement est requis",
	contract.FieldNetPayable:       "Le net à payer est requis",
	contract.FieldDeposit:          "La caution est requise",
	contract.FieldFuelType:         "Le carburant est requis",
}

// DateOrderingMessage is attached to the return date when it does not follow
// the departure date.
const DateOrderingMessage = "La date de retour doit être ultérieure à la date de départ"

// DefaultSchema builds the rental contract rules from the declared form.
func DefaultSchema() *Schema {
	s := NewSchema()
	for _, field := range contract.Form().Fields {
		if !field.Required {
			continue
		}
		s.Add(field.Name, Required(field.Name, requiredMessages[field.Name]))
		if msg := invalidMessageFor(field); msg != "" {
			s.InvalidMessage(field.Name, msg)
		}
	}
	s.Add(contract.FieldReturnDate, ReturnAfterDeparture(DateOrderingMessage))
	return s
}

func invalidMessageFor(field model.Field) string {
	switch field.Type {
	case model.FieldTypeNumber:
		return fmt.Sprintf("%s doit être un nombre", field.Label)
	case model.FieldTypeDate:
		return fmt.Sprintf("%s : date invalide", field.Label)
	case model.FieldTypeTime:
		return fmt.Sprintf("%s : heure invalide (HH:MM)", field.Label)
	case model.FieldTypeSelect:
		return fmt.Sprintf("%s : choix invalide", field.Label)
	default:
		return ""
	}
}

var defaultSchema = DefaultSchema()

// Validate checks in against the default rules.
func Validate(in contract.Input) (contract.Record, error) {
	return defaultSchema.Validate(in)
}

// ValidateValues parses and checks raw values against the default rules.
func ValidateValues(values contract.Values) (contract.Record, error) {
	return defaultSchema.ValidateValues(values)
}

// ValidateField evaluates a single field against the default rules.
func ValidateField(in contract.Input, field string) (FieldError, bool) {
	return defaultSchema.CheckField(in, field)
}

// Check evaluates raw values against the default rules without freezing.
func Check(values contract.Values) FieldErrors {
	_, errs := defaultSchema.CheckValues(values)
	return errs
}
