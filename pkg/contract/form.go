package contract

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-rentalcontract/pkg/model"
)

// Metadata keys understood by renderers.
const (
	MetaUnit      = "unit"
	UnitCurrency  = "currency"
	UnitKilometer = "km"
)

// Form declares the rental contract form in the order it is presented.
func Form() model.FormModel {
	return model.FormModel{
		ID:     "rental-contract",
		Title:  "Formulaire de Location de Véhicule",
		Action: "/contract",
		Method: "POST",
		Submit: "Générer le contrat",
		Sections: []model.Section{
			{ID: SectionPersonal, Title: "Informations personnelles"},
			{ID: SectionDocuments, Title: "Documents"},
			{ID: SectionVehicle, Title: "Véhicule"},
			{ID: SectionRental, Title: "Location"},
			{ID: SectionPricing, Title: "Kilométrage et prix"},
			{ID: SectionDriver, Title: "Conducteur additionnel"},
			{ID: SectionPayment, Title: "Paiement"},
		},
		Fields: []model.Field{
			text(FieldLastName, "Nom", SectionPersonal),
			text(FieldFirstName, "Prénom", SectionPersonal),
			text(FieldContactInfo, "Coordonnées", SectionPersonal),
			date(FieldBirthDate, "Date de naissance", SectionPersonal),
			text(FieldBirthPlace, "Lieu de naissance", SectionPersonal),
			text(FieldAddress, "Adresse", SectionPersonal),
			text(FieldOccupation, "Profession", SectionPersonal),

			text(FieldNationalIDNumber, "Numéro CNI", SectionDocuments),
			text(FieldLicenseNumber, "Numéro de permis", SectionDocuments),

			text(FieldPlateNumber, "Numéro d'immatriculation", SectionVehicle),
			text(FieldVehicleMake, "Marque du véhicule", SectionVehicle),
			text(FieldVehicleType, "Type de véhicule", SectionVehicle),

			date(FieldDepartureDate, "Date de départ", SectionRental),
			clock(FieldDepartureTime, "Heure de départ", SectionRental),
			date(FieldReturnDate, "Date de retour", SectionRental),
			clock(FieldReturnTime, "Heure de retour", SectionRental),
			text(FieldDeliveryLocation, "Lieu de livraison", SectionRental),
			text(FieldPickupLocation, "Lieu de récupération", SectionRental),
			text(FieldDestination, "Destination", SectionRental),

			number(FieldStartOdometer, "Kilométrage de départ", SectionPricing, UnitKilometer),
			number(FieldEndOdometer, "Kilométrage d'arrivée", SectionPricing, UnitKilometer),
			number(FieldDailyRate, "Prix par jour", SectionPricing, UnitCurrency),
			number(FieldPerKmRate, "Prix par km", SectionPricing, UnitCurrency),

			optional(text(FieldAdditionalDriverName, "Nom du conducteur additionnel", SectionDriver)),
			optional(text(FieldAdditionalDriverContact, "Coordonnées du conducteur additionnel", SectionDriver)),

			choice(FieldPaymentMethod, "Mode de paiement", SectionPayment, paymentOptions()),
			number(FieldNetPayable, "Net à payer", SectionPayment, UnitCurrency),
			number(FieldDeposit, "Caution", SectionPayment, UnitCurrency),
			choice(FieldFuelType, "Carburant", SectionPayment, fuelOptions()),
		},
	}
}

// CurrencyLabels suffixes the label of every currency field with symbol, as
// in "Prix par jour (€)".
func CurrencyLabels(symbol string) model.Decorator {
	symbol = strings.TrimSpace(symbol)
	return model.DecoratorFunc(func(form *model.FormModel) error {
		if symbol == "" {
			return nil
		}
		for i := range form.Fields {
			if form.Fields[i].Metadata[MetaUnit] == UnitCurrency {
				form.Fields[i].Label = fmt.Sprintf("%s (%s)", form.Fields[i].Label, symbol)
			}
		}
		return nil
	})
}

func text(name, label, section string) model.Field {
	return model.Field{Name: name, Type: model.FieldTypeText, Label: label, Section: section, Required: true}
}

func date(name, label, section string) model.Field {
	field := text(name, label, section)
	field.Type = model.FieldTypeDate
	field.Placeholder = "AAAA-MM-JJ"
	return field
}

func clock(name, label, section string) model.Field {
	field := text(name, label, section)
	field.Type = model.FieldTypeTime
	field.Placeholder = "HH:MM"
	return field
}

func number(name, label, section, unit string) model.Field {
	field := text(name, label, section)
	field.Type = model.FieldTypeNumber
	field.Metadata = map[string]string{MetaUnit: unit}
	return field
}

func choice(name, label, section string, options []model.Option) model.Field {
	field := text(name, label, section)
	field.Type = model.FieldTypeSelect
	field.Options = options
	return field
}

func optional(field model.Field) model.Field {
	field.Required = false
	return field
}

func paymentOptions() []model.Option {
	out := make([]model.Option, 0, len(PaymentMethods))
	for _, method := range PaymentMethods {
		out = append(out, model.Option{Value: string(method), Label: method.Label()})
	}
	return out
}

func fuelOptions() []model.Option {
	out := make([]model.Option, 0, len(FuelTypes))
	for _, fuel := range FuelTypes {
		out = append(out, model.Option{Value: string(fuel), Label: fuel.Label()})
	}
	return out
}
