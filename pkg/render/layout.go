package render

import (
	"fmt"

	"github.com/goliatone/go-rentalcontract/pkg/locale"
)

// ContractTitle heads every contract document.
const ContractTitle = "Contrat de Location de Véhicule"

// Line is one "Label: value" row of the contract.
type Line struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// LayoutSection is a titled group of lines.
type LayoutSection struct {
	Title string `json:"title"`
	Lines []Line `json:"lines"`
}

// ClauseView is a clause ready for display. HTML carries sanitized markup,
// Text the stripped body.
type ClauseView struct {
	Title string `json:"title"`
	HTML  string `json:"html"`
	Text  string `json:"text"`
}

// Layout is the display form of a contract shared by every document
// renderer. All values are already formatted.
type Layout struct {
	Title      string          `json:"title"`
	Agency     string          `json:"agency,omitempty"`
	Reference  string          `json:"reference"`
	IssuedOn   string          `json:"issuedOn"`
	Sections   []LayoutSection `json:"sections"`
	Clauses    []ClauseView    `json:"clauses,omitempty"`
	Signatures []string        `json:"signatures"`
	Currency   string          `json:"currency"`
}

// BuildLayout formats doc for display.
func BuildLayout(doc Document, opts RenderOptions) Layout {
	f := opts.FormatterOrDefault()
	r := doc.Record
	b := doc.Breakdown

	sections := []LayoutSection{
		{
			Title: "Informations du locataire",
			Lines: []Line{
				{Label: "Nom", Value: locale.OrUnspecified(r.LastName + " " + r.FirstName)},
				{Label: "Coordonnées", Value: locale.OrUnspecified(r.ContactInfo)},
				{Label: "Date de naissance", Value: f.Date(r.BirthDate) + " à " + locale.OrUnspecified(r.BirthPlace)},
				{Label: "Adresse", Value: locale.OrUnspecified(r.Address)},
				{Label: "Profession", Value: locale.OrUnspecified(r.Occupation)},
			},
		},
		{
			Title: "Documents",
			Lines: []Line{
				{Label: "Numéro CNI", Value: locale.OrUnspecified(r.NationalIDNumber)},
				{Label: "Numéro de permis", Value: locale.OrUnspecified(r.LicenseNumber)},
			},
		},
		{
			Title: "Véhicule",
			Lines: []Line{
				{Label: "Numéro d'immatriculation", Value: locale.OrUnspecified(r.PlateNumber)},
				{Label: "Marque", Value: locale.OrUnspecified(r.VehicleMake)},
				{Label: "Type", Value: locale.OrUnspecified(r.VehicleType)},
			},
		},
		{
			Title: "Détails de la location",
			Lines: []Line{
				{Label: "Date de départ", Value: f.Date(r.DepartureDate) + " à " + f.Time(r.DepartureTime)},
				{Label: "Date de retour", Value: f.Date(r.ReturnDate) + " à " + f.Time(r.ReturnTime)},
				{Label: "Lieu de livraison", Value: locale.OrUnspecified(r.DeliveryLocation)},
				{Label: "Lieu de récupération", Value: locale.OrUnspecified(r.PickupLocation)},
				{Label: "Destination", Value: locale.OrUnspecified(r.Destination)},
			},
		},
		{
			Title: "Kilométrage et prix",
			Lines: []Line{
				{Label: "Kilométrage de départ", Value: f.Distance(r.StartOdometer)},
				{Label: "Kilométrage d'arrivée", Value: f.Distance(r.EndOdometer)},
				{Label: "Prix par jour", Value: f.Amount(r.DailyRate)},
				{Label: "Prix par km", Value: f.Amount(r.PerKmRate)},
			},
		},
	}

	if r.HasAdditionalDriver() {
		sections = append(sections, LayoutSection{
			Title: "Conducteur additionnel",
			Lines: []Line{
				{Label: "Nom", Value: locale.OrUnspecified(r.AdditionalDriverName)},
				{Label: "Coordonnées", Value: locale.OrUnspecified(r.AdditionalDriverContact)},
			},
		})
	}

	sections = append(sections, LayoutSection{
		Title: "Paiement",
		Lines: []Line{
			{Label: "Mode de paiement", Value: r.PaymentMethod.Label()},
			{Label: "Net à payer", Value: f.Amount(b.Total)},
			{Label: "Détail", Value: fmt.Sprintf("%s × %s + %s × %s",
				dayCount(b.Days), f.Amount(b.DailyRate), f.Distance(b.Kilometers), f.Amount(b.PerKmRate))},
			{Label: "Montant saisi", Value: f.Amount(r.NetPayable)},
			{Label: "Caution", Value: f.Amount(r.Deposit)},
			{Label: "Carburant", Value: r.FuelType.Label()},
		},
	})

	layout := Layout{
		Title:      ContractTitle,
		Agency:     opts.Agency,
		Reference:  doc.Reference,
		Sections:   sections,
		Signatures: []string{"Signature du locataire:", "Signature du loueur:"},
		Currency:   f.Currency(),
	}
	if !doc.IssuedAt.IsZero() {
		layout.IssuedOn = f.Date(doc.IssuedAt)
	}
	for _, clause := range opts.Clauses {
		layout.Clauses = append(layout.Clauses, ClauseView{
			Title: clause.Title,
			HTML:  clause.HTML(),
			Text:  clause.Text(),
		})
	}
	return layout
}

func dayCount(days int) string {
	if days == 1 || days == -1 || days == 0 {
		return fmt.Sprintf("%d jour", days)
	}
	return fmt.Sprintf("%d jours", days)
}
