package contract

import (
	"time"

	"github.com/goliatone/go-rentalcontract/pkg/pricing"
)

// Record is a validated contract. It is a plain value: copies share nothing
// and renderers cannot alter the caller's instance.
type Record struct {
	LastName         string    `json:"lastName"`
	FirstName        string    `json:"firstName"`
	ContactInfo      string    `json:"contactInfo"`
	BirthDate        time.Time `json:"birthDate"`
	BirthPlace       string    `json:"birthPlace"`
	Address          string    `json:"address"`
	Occupation       string    `json:"occupation"`
	NationalIDNumber string    `json:"nationalIdNumber"`
	LicenseNumber    string    `json:"licenseNumber"`

	PlateNumber string `json:"plateNumber"`
	VehicleMake string `json:"vehicleMake"`
	VehicleType string `json:"vehicleType"`

	DepartureDate    time.Time `json:"departureDate"`
	DepartureTime    Clock     `json:"departureTime"`
	ReturnDate       time.Time `json:"returnDate"`
	ReturnTime       Clock     `json:"returnTime"`
	DeliveryLocation string    `json:"deliveryLocation"`
	PickupLocation   string    `json:"pickupLocation"`
	Destination      string    `json:"destination"`

	StartOdometer float64 `json:"startOdometer"`
	EndOdometer   float64 `json:"endOdometer"`
	DailyRate     float64 `json:"dailyRate"`
	PerKmRate     float64 `json:"perKmRate"`

	AdditionalDriverName    string `json:"additionalDriverName,omitempty"`
	AdditionalDriverContact string `json:"additionalDriverContact,omitempty"`

	PaymentMethod PaymentMethod `json:"paymentMethod"`
	NetPayable    float64       `json:"netPayable"`
	Deposit       float64       `json:"deposit"`
	FuelType      FuelType      `json:"fuelType"`
}

// Departure combines the departure date and time of day.
func (r Record) Departure() time.Time {
	return at(r.DepartureDate, r.DepartureTime)
}

// Return combines the return date and time of day.
func (r Record) Return() time.Time {
	return at(r.ReturnDate, r.ReturnTime)
}

// HasAdditionalDriver reports whether either additional driver field is set.
func (r Record) HasAdditionalDriver() bool {
	return r.AdditionalDriverName != "" || r.AdditionalDriverContact != ""
}

// Breakdown runs the rental calculator over the departure and return
// instants.
func (r Record) Breakdown() pricing.Breakdown {
	departure, ret := r.Departure(), r.Return()
	return pricing.Compute(&departure, &ret, r.StartOdometer, r.EndOdometer, r.DailyRate, r.PerKmRate)
}

// Values renders the record back to wire values. Parse(r.Values()) yields an
// input whose Record equals r.
func (r Record) Values() Values {
	out := Values{
		FieldLastName:         r.LastName,
		FieldFirstName:        r.FirstName,
		FieldContactInfo:      r.ContactInfo,
		FieldBirthDate:        r.BirthDate.Format(DateLayout),
		FieldBirthPlace:       r.BirthPlace,
		FieldAddress:          r.Address,
		FieldOccupation:       r.Occupation,
		FieldNationalIDNumber: r.NationalIDNumber,
		FieldLicenseNumber:    r.LicenseNumber,
		FieldPlateNumber:      r.PlateNumber,
		FieldVehicleMake:      r.VehicleMake,
		FieldVehicleType:      r.VehicleType,
		FieldDepartureDate:    r.DepartureDate.Format(DateLayout),
		FieldDepartureTime:    r.DepartureTime.String(),
		FieldReturnDate:       r.ReturnDate.Format(DateLayout),
		FieldReturnTime:       r.ReturnTime.String(),
		FieldDeliveryLocation: r.DeliveryLocation,
		FieldPickupLocation:   r.PickupLocation,
		FieldDestination:      r.Destination,
		FieldStartOdometer:    FormatNumber(r.StartOdometer),
		FieldEndOdometer:      FormatNumber(r.EndOdometer),
		FieldDailyRate:        FormatNumber(r.DailyRate),
		FieldPerKmRate:        FormatNumber(r.PerKmRate),
		FieldPaymentMethod:    string(r.PaymentMethod),
		FieldNetPayable:       FormatNumber(r.NetPayable),
		FieldDeposit:          FormatNumber(r.Deposit),
		FieldFuelType:         string(r.FuelType),
	}
	if r.AdditionalDriverName != "" {
		out[FieldAdditionalDriverName] = r.AdditionalDriverName
	}
	if r.AdditionalDriverContact != "" {
		out[FieldAdditionalDriverContact] = r.AdditionalDriverContact
	}
	return out
}

func at(day time.Time, clock Clock) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, clock.Hour, clock.Minute, 0, 0, time.UTC)
}
