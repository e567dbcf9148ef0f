package contract

import (
	"errors"
	"time"
)

// ErrIncomplete is returned by Input.Record when a required field is absent.
var ErrIncomplete = errors.New("contract: input is incomplete")

// Input is the contract under construction. Absent dates, times and numbers
// are nil, absent strings and enums are empty.
type Input struct {
	LastName         string
	FirstName        string
	ContactInfo      string
	BirthDate        *time.Time
	BirthPlace       string
	Address          string
	Occupation       string
	NationalIDNumber string
	LicenseNumber    string

	PlateNumber string
	VehicleMake string
	VehicleType string

	DepartureDate    *time.Time
	DepartureTime    *Clock
	ReturnDate       *time.Time
	ReturnTime       *Clock
	DeliveryLocation string
	PickupLocation   string
	Destination      string

	StartOdometer *float64
	EndOdometer   *float64
	DailyRate     *float64
	PerKmRate     *float64

	AdditionalDriverName    string
	AdditionalDriverContact string

	PaymentMethod PaymentMethod
	NetPayable    *float64
	Deposit       *float64
	FuelType      FuelType
}

// Parse converts raw values into an Input. Empty values stay absent. Values
// that cannot be converted are reported per field and left absent in the
// returned Input.
func Parse(values Values) (Input, map[string]*ParseError) {
	p := parser{values: values}
	in := Input{
		LastName:                values.Get(FieldLastName),
		FirstName:               values.Get(FieldFirstName),
		ContactInfo:             values.Get(FieldContactInfo),
		BirthPlace:              values.Get(FieldBirthPlace),
		Address:                 values.Get(FieldAddress),
		Occupation:              values.Get(FieldOccupation),
		NationalIDNumber:        values.Get(FieldNationalIDNumber),
		LicenseNumber:           values.Get(FieldLicenseNumber),
		PlateNumber:             values.Get(FieldPlateNumber),
		VehicleMake:             values.Get(FieldVehicleMake),
		VehicleType:             values.Get(FieldVehicleType),
		DeliveryLocation:        values.Get(FieldDeliveryLocation),
		PickupLocation:          values.Get(FieldPickupLocation),
		Destination:             values.Get(FieldDestination),
		AdditionalDriverName:    values.Get(FieldAdditionalDriverName),
		AdditionalDriverContact: values.Get(FieldAdditionalDriverContact),
	}
	in.BirthDate = p.date(FieldBirthDate)
	in.DepartureDate = p.date(FieldDepartureDate)
	in.DepartureTime = p.clock(FieldDepartureTime)
	in.ReturnDate = p.date(FieldReturnDate)
	in.ReturnTime = p.clock(FieldReturnTime)
	in.StartOdometer = p.number(FieldStartOdometer)
	in.EndOdometer = p.number(FieldEndOdometer)
	in.DailyRate = p.number(FieldDailyRate)
	in.PerKmRate = p.number(FieldPerKmRate)
	in.NetPayable = p.number(FieldNetPayable)
	in.Deposit = p.number(FieldDeposit)

	if raw := values.Get(FieldPaymentMethod); raw != "" {
		if method := PaymentMethod(raw); method.Valid() {
			in.PaymentMethod = method
		} else {
			p.fail(FieldPaymentMethod, raw, errors.New("unknown payment method"))
		}
	}
	if raw := values.Get(FieldFuelType); raw != "" {
		if fuel := FuelType(raw); fuel.Valid() {
			in.FuelType = fuel
		} else {
			p.fail(FieldFuelType, raw, errors.New("unknown fuel type"))
		}
	}
	return in, p.errs
}

type parser struct {
	values Values
	errs   map[string]*ParseError
}

func (p *parser) fail(field, raw string, err error) {
	if p.errs == nil {
		p.errs = make(map[string]*ParseError)
	}
	p.errs[field] = &ParseError{Field: field, Value: raw, Err: err}
}

func (p *parser) date(field string) *time.Time {
	raw := p.values.Get(field)
	if raw == "" {
		return nil
	}
	t, err := ParseDate(raw)
	if err != nil {
		p.fail(field, raw, err)
		return nil
	}
	return &t
}

func (p *parser) clock(field string) *Clock {
	raw := p.values.Get(field)
	if raw == "" {
		return nil
	}
	c, err := ParseClock(raw)
	if err != nil {
		p.fail(field, raw, err)
		return nil
	}
	return &c
}

func (p *parser) number(field string) *float64 {
	raw := p.values.Get(field)
	if raw == "" {
		return nil
	}
	n, err := ParseNumber(raw)
	if err != nil {
		p.fail(field, raw, err)
		return nil
	}
	return &n
}

// Present reports whether the named field holds a value.
func (in Input) Present(name string) bool {
	switch name {
	case FieldLastName:
		return in.LastName != ""
	case FieldFirstName:
		return in.FirstName != ""
	case FieldContactInfo:
		return in.ContactInfo != ""
	case FieldBirthDate:
		return in.BirthDate != nil
	case FieldBirthPlace:
		return in.BirthPlace != ""
	case FieldAddress:
		return in.Address != ""
	case FieldOccupation:
		return in.Occupation != ""
	case FieldNationalIDNumber:
		return in.NationalIDNumber != ""
	case FieldLicenseNumber:
		return in.LicenseNumber != ""
	case FieldPlateNumber:
		return in.PlateNumber != ""
	case FieldVehicleMake:
		return in.VehicleMake != ""
	case FieldVehicleType:
		return in.VehicleType != ""
	case FieldDepartureDate:
		return in.DepartureDate != nil
	case FieldDepartureTime:
		return in.DepartureTime != nil
	case FieldReturnDate:
		return in.ReturnDate != nil
	case FieldReturnTime:
		return in.ReturnTime != nil
	case FieldDeliveryLocation:
		return in.DeliveryLocation != ""
	case FieldPickupLocation:
		return in.PickupLocation != ""
	case FieldDestination:
		return in.Destination != ""
	case FieldStartOdometer:
		return in.StartOdometer != nil
	case FieldEndOdometer:
		return in.EndOdometer != nil
	case FieldDailyRate:
		return in.DailyRate != nil
	case FieldPerKmRate:
		return in.PerKmRate != nil
	case FieldAdditionalDriverName:
		return in.AdditionalDriverName != ""
	case FieldAdditionalDriverContact:
		return in.AdditionalDriverContact != ""
	case FieldPaymentMethod:
		return in.PaymentMethod != ""
	case FieldNetPayable:
		return in.NetPayable != nil
	case FieldDeposit:
		return in.Deposit != nil
	case FieldFuelType:
		return in.FuelType != ""
	default:
		return false
	}
}

// Record freezes a complete input. It fails with ErrIncomplete when a
// required field is absent; cross-field rules are the validator's concern.
func (in Input) Record() (Record, error) {
	for _, name := range FieldNames {
		if !Optional(name) && !in.Present(name) {
			return Record{}, ErrIncomplete
		}
	}
	return Record{
		LastName:                in.LastName,
		FirstName:               in.FirstName,
		ContactInfo:             in.ContactInfo,
		BirthDate:               *in.BirthDate,
		BirthPlace:              in.BirthPlace,
		Address:                 in.Address,
		Occupation:              in.Occupation,
		NationalIDNumber:        in.NationalIDNumber,
		LicenseNumber:           in.LicenseNumber,
		PlateNumber:             in.PlateNumber,
		VehicleMake:             in.VehicleMake,
		VehicleType:             in.VehicleType,
		DepartureDate:           *in.DepartureDate,
		DepartureTime:           *in.DepartureTime,
		ReturnDate:              *in.ReturnDate,
		ReturnTime:              *in.ReturnTime,
		DeliveryLocation:        in.DeliveryLocation,
		PickupLocation:          in.PickupLocation,
		Destination:             in.Destination,
		StartOdometer:           *in.StartOdometer,
		EndOdometer:             *in.EndOdometer,
		DailyRate:               *in.DailyRate,
		PerKmRate:               *in.PerKmRate,
		AdditionalDriverName:    in.AdditionalDriverName,
		AdditionalDriverContact: in.AdditionalDriverContact,
		PaymentMethod:           in.PaymentMethod,
		NetPayable:              *in.NetPayable,
		Deposit:                 *in.Deposit,
		FuelType:                in.FuelType,
	}, nil
}
