package contract

// Field names as submitted by the HTML form, the JSON API and the terminal
// prompts.
const (
	FieldLastName                = "lastName"
	FieldFirstName               = "firstName"
	FieldContactInfo             = "contactInfo"
	FieldBirthDate               = "birthDate"
	FieldBirthPlace              = "birthPlace"
	FieldAddress                 = "address"
	FieldOccupation              = "occupation"
	FieldNationalIDNumber        = "nationalIdNumber"
	FieldLicenseNumber           = "licenseNumber"
	FieldPlateNumber             = "plateNumber"
	FieldVehicleMake             = "vehicleMake"
	FieldVehicleType             = "vehicleType"
	FieldDepartureDate           = "departureDate"
	FieldDepartureTime           = "departureTime"
	FieldReturnDate              = "returnDate"
	FieldReturnTime              = "returnTime"
	FieldDeliveryLocation        = "deliveryLocation"
	FieldPickupLocation          = "pickupLocation"
	FieldDestination             = "destination"
	FieldStartOdometer           = "startOdometer"
	FieldEndOdometer             = "endOdometer"
	FieldDailyRate               = "dailyRate"
	FieldPerKmRate               = "perKmRate"
	FieldAdditionalDriverName    = "additionalDriverName"
	FieldAdditionalDriverContact = "additionalDriverContact"
	FieldPaymentMethod           = "paymentMethod"
	FieldNetPayable              = "netPayable"
	FieldDeposit                 = "deposit"
	FieldFuelType                = "fuelType"
)

// Section identifiers.
const (
	SectionPersonal  = "personal"
	SectionDocuments = "documents"
	SectionVehicle   = "vehicle"
	SectionRental    = "rental"
	SectionPricing   = "pricing"
	SectionDriver    = "driver"
	SectionPayment   = "payment"
)

// FieldNames lists every field in form order.
var FieldNames = []string{
	FieldLastName,
	FieldFirstName,
	FieldContactInfo,
	FieldBirthDate,
	FieldBirthPlace,
	FieldAddress,
	FieldOccupation,
	FieldNationalIDNumber,
	FieldLicenseNumber,
	FieldPlateNumber,
	FieldVehicleMake,
	FieldVehicleType,
	FieldDepartureDate,
	FieldDepartureTime,
	FieldReturnDate,
	FieldReturnTime,
	FieldDeliveryLocation,
	FieldPickupLocation,
	FieldDestination,
	FieldStartOdometer,
	FieldEndOdometer,
	FieldDailyRate,
	FieldPerKmRate,
	FieldAdditionalDriverName,
	FieldAdditionalDriverContact,
	FieldPaymentMethod,
	FieldNetPayable,
	FieldDeposit,
	FieldFuelType,
}

// Optional reports whether name may be left empty.
func Optional(name string) bool {
	return name == FieldAdditionalDriverName || name == FieldAdditionalDriverContact
}

// Known reports whether name is a contract field.
func Known(name string) bool {
	for _, candidate := range FieldNames {
		if candidate == name {
			return true
		}
	}
	return false
}
