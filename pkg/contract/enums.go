package contract

// PaymentMethod is the settlement channel chosen by the renter.
type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "cash"
	PaymentWave        PaymentMethod = "wave"
	PaymentOrangeMoney PaymentMethod = "orange-money"
	PaymentCard        PaymentMethod = "card"
	PaymentTransfer    PaymentMethod = "transfer"
)

// PaymentMethods lists the accepted payment methods in display order.
var PaymentMethods = []PaymentMethod{
	PaymentCash,
	PaymentWave,
	PaymentOrangeMoney,
	PaymentCard,
	PaymentTransfer,
}

var paymentLabels = map[PaymentMethod]string{
	PaymentCash:        "Espèces",
	PaymentWave:        "Wave",
	PaymentOrangeMoney: "Orange Money",
	PaymentCard:        "Carte bancaire",
	PaymentTransfer:    "Virement",
}

// Valid reports whether p is one of the declared methods.
func (p PaymentMethod) Valid() bool {
	_, ok := paymentLabels[p]
	return ok
}

// Label returns the French display label.
func (p PaymentMethod) Label() string {
	if label, ok := paymentLabels[p]; ok {
		return label
	}
	return string(p)
}

// FuelType is the vehicle energy source.
type FuelType string

const (
	FuelGasoline FuelType = "gasoline"
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "electric"
)

// FuelTypes lists the accepted fuel types in display order.
var FuelTypes = []FuelType{FuelGasoline, FuelDiesel, FuelElectric}

var fuelLabels = map[FuelType]string{
	FuelGasoline: "Essence",
	FuelDiesel:   "Diesel",
	FuelElectric: "Électrique",
}

// Valid reports whether f is one of the declared fuel types.
func (f FuelType) Valid() bool {
	_, ok := fuelLabels[f]
	return ok
}

// Label returns the French display label.
func (f FuelType) Label() string {
	if label, ok := fuelLabels[f]; ok {
		return label
	}
	return string(f)
}
