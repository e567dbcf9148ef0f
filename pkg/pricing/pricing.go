// Package pricing computes the rental amount owed for a contract.
package pricing

import (
	"math"
	"time"
)

// Day is the billing unit for the time component of a rental.
const Day = 24 * time.Hour

// Breakdown itemises a rental amount.
type Breakdown struct {
	Days           int     `json:"days"`
	Kilometers     float64 `json:"kilometers"`
	DailyRate      float64 `json:"dailyRate"`
	PerKmRate      float64 `json:"perKmRate"`
	DaysAmount     float64 `json:"daysAmount"`
	DistanceAmount float64 `json:"distanceAmount"`
	Total          float64 `json:"total"`
}

// ComputeTotal returns days*dailyRate + km*perKmRate, or 0 when either date
// is nil. Any started day is billed as a full day; a negative distance is
// charged as is.
func ComputeTotal(departure, ret *time.Time, startOdometer, endOdometer, dailyRate, perKmRate float64) float64 {
	return Compute(departure, ret, startOdometer, endOdometer, dailyRate, perKmRate).Total
}

// Compute returns the itemised form of ComputeTotal. With either date nil
// only the rates are filled in.
func Compute(departure, ret *time.Time, startOdometer, endOdometer, dailyRate, perKmRate float64) Breakdown {
	out := Breakdown{DailyRate: dailyRate, PerKmRate: perKmRate}
	if departure == nil || ret == nil {
		return out
	}

	out.Days = RentalDays(*departure, *ret)
	out.Kilometers = endOdometer - startOdometer
	out.DaysAmount = float64(out.Days) * dailyRate
	out.DistanceAmount = out.Kilometers * perKmRate
	out.Total = out.DaysAmount + out.DistanceAmount
	return out
}

// RentalDays is the elapsed time between the two instants rounded up to
// whole days.
func RentalDays(departure, ret time.Time) int {
	elapsed := ret.Sub(departure)
	return int(math.Ceil(float64(elapsed) / float64(Day)))
}
