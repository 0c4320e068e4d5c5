package emissions

import (
	"math"

	"github.com/shopspring/decimal"
)

// RoundMoney rounds a monetary value to 2 decimals.
func RoundMoney(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// RoundMassKg rounds a mass to 3-6 decimals depending on magnitude; small
// magnitudes keep more precision so real but tiny emissions do not collapse
// to zero.
func RoundMassKg(v float64) float64 {
	abs := math.Abs(v)
	places := int32(6)
	switch {
	case abs >= 1:
		places = 3
	case abs >= 0.01:
		places = 4
	}
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// RoundPower rounds watts to 1 decimal.
func RoundPower(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return f
}

// Clamp restricts a value to the range [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
