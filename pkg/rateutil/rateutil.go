// Package rateutil provides shared compounding and rate-conversion math
// used by the projection calculators.
package rateutil

import (
	"math"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// AnnualToMonthly converts an effective annual rate to the equivalent
// effective monthly rate: (1+annual)^(1/12) − 1. The 12th root has no
// exact decimal representation, so this goes through float64.
func AnnualToMonthly(annual decimal.Decimal) decimal.Decimal {
	monthly := math.Pow(1+annual.InexactFloat64(), 1.0/12.0) - 1
	return decimal.NewFromFloat(monthly)
}

// NetOfTax reduces a return by a flat tax rate: rate × (1 − taxRate).
func NetOfTax(rate, taxRate decimal.Decimal) decimal.Decimal {
	return rate.Mul(one.Sub(taxRate))
}

// NominalFromReal composes a real return with inflation:
// (1+real)(1+inflation) − 1.
func NominalFromReal(real, inflation decimal.Decimal) decimal.Decimal {
	return one.Add(real).Mul(one.Add(inflation)).Sub(one)
}

// Compound returns the growth factor (1+rate)^periods for a whole number
// of periods.
func Compound(rate decimal.Decimal, periods int) decimal.Decimal {
	return one.Add(rate).Pow(decimal.NewFromInt(int64(periods)))
}

// CompoundFractional returns the growth factor (1+rate)^exponent for a
// fractional exponent such as months/12. Goes through float64.
func CompoundFractional(rate decimal.Decimal, exponent float64) decimal.Decimal {
	return decimal.NewFromFloat(math.Pow(1+rate.InexactFloat64(), exponent))
}

// Grow applies one period of growth: value × (1+rate).
func Grow(value, rate decimal.Decimal) decimal.Decimal {
	return value.Mul(one.Add(rate))
}
