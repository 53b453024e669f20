// Package moneyutil provides display formatting for monetary amounts and
// rates. Calculation code works on raw decimals; only the output layer
// rounds.
package moneyutil

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Round rounds an amount to cents, half away from zero.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// Format renders an amount with its currency code, e.g. "BRL 1500.00".
func Format(amount decimal.Decimal, code string) string {
	if code == "" {
		return amount.StringFixed(2)
	}
	return code + " " + amount.StringFixed(2)
}

// Percent renders a fractional rate as a percentage, e.g. -0.48 → "-48.00%".
func Percent(rate decimal.Decimal) string {
	return rate.Mul(hundred).StringFixed(2) + "%"
}

// Annual converts a monthly amount to annual.
func Annual(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Mul(decimal.NewFromInt(12))
}

// Monthly converts an annual amount to monthly.
func Monthly(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(decimal.NewFromInt(12))
}
