package output

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/finplan/projection-engine/internal/domain"
	"github.com/finplan/projection-engine/pkg/moneyutil"
)

// FormatMoney formats an amount with its currency code, e.g. "BRL 1500.00".
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatMoney(amount decimal.Decimal, currency domain.Currency) string {
	return moneyutil.Format(moneyutil.Round(amount), string(currency))
}

// FormatPercent formats a fractional rate as a percentage, e.g. "-48.00%".
func FormatPercent(rate decimal.Decimal) string {
	return moneyutil.Percent(rate)
}

// FormatHorizon renders a month count as "Xy Zm".
func FormatHorizon(months int) string {
	years := months / 12
	rem := months % 12
	switch {
	case years == 0:
		return strconv.Itoa(rem) + "m"
	case rem == 0:
		return strconv.Itoa(years) + "y"
	default:
		return strconv.Itoa(years) + "y " + strconv.Itoa(rem) + "m"
	}
}
