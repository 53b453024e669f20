package domain

import (
	"github.com/shopspring/decimal"
)

// Currency is a short currency code such as "BRL" or "USD". Codes are not
// validated beyond membership in a rate table.
type Currency string

// RateTable maps base currencies to quote currencies and their rates
// (units of quote per unit of base). The table preserves insertion order
// of bases and of quotes within a base, so cross-rate bridging is
// reproducible across runs. It need not be symmetric or complete.
//
// A RateTable is built once and treated as immutable for the lifetime of
// a simulation run.
type RateTable struct {
	order []Currency
	rows  map[Currency]*rateRow
}

type rateRow struct {
	order []Currency
	rates map[Currency]decimal.Decimal
}

// NewRateTable creates an empty rate table.
func NewRateTable() *RateTable {
	return &RateTable{rows: make(map[Currency]*rateRow)}
}

// Set records a direct rate from base to quote, preserving insertion order.
// Setting the same pair twice overwrites the rate without reordering.
func (t *RateTable) Set(base, quote Currency, rate decimal.Decimal) {
	row, ok := t.rows[base]
	if !ok {
		row = &rateRow{rates: make(map[Currency]decimal.Decimal)}
		t.rows[base] = row
		t.order = append(t.order, base)
	}
	if _, exists := row.rates[quote]; !exists {
		row.order = append(row.order, quote)
	}
	row.rates[quote] = rate
}

// Rate returns the direct rate from base to quote, if one is recorded.
func (t *RateTable) Rate(base, quote Currency) (decimal.Decimal, bool) {
	row, ok := t.rows[base]
	if !ok {
		return decimal.Decimal{}, false
	}
	rate, ok := row.rates[quote]
	return rate, ok
}

// Quotes returns the quote currencies recorded for base, in insertion order.
func (t *RateTable) Quotes(base Currency) []Currency {
	row, ok := t.rows[base]
	if !ok {
		return nil
	}
	return row.order
}

// Bases returns the base currencies in insertion order.
func (t *RateTable) Bases() []Currency {
	return t.order
}

// Has reports whether any rate is recorded with the given base.
func (t *RateTable) Has(base Currency) bool {
	_, ok := t.rows[base]
	return ok
}
