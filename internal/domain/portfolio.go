package domain

import (
	"github.com/shopspring/decimal"
)

// AssetClass categorizes a position for sensitivity modeling.
type AssetClass string

const (
	AssetClassEquity AssetClass = "equity"
	AssetClassBond   AssetClass = "bond"
	AssetClassFII    AssetClass = "fii" // Brazilian real-estate fund, REIT-like
	AssetClassOther  AssetClass = "other"
)

// Asset identifies an instrument and carries its class-specific
// sensitivity parameters. Optional parameters are nil when unknown; an
// asset with no recognized sensitivity is left unshocked rather than
// given a guessed default.
type Asset struct {
	Ticker   string     `yaml:"ticker" json:"ticker"`
	Name     string     `yaml:"name" json:"name"`
	Class    AssetClass `yaml:"class" json:"class"`
	Currency Currency   `yaml:"currency" json:"currency"`

	// Beta is the sensitivity to the broad equity index (equity and FII).
	Beta *decimal.Decimal `yaml:"beta,omitempty" json:"beta,omitempty"`

	// DurationModified is the modified duration in years (bond and FII);
	// price moves by -duration × Δrate.
	DurationModified *decimal.Decimal `yaml:"duration_modified,omitempty" json:"duration_modified,omitempty"`

	// TracksIndex names a reference index. Informational only.
	TracksIndex string `yaml:"tracks_index,omitempty" json:"tracks_index,omitempty"`
}

// Position is an immutable snapshot of a holding. A shocked position is a
// new computed value, never an in-place update.
type Position struct {
	Asset    Asset           `yaml:"asset" json:"asset"`
	Quantity decimal.Decimal `yaml:"quantity" json:"quantity"`
	Price    decimal.Decimal `yaml:"price" json:"price"`
}

// Value returns quantity × price.
func (p Position) Value() decimal.Decimal {
	return p.Quantity.Mul(p.Price)
}

// Shock is a named set of optional stress magnitudes. A nil field means
// "no shock to this factor".
type Shock struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// EquityIndex is the fractional return applied to the broad equity
	// index, e.g. -0.4 for a 40% drawdown.
	EquityIndex *decimal.Decimal `yaml:"equity_index,omitempty" json:"equity_index,omitempty"`

	// RateLevel is the new absolute interest-rate level (not a delta).
	RateLevel *decimal.Decimal `yaml:"rate_level,omitempty" json:"rate_level,omitempty"`

	// FX is the fractional move of the foreign/local FX rate, e.g. +0.25
	// for a 25% depreciation of the local currency.
	FX *decimal.Decimal `yaml:"fx,omitempty" json:"fx,omitempty"`
}

// IsEmpty reports whether no factor is set.
func (s Shock) IsEmpty() bool {
	return s.EquityIndex == nil && s.RateLevel == nil && s.FX == nil
}

// MarketContext holds the current reference values needed to interpret a
// shock vector. Read-only input, never mutated.
type MarketContext struct {
	BaseCurrency     Currency        `yaml:"base_currency" json:"base_currency"`
	CurrentRate      decimal.Decimal `yaml:"current_rate" json:"current_rate"`
	CurrentFX        decimal.Decimal `yaml:"current_fx" json:"current_fx"`
	EquityIndexLevel decimal.Decimal `yaml:"equity_index_level" json:"equity_index_level"`
}

// ClassImpact is the before/after aggregation for one asset class.
type ClassImpact struct {
	Class       AssetClass      `json:"class"`
	ValueBefore decimal.Decimal `json:"value_before"`
	ValueAfter  decimal.Decimal `json:"value_after"`
	Change      decimal.Decimal `json:"change"` // relative, e.g. -0.48
}

// PositionLoss ranks a single position by absolute loss.
type PositionLoss struct {
	Ticker      string          `json:"ticker"`
	Name        string          `json:"name"`
	ValueBefore decimal.Decimal `json:"value_before"`
	ValueAfter  decimal.Decimal `json:"value_after"`
	Loss        decimal.Decimal `json:"loss"` // absolute, positive for a loss
}

// FactorImpact is the isolated contribution of a single shock factor,
// obtained by re-running the simulation with only that factor active.
// Factors do not sum to the combined result because of cross-terms.
type FactorImpact struct {
	Factor string          `json:"factor"`
	Impact decimal.Decimal `json:"impact"` // valueAfter(factor only) − valueBefore
}

// SimulationResult is the outcome of a crisis stress-test.
type SimulationResult struct {
	ValueBefore   decimal.Decimal `json:"value_before"`
	ValueAfter    decimal.Decimal `json:"value_after"`
	Drop          decimal.Decimal `json:"drop"`       // relative change
	TotalLoss     decimal.Decimal `json:"total_loss"` // absolute
	ByClass       []ClassImpact   `json:"by_class"`
	TopLosers     []PositionLoss  `json:"top_losers"`
	Sensitivities []FactorImpact  `json:"sensitivities"`
}
