package domain

import (
	"github.com/shopspring/decimal"
)

// QuoteSpec is one quote-currency rate inside a rate table entry. Quotes
// are a list rather than a map so that cross-rate bridging scans them in
// file order.
type QuoteSpec struct {
	Currency Currency        `yaml:"currency" json:"currency"`
	Rate     decimal.Decimal `yaml:"rate" json:"rate"`
}

// RateTableEntry declares the direct rates for one base currency.
type RateTableEntry struct {
	Base   Currency    `yaml:"base" json:"base"`
	Quotes []QuoteSpec `yaml:"quotes" json:"quotes"`
}

// FirePlan is a named FIRE calculation in a scenario file.
type FirePlan struct {
	Name  string    `yaml:"name" json:"name"`
	Input FireInput `yaml:"input" json:"input"`
}

// RetirementPlan is a named depletion simulation in a scenario file.
type RetirementPlan struct {
	Name  string          `yaml:"name" json:"name"`
	Input RetirementInput `yaml:"input" json:"input"`
}

// CrisisScenario is a named stress-test in a scenario file.
type CrisisScenario struct {
	Name      string        `yaml:"name" json:"name"`
	Market    MarketContext `yaml:"market" json:"market"`
	Shocks    Shock         `yaml:"shocks" json:"shocks"`
	Portfolio []Position    `yaml:"portfolio" json:"portfolio"`
}

// Configuration is the complete input scenario file: one rate table plus
// any number of named plans of each kind.
type Configuration struct {
	Rates           []RateTableEntry `yaml:"rates" json:"rates"`
	FirePlans       []FirePlan       `yaml:"fire_plans" json:"fire_plans"`
	RetirementPlans []RetirementPlan `yaml:"retirement_plans" json:"retirement_plans"`
	CrisisScenarios []CrisisScenario `yaml:"crisis_scenarios" json:"crisis_scenarios"`
}

// BuildRateTable materializes the declared rates, preserving file order.
func (c *Configuration) BuildRateTable() *RateTable {
	table := NewRateTable()
	for _, entry := range c.Rates {
		for _, q := range entry.Quotes {
			table.Set(entry.Base, q.Currency, q.Rate)
		}
	}
	return table
}

// FireOutcome pairs a named FIRE plan with its result. Currency is the
// plan's input currency so formatters can label amounts.
type FireOutcome struct {
	Name     string      `json:"name"`
	Currency Currency    `json:"currency"`
	Result   *FireResult `json:"result"`
}

// RetirementOutcome pairs a named retirement plan with its result.
type RetirementOutcome struct {
	Name         string            `json:"name"`
	BaseCurrency Currency          `json:"base_currency"`
	Result       *RetirementResult `json:"result"`
}

// CrisisOutcome pairs a named crisis scenario with its result.
type CrisisOutcome struct {
	Name         string            `json:"name"`
	BaseCurrency Currency          `json:"base_currency"`
	Result       *SimulationResult `json:"result"`
}

// Report gathers every evaluated scenario of a configuration for the
// output layer.
type Report struct {
	Fire       []FireOutcome       `json:"fire"`
	Retirement []RetirementOutcome `json:"retirement"`
	Crisis     []CrisisOutcome     `json:"crisis"`
}
