package domain

import (
	"github.com/shopspring/decimal"
)

// FireInput holds the assumptions for a FIRE horizon calculation. All
// rates are annual fractions (0.06 = 6%).
type FireInput struct {
	Currency            Currency        `yaml:"currency" json:"currency"`
	MonthlyExpenses     decimal.Decimal `yaml:"monthly_expenses" json:"monthly_expenses"`
	MonthlyContribution decimal.Decimal `yaml:"monthly_contribution" json:"monthly_contribution"`
	CurrentWealth       decimal.Decimal `yaml:"current_wealth" json:"current_wealth"`
	InflationRate       decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	ExpectedRealReturn  decimal.Decimal `yaml:"expected_real_return" json:"expected_real_return"`
	SafeWithdrawalRate  decimal.Decimal `yaml:"safe_withdrawal_rate" json:"safe_withdrawal_rate"`
	TaxRate             decimal.Decimal `yaml:"tax_rate" json:"tax_rate"`

	// MaxMonths is the hard ceiling on the horizon search.
	MaxMonths int `yaml:"max_months" json:"max_months"`
}

// FirePoint is one month of the accumulation series. The nominal track
// compounds at the nominal rate implied by real return plus inflation, so
// the two series diverge visibly on a chart.
type FirePoint struct {
	Month         int             `json:"month"`
	WealthNominal decimal.Decimal `json:"wealth_nominal"`
	WealthReal    decimal.Decimal `json:"wealth_real"`
}

// FireResult is the outcome of a FIRE horizon calculation. When the
// target is not reachable within MaxMonths, Achievable is false and
// HorizonMonths holds the ceiling; callers must check Achievable before
// trusting the horizon.
type FireResult struct {
	HorizonMonths       int             `json:"horizon_months"`
	TargetWealthReal    decimal.Decimal `json:"target_wealth_real"`
	TargetWealthNominal decimal.Decimal `json:"target_wealth_nominal"`
	Achievable          bool            `json:"achievable"`
	MonthlyRealReturn   decimal.Decimal `json:"monthly_real_return"`
	Series              []FirePoint     `json:"series"`
}
