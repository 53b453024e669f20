package domain

import (
	"github.com/shopspring/decimal"
)

// IncomeType categorizes a retirement income stream. Informational; it
// does not change the math.
type IncomeType string

const (
	IncomePension        IncomeType = "pension"
	IncomeSocialSecurity IncomeType = "social_security"
	IncomeRental         IncomeType = "rental"
	IncomeBusiness       IncomeType = "business"
	IncomeOther          IncomeType = "other"
)

// IncomeStream is a recurring income that starts at a given age and
// inflates at its own rate in its own currency.
type IncomeStream struct {
	Name          string          `yaml:"name" json:"name"`
	Currency      Currency        `yaml:"currency" json:"currency"`
	MonthlyAmount decimal.Decimal `yaml:"monthly_amount" json:"monthly_amount"`
	StartAge      int             `yaml:"start_age" json:"start_age"`
	InflationRate decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	Type          IncomeType      `yaml:"type" json:"type"`
}

// PortfolioEntry is one slice of the retirement portfolio with its own
// currency and expected real return. The asset-class tag is for display.
type PortfolioEntry struct {
	Currency           Currency        `yaml:"currency" json:"currency"`
	Amount             decimal.Decimal `yaml:"amount" json:"amount"`
	ExpectedRealReturn decimal.Decimal `yaml:"expected_real_return" json:"expected_real_return"`
	Class              AssetClass      `yaml:"class,omitempty" json:"class,omitempty"`
}

// RetirementInput describes a multi-currency depletion simulation. The
// base currency is where the portfolio lives; the spend currency is where
// expenses are paid. They may differ.
type RetirementInput struct {
	CurrentAge     int `yaml:"current_age" json:"current_age"`
	RetirementAge  int `yaml:"retirement_age" json:"retirement_age"`
	LifeExpectancy int `yaml:"life_expectancy" json:"life_expectancy"`

	BaseCurrency  Currency `yaml:"base_currency" json:"base_currency"`
	SpendCurrency Currency `yaml:"spend_currency" json:"spend_currency"`

	MonthlyExpenses    decimal.Decimal `yaml:"monthly_expenses" json:"monthly_expenses"` // in spend currency
	ExpenseInflation   decimal.Decimal `yaml:"expense_inflation" json:"expense_inflation"`
	SafeWithdrawalRate decimal.Decimal `yaml:"safe_withdrawal_rate" json:"safe_withdrawal_rate"`

	Incomes   []IncomeStream   `yaml:"incomes" json:"incomes"`
	Portfolio []PortfolioEntry `yaml:"portfolio" json:"portfolio"`
}

// RetirementPoint is one simulated year. All solvency logic uses
// WealthBase; WealthSpend is converted for display only.
type RetirementPoint struct {
	Age            int             `json:"age"`
	Year           int             `json:"year"`
	WealthBase     decimal.Decimal `json:"wealth_base"`
	WealthSpend    decimal.Decimal `json:"wealth_spend"`
	ExpensesBase   decimal.Decimal `json:"expenses_base"`
	IncomesBase    decimal.Decimal `json:"incomes_base"`
	WithdrawalBase decimal.Decimal `json:"withdrawal_base"`
}

// CriticalAges flags the first occurrences of solvency risk. A nil field
// means the condition never occurs within the simulated horizon.
type CriticalAges struct {
	// HighRisk is the first age at which wealth falls below 25% of the
	// then-required wealth (expenses / SWR).
	HighRisk *int `json:"high_risk,omitempty"`

	// PortfolioDepletion is the first age at which wealth reaches zero.
	PortfolioDepletion *int `json:"portfolio_depletion,omitempty"`
}

// RetirementSummary aggregates plan-level findings.
type RetirementSummary struct {
	// PortfolioGapBase is the shortfall versus required wealth at
	// retirement age, zero when the plan is fully funded.
	PortfolioGapBase decimal.Decimal `json:"portfolio_gap_base"`
	CriticalAges     CriticalAges    `json:"critical_ages"`
}

// RetirementResult is the outcome of a depletion simulation.
type RetirementResult struct {
	Series            []RetirementPoint `json:"series"`
	YearsToRetirement int               `json:"years_to_retirement"`
	Summary           RetirementSummary `json:"summary"`
}
