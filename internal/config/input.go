package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/finplan/projection-engine/internal/calculation"
	"github.com/finplan/projection-engine/internal/domain"
	"github.com/finplan/projection-engine/internal/fx"
)

// InputParser handles parsing of scenario configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// LoadRatesFromFile loads only the exchange rate table from a
// configuration file. Used by the HTTP server, which needs rates but no
// plans.
func (ip *InputParser) LoadRatesFromFile(filename string) (*domain.RateTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.validateRates(config.Rates); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config.BuildRateTable(), nil
}

// ValidateConfiguration validates the loaded configuration. Every plan
// is checked against the same rules the calculators apply, so a file
// that loads cleanly will also run cleanly.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateRates(config.Rates); err != nil {
		return err
	}

	if len(config.FirePlans)+len(config.RetirementPlans)+len(config.CrisisScenarios) == 0 {
		return fmt.Errorf("no plans or scenarios provided")
	}

	svc := fx.NewService(config.BuildRateTable())

	for _, plan := range config.FirePlans {
		if plan.Name == "" {
			return fmt.Errorf("fire plan without a name")
		}
		if problems := calculation.ValidateFireInput(plan.Input); len(problems) > 0 {
			return fmt.Errorf("fire plan %q: %w", plan.Name, &calculation.ValidationError{Problems: problems})
		}
	}

	for _, plan := range config.RetirementPlans {
		if plan.Name == "" {
			return fmt.Errorf("retirement plan without a name")
		}
		if problems := calculation.ValidateRetirementInput(plan.Input, svc); len(problems) > 0 {
			return fmt.Errorf("retirement plan %q: %w", plan.Name, &calculation.ValidationError{Problems: problems})
		}
	}

	for _, scenario := range config.CrisisScenarios {
		if scenario.Name == "" {
			return fmt.Errorf("crisis scenario without a name")
		}
		if problems := calculation.ValidateShocks(scenario.Shocks); len(problems) > 0 {
			return fmt.Errorf("crisis scenario %q: %w", scenario.Name, &calculation.ValidationError{Problems: problems})
		}
	}

	return nil
}

// validateRates checks each declared exchange rate
func (ip *InputParser) validateRates(rates []domain.RateTableEntry) error {
	for _, entry := range rates {
		if entry.Base == "" {
			return fmt.Errorf("rate table entry without a base currency")
		}
		for _, q := range entry.Quotes {
			if q.Currency == "" {
				return fmt.Errorf("rate for %s without a quote currency", entry.Base)
			}
			if q.Currency == entry.Base {
				return fmt.Errorf("rate %s/%s quotes a currency against itself", entry.Base, q.Currency)
			}
			if q.Rate.LessThanOrEqual(decimal.Zero) {
				return fmt.Errorf("rate %s/%s must be positive, got %s", entry.Base, q.Currency, q.Rate)
			}
		}
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	beta := decimal.NewFromFloat(1.05)
	duration := decimal.NewFromFloat(4.2)
	equityShock := decimal.NewFromFloat(-0.40)
	rateShock := decimal.NewFromFloat(0.145)
	fxShock := decimal.NewFromFloat(0.25)

	return &domain.Configuration{
		Rates: []domain.RateTableEntry{
			{
				Base: "USD",
				Quotes: []domain.QuoteSpec{
					{Currency: "BRL", Rate: decimal.NewFromFloat(5.20)},
					{Currency: "EUR", Rate: decimal.NewFromFloat(0.92)},
				},
			},
			{
				Base: "BRL",
				Quotes: []domain.QuoteSpec{
					{Currency: "USD", Rate: decimal.NewFromFloat(0.1923)},
				},
			},
			{
				Base: "EUR",
				Quotes: []domain.QuoteSpec{
					{Currency: "USD", Rate: decimal.NewFromFloat(1.0870)},
				},
			},
		},
		FirePlans: []domain.FirePlan{
			{
				Name: "Lean FIRE",
				Input: domain.FireInput{
					Currency:            "BRL",
					MonthlyExpenses:     decimal.NewFromInt(5000),
					MonthlyContribution: decimal.NewFromInt(2000),
					CurrentWealth:       decimal.NewFromInt(50000),
					InflationRate:       decimal.NewFromFloat(0.04),
					ExpectedRealReturn:  decimal.NewFromFloat(0.06),
					SafeWithdrawalRate:  decimal.NewFromFloat(0.04),
					TaxRate:             decimal.NewFromFloat(0.15),
					MaxMonths:           1200,
				},
			},
		},
		RetirementPlans: []domain.RetirementPlan{
			{
				Name: "Retire in Brazil",
				Input: domain.RetirementInput{
					CurrentAge:         40,
					RetirementAge:      62,
					LifeExpectancy:     92,
					BaseCurrency:       "BRL",
					SpendCurrency:      "BRL",
					MonthlyExpenses:    decimal.NewFromInt(12000),
					ExpenseInflation:   decimal.NewFromFloat(0.04),
					SafeWithdrawalRate: decimal.NewFromFloat(0.04),
					Incomes: []domain.IncomeStream{
						{
							Name:          "INSS",
							Currency:      "BRL",
							MonthlyAmount: decimal.NewFromInt(4500),
							StartAge:      65,
							InflationRate: decimal.NewFromFloat(0.04),
							Type:          domain.IncomeSocialSecurity,
						},
					},
					Portfolio: []domain.PortfolioEntry{
						{
							Currency:           "BRL",
							Amount:             decimal.NewFromInt(800000),
							ExpectedRealReturn: decimal.NewFromFloat(0.05),
							Class:              domain.AssetClassEquity,
						},
						{
							Currency:           "USD",
							Amount:             decimal.NewFromInt(60000),
							ExpectedRealReturn: decimal.NewFromFloat(0.035),
							Class:              domain.AssetClassBond,
						},
					},
				},
			},
		},
		CrisisScenarios: []domain.CrisisScenario{
			{
				Name: "2008 replay",
				Market: domain.MarketContext{
					BaseCurrency:     "BRL",
					CurrentRate:      decimal.NewFromFloat(0.105),
					CurrentFX:        decimal.NewFromFloat(5.20),
					EquityIndexLevel: decimal.NewFromInt(128000),
				},
				Shocks: domain.Shock{
					Name:        "2008 replay",
					EquityIndex: &equityShock,
					RateLevel:   &rateShock,
					FX:          &fxShock,
				},
				Portfolio: []domain.Position{
					{
						Asset: domain.Asset{
							Ticker:      "BOVA11",
							Name:        "Ibovespa ETF",
							Class:       domain.AssetClassEquity,
							Currency:    "BRL",
							Beta:        &beta,
							TracksIndex: "IBOV",
						},
						Quantity: decimal.NewFromInt(2000),
						Price:    decimal.NewFromFloat(102.50),
					},
					{
						Asset: domain.Asset{
							Ticker:           "NTN-B 2035",
							Name:             "Inflation-linked treasury",
							Class:            domain.AssetClassBond,
							Currency:         "BRL",
							DurationModified: &duration,
						},
						Quantity: decimal.NewFromInt(50),
						Price:    decimal.NewFromFloat(4100),
					},
					{
						Asset: domain.Asset{
							Ticker:   "VT",
							Name:     "Global equity ETF",
							Class:    domain.AssetClassEquity,
							Currency: "USD",
							Beta:     &beta,
						},
						Quantity: decimal.NewFromInt(300),
						Price:    decimal.NewFromFloat(98.40),
					},
				},
			},
		},
	}
}
