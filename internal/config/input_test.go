package config

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	testConfig := "rates:\n" +
		"  - base: \"USD\"\n" +
		"    quotes:\n" +
		"      - currency: \"BRL\"\n" +
		"        rate: 5.20\n" +
		"  - base: \"BRL\"\n" +
		"    quotes:\n" +
		"      - currency: \"USD\"\n" +
		"        rate: 0.1923\n\n" +
		"fire_plans:\n" +
		"  - name: \"Lean FIRE\"\n" +
		"    input:\n" +
		"      currency: \"BRL\"\n" +
		"      monthly_expenses: 5000\n" +
		"      monthly_contribution: 2000\n" +
		"      current_wealth: 50000\n" +
		"      inflation_rate: 0.04\n" +
		"      expected_real_return: 0.06\n" +
		"      safe_withdrawal_rate: 0.04\n" +
		"      tax_rate: 0.15\n" +
		"      max_months: 1200\n\n" +
		"retirement_plans:\n" +
		"  - name: \"Retire in Brazil\"\n" +
		"    input:\n" +
		"      current_age: 40\n" +
		"      retirement_age: 62\n" +
		"      life_expectancy: 92\n" +
		"      base_currency: \"BRL\"\n" +
		"      spend_currency: \"BRL\"\n" +
		"      monthly_expenses: 12000\n" +
		"      expense_inflation: 0.04\n" +
		"      safe_withdrawal_rate: 0.04\n" +
		"      incomes:\n" +
		"        - name: \"INSS\"\n" +
		"          currency: \"BRL\"\n" +
		"          monthly_amount: 4500\n" +
		"          start_age: 65\n" +
		"          inflation_rate: 0.04\n" +
		"          type: \"social_security\"\n" +
		"      portfolio:\n" +
		"        - currency: \"USD\"\n" +
		"          amount: 60000\n" +
		"          expected_real_return: 0.035\n" +
		"          class: \"bond\"\n"

	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.Write([]byte(testConfig))
	require.NoError(t, err)
	tmpfile.Close()

	parser := NewInputParser()
	config, err := parser.LoadFromFile(tmpfile.Name())

	require.NoError(t, err)
	require.NotNil(t, config)
	require.Len(t, config.FirePlans, 1)
	assert.Equal(t, "Lean FIRE", config.FirePlans[0].Name)
	assert.True(t, config.FirePlans[0].Input.MonthlyExpenses.Equal(decimal.NewFromInt(5000)))
	require.Len(t, config.RetirementPlans, 1)
	assert.Equal(t, "Retire in Brazil", config.RetirementPlans[0].Name)
	require.Len(t, config.RetirementPlans[0].Input.Incomes, 1)
	assert.Equal(t, 65, config.RetirementPlans[0].Input.Incomes[0].StartAge)
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.Write([]byte("rates: [unclosed"))
	require.NoError(t, err)
	tmpfile.Close()

	parser := NewInputParser()
	config, err := parser.LoadFromFile(tmpfile.Name())

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadRatesFromFile(t *testing.T) {
	testConfig := "rates:\n" +
		"  - base: \"USD\"\n" +
		"    quotes:\n" +
		"      - currency: \"BRL\"\n" +
		"        rate: 5.20\n"

	tmpfile, err := os.CreateTemp("", "test_rates_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.Write([]byte(testConfig))
	require.NoError(t, err)
	tmpfile.Close()

	parser := NewInputParser()
	table, err := parser.LoadRatesFromFile(tmpfile.Name())
	require.NoError(t, err)
	assert.True(t, table.Has("USD", "BRL"))
}

func TestValidateConfiguration_Empty(t *testing.T) {
	parser := NewInputParser()
	err := parser.ValidateConfiguration(parser.CreateExampleConfiguration())
	assert.NoError(t, err)

	config := parser.CreateExampleConfiguration()
	config.FirePlans = nil
	config.RetirementPlans = nil
	config.CrisisScenarios = nil
	err = parser.ValidateConfiguration(config)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no plans or scenarios")
}

func TestValidateConfiguration_BadRate(t *testing.T) {
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()
	config.Rates[0].Quotes[0].Rate = decimal.Zero

	err := parser.ValidateConfiguration(config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")
}

func TestValidateConfiguration_SelfQuote(t *testing.T) {
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()
	config.Rates[0].Quotes[0].Currency = config.Rates[0].Base

	err := parser.ValidateConfiguration(config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "against itself")
}

func TestValidateConfiguration_NamesFailingPlan(t *testing.T) {
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()
	config.FirePlans[0].Input.SafeWithdrawalRate = decimal.NewFromInt(3)

	err := parser.ValidateConfiguration(config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `fire plan "Lean FIRE"`)
}

func TestValidateConfiguration_UnresolvableCurrency(t *testing.T) {
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()
	config.RetirementPlans[0].Input.Portfolio[1].Currency = "JPY"

	err := parser.ValidateConfiguration(config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `retirement plan "Retire in Brazil"`)
}

func TestCreateExampleConfiguration(t *testing.T) {
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()

	require.NotNil(t, config)
	assert.NotEmpty(t, config.Rates)
	assert.NotEmpty(t, config.FirePlans)
	assert.NotEmpty(t, config.RetirementPlans)
	assert.NotEmpty(t, config.CrisisScenarios)

	// The example must pass its own validation.
	assert.NoError(t, parser.ValidateConfiguration(config))

	table := config.BuildRateTable()
	assert.True(t, table.Has("USD", "BRL"))
}
