package fx

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finplan/projection-engine/internal/domain"
)

func testTable() *domain.RateTable {
	table := domain.NewRateTable()
	table.Set("USD", "BRL", decimal.NewFromFloat(5.0))
	table.Set("USD", "EUR", decimal.NewFromFloat(0.9))
	table.Set("EUR", "BRL", decimal.NewFromFloat(5.5))
	return table
}

func TestConvertIdentity(t *testing.T) {
	svc := NewService(domain.NewRateTable())

	// Identity must be exact even on an empty table.
	amount := decimal.NewFromFloat(1234.56)
	got, err := svc.Convert(amount, "BRL", "BRL")
	require.NoError(t, err)
	assert.True(t, got.Equal(amount))
}

func TestConvertDirect(t *testing.T) {
	svc := NewService(testTable())

	got, err := svc.Convert(decimal.NewFromInt(100), "USD", "BRL")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(500)), "expected 500, got %s", got)
}

func TestConvertCrossRate(t *testing.T) {
	table := domain.NewRateTable()
	// No direct BRL→EUR rate; both quote USD.
	table.Set("BRL", "USD", decimal.NewFromFloat(0.2))
	table.Set("EUR", "USD", decimal.NewFromFloat(1.1))
	svc := NewService(table)

	got, err := svc.Convert(decimal.NewFromInt(110), "BRL", "EUR")
	require.NoError(t, err)
	// rate = 0.2 / 1.1, so 110 × 0.2/1.1 = 20
	assert.True(t, got.Equal(decimal.NewFromInt(20)), "expected 20, got %s", got)
}

func TestConvertCrossPicksFirstCommonCurrency(t *testing.T) {
	table := domain.NewRateTable()
	// Two possible bridges with inconsistent implied rates; insertion
	// order must make the first one win deterministically.
	table.Set("AAA", "XXX", decimal.NewFromInt(2))
	table.Set("AAA", "YYY", decimal.NewFromInt(10))
	table.Set("BBB", "XXX", decimal.NewFromInt(4))
	table.Set("BBB", "YYY", decimal.NewFromInt(5))
	svc := NewService(table)

	got, err := svc.Convert(decimal.NewFromInt(1), "AAA", "BBB")
	require.NoError(t, err)
	// Bridged through XXX (first quote of AAA): 2/4 = 0.5, not 10/5 = 2.
	assert.True(t, got.Equal(decimal.NewFromFloat(0.5)), "expected 0.5, got %s", got)
}

func TestConvertCrossConsistency(t *testing.T) {
	// With a consistent table, chaining A→B then B→C equals the direct A→C.
	table := domain.NewRateTable()
	table.Set("A", "B", decimal.NewFromInt(2))
	table.Set("B", "C", decimal.NewFromInt(3))
	table.Set("A", "C", decimal.NewFromInt(6))
	svc := NewService(table)

	ab, err := svc.Convert(decimal.NewFromInt(1), "A", "B")
	require.NoError(t, err)
	chained, err := svc.Convert(ab, "B", "C")
	require.NoError(t, err)
	direct, err := svc.Convert(decimal.NewFromInt(1), "A", "C")
	require.NoError(t, err)
	assert.True(t, chained.Equal(direct), "chained %s != direct %s", chained, direct)
}

func TestConvertMissingRate(t *testing.T) {
	svc := NewService(testTable())

	_, err := svc.Convert(decimal.NewFromInt(1), "JPY", "BRL")
	require.Error(t, err)

	var missing *MissingRateError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, domain.Currency("JPY"), missing.From)
	assert.Equal(t, domain.Currency("BRL"), missing.To)
}

func TestCheckPair(t *testing.T) {
	svc := NewService(testTable())

	assert.NoError(t, svc.CheckPair("USD", "BRL"))
	assert.NoError(t, svc.CheckPair("GBP", "GBP"))
	assert.Error(t, svc.CheckPair("GBP", "BRL"))
}
