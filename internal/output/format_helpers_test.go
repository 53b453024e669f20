package output

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "BRL 1500.00", FormatMoney(decimal.NewFromFloat(1499.995), "BRL"))
	assert.Equal(t, "42.00", FormatMoney(decimal.NewFromInt(42), ""))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "-48.00%", FormatPercent(decimal.NewFromFloat(-0.48)))
	assert.Equal(t, "0.42%", FormatPercent(decimal.NewFromFloat(0.0042)))
}

func TestFormatHorizon(t *testing.T) {
	assert.Equal(t, "7m", FormatHorizon(7))
	assert.Equal(t, "2y", FormatHorizon(24))
	assert.Equal(t, "20y 6m", FormatHorizon(246))
}
