package server

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/finplan/projection-engine/internal/domain"
)

func testServer() *Server {
	table := domain.NewRateTable()
	table.Set("USD", "BRL", decimal.NewFromFloat(5.0))
	table.Set("BRL", "USD", decimal.NewFromFloat(0.2))
	return New(table, nil)
}

func doRequest(t *testing.T, s *Server, method, path string, body interface{}) *fasthttp.RequestCtx {
	t.Helper()
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		ctx.Request.SetBody(data)
	}
	s.HandleRequest(ctx)
	return ctx
}

func TestHealthz(t *testing.T) {
	ctx := doRequest(t, testServer(), fasthttp.MethodGet, "/healthz", nil)
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestFireEndpoint(t *testing.T) {
	input := domain.FireInput{
		Currency:            "BRL",
		MonthlyExpenses:     decimal.NewFromInt(5000),
		MonthlyContribution: decimal.NewFromInt(2000),
		CurrentWealth:       decimal.NewFromInt(50000),
		InflationRate:       decimal.NewFromFloat(0.04),
		ExpectedRealReturn:  decimal.NewFromFloat(0.06),
		SafeWithdrawalRate:  decimal.NewFromFloat(0.04),
		TaxRate:             decimal.NewFromFloat(0.15),
		MaxMonths:           1200,
	}

	ctx := doRequest(t, testServer(), fasthttp.MethodPost, "/api/v1/fire", input)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var result domain.FireResult
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &result))
	assert.True(t, result.Achievable)
	assert.True(t, result.TargetWealthReal.Equal(decimal.NewFromInt(1500000)))
}

func TestFireEndpointValidationProblems(t *testing.T) {
	input := domain.FireInput{MaxMonths: 0}

	ctx := doRequest(t, testServer(), fasthttp.MethodPost, "/api/v1/fire", input)
	require.Equal(t, fasthttp.StatusUnprocessableEntity, ctx.Response.StatusCode())

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, "validation failed", resp.Message)
	assert.NotEmpty(t, resp.Problems)
}

func TestRetirementEndpoint(t *testing.T) {
	input := domain.RetirementInput{
		CurrentAge:         30,
		RetirementAge:      65,
		LifeExpectancy:     90,
		BaseCurrency:       "BRL",
		SpendCurrency:      "BRL",
		MonthlyExpenses:    decimal.NewFromInt(10000),
		SafeWithdrawalRate: decimal.NewFromFloat(0.04),
		Portfolio: []domain.PortfolioEntry{
			{
				Currency:           "USD",
				Amount:             decimal.NewFromInt(200000),
				ExpectedRealReturn: decimal.NewFromFloat(0.05),
			},
		},
	}

	ctx := doRequest(t, testServer(), fasthttp.MethodPost, "/api/v1/retirement", input)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var result domain.RetirementResult
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &result))
	require.Len(t, result.Series, 61)
	// The USD entry enters the simulation converted at 5.0.
	assert.True(t, result.Series[0].WealthBase.Equal(decimal.NewFromInt(1000000)))
}

func TestRetirementEndpointUnknownCurrency(t *testing.T) {
	input := domain.RetirementInput{
		CurrentAge:         30,
		RetirementAge:      65,
		LifeExpectancy:     90,
		BaseCurrency:       "BRL",
		SpendCurrency:      "BRL",
		MonthlyExpenses:    decimal.NewFromInt(10000),
		SafeWithdrawalRate: decimal.NewFromFloat(0.04),
		Portfolio: []domain.PortfolioEntry{
			{Currency: "JPY", Amount: decimal.NewFromInt(1000000)},
		},
	}

	ctx := doRequest(t, testServer(), fasthttp.MethodPost, "/api/v1/retirement", input)
	assert.Equal(t, fasthttp.StatusUnprocessableEntity, ctx.Response.StatusCode())
}

func TestCrisisEndpoint(t *testing.T) {
	beta := decimal.NewFromFloat(1.2)
	shock := decimal.NewFromFloat(-0.4)
	scenario := domain.CrisisScenario{
		Name: "crash",
		Market: domain.MarketContext{
			BaseCurrency:     "BRL",
			CurrentRate:      decimal.NewFromFloat(0.10),
			CurrentFX:        decimal.NewFromFloat(5.0),
			EquityIndexLevel: decimal.NewFromInt(120000),
		},
		Shocks: domain.Shock{EquityIndex: &shock},
		Portfolio: []domain.Position{
			{
				Asset:    domain.Asset{Ticker: "BOVA11", Class: domain.AssetClassEquity, Currency: "BRL", Beta: &beta},
				Quantity: decimal.NewFromInt(10),
				Price:    decimal.NewFromInt(100),
			},
		},
	}

	ctx := doRequest(t, testServer(), fasthttp.MethodPost, "/api/v1/crisis", scenario)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var result domain.SimulationResult
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &result))
	assert.True(t, result.ValueAfter.Equal(decimal.NewFromInt(520)))
}

func TestConvertEndpoint(t *testing.T) {
	req := ConvertRequest{From: "USD", To: "BRL", Amount: decimal.NewFromInt(100)}

	ctx := doRequest(t, testServer(), fasthttp.MethodPost, "/api/v1/fx/convert", req)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp ConvertResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.True(t, resp.Converted.Equal(decimal.NewFromInt(500)))
}

func TestConvertEndpointMissingRate(t *testing.T) {
	req := ConvertRequest{From: "USD", To: "JPY", Amount: decimal.NewFromInt(100)}

	ctx := doRequest(t, testServer(), fasthttp.MethodPost, "/api/v1/fx/convert", req)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Contains(t, resp.Message, "USD")
	assert.Contains(t, resp.Message, "JPY")
}

func TestConvertEndpointMissingCurrencies(t *testing.T) {
	req := ConvertRequest{Amount: decimal.NewFromInt(100)}

	ctx := doRequest(t, testServer(), fasthttp.MethodPost, "/api/v1/fx/convert", req)
	assert.Equal(t, fasthttp.StatusUnprocessableEntity, ctx.Response.StatusCode())
}

func TestMalformedBody(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodPost)
	ctx.Request.SetRequestURI("/api/v1/fire")
	ctx.Request.SetBody([]byte("{not json"))
	testServer().HandleRequest(ctx)

	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestUnknownRoute(t *testing.T) {
	ctx := doRequest(t, testServer(), fasthttp.MethodPost, "/api/v1/unknown", nil)
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}

func TestMethodNotAllowed(t *testing.T) {
	ctx := doRequest(t, testServer(), fasthttp.MethodGet, "/api/v1/fire", nil)
	assert.Equal(t, fasthttp.StatusMethodNotAllowed, ctx.Response.StatusCode())

	ctx = doRequest(t, testServer(), fasthttp.MethodPost, "/healthz", nil)
	assert.Equal(t, fasthttp.StatusMethodNotAllowed, ctx.Response.StatusCode())
}
