package server

import (
	"errors"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"

	"github.com/finplan/projection-engine/internal/calculation"
	"github.com/finplan/projection-engine/internal/domain"
	"github.com/finplan/projection-engine/internal/fx"
)

// ErrorResponse is the JSON body of every non-2xx answer. Problems is
// populated for validation failures so the client sees all reasons at
// once.
type ErrorResponse struct {
	Status   int      `json:"status"`
	Message  string   `json:"message"`
	Problems []string `json:"problems,omitempty"`
}

// ConvertRequest asks for a single currency conversion.
type ConvertRequest struct {
	From   domain.Currency `json:"from"`
	To     domain.Currency `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// ConvertResponse echoes the request and carries the converted amount.
type ConvertResponse struct {
	From      domain.Currency `json:"from"`
	To        domain.Currency `json:"to"`
	Amount    decimal.Decimal `json:"amount"`
	Converted decimal.Decimal `json:"converted"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	s.writeJSON(ctx, fasthttp.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleFire(ctx *fasthttp.RequestCtx) {
	var input domain.FireInput
	if !s.decode(ctx, &input) {
		return
	}

	result, err := calculation.CalcFirePlan(input)
	if err != nil {
		s.writeCalcError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, result)
}

func (s *Server) handleRetirement(ctx *fasthttp.RequestCtx) {
	var input domain.RetirementInput
	if !s.decode(ctx, &input) {
		return
	}

	result, err := calculation.CalculateRetirementPlan(input, s.fx)
	if err != nil {
		s.writeCalcError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, result)
}

func (s *Server) handleCrisis(ctx *fasthttp.RequestCtx) {
	var scenario domain.CrisisScenario
	if !s.decode(ctx, &scenario) {
		return
	}

	result, err := calculation.SimulateCrisis(scenario.Portfolio, scenario.Shocks, scenario.Market)
	if err != nil {
		s.writeCalcError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, result)
}

func (s *Server) handleConvert(ctx *fasthttp.RequestCtx) {
	var req ConvertRequest
	if !s.decode(ctx, &req) {
		return
	}
	if req.From == "" || req.To == "" {
		s.writeError(ctx, fasthttp.StatusUnprocessableEntity, "validation failed",
			[]string{"from and to currencies are required"})
		return
	}

	converted, err := s.fx.Convert(req.Amount, req.From, req.To)
	if err != nil {
		s.writeCalcError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, ConvertResponse{
		From:      req.From,
		To:        req.To,
		Amount:    req.Amount,
		Converted: converted,
	})
}

// decode parses the request body. On failure it writes a 400 and
// returns false.
func (s *Server) decode(ctx *fasthttp.RequestCtx, v interface{}) bool {
	if err := json.Unmarshal(ctx.PostBody(), v); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error(), nil)
		return false
	}
	return true
}

// writeCalcError maps calculator errors to HTTP statuses: invalid input
// is 422 with the full problem list, a missing exchange rate is 400,
// anything else 500.
func (s *Server) writeCalcError(ctx *fasthttp.RequestCtx, err error) {
	var verr *calculation.ValidationError
	if errors.As(err, &verr) {
		s.writeError(ctx, fasthttp.StatusUnprocessableEntity, "validation failed", verr.Problems)
		return
	}
	var merr *fx.MissingRateError
	if errors.As(err, &merr) {
		s.writeError(ctx, fasthttp.StatusBadRequest, err.Error(), nil)
		return
	}
	s.logger.Errorf("calculation failed: %v", err)
	s.writeError(ctx, fasthttp.StatusInternalServerError, "internal error", nil)
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, message string, problems []string) {
	s.writeJSON(ctx, status, ErrorResponse{Status: status, Message: message, Problems: problems})
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Errorf("response encoding failed: %v", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}
