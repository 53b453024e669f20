// Package server exposes the calculators over HTTP. The service is
// stateless: every request is computed from its body plus the exchange
// rates the server was started with.
package server

import (
	"fmt"

	"github.com/valyala/fasthttp"

	"github.com/finplan/projection-engine/internal/calculation"
	"github.com/finplan/projection-engine/internal/domain"
	"github.com/finplan/projection-engine/internal/fx"
)

// Server routes calculation requests to the engine.
type Server struct {
	fx     *fx.Service
	logger calculation.Logger
}

// New creates a server backed by the given rate table. A nil logger
// disables logging.
func New(table *domain.RateTable, logger calculation.Logger) *Server {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &Server{fx: fx.NewService(table), logger: logger}
}

// ListenAndServe blocks serving HTTP on the given address.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Infof("listening on %s", addr)
	if err := fasthttp.ListenAndServe(addr, s.HandleRequest); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// HandleRequest is the single fasthttp entry point.
func (s *Server) HandleRequest(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())
	s.logger.Debugf("%s %s", method, path)

	if path == "/healthz" {
		if method != fasthttp.MethodGet {
			s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed", nil)
			return
		}
		s.handleHealth(ctx)
		return
	}

	if method != fasthttp.MethodPost {
		s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	switch path {
	case "/api/v1/fire":
		s.handleFire(ctx)
	case "/api/v1/retirement":
		s.handleRetirement(ctx)
	case "/api/v1/crisis":
		s.handleCrisis(ctx)
	case "/api/v1/fx/convert":
		s.handleConvert(ctx)
	default:
		s.writeError(ctx, fasthttp.StatusNotFound, "not found", nil)
	}
}
