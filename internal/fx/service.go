// Package fx resolves currency conversions over an immutable rate table,
// bridging through a common quote currency when no direct rate exists.
package fx

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finplan/projection-engine/internal/domain"
)

// MissingRateError reports that no direct or bridgeable rate exists for a
// currency pair. It indicates an incomplete caller-supplied rate table
// and must propagate; conversions never silently default to 1.0.
type MissingRateError struct {
	From domain.Currency
	To   domain.Currency
}

func (e *MissingRateError) Error() string {
	return fmt.Sprintf("no rate from %s to %s", e.From, e.To)
}

// Service converts amounts between currencies using a fixed rate table.
// A Service is safe for concurrent use: the table is never mutated after
// construction.
type Service struct {
	table *domain.RateTable
}

// NewService creates a converter over the given table.
func NewService(table *domain.RateTable) *Service {
	return &Service{table: table}
}

// Convert converts amount from one currency to another. Identity
// conversions return the amount unchanged and exact.
func (s *Service) Convert(amount decimal.Decimal, from, to domain.Currency) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	rate, err := s.rate(from, to)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return amount.Mul(rate), nil
}

// CheckPair reports whether a conversion between two currencies would
// resolve, without converting anything. Used as a pre-flight check so a
// simulation cannot fail mid-run on a missing rate.
func (s *Service) CheckPair(from, to domain.Currency) error {
	if from == to {
		return nil
	}
	_, err := s.rate(from, to)
	return err
}

// rate resolves the from→to rate: direct if recorded, otherwise bridged
// through the first quote currency of `from` (in table-insertion order)
// that `to` also quotes. The fixed scan order keeps results reproducible.
func (s *Service) rate(from, to domain.Currency) (decimal.Decimal, error) {
	if direct, ok := s.table.Rate(from, to); ok {
		return direct, nil
	}
	for _, common := range s.table.Quotes(from) {
		toCommon, ok := s.table.Rate(to, common)
		if !ok || toCommon.IsZero() {
			continue
		}
		fromCommon, _ := s.table.Rate(from, common)
		// rate(from→to) = rate(from→X) / rate(to→X)
		return fromCommon.Div(toCommon), nil
	}
	return decimal.Decimal{}, &MissingRateError{From: from, To: to}
}
