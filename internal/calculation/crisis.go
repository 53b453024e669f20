package calculation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finplan/projection-engine/internal/domain"
)

// topLoserCount is how many positions the loss ranking reports.
const topLoserCount = 5

// ValidateShocks enumerates every problem with a shock vector. An empty
// slice means the vector is valid (an entirely empty vector is valid and
// means "no shock").
func ValidateShocks(shocks domain.Shock) []string {
	var problems []string
	if shocks.EquityIndex != nil && shocks.EquityIndex.LessThan(one.Neg()) {
		problems = append(problems, "equity index shock cannot be below -100%")
	}
	if shocks.RateLevel != nil && (!shocks.RateLevel.IsPositive() || shocks.RateLevel.GreaterThanOrEqual(one)) {
		problems = append(problems, "rate level must be in (0, 1)")
	}
	if shocks.FX != nil && shocks.FX.LessThanOrEqual(one.Neg()) {
		problems = append(problems, "fx shock must be greater than -100%")
	}
	return problems
}

// SimulateCrisis applies a combined shock vector to a portfolio and
// decomposes the loss by factor. Input positions are never mutated; a
// shocked position is a freshly computed value.
//
// The per-factor sensitivities re-run the whole simulation with a single
// factor active, so they do not sum to the combined loss when cross-terms
// exist (an equity shock on a foreign-currency asset interacting with the
// FX shock). That non-additivity is intentional and must not be rescaled
// away.
func SimulateCrisis(positions []domain.Position, shocks domain.Shock, market domain.MarketContext) (*domain.SimulationResult, error) {
	if err := validationErr(ValidateShocks(shocks)); err != nil {
		return nil, err
	}

	result := runShock(positions, shocks, market)

	var factors []domain.FactorImpact
	if shocks.EquityIndex != nil {
		iso := runShock(positions, domain.Shock{EquityIndex: shocks.EquityIndex}, market)
		factors = append(factors, domain.FactorImpact{Factor: "equity_index", Impact: iso.ValueAfter.Sub(iso.ValueBefore)})
	}
	if shocks.RateLevel != nil {
		iso := runShock(positions, domain.Shock{RateLevel: shocks.RateLevel}, market)
		factors = append(factors, domain.FactorImpact{Factor: "rate_level", Impact: iso.ValueAfter.Sub(iso.ValueBefore)})
	}
	if shocks.FX != nil {
		iso := runShock(positions, domain.Shock{FX: shocks.FX}, market)
		factors = append(factors, domain.FactorImpact{Factor: "fx", Impact: iso.ValueAfter.Sub(iso.ValueBefore)})
	}
	// Tornado ordering: largest isolated magnitude first.
	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Impact.Abs().GreaterThan(factors[j].Impact.Abs())
	})
	result.Sensitivities = factors

	return result, nil
}

// runShock evaluates one shock vector over the portfolio and fills in
// everything except the factor decomposition.
func runShock(positions []domain.Position, shocks domain.Shock, market domain.MarketContext) *domain.SimulationResult {
	valueBefore := zero
	valueAfter := zero

	classOrder := make([]domain.AssetClass, 0, 4)
	classBefore := make(map[domain.AssetClass]decimal.Decimal)
	classAfter := make(map[domain.AssetClass]decimal.Decimal)

	losses := make([]domain.PositionLoss, 0, len(positions))

	for _, pos := range positions {
		before := pos.Value()
		after := shockedValue(pos, shocks, market)

		valueBefore = valueBefore.Add(before)
		valueAfter = valueAfter.Add(after)

		class := pos.Asset.Class
		if _, seen := classBefore[class]; !seen {
			classOrder = append(classOrder, class)
		}
		classBefore[class] = classBefore[class].Add(before)
		classAfter[class] = classAfter[class].Add(after)

		losses = append(losses, domain.PositionLoss{
			Ticker:      pos.Asset.Ticker,
			Name:        pos.Asset.Name,
			ValueBefore: before,
			ValueAfter:  after,
			Loss:        before.Sub(after),
		})
	}

	byClass := make([]domain.ClassImpact, 0, len(classOrder))
	for _, class := range classOrder {
		byClass = append(byClass, domain.ClassImpact{
			Class:       class,
			ValueBefore: classBefore[class],
			ValueAfter:  classAfter[class],
			Change:      relativeChange(classBefore[class], classAfter[class]),
		})
	}

	sort.SliceStable(losses, func(i, j int) bool {
		return losses[i].Loss.GreaterThan(losses[j].Loss)
	})
	if len(losses) > topLoserCount {
		losses = losses[:topLoserCount]
	}

	return &domain.SimulationResult{
		ValueBefore: valueBefore,
		ValueAfter:  valueAfter,
		Drop:        relativeChange(valueBefore, valueAfter),
		TotalLoss:   valueBefore.Sub(valueAfter),
		ByClass:     byClass,
		TopLosers:   losses,
	}
}

// shockedValue computes the post-shock value of a single position using
// the per-asset-class sensitivity model:
//
//   - equity and FII with beta: Δ = beta × equity index shock
//   - bond and FII with modified duration: Δ = -duration × (rate level −
//     current rate); an absent rate level means no rate shock
//   - foreign-currency assets additionally compound (1 + fx shock)
//   - foreign-currency assets with neither beta nor duration take the fx
//     shock alone
//
// An asset with no recognized sensitivity parameter is left unshocked.
// "Unknown risk, assume flat" is a deliberate policy: guessing a default
// beta would invent losses the inputs don't support.
func shockedValue(pos domain.Position, shocks domain.Shock, market domain.MarketContext) decimal.Decimal {
	asset := pos.Asset
	value := pos.Value()

	equitySensitive := asset.Beta != nil &&
		(asset.Class == domain.AssetClassEquity || asset.Class == domain.AssetClassFII)
	durationSensitive := asset.DurationModified != nil &&
		(asset.Class == domain.AssetClassBond || asset.Class == domain.AssetClassFII)

	fxFactor := one
	if asset.Currency != market.BaseCurrency && shocks.FX != nil {
		fxFactor = one.Add(*shocks.FX)
	}

	if !equitySensitive && !durationSensitive {
		return value.Mul(fxFactor)
	}

	delta := zero
	if equitySensitive && shocks.EquityIndex != nil {
		delta = delta.Add(asset.Beta.Mul(*shocks.EquityIndex))
	}
	if durationSensitive {
		rateLevel := market.CurrentRate
		if shocks.RateLevel != nil {
			rateLevel = *shocks.RateLevel
		}
		// Modified-duration approximation: price moves inversely and
		// linearly with the rate delta.
		delta = delta.Sub(asset.DurationModified.Mul(rateLevel.Sub(market.CurrentRate)))
	}

	return value.Mul(one.Add(delta)).Mul(fxFactor)
}

func relativeChange(before, after decimal.Decimal) decimal.Decimal {
	if before.IsZero() {
		return zero
	}
	return after.Sub(before).Div(before)
}
