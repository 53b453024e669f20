package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finplan/projection-engine/internal/domain"
	"github.com/finplan/projection-engine/pkg/rateutil"
)

var (
	zero   = decimal.Zero
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)

// ValidateFireInput enumerates every problem with a FIRE input. An empty
// slice means the input is valid. Validation guards all numeric edge
// cases (zero or negative denominators) so the calculator itself can
// assume validated input.
func ValidateFireInput(in domain.FireInput) []string {
	var problems []string
	if !in.MonthlyExpenses.IsPositive() {
		problems = append(problems, "monthly expenses must be positive")
	}
	if in.MonthlyContribution.IsNegative() {
		problems = append(problems, "monthly contribution cannot be negative")
	}
	if in.CurrentWealth.IsNegative() {
		problems = append(problems, "current wealth cannot be negative")
	}
	if !in.SafeWithdrawalRate.IsPositive() || in.SafeWithdrawalRate.GreaterThan(one) {
		problems = append(problems, "safe withdrawal rate must be in (0, 1]")
	}
	if in.InflationRate.LessThanOrEqual(one.Neg()) {
		problems = append(problems, "inflation rate must be greater than -100%")
	}
	if in.ExpectedRealReturn.LessThanOrEqual(one.Neg()) {
		problems = append(problems, "expected real return must be greater than -100%")
	}
	if in.TaxRate.IsNegative() || in.TaxRate.GreaterThan(one) {
		problems = append(problems, "tax rate must be in [0, 1]")
	}
	if in.MaxMonths <= 0 {
		problems = append(problems, "max months must be positive")
	}
	return problems
}

// CalcFirePlan finds the month at which accumulated wealth supports the
// target perpetual withdrawal.
//
// The tax rate is applied multiplicatively to the annual REAL return
// before the monthly conversion. Taxes actually reduce nominal gains;
// applying the rate to the real rate is a deliberate simplification kept
// from the reference model.
func CalcFirePlan(in domain.FireInput) (*domain.FireResult, error) {
	if err := validationErr(ValidateFireInput(in)); err != nil {
		return nil, err
	}

	netReal := rateutil.NetOfTax(in.ExpectedRealReturn, in.TaxRate)
	monthlyReal := rateutil.AnnualToMonthly(netReal)
	monthlyNominal := rateutil.AnnualToMonthly(rateutil.NominalFromReal(netReal, in.InflationRate))

	// Generalized 25×/SWR rule: 12 months of expenses over the SWR.
	targetReal := in.MonthlyExpenses.Mul(twelve).Div(in.SafeWithdrawalRate)

	series := make([]domain.FirePoint, 0, in.MaxMonths+1)
	wealthReal := in.CurrentWealth
	wealthNominal := in.CurrentWealth

	horizon := in.MaxMonths
	achievable := false
	for month := 0; month <= in.MaxMonths; month++ {
		if month > 0 {
			wealthReal = rateutil.Grow(wealthReal, monthlyReal).Add(in.MonthlyContribution)
			wealthNominal = rateutil.Grow(wealthNominal, monthlyNominal).Add(in.MonthlyContribution)
		}
		series = append(series, domain.FirePoint{
			Month:         month,
			WealthNominal: wealthNominal,
			WealthReal:    wealthReal,
		})
		if wealthReal.GreaterThanOrEqual(targetReal) {
			horizon = month
			achievable = true
			break
		}
	}

	targetNominal := targetReal.Mul(rateutil.CompoundFractional(in.InflationRate, float64(horizon)/12.0))

	return &domain.FireResult{
		HorizonMonths:       horizon,
		TargetWealthReal:    targetReal,
		TargetWealthNominal: targetNominal,
		Achievable:          achievable,
		MonthlyRealReturn:   monthlyReal,
		Series:              series,
	}, nil
}
