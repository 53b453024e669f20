package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finplan/projection-engine/internal/domain"
	"github.com/finplan/projection-engine/internal/fx"
	"github.com/finplan/projection-engine/pkg/rateutil"
)

// highRiskFraction is the share of required wealth below which an age is
// flagged high-risk.
var highRiskFraction = decimal.NewFromFloat(0.25)

// ValidateRetirementInput enumerates every problem with a retirement
// input, including a pre-flight check that every currency in the plan is
// resolvable against the base and spend currencies. The pre-flight keeps
// a simulation from failing on a missing rate halfway through.
func ValidateRetirementInput(in domain.RetirementInput, svc *fx.Service) []string {
	var problems []string
	if in.RetirementAge <= in.CurrentAge {
		problems = append(problems, "retirement age must be greater than current age")
	}
	if in.LifeExpectancy <= in.RetirementAge {
		problems = append(problems, "life expectancy must be greater than retirement age")
	}
	if !in.MonthlyExpenses.IsPositive() {
		problems = append(problems, "monthly expenses must be positive")
	}
	if !in.SafeWithdrawalRate.IsPositive() || in.SafeWithdrawalRate.GreaterThan(one) {
		problems = append(problems, "safe withdrawal rate must be in (0, 1]")
	}
	if in.ExpenseInflation.LessThanOrEqual(one.Neg()) {
		problems = append(problems, "expense inflation must be greater than -100%")
	}

	if err := svc.CheckPair(in.SpendCurrency, in.BaseCurrency); err != nil {
		problems = append(problems, fmt.Sprintf("spend currency not convertible: %v", err))
	}
	if err := svc.CheckPair(in.BaseCurrency, in.SpendCurrency); err != nil {
		problems = append(problems, fmt.Sprintf("base currency not convertible: %v", err))
	}
	for i, income := range in.Incomes {
		if income.MonthlyAmount.IsNegative() {
			problems = append(problems, fmt.Sprintf("income %d: monthly amount cannot be negative", i))
		}
		if err := svc.CheckPair(income.Currency, in.BaseCurrency); err != nil {
			problems = append(problems, fmt.Sprintf("income %d: %v", i, err))
		}
	}
	for i, entry := range in.Portfolio {
		if entry.Amount.IsNegative() {
			problems = append(problems, fmt.Sprintf("portfolio entry %d: amount cannot be negative", i))
		}
		if entry.ExpectedRealReturn.LessThanOrEqual(one.Neg()) {
			problems = append(problems, fmt.Sprintf("portfolio entry %d: expected real return must be greater than -100%%", i))
		}
		if err := svc.CheckPair(entry.Currency, in.BaseCurrency); err != nil {
			problems = append(problems, fmt.Sprintf("portfolio entry %d: %v", i, err))
		}
	}
	return problems
}

// CalculateRetirementPlan projects year-by-year wealth, income and
// expenses across base and spend currencies until life expectancy.
//
// Each portfolio entry grows at its own expected real return, so
// post-retirement wealth evolves exactly as prior-year value-weighted
// blended growth; withdrawals are taken pro-rata across entries. Once the
// portfolio depletes, wealth is clamped at zero for all later years
// rather than compounding further negative.
func CalculateRetirementPlan(in domain.RetirementInput, svc *fx.Service) (*domain.RetirementResult, error) {
	if err := validationErr(ValidateRetirementInput(in, svc)); err != nil {
		return nil, err
	}

	// Entry values are tracked in the base currency from the start.
	values := make([]decimal.Decimal, len(in.Portfolio))
	for i, entry := range in.Portfolio {
		converted, err := svc.Convert(entry.Amount, entry.Currency, in.BaseCurrency)
		if err != nil {
			return nil, err
		}
		values[i] = converted
	}

	years := in.LifeExpectancy - in.CurrentAge
	series := make([]domain.RetirementPoint, 0, years+1)
	annualExpenses := in.MonthlyExpenses.Mul(twelve)

	var summary domain.RetirementSummary
	depleted := false

	for y := 0; y <= years; y++ {
		age := in.CurrentAge + y

		expensesSpend := annualExpenses.Mul(rateutil.Compound(in.ExpenseInflation, y))
		expensesBase, err := svc.Convert(expensesSpend, in.SpendCurrency, in.BaseCurrency)
		if err != nil {
			return nil, err
		}

		incomesBase := zero
		for _, income := range in.Incomes {
			if age < income.StartAge {
				continue
			}
			annual := income.MonthlyAmount.Mul(twelve).
				Mul(rateutil.Compound(income.InflationRate, age-income.StartAge))
			converted, err := svc.Convert(annual, income.Currency, in.BaseCurrency)
			if err != nil {
				return nil, err
			}
			incomesBase = incomesBase.Add(converted)
		}

		withdrawal := zero
		if y > 0 && !depleted {
			total := zero
			for i, entry := range in.Portfolio {
				values[i] = rateutil.Grow(values[i], entry.ExpectedRealReturn)
				total = total.Add(values[i])
			}
			if age >= in.RetirementAge {
				withdrawal = expensesBase.Sub(incomesBase)
				if withdrawal.IsNegative() {
					withdrawal = zero
				}
				remaining := total.Sub(withdrawal)
				if !remaining.IsPositive() {
					depleted = true
					for i := range values {
						values[i] = zero
					}
				} else if !total.IsZero() {
					scale := remaining.Div(total)
					for i := range values {
						values[i] = values[i].Mul(scale)
					}
				}
			}
		}

		wealth := zero
		for _, v := range values {
			wealth = wealth.Add(v)
		}

		required := expensesBase.Div(in.SafeWithdrawalRate)
		if summary.CriticalAges.HighRisk == nil && wealth.LessThan(required.Mul(highRiskFraction)) {
			a := age
			summary.CriticalAges.HighRisk = &a
		}
		if summary.CriticalAges.PortfolioDepletion == nil && wealth.LessThanOrEqual(zero) {
			a := age
			summary.CriticalAges.PortfolioDepletion = &a
			depleted = true
		}
		if age == in.RetirementAge {
			gap := required.Sub(wealth)
			if gap.IsNegative() {
				gap = zero
			}
			summary.PortfolioGapBase = gap
		}

		wealthSpend, err := svc.Convert(wealth, in.BaseCurrency, in.SpendCurrency)
		if err != nil {
			return nil, err
		}

		series = append(series, domain.RetirementPoint{
			Age:            age,
			Year:           y,
			WealthBase:     wealth,
			WealthSpend:    wealthSpend,
			ExpensesBase:   expensesBase,
			IncomesBase:    incomesBase,
			WithdrawalBase: withdrawal,
		})
	}

	return &domain.RetirementResult{
		Series:            series,
		YearsToRetirement: in.RetirementAge - in.CurrentAge,
		Summary:           summary,
	}, nil
}
