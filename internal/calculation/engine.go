package calculation

import (
	"fmt"

	"github.com/finplan/projection-engine/internal/domain"
	"github.com/finplan/projection-engine/internal/fx"
)

// Engine evaluates a whole configuration of named scenarios. The
// calculators themselves are pure functions; the engine only supplies
// the shared FX service and logging.
type Engine struct {
	Debug  bool
	Logger Logger
}

// NewEngine creates an engine with a no-op logger.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// RunConfiguration evaluates every plan and scenario in the configuration
// against its rate table and gathers the outcomes for the output layer.
// The first failing scenario aborts the run; nothing partial is returned.
func (e *Engine) RunConfiguration(config *domain.Configuration) (*domain.Report, error) {
	svc := fx.NewService(config.BuildRateTable())
	report := &domain.Report{}

	for _, plan := range config.FirePlans {
		e.Logger.Infof("calculating FIRE plan %q", plan.Name)
		result, err := CalcFirePlan(plan.Input)
		if err != nil {
			return nil, fmt.Errorf("fire plan %q: %w", plan.Name, err)
		}
		if e.Debug {
			e.Logger.Debugf("  target (real): %s", result.TargetWealthReal.StringFixed(2))
			e.Logger.Debugf("  horizon: %d months (achievable=%v)", result.HorizonMonths, result.Achievable)
		}
		report.Fire = append(report.Fire, domain.FireOutcome{Name: plan.Name, Currency: plan.Input.Currency, Result: result})
	}

	for _, plan := range config.RetirementPlans {
		e.Logger.Infof("simulating retirement plan %q", plan.Name)
		result, err := CalculateRetirementPlan(plan.Input, svc)
		if err != nil {
			return nil, fmt.Errorf("retirement plan %q: %w", plan.Name, err)
		}
		report.Retirement = append(report.Retirement, domain.RetirementOutcome{Name: plan.Name, BaseCurrency: plan.Input.BaseCurrency, Result: result})
	}

	for _, scenario := range config.CrisisScenarios {
		e.Logger.Infof("stress-testing %q", scenario.Name)
		result, err := SimulateCrisis(scenario.Portfolio, scenario.Shocks, scenario.Market)
		if err != nil {
			return nil, fmt.Errorf("crisis scenario %q: %w", scenario.Name, err)
		}
		report.Crisis = append(report.Crisis, domain.CrisisOutcome{Name: scenario.Name, BaseCurrency: scenario.Market.BaseCurrency, Result: result})
	}

	return report, nil
}
