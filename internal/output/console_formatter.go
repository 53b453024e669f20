package output

import (
	"bytes"
	"fmt"

	"github.com/finplan/projection-engine/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "FINANCIAL PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")

	for _, fo := range report.Fire {
		fmt.Fprintf(&buf, "\nFIRE: %s\n", fo.Name)
		r := fo.Result
		fmt.Fprintf(&buf, "  Target (real):    %s\n", FormatMoney(r.TargetWealthReal, fo.Currency))
		fmt.Fprintf(&buf, "  Target (nominal): %s\n", FormatMoney(r.TargetWealthNominal, fo.Currency))
		if r.Achievable {
			fmt.Fprintf(&buf, "  Horizon:          %s (%d months)\n", FormatHorizon(r.HorizonMonths), r.HorizonMonths)
		} else {
			fmt.Fprintf(&buf, "  Horizon:          not reached within %d months\n", r.HorizonMonths)
		}
		fmt.Fprintf(&buf, "  Monthly real return: %s\n", FormatPercent(r.MonthlyRealReturn))
	}

	for _, ro := range report.Retirement {
		fmt.Fprintf(&buf, "\nRetirement: %s\n", ro.Name)
		r := ro.Result
		fmt.Fprintf(&buf, "  Years to retirement: %d\n", r.YearsToRetirement)
		fmt.Fprintf(&buf, "  Portfolio gap:       %s\n", FormatMoney(r.Summary.PortfolioGapBase, ro.BaseCurrency))
		if age := r.Summary.CriticalAges.HighRisk; age != nil {
			fmt.Fprintf(&buf, "  High risk from age:  %d\n", *age)
		}
		if age := r.Summary.CriticalAges.PortfolioDepletion; age != nil {
			fmt.Fprintf(&buf, "  Depleted at age:     %d\n", *age)
		} else {
			fmt.Fprintln(&buf, "  Portfolio outlives the plan")
		}
		if n := len(r.Series); n > 0 {
			last := r.Series[n-1]
			fmt.Fprintf(&buf, "  Final wealth (age %d): %s\n", last.Age, FormatMoney(last.WealthBase, ro.BaseCurrency))
		}
	}

	for _, co := range report.Crisis {
		fmt.Fprintf(&buf, "\nStress-test: %s\n", co.Name)
		r := co.Result
		fmt.Fprintf(&buf, "  Portfolio: %s -> %s (%s)\n",
			FormatMoney(r.ValueBefore, co.BaseCurrency),
			FormatMoney(r.ValueAfter, co.BaseCurrency),
			FormatPercent(r.Drop))
		for _, ci := range r.ByClass {
			fmt.Fprintf(&buf, "  %-8s %s -> %s (%s)\n", ci.Class,
				FormatMoney(ci.ValueBefore, co.BaseCurrency),
				FormatMoney(ci.ValueAfter, co.BaseCurrency),
				FormatPercent(ci.Change))
		}
		if len(r.TopLosers) > 0 {
			fmt.Fprintln(&buf, "  Top losers:")
			for _, pl := range r.TopLosers {
				fmt.Fprintf(&buf, "    %-12s -%s\n", pl.Ticker, FormatMoney(pl.Loss, co.BaseCurrency))
			}
		}
		if len(r.Sensitivities) > 0 {
			fmt.Fprintln(&buf, "  Sensitivities (isolated):")
			for _, fi := range r.Sensitivities {
				fmt.Fprintf(&buf, "    %-12s %s\n", fi.Factor, FormatMoney(fi.Impact, co.BaseCurrency))
			}
		}
	}

	return buf.Bytes(), nil
}
