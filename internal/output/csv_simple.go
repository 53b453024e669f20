package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/finplan/projection-engine/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per plan
// or scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Kind", "Name", "Currency", "Key", "Value"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	write := func(kind, name, currency, key, value string) error {
		return w.Write([]string{kind, name, currency, key, value})
	}

	for _, fo := range report.Fire {
		cur := string(fo.Currency)
		r := fo.Result
		rows := [][2]string{
			{"TargetWealthReal", r.TargetWealthReal.StringFixed(2)},
			{"TargetWealthNominal", r.TargetWealthNominal.StringFixed(2)},
			{"HorizonMonths", strconv.Itoa(r.HorizonMonths)},
			{"Achievable", strconv.FormatBool(r.Achievable)},
		}
		for _, row := range rows {
			if err := write("fire", fo.Name, cur, row[0], row[1]); err != nil {
				return nil, err
			}
		}
	}

	for _, ro := range report.Retirement {
		cur := string(ro.BaseCurrency)
		r := ro.Result
		rows := [][2]string{
			{"YearsToRetirement", strconv.Itoa(r.YearsToRetirement)},
			{"PortfolioGap", r.Summary.PortfolioGapBase.StringFixed(2)},
			{"HighRiskAge", optionalAge(r.Summary.CriticalAges.HighRisk)},
			{"DepletionAge", optionalAge(r.Summary.CriticalAges.PortfolioDepletion)},
		}
		for _, row := range rows {
			if err := write("retirement", ro.Name, cur, row[0], row[1]); err != nil {
				return nil, err
			}
		}
	}

	for _, co := range report.Crisis {
		cur := string(co.BaseCurrency)
		r := co.Result
		rows := [][2]string{
			{"ValueBefore", r.ValueBefore.StringFixed(2)},
			{"ValueAfter", r.ValueAfter.StringFixed(2)},
			{"Drop", r.Drop.StringFixed(4)},
			{"TotalLoss", r.TotalLoss.StringFixed(2)},
		}
		for _, row := range rows {
			if err := write("crisis", co.Name, cur, row[0], row[1]); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func optionalAge(age *int) string {
	if age == nil {
		return ""
	}
	return strconv.Itoa(*age)
}
