package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/finplan/projection-engine/internal/domain"
)

// CSVSeriesExporter writes the full projection series, one row per FIRE
// month and one per simulated retirement year. Meant for spreadsheets and
// charting, not for human reading.
type CSVSeriesExporter struct{}

func (c CSVSeriesExporter) Name() string { return "detailed-csv" }

func (c CSVSeriesExporter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Kind", "Name", "Period", "Age", "WealthNominal", "WealthReal", "WealthBase", "Expenses", "Incomes", "Withdrawal"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, fo := range report.Fire {
		for _, p := range fo.Result.Series {
			row := []string{
				"fire", fo.Name, strconv.Itoa(p.Month), "",
				p.WealthNominal.StringFixed(2),
				p.WealthReal.StringFixed(2),
				"", "", "", "",
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}

	for _, ro := range report.Retirement {
		for _, p := range ro.Result.Series {
			row := []string{
				"retirement", ro.Name, strconv.Itoa(p.Year), strconv.Itoa(p.Age),
				"", "",
				p.WealthBase.StringFixed(2),
				p.ExpensesBase.StringFixed(2),
				p.IncomesBase.StringFixed(2),
				p.WithdrawalBase.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
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
