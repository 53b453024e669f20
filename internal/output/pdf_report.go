package output

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/finplan/projection-engine/internal/domain"
)

const (
	pdfMarginLeft   = 15.0
	pdfMarginTop    = 15.0
	pdfMarginRight  = 15.0
	pdfMarginBottom = 20.0
	pdfContentWidth = 210.0 - pdfMarginLeft - pdfMarginRight // A4 portrait
)

// PDFFormatter renders the report as a printable PDF document.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) Format(report *domain.Report) ([]byte, error) {
	doc := newPDFReport(report)
	doc.build()

	var buf bytes.Buffer
	if err := doc.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf generation failed: %w", err)
	}
	return buf.Bytes(), nil
}

type pdfReport struct {
	pdf    *fpdf.Fpdf
	report *domain.Report
}

func newPDFReport(report *domain.Report) *pdfReport {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetAutoPageBreak(true, pdfMarginBottom)
	return &pdfReport{pdf: pdf, report: report}
}

func (r *pdfReport) build() {
	r.titlePage()
	for _, fo := range r.report.Fire {
		r.firePage(fo)
	}
	for _, ro := range r.report.Retirement {
		r.retirementPage(ro)
	}
	for _, co := range r.report.Crisis {
		r.crisisPage(co)
	}
}

func (r *pdfReport) titlePage() {
	r.pdf.AddPage()
	r.pdf.SetFont("Arial", "B", 28)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.Ln(50)
	r.pdf.CellFormat(pdfContentWidth, 15, "Financial Projection Report", "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "I", 11)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.Ln(10)
	r.pdf.CellFormat(pdfContentWidth, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2 January 2006")), "", 1, "C", false, 0, "")

	counts := fmt.Sprintf("%d FIRE plan(s), %d retirement plan(s), %d stress-test(s)",
		len(r.report.Fire), len(r.report.Retirement), len(r.report.Crisis))
	r.pdf.Ln(5)
	r.pdf.SetFont("Arial", "", 11)
	r.pdf.CellFormat(pdfContentWidth, 8, counts, "", 1, "C", false, 0, "")
}

func (r *pdfReport) sectionTitle(title string) {
	r.pdf.AddPage()
	r.pdf.SetFont("Arial", "B", 16)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(pdfContentWidth, 10, title, "", 1, "L", false, 0, "")
	r.pdf.Ln(4)
}

func (r *pdfReport) keyValue(key, value string) {
	r.pdf.SetFont("Arial", "", 11)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.CellFormat(70, 7, key, "", 0, "L", false, 0, "")
	r.pdf.SetFont("Arial", "B", 11)
	r.pdf.CellFormat(pdfContentWidth-70, 7, value, "", 1, "L", false, 0, "")
}

func (r *pdfReport) tableHeader(widths []float64, cells []string) {
	r.pdf.SetFont("Arial", "B", 10)
	r.pdf.SetFillColor(245, 247, 250)
	r.pdf.SetDrawColor(200, 200, 200)
	r.pdf.SetTextColor(0, 51, 102)
	for i, cell := range cells {
		r.pdf.CellFormat(widths[i], 8, cell, "1", 0, "C", true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) tableRow(widths []float64, cells []string) {
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
	for i, cell := range cells {
		r.pdf.CellFormat(widths[i], 7, cell, "1", 0, "R", false, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) firePage(fo domain.FireOutcome) {
	r.sectionTitle("FIRE Plan: " + fo.Name)
	res := fo.Result

	r.keyValue("Target wealth (real)", FormatMoney(res.TargetWealthReal, fo.Currency))
	r.keyValue("Target wealth (nominal)", FormatMoney(res.TargetWealthNominal, fo.Currency))
	if res.Achievable {
		r.keyValue("Horizon", fmt.Sprintf("%s (%d months)", FormatHorizon(res.HorizonMonths), res.HorizonMonths))
	} else {
		r.keyValue("Horizon", fmt.Sprintf("not reached within %d months", res.HorizonMonths))
	}
	r.keyValue("Monthly real return", FormatPercent(res.MonthlyRealReturn))

	// Yearly milestones keep the table on one page.
	r.pdf.Ln(6)
	widths := []float64{30, 75, 75}
	r.tableHeader(widths, []string{"Month", "Wealth (nominal)", "Wealth (real)"})
	for _, p := range res.Series {
		if p.Month%12 != 0 && p.Month != res.HorizonMonths {
			continue
		}
		r.tableRow(widths, []string{
			strconv.Itoa(p.Month),
			p.WealthNominal.StringFixed(2),
			p.WealthReal.StringFixed(2),
		})
	}
}

func (r *pdfReport) retirementPage(ro domain.RetirementOutcome) {
	r.sectionTitle("Retirement Plan: " + ro.Name)
	res := ro.Result

	r.keyValue("Years to retirement", strconv.Itoa(res.YearsToRetirement))
	r.keyValue("Portfolio gap", FormatMoney(res.Summary.PortfolioGapBase, ro.BaseCurrency))
	if age := res.Summary.CriticalAges.HighRisk; age != nil {
		r.keyValue("High risk from age", strconv.Itoa(*age))
	}
	if age := res.Summary.CriticalAges.PortfolioDepletion; age != nil {
		r.keyValue("Portfolio depleted at age", strconv.Itoa(*age))
	} else {
		r.keyValue("Portfolio depletion", "not within the plan horizon")
	}

	r.pdf.Ln(6)
	widths := []float64{20, 45, 40, 40, 35}
	r.tableHeader(widths, []string{"Age", "Wealth", "Expenses", "Incomes", "Withdrawal"})
	for i, p := range res.Series {
		if i%5 != 0 && i != len(res.Series)-1 {
			continue
		}
		r.tableRow(widths, []string{
			strconv.Itoa(p.Age),
			p.WealthBase.StringFixed(2),
			p.ExpensesBase.StringFixed(2),
			p.IncomesBase.StringFixed(2),
			p.WithdrawalBase.StringFixed(2),
		})
	}
}

func (r *pdfReport) crisisPage(co domain.CrisisOutcome) {
	r.sectionTitle("Stress-Test: " + co.Name)
	res := co.Result

	r.keyValue("Portfolio before", FormatMoney(res.ValueBefore, co.BaseCurrency))
	r.keyValue("Portfolio after", FormatMoney(res.ValueAfter, co.BaseCurrency))
	r.keyValue("Drop", FormatPercent(res.Drop))
	r.keyValue("Total loss", FormatMoney(res.TotalLoss, co.BaseCurrency))

	if len(res.ByClass) > 0 {
		r.pdf.Ln(6)
		widths := []float64{40, 50, 50, 40}
		r.tableHeader(widths, []string{"Class", "Before", "After", "Change"})
		for _, ci := range res.ByClass {
			r.tableRow(widths, []string{
				string(ci.Class),
				ci.ValueBefore.StringFixed(2),
				ci.ValueAfter.StringFixed(2),
				FormatPercent(ci.Change),
			})
		}
	}

	if len(res.TopLosers) > 0 {
		r.pdf.Ln(6)
		widths := []float64{40, 50, 50, 40}
		r.tableHeader(widths, []string{"Ticker", "Before", "After", "Loss"})
		for _, pl := range res.TopLosers {
			r.tableRow(widths, []string{
				pl.Ticker,
				pl.ValueBefore.StringFixed(2),
				pl.ValueAfter.StringFixed(2),
				pl.Loss.StringFixed(2),
			})
		}
	}

	if len(res.Sensitivities) > 0 {
		r.pdf.Ln(6)
		widths := []float64{90, 90}
		r.tableHeader(widths, []string{"Factor", "Isolated impact"})
		for _, fi := range res.Sensitivities {
			r.tableRow(widths, []string{fi.Factor, fi.Impact.StringFixed(2)})
		}
	}
}
