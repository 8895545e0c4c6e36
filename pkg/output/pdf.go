package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/iwvelando/finhealth/pkg/datetime"
	"github.com/iwvelando/finhealth/pkg/format"
	"github.com/iwvelando/finhealth/pkg/scoring"
)

const (
	pageWidth    = 210.0
	marginLeft   = 12.0
	marginRight  = 12.0
	marginTop    = 15.0
	marginBottom = 18.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// Glyphs the core fonts lack even in cp1252. Everything else non-ASCII goes
// through the cp1252 translator.
var pdfReplacer = strings.NewReplacer(
	"₹", "Rs. ",
	"≤", "<=",
	"≥", ">=",
	"≈", "~",
	"−", "-",
)

type pdfReport struct {
	pdf       *fpdf.Fpdf
	a         scoring.Assessment
	translate func(string) string
}

func newPDFReport(a scoring.Assessment) *pdfReport {
	pdf := fpdf.New("P", "mm", "A4", "")
	return &pdfReport{pdf: pdf, a: a, translate: pdf.UnicodeTranslatorFromDescriptor("")}
}

// text prepares s for a core-font cell.
func (r *pdfReport) text(s string) string {
	return r.translate(pdfReplacer.Replace(s))
}

// PDF renders the assessment as an A4 report: client details, the overall
// grade, category averages, the full checklist and the summary insights.
func PDF(a scoring.Assessment) ([]byte, error) {
	r := newPDFReport(a)
	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)
	r.pdf.SetTitle("Financial Health Report", false)
	r.pdf.AliasNbPages("")
	r.pdf.SetFooterFunc(func() {
		r.pdf.SetY(-12)
		r.pdf.SetFont("Arial", "I", 8)
		r.pdf.SetTextColor(120, 120, 120)
		r.pdf.CellFormat(0, 6, fmt.Sprintf("Page %d/{nb}", r.pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	r.pdf.AddPage()
	r.addHeader()
	r.addSummary()
	r.addCategories()
	r.addChecklist()
	r.addInsights()

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PDFFormat writes the PDF report to w.
func PDFFormat(w io.Writer, a scoring.Assessment) error {
	data, err := PDF(a)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (r *pdfReport) heading(text string) {
	r.pdf.Ln(4)
	r.pdf.SetFont("Arial", "B", 13)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 8, r.text(text), "", 1, "L", false, 0, "")
	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetTextColor(50, 50, 50)
}

func (r *pdfReport) addHeader() {
	r.pdf.SetFont("Arial", "B", 20)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 12, "Financial Health Report", "", 1, "C", false, 0, "")

	p := r.a.Profile
	details := []struct{ label, value string }{
		{"Client", p.ClientName},
		{"Financial doctor", p.FinancialDoctorName},
		{"Date", datetime.DisplayDate(p.Date)},
		{"Family members", p.FamilyMembers},
	}
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(80, 80, 80)
	for _, d := range details {
		if d.value == "" {
			continue
		}
		r.pdf.CellFormat(contentWidth, 6, r.text(d.label+": "+d.value), "", 1, "C", false, 0, "")
	}
	if p.Age > 0 {
		r.pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Age: %d", p.Age), "", 1, "C", false, 0, "")
	}
}

func (r *pdfReport) addSummary() {
	rep := r.a.Report
	r.heading("Overall Score")
	r.pdf.SetFillColor(245, 247, 250)
	r.pdf.SetFont("Arial", "B", 16)
	r.pdf.CellFormat(contentWidth, 12,
		fmt.Sprintf("%d%%  -  Grade %s (%s)", rep.OverallPercentage, rep.Grade.Letter, rep.Grade.Remarks),
		"1", 1, "C", true, 0, "")
	r.pdf.SetFont("Arial", "", 9)
	r.pdf.CellFormat(contentWidth, 6,
		fmt.Sprintf("Total %d of %d points; annual income %s; monthly expenses %s",
			rep.TotalScore, rep.MaxScore, r.text(format.Short(r.a.Profile.AnnualIncome)), r.text(format.Short(r.a.Profile.MonthlyExpenses))),
		"", 1, "C", false, 0, "")
	if wt := r.a.Profile.WealthTarget; wt > 0 {
		r.pdf.CellFormat(contentWidth, 6, r.text("Wealth target: "+format.Short(wt)), "", 1, "C", false, 0, "")
	}
}

func (r *pdfReport) addCategories() {
	r.heading("Category Scores")
	widths := []float64{80, 40, contentWidth - 120}
	r.tableRow(widths, []string{"Category", "Average (of 5)", "Remarks"}, true)
	for _, c := range r.a.Report.Categories {
		r.tableRow(widths, []string{c.Name, fmt.Sprintf("%.2f", c.Average), c.Remarks}, false)
	}

	alloc := r.a.Allocation
	r.pdf.Ln(2)
	r.pdf.MultiCell(contentWidth, 5, fmt.Sprintf(
		"Investments: %d risk and %d safe instruments held (%.0f%% risk / %.0f%% safe); ideal split for this age is %.0f%% risk / %.0f%% safe.",
		alloc.RiskCount, alloc.SafeCount, alloc.RiskPercent, alloc.SafePercent, alloc.TargetRiskPercent, alloc.TargetSafePercent),
		"", "L", false)
}

func (r *pdfReport) addChecklist() {
	r.heading("Financial Checklist")
	widths := []float64{46, 36, 36, 22, 14, contentWidth - 154}
	r.tableRow(widths, []string{"Item", "Target (Rs.)", "Current (Rs.)", "Achieved", "Score", "Gap (Rs.)"}, true)
	for _, item := range r.a.Items() {
		r.tableRow(widths, []string{
			item.Kind.String(),
			pdfValue(item, item.Target),
			pdfValue(item, item.Current),
			DisplayPercentage(item),
			fmt.Sprintf("%d", item.Score),
			pdfGap(item),
		}, false)
	}
}

// pdfValue renders checklist amounts without the rupee sign, which the
// column headers carry.
func pdfValue(item scoring.Item, v scoring.Value) string {
	if v.Kind == scoring.ValueAmount && item.Policy != scoring.PolicyCIBIL {
		return format.NumericCurrency(v.Number)
	}
	return DisplayValue(item, v)
}

func pdfGap(item scoring.Item) string {
	if item.Gap != nil && item.Policy != scoring.PolicyCIBIL {
		return format.NumericCurrency(*item.Gap)
	}
	return DisplayGap(item)
}

func (r *pdfReport) addInsights() {
	if len(r.a.Report.Insights) == 0 {
		return
	}
	r.heading("Summary Insights")
	for _, insight := range r.a.Report.Insights {
		r.pdf.MultiCell(contentWidth, 5, r.text("- "+insight), "", "L", false)
	}
}

func (r *pdfReport) tableRow(widths []float64, cells []string, header bool) {
	if header {
		r.pdf.SetFont("Arial", "B", 9)
		r.pdf.SetFillColor(0, 51, 102)
		r.pdf.SetTextColor(255, 255, 255)
	} else {
		r.pdf.SetFont("Arial", "", 9)
		r.pdf.SetFillColor(255, 255, 255)
		r.pdf.SetTextColor(50, 50, 50)
	}
	for i, cell := range cells {
		r.pdf.CellFormat(widths[i], 6, r.text(cell), "1", 0, "L", header, 0, "")
	}
	r.pdf.Ln(-1)
}
