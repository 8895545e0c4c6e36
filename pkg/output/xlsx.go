package output

import (
	"fmt"
	"io"

	"github.com/iwvelando/finhealth/pkg/scoring"
	"github.com/xuri/excelize/v2"
)

const (
	checklistSheet = "Checklist"
	summarySheet   = "Summary"
)

// XLSXFormat writes the assessment as an Excel workbook with a Checklist sheet
// (one row per item, amounts as numbers) and a Summary sheet.
func XLSXFormat(w io.Writer, a scoring.Assessment) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", checklistSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	headers := []string{"Item", "Type", "Formula", "Target", "Current Status", "Percentage", "Score", "Gap"}
	for i, h := range headers {
		if err := f.SetCellValue(checklistSheet, cell(i+1, 1), h); err != nil {
			return err
		}
	}
	for r, item := range a.Items() {
		row := r + 2
		values := []interface{}{
			item.Kind.String(),
			string(item.Policy),
			item.Formula,
			xlsxValue(item.Target),
			xlsxValue(item.Current),
			item.Percentage,
			item.Score,
			"N/A",
		}
		if item.Gap != nil {
			values[7] = *item.Gap
		}
		for col, v := range values {
			if err := f.SetCellValue(checklistSheet, cell(col+1, row), v); err != nil {
				return err
			}
		}
	}
	if err := setColWidths(f, checklistSheet, []colWidth{{"A", "A", 28}, {"C", "C", 40}, {"D", "E", 22}}); err != nil {
		return err
	}

	rep := a.Report
	summary := [][]interface{}{
		{"Client", a.Profile.ClientName},
		{"Annual Income", a.Profile.AnnualIncome},
		{"Wealth Target", a.Profile.WealthTarget},
		{"Total Score", rep.TotalScore},
		{"Max Score", rep.MaxScore},
		{"Overall Percentage", rep.OverallPercentage},
		{"Grade", rep.Grade.Letter},
		{"Remarks", rep.Grade.Remarks},
		{},
		{"Category", "Average Score", "Remarks"},
	}
	for _, c := range rep.Categories {
		summary = append(summary, []interface{}{c.Name, c.Average, c.Remarks})
	}
	summary = append(summary, []interface{}{}, []interface{}{"Insights"})
	for _, insight := range rep.Insights {
		summary = append(summary, []interface{}{insight})
	}
	for r, values := range summary {
		for col, v := range values {
			if err := f.SetCellValue(summarySheet, cell(col+1, r+1), v); err != nil {
				return err
			}
		}
	}
	if err := setColWidths(f, summarySheet, []colWidth{{"A", "A", 28}}); err != nil {
		return err
	}

	return f.Write(w)
}

type colWidth struct {
	start, end string
	width      float64
}

func setColWidths(f *excelize.File, sheet string, widths []colWidth) error {
	for _, w := range widths {
		if err := f.SetColWidth(sheet, w.start, w.end, w.width); err != nil {
			return fmt.Errorf("failed to size %s columns %s:%s: %w", sheet, w.start, w.end, err)
		}
	}
	return nil
}

func cell(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Sprintf("A%d", row)
	}
	return name
}

func xlsxValue(v scoring.Value) interface{} {
	if v.Kind == scoring.ValueAmount {
		return v.Number
	}
	return v.String()
}
