// Package output provides utilities for formatting and displaying scored
// assessments.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/finhealth/pkg/constants"
	"github.com/iwvelando/finhealth/pkg/datetime"
	"github.com/iwvelando/finhealth/pkg/format"
	"github.com/iwvelando/finhealth/pkg/scoring"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Write renders a in the named output format.
func Write(w io.Writer, outputFormat string, a scoring.Assessment) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, a)
	case constants.OutputFormatCSV:
		return CsvFormat(w, a)
	case constants.OutputFormatJSON:
		return JSONFormat(w, a)
	case constants.OutputFormatXLSX:
		return XLSXFormat(w, a)
	case constants.OutputFormatPDF:
		return PDFFormat(w, a)
	}
	return fmt.Errorf("unsupported output format %q", outputFormat)
}

// DisplayValue renders a target or current status for a checklist row.
// Rupee amounts get Indian grouping; CIBIL scores stay plain numbers.
func DisplayValue(item scoring.Item, v scoring.Value) string {
	if v.Kind != scoring.ValueAmount {
		return v.String()
	}
	if item.Policy == scoring.PolicyCIBIL {
		return fmt.Sprintf("%.0f", v.Number)
	}
	return format.Currency(v.Number)
}

// DisplayGap renders the gap column; nil gaps are not applicable.
func DisplayGap(item scoring.Item) string {
	if item.Gap != nil && item.Policy == scoring.PolicyCIBIL {
		return fmt.Sprintf("%.0f", *item.Gap)
	}
	return format.Gap(item.Gap)
}

// DisplayPercentage renders the achievement column. The investment row has no
// percentage of its own and shows the actual risk share instead.
func DisplayPercentage(item scoring.Item) string {
	if item.Policy == scoring.PolicyInvestment {
		return fmt.Sprintf("%.0f%% risk", item.Current.Mix.RiskPercent)
	}
	return fmt.Sprintf("%.0f%%", item.Percentage)
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, a scoring.Assessment) error {
	p := message.NewPrinter(language.English)
	var buf bytes.Buffer

	if a.Profile.ClientName != "" {
		fmt.Fprintf(&buf, "--- Financial health report for %s ---\n", a.Profile.ClientName)
	} else {
		fmt.Fprintf(&buf, "--- Financial health report ---\n")
	}
	if a.Profile.Date != "" {
		fmt.Fprintf(&buf, "Date: %s\n", datetime.DisplayDate(a.Profile.Date))
	}
	_, _ = p.Fprintf(&buf, "Overall score: %d / %d (%d%%), grade %s (%s)\n",
		a.Report.TotalScore, a.Report.MaxScore, a.Report.OverallPercentage, a.Report.Grade.Letter, a.Report.Grade.Remarks)
	if a.Profile.WealthTarget > 0 {
		fmt.Fprintf(&buf, "Wealth target: %s\n", format.Short(a.Profile.WealthTarget))
	}
	fmt.Fprintf(&buf, "Scale: %s, investment method: %s\n\n", a.Options.Scale.Name, a.Options.Investment)

	fmt.Fprintf(&buf, "%-28s | %-20s | %-22s | %-9s | %-5s | %s\n", "Item", "Target", "Current", "Achieved", "Score", "Gap")
	fmt.Fprintf(&buf, "%-28s | %-20s | %-22s | %-9s | %-5s | %s\n", "____", "______", "_______", "________", "_____", "___")
	for _, item := range a.Items() {
		fmt.Fprintf(&buf, "%-28s | %-20s | %-22s | %-9s | %-5d | %s\n",
			item.Kind, DisplayValue(item, item.Target), DisplayValue(item, item.Current),
			DisplayPercentage(item), item.Score, DisplayGap(item))
	}

	fmt.Fprintf(&buf, "\nCategory                 | Average | Remarks\n")
	fmt.Fprintf(&buf, "________                 | _______ | _______\n")
	for _, c := range a.Report.Categories {
		_, _ = p.Fprintf(&buf, "%-24s | %7.2f | %s\n", c.Name, c.Average, c.Remarks)
	}

	alloc := a.Allocation
	_, _ = p.Fprintf(&buf, "\nInvestments: %d risk, %d safe; actual %.0f%% risk / %.0f%% safe, ideal %.0f%% risk / %.0f%% safe\n",
		alloc.RiskCount, alloc.SafeCount, alloc.RiskPercent, alloc.SafePercent, alloc.TargetRiskPercent, alloc.TargetSafePercent)

	if len(a.Report.Insights) > 0 {
		fmt.Fprintf(&buf, "\nInsights:\n")
		for _, insight := range a.Report.Insights {
			fmt.Fprintf(&buf, "  - %s\n", insight)
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

var csvHeader = []string{"item", "type", "formula", "target", "currentStatus", "percentage", "score", "gap"}

// CsvFormat outputs the checklist in comma-separated value format, one row
// per item. Amounts are written unformatted.
func CsvFormat(w io.Writer, a scoring.Assessment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, item := range a.Items() {
		gap := ""
		if item.Gap != nil {
			gap = fmt.Sprintf("%.0f", *item.Gap)
		}
		record := []string{
			item.Kind.String(),
			string(item.Policy),
			item.Formula,
			csvValue(item.Target),
			csvValue(item.Current),
			fmt.Sprintf("%.2f", item.Percentage),
			fmt.Sprintf("%d", item.Score),
			gap,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CsvString returns the CsvFormat rendering as a string.
func CsvString(a scoring.Assessment) (string, error) {
	var sb strings.Builder
	if err := CsvFormat(&sb, a); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func csvValue(v scoring.Value) string {
	if v.Kind == scoring.ValueAmount {
		return fmt.Sprintf("%.2f", v.Number)
	}
	return v.String()
}

// JSONFormat outputs the assessment as indented JSON.
func JSONFormat(w io.Writer, a scoring.Assessment) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}
