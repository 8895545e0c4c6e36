package backend

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/finhealth/pkg/constants"
	"github.com/iwvelando/finhealth/pkg/datetime"
)

var historyHeader = []string{"id", "clientName", "phoneNumber", "city", "overallHealthScore", "primaryRiskKey", "createdAt"}

// WriteHistory renders history rows as a pretty table, CSV or JSON.
func WriteHistory(w io.Writer, outputFormat string, rows []ReportSummary) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return prettyHistory(w, rows)
	case constants.OutputFormatCSV:
		return csvHistory(w, rows)
	case constants.OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if rows == nil {
			rows = []ReportSummary{}
		}
		return enc.Encode(rows)
	}
	return fmt.Errorf("history cannot be written as %q", outputFormat)
}

func prettyHistory(w io.Writer, rows []ReportSummary) error {
	if len(rows) == 0 {
		_, err := io.WriteString(w, "No submitted reports.\n")
		return err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-36s | %-24s | %-14s | %-5s | %-20s | %s\n", "Report", "Client", "City", "Score", "Primary risk", "Created")
	fmt.Fprintf(&sb, "%-36s | %-24s | %-14s | %-5s | %-20s | %s\n", "______", "______", "____", "_____", "____________", "_______")
	for _, r := range rows {
		fmt.Fprintf(&sb, "%-36s | %-24s | %-14s | %5.0f | %-20s | %s\n",
			r.ID, r.ClientName, r.City, r.OverallHealthScore, r.PrimaryRiskKey, createdDate(r.CreatedAt))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func csvHistory(w io.Writer, rows []ReportSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(historyHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.ID,
			r.ClientName,
			r.PhoneNumber,
			r.City,
			fmt.Sprintf("%.0f", r.OverallHealthScore),
			r.PrimaryRiskKey,
			r.CreatedAt,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// createdDate shortens backend timestamps to the report date layout.
func createdDate(createdAt string) string {
	if len(createdAt) < len(constants.DateLayout) {
		return createdAt
	}
	day := createdAt[:len(constants.DateLayout)]
	if _, err := datetime.ParseDate(day); err != nil {
		return createdAt
	}
	return datetime.DisplayDate(day)
}
