// Package constants provides shared constants for the finhealth application.
package constants

// Scoring constants
const (
	// MaxItemScore is the best score a checklist item can receive
	MaxItemScore = 5

	// MinItemScore is the lowest score a checklist item can receive
	MinItemScore = 1

	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CIBILSaturationScore is the credit score at which the CIBIL item
	// reaches 100%. It intentionally differs from CIBILDisplayTarget.
	CIBILSaturationScore = 800.0

	// CIBILDisplayTarget is the target shown to the client and used for the gap.
	CIBILDisplayTarget = 750.0

	// CIBILFloorScore is the lowest credit score that earns any credit.
	CIBILFloorScore = 300.0

	// CIBILCurveRange is the divisor of the quadratic CIBIL curve.
	CIBILCurveRange = 450.0

	// TaxPlanningTarget is the fixed deduction target for tax planning.
	TaxPlanningTarget = 200000.0

	// DefaultMarriageFundGoal seeds the marriage fund target on a new checklist.
	DefaultMarriageFundGoal = 50000.0

	// DefaultInvestorAge is used for the ideal allocation when no age is known.
	DefaultInvestorAge = 25

	// YesAnswer is the only answer that satisfies a yes/no item.
	YesAnswer = "Yes"

	// NoAnswer is the negative answer for a yes/no item.
	NoAnswer = "No"

	// NotApplicable is displayed for gaps that have no numeric meaning.
	NotApplicable = "N/A"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatXLSX is the Excel workbook output format
	OutputFormatXLSX = "xlsx"

	// OutputFormatPDF is the PDF report output format
	OutputFormatPDF = "pdf"
)

// Date constants
const (
	// DateLayout is the canonical layout for assessment dates and dates of birth
	DateLayout = "2006-01-02"

	// DisplayDateLayout is the layout used for dates in reports
	DisplayDateLayout = "02 Jan 2006"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default assessment file name
	DefaultConfigFile = "assessment.yaml"

	// ExampleConfigFile is the example assessment file name
	ExampleConfigFile = "assessment.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment overrides of the assessment file
	EnvPrefix = "FINHEALTH"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024

	// DefaultRequestsPerMinute is the default per-client rate limit
	DefaultRequestsPerMinute = 120

	// DefaultBurstSize is the default per-client burst size
	DefaultBurstSize = 20
)

// Backend client defaults
const (
	// DefaultBackendTimeoutSeconds bounds a single call to the report backend
	DefaultBackendTimeoutSeconds = 30
)
