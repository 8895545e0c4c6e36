// Package format renders rupee amounts for reports.
package format

import (
	"strings"

	"github.com/iwvelando/finhealth/pkg/constants"
	"github.com/iwvelando/finhealth/pkg/mathutil"
	"github.com/shopspring/decimal"
)

const rupee = "₹"

var (
	lakh  = decimal.NewFromInt(100000)
	crore = decimal.NewFromInt(10000000)
)

// Currency returns a whole-rupee string with Indian digit grouping
// (e.g., "₹1,20,00,000", "-₹4,500").
func Currency(amount float64) string {
	d := decimal.NewFromFloat(mathutil.Finite(amount)).Round(0)
	formatted := groupIndian(d.Abs().StringFixed(0))
	if d.IsNegative() {
		return "-" + rupee + formatted
	}
	return rupee + formatted
}

// NumericCurrency returns an amount without a currency symbol but with Indian
// separators and two decimals (e.g., "-1,23,456.70").
func NumericCurrency(amount float64) string {
	d := decimal.NewFromFloat(mathutil.Finite(amount))
	parts := strings.SplitN(d.Abs().StringFixed(2), ".", 2)
	formatted := groupIndian(parts[0]) + "." + parts[1]
	if d.Round(2).IsNegative() {
		return "-" + formatted
	}
	return formatted
}

// Short abbreviates large amounts in lakh and crore (e.g., "₹2.40 Cr",
// "₹1.50 L"). Amounts under a lakh are rendered in full.
func Short(amount float64) string {
	d := decimal.NewFromFloat(mathutil.Finite(amount))
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	abs := d.Abs()
	switch {
	case abs.GreaterThanOrEqual(crore):
		return sign + rupee + abs.Div(crore).StringFixed(2) + " Cr"
	case abs.GreaterThanOrEqual(lakh):
		return sign + rupee + abs.Div(lakh).StringFixed(2) + " L"
	}
	return Currency(amount)
}

// Gap renders a checklist gap; nil gaps are not applicable.
func Gap(gap *float64) string {
	if gap == nil {
		return constants.NotApplicable
	}
	return Currency(*gap)
}

// groupIndian inserts separators into a string of digits: the last three
// digits form one group and the rest are grouped in pairs.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var builder strings.Builder
	for i, digit := range head {
		if i > 0 && (len(head)-i)%2 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}
	return builder.String() + "," + tail
}
