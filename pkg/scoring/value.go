package scoring

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/finhealth/pkg/mathutil"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	// ValueNone is the zero Value: nothing entered yet.
	ValueNone ValueKind = iota
	// ValueAmount is a numeric amount or score.
	ValueAmount
	// ValueAnswer is a Yes/No answer.
	ValueAnswer
	// ValueLabel is a derived display string.
	ValueLabel
	// ValueMix is an investment allocation.
	ValueMix
)

// Value is a checklist target or current status. Exactly one variant is
// meaningful, selected by Kind.
type Value struct {
	Kind   ValueKind
	Number float64
	Text   string
	Mix    Allocation
}

// Amount returns a numeric Value. NaN and infinities become 0.
func Amount(n float64) Value {
	return Value{Kind: ValueAmount, Number: mathutil.Finite(n)}
}

// Answer returns a Yes/No Value. The text is trimmed but otherwise kept as
// entered so that anything other than "Yes" fails the item.
func Answer(s string) Value {
	return Value{Kind: ValueAnswer, Text: strings.TrimSpace(s)}
}

// Label returns a display-only Value.
func Label(s string) Value {
	return Value{Kind: ValueLabel, Text: s}
}

// Mix returns an allocation Value.
func Mix(a Allocation) Value {
	return Value{Kind: ValueMix, Mix: a}
}

// Float returns the numeric content, or 0 for non-numeric variants.
func (v Value) Float() float64 {
	if v.Kind != ValueAmount {
		return 0
	}
	return mathutil.Finite(v.Number)
}

// IsZero reports whether nothing meaningful has been entered.
func (v Value) IsZero() bool {
	switch v.Kind {
	case ValueAmount:
		return v.Number == 0
	case ValueAnswer, ValueLabel:
		return v.Text == ""
	case ValueMix:
		return v.Mix == Allocation{}
	}
	return true
}

// String renders the value for tables and logs.
func (v Value) String() string {
	switch v.Kind {
	case ValueAmount:
		return fmt.Sprintf("%.2f", v.Number)
	case ValueAnswer, ValueLabel:
		return v.Text
	case ValueMix:
		return fmt.Sprintf("Risk: %.0f%%, Safe: %.0f%%", v.Mix.RiskPercent, v.Mix.SafePercent)
	}
	return ""
}

// MarshalJSON encodes amounts as numbers, answers and labels as strings and
// allocations as {"risk": r, "safe": s}.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueAmount:
		return json.Marshal(v.Number)
	case ValueAnswer, ValueLabel:
		return json.Marshal(v.Text)
	case ValueMix:
		return json.Marshal(struct {
			Risk float64 `json:"risk"`
			Safe float64 `json:"safe"`
		}{v.Mix.RiskPercent, v.Mix.SafePercent})
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts a number, a numeric string, a Yes/No string or null.
// Unparseable input decodes to an empty answer, which scores as the lowest
// bucket instead of failing the request.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*v = Value{}
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = Amount(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = ParseValue(s)
		return nil
	}

	*v = Answer("")
	return nil
}

// ParseValue interprets free-form user input: numbers (with optional thousands
// separators or currency symbol) become amounts, anything else an answer.
func ParseValue(s string) Value {
	trimmed := strings.TrimSpace(s)
	if n, ok := parseAmount(trimmed); ok {
		return Amount(n)
	}
	return Answer(trimmed)
}

func parseAmount(s string) (float64, bool) {
	cleaned := strings.NewReplacer(",", "", "₹", "", "$", "", " ", "").Replace(s)
	if cleaned == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
