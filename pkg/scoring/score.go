package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/finhealth/pkg/constants"
	"github.com/iwvelando/finhealth/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// ScalePolicy maps a 0-100 percentage onto the 1..5 scale. Thresholds holds
// the minimum percentage for scores 5, 4, 3 and 2, in that order.
type ScalePolicy struct {
	Name       string
	Thresholds [4]float64
}

var (
	// ScaleGraded awards 5 from 95%.
	ScaleGraded = ScalePolicy{Name: "graded", Thresholds: [4]float64{95, 80, 60, 30}}
	// ScaleStrict awards 5 only at 100%.
	ScaleStrict = ScalePolicy{Name: "strict", Thresholds: [4]float64{100, 80, 60, 30}}
)

// ParseScalePolicy resolves a scale name; empty selects ScaleGraded.
func ParseScalePolicy(name string) (ScalePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ScaleGraded.Name:
		return ScaleGraded, nil
	case ScaleStrict.Name:
		return ScaleStrict, nil
	}
	return ScalePolicy{}, fmt.Errorf("unknown scale policy %q (expected %s or %s)", name, ScaleGraded.Name, ScaleStrict.Name)
}

// MarshalText encodes the policy by name.
func (s ScalePolicy) MarshalText() ([]byte, error) {
	if s.Name == "" {
		return []byte(ScaleGraded.Name), nil
	}
	return []byte(s.Name), nil
}

// UnmarshalText decodes a policy name.
func (s *ScalePolicy) UnmarshalText(text []byte) error {
	parsed, err := ParseScalePolicy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Score converts a percentage to an integer in [1,5]. A zero-valued policy
// behaves like ScaleGraded.
func (s ScalePolicy) Score(percentage float64) int {
	thresholds := s.Thresholds
	if thresholds == ([4]float64{}) {
		thresholds = ScaleGraded.Thresholds
	}
	p := mathutil.Clamp(mathutil.Finite(percentage), 0, 100)
	for i, floor := range thresholds {
		if p >= floor {
			return constants.MaxItemScore - i
		}
	}
	return constants.MinItemScore
}

// Percentage compares current against target under policy. The result is
// always within [0,100]. PolicyInvestment has no percentage and returns 0.
func Percentage(policy Policy, target, current Value) float64 {
	t := mathutil.NonNegative(target.Float())
	c := mathutil.NonNegative(current.Float())

	var p float64
	switch policy {
	case PolicyStandard:
		switch {
		case t > 0:
			p = c / t * constants.PercentageMultiplier
		case c > 0:
			p = 100
		}
	case PolicyInverse:
		if c <= t {
			p = 100
		} else {
			p = t / c * constants.PercentageMultiplier
		}
	case PolicyCIBIL:
		p = cibilPercentage(c)
	case PolicyYesNo:
		if current.Kind == ValueAnswer && current.Text == constants.YesAnswer {
			p = 100
		}
	case PolicyInvestment:
		return 0
	}
	return mathutil.Clamp(mathutil.Finite(p), 0, 100)
}

func cibilPercentage(score float64) float64 {
	switch {
	case score >= constants.CIBILSaturationScore:
		return 100
	case score >= constants.CIBILFloorScore:
		ratio := (score - constants.CIBILFloorScore) / constants.CIBILCurveRange
		return mathutil.Max(0, math.Pow(ratio, 2)*constants.PercentageMultiplier)
	}
	return 0
}

// Gap returns the display gap between target and current, rounded to whole
// currency units, or nil where a gap is not applicable.
func Gap(policy Policy, target, current Value) *float64 {
	if target.Kind != ValueAmount && policy != PolicyCIBIL {
		return nil
	}

	t := decimal.NewFromFloat(mathutil.NonNegative(target.Float()))
	c := decimal.NewFromFloat(mathutil.NonNegative(current.Float()))

	var gap decimal.Decimal
	switch policy {
	case PolicyStandard:
		gap = t.Sub(c)
	case PolicyInverse:
		gap = c.Sub(t)
	case PolicyCIBIL:
		gap = decimal.NewFromFloat(constants.CIBILDisplayTarget).Sub(c)
	case PolicyYesNo, PolicyInvestment:
		return nil
	}

	g := decimal.Max(gap, decimal.Zero).Round(0).InexactFloat64()
	return &g
}

// ScoreItem recomputes percentage, score and gap for a non-investment item.
// Investment items are returned unchanged apart from a score floor; they are
// scored by ScoreAllocation.
func ScoreItem(item Item, scale ScalePolicy) Item {
	policy := item.Kind.Policy()
	item.Policy = policy

	if policy == PolicyInvestment {
		item.Percentage = 0
		item.Gap = nil
		if item.Score < constants.MinItemScore || item.Score > constants.MaxItemScore {
			item.Score = constants.MinItemScore
		}
		return item
	}

	item.Percentage = Percentage(policy, item.Target, item.Current)
	item.Score = scale.Score(item.Percentage)
	item.Gap = Gap(policy, item.Target, item.Current)
	return item
}
