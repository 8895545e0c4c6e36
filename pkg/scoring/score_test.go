package scoring

import (
	"math"
	"testing"
)

func TestScalePolicyScore(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		graded     int
		strict     int
	}{
		{"Full marks", 100, 5, 5},
		{"Graded top band", 95, 5, 4},
		{"Just below graded top band", 94.99, 4, 4},
		{"Eighty", 80, 4, 4},
		{"Sixty", 60, 3, 3},
		{"Thirty", 30, 2, 2},
		{"Below thirty", 29.9, 1, 1},
		{"Zero", 0, 1, 1},
		{"Negative clamps to zero", -20, 1, 1},
		{"Above hundred clamps", 180, 5, 5},
		{"NaN", math.NaN(), 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScaleGraded.Score(tt.percentage); got != tt.graded {
				t.Errorf("ScaleGraded.Score(%v) = %d, expected %d", tt.percentage, got, tt.graded)
			}
			if got := ScaleStrict.Score(tt.percentage); got != tt.strict {
				t.Errorf("ScaleStrict.Score(%v) = %d, expected %d", tt.percentage, got, tt.strict)
			}
		})
	}
}

func TestZeroScalePolicyBehavesAsGraded(t *testing.T) {
	var zero ScalePolicy
	if got := zero.Score(96); got != 5 {
		t.Errorf("zero policy Score(96) = %d, expected 5", got)
	}
}

func TestParseScalePolicy(t *testing.T) {
	tests := []struct {
		input     string
		expected  string
		wantError bool
	}{
		{"", "graded", false},
		{"graded", "graded", false},
		{" Strict ", "strict", false},
		{"lenient", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseScalePolicy(tt.input)
			if tt.wantError {
				if err == nil {
					t.Errorf("ParseScalePolicy(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseScalePolicy(%q) error = %v", tt.input, err)
			}
			if got.Name != tt.expected {
				t.Errorf("ParseScalePolicy(%q) = %s, expected %s", tt.input, got.Name, tt.expected)
			}
		})
	}
}

func TestPercentageStandard(t *testing.T) {
	tests := []struct {
		name     string
		target   float64
		current  float64
		expected float64
	}{
		{"Meets target", 1000, 1000, 100},
		{"Exceeds target", 1000, 5000, 100},
		{"Half way", 1000, 500, 50},
		{"Nothing held", 1000, 0, 0},
		{"Zero target with holdings", 0, 10, 100},
		{"Zero target without holdings", 0, 0, 0},
		{"Negative current treated as zero", 1000, -50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentage(PolicyStandard, Amount(tt.target), Amount(tt.current))
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Percentage(standard, %v, %v) = %v, expected %v", tt.target, tt.current, got, tt.expected)
			}
		})
	}
}

func TestStandardAtOrAboveTargetScoresFive(t *testing.T) {
	for _, target := range []float64{1, 750, 150000, 24000000} {
		for _, factor := range []float64{1, 1.5, 10} {
			current := target * factor
			p := Percentage(PolicyStandard, Amount(target), Amount(current))
			if p != 100 {
				t.Errorf("Percentage(standard, %v, %v) = %v, expected 100", target, current, p)
			}
			if s := ScaleGraded.Score(p); s != 5 {
				t.Errorf("score for %v/%v = %d, expected 5", current, target, s)
			}
		}
	}
}

func TestPercentageInverse(t *testing.T) {
	tests := []struct {
		name     string
		target   float64
		current  float64
		expected float64
	}{
		{"Below target", 40000, 10000, 100},
		{"At target", 40000, 40000, 100},
		{"Tiny target not exceeded", 0.01, 0, 100},
		{"Huge target not exceeded", 1e12, 1e11, 100},
		{"Double the target", 40000, 80000, 50},
		{"Zero target with EMI", 0, 5000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentage(PolicyInverse, Amount(tt.target), Amount(tt.current))
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Percentage(inverse, %v, %v) = %v, expected %v", tt.target, tt.current, got, tt.expected)
			}
		})
	}
}

func TestPercentageCIBIL(t *testing.T) {
	tests := []struct {
		name          string
		current       float64
		expected      float64
		expectedScore int
	}{
		{"Below floor", 299, 0, 1},
		{"At floor", 300, 0, 1},
		{"Display target", 750, 100, 5},
		{"Just below saturation", 799, 100, 5},
		{"At saturation", 800, 100, 5},
		{"Mid curve", 600, math.Pow(300.0/450.0, 2) * 100, 2},
		{"No score entered", 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentage(PolicyCIBIL, Amount(750), Amount(tt.current))
			if math.Abs(got-tt.expected) > 1e-6 {
				t.Errorf("Percentage(cibil, %v) = %v, expected %v", tt.current, got, tt.expected)
			}
			if s := ScaleGraded.Score(got); s != tt.expectedScore {
				t.Errorf("score for CIBIL %v = %d, expected %d", tt.current, s, tt.expectedScore)
			}
		})
	}
}

func TestCIBILCurveBranchesAreIndependent(t *testing.T) {
	// 799 is on the quadratic branch, its raw value overshoots and is clamped.
	raw := cibilPercentage(799)
	if raw <= 100 {
		t.Errorf("cibilPercentage(799) = %v, expected the curve to exceed 100 before clamping", raw)
	}
	if got := cibilPercentage(800); got != 100 {
		t.Errorf("cibilPercentage(800) = %v, expected 100", got)
	}
	if got := cibilPercentage(299); got != 0 {
		t.Errorf("cibilPercentage(299) = %v, expected 0", got)
	}
}

func TestPercentageYesNo(t *testing.T) {
	tests := []struct {
		name     string
		current  Value
		expected int
	}{
		{"Yes", Answer("Yes"), 5},
		{"Yes with spaces", Answer("  Yes "), 5},
		{"No", Answer("No"), 1},
		{"Empty", Answer(""), 1},
		{"Lowercase yes", Answer("yes"), 1},
		{"Unset", Value{}, 1},
		{"Number", Amount(1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Percentage(PolicyYesNo, Answer("Yes"), tt.current)
			if got := ScaleGraded.Score(p); got != tt.expected {
				t.Errorf("yes/no score for %+v = %d, expected %d", tt.current, got, tt.expected)
			}
		})
	}
}

func TestPercentageNonNumericInputsScoreLowest(t *testing.T) {
	for _, policy := range []Policy{PolicyStandard, PolicyCIBIL} {
		p := Percentage(policy, Amount(1000), Answer("not a number"))
		if s := ScaleGraded.Score(p); s != 1 {
			t.Errorf("policy %s with non-numeric current scored %d, expected 1", policy, s)
		}
	}
	p := Percentage(PolicyStandard, Amount(1000), Amount(math.NaN()))
	if s := ScaleGraded.Score(p); s != 1 {
		t.Errorf("NaN current scored %d, expected 1", s)
	}
}

func TestGap(t *testing.T) {
	tests := []struct {
		name     string
		policy   Policy
		target   Value
		current  Value
		expected *float64
	}{
		{"Standard shortfall", PolicyStandard, Amount(150000), Amount(50000), ptr(100000)},
		{"Standard overachieved", PolicyStandard, Amount(150000), Amount(200000), ptr(0)},
		{"Inverse over target", PolicyInverse, Amount(40000), Amount(45000), ptr(5000)},
		{"Inverse within target", PolicyInverse, Amount(40000), Amount(30000), ptr(0)},
		{"CIBIL shortfall from display target", PolicyCIBIL, Amount(750), Amount(700), ptr(50)},
		{"CIBIL above display target", PolicyCIBIL, Amount(750), Amount(790), ptr(0)},
		{"Rounded to whole units", PolicyStandard, Amount(100.6), Amount(0), ptr(101)},
		{"Yes/No not applicable", PolicyYesNo, Answer("Yes"), Answer("No"), nil},
		{"Investment not applicable", PolicyInvestment, Label("Risk 75% / Safe 25%"), Mix(Allocation{}), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Gap(tt.policy, tt.target, tt.current)
			switch {
			case tt.expected == nil && got != nil:
				t.Errorf("Gap() = %v, expected nil", *got)
			case tt.expected != nil && got == nil:
				t.Errorf("Gap() = nil, expected %v", *tt.expected)
			case tt.expected != nil && *got != *tt.expected:
				t.Errorf("Gap() = %v, expected %v", *got, *tt.expected)
			}
		})
	}
}

func TestScoreItemAlwaysInRange(t *testing.T) {
	currents := []Value{{}, Amount(-1), Amount(0), Amount(1e18), Amount(math.Inf(1)), Answer("Yes"), Answer("maybe"), Label("x")}
	for _, kind := range AllItemKinds() {
		for _, current := range currents {
			item := ScoreItem(Item{Kind: kind, Target: ResolveTarget(Profile{AnnualIncome: 100000}, kind), Current: current}, ScaleGraded)
			if item.Score < 1 || item.Score > 5 {
				t.Errorf("ScoreItem(%s, %+v) score = %d, expected 1..5", kind, current, item.Score)
			}
		}
	}
}

func ptr(v float64) *float64 {
	return &v
}
