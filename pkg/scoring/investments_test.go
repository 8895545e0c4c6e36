package scoring

import (
	"testing"
)

func selectOptions(risk, safe int) InvestmentOptions {
	opts := NewInvestmentOptions()
	for _, o := range RiskOptions()[:risk] {
		opts[o] = true
	}
	for _, o := range SafeOptions()[:safe] {
		opts[o] = true
	}
	return opts
}

func TestOptionCategoriesAreDisjoint(t *testing.T) {
	if len(RiskOptions()) != 10 || len(SafeOptions()) != 10 {
		t.Fatalf("expected 10 risk and 10 safe options, got %d and %d", len(RiskOptions()), len(SafeOptions()))
	}
	for _, o := range SafeOptions() {
		if o.IsRisk() {
			t.Errorf("safe option %s reported as risk", o)
		}
	}
	for _, o := range RiskOptions() {
		if !o.IsRisk() {
			t.Errorf("risk option %s not reported as risk", o)
		}
	}
	if len(NewInvestmentOptions()) != 20 {
		t.Errorf("NewInvestmentOptions() has %d keys, expected 20", len(NewInvestmentOptions()))
	}
}

func TestScoreAllocationAgeBased(t *testing.T) {
	tests := []struct {
		name           string
		risk           int
		safe           int
		age            int
		expectedRisk   float64
		expectedSafe   float64
		expectedTarget float64
		expectedDiff   float64
		expectedScore  int
	}{
		{"Nothing selected, default age", 0, 0, 0, 0, 0, 75, -75, 1},
		{"Nothing selected, age 25", 0, 0, 25, 0, 0, 75, -75, 1},
		{"Seven safe, three risk", 3, 7, 25, 30, 70, 75, -45, 1},
		{"Eight risk at age 25", 8, 2, 25, 80, 20, 75, 5, 5},
		{"Seven risk at age 25", 7, 3, 25, 70, 30, 75, -5, 5},
		{"Within ten", 6, 0, 30, 60, 0, 70, -10, 4},
		{"Within twenty", 5, 5, 35, 50, 50, 65, -15, 3},
		{"Within thirty", 4, 10, 35, 40, 100, 65, -25, 2},
		{"All risk at sixty", 10, 0, 60, 100, 0, 40, 60, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreAllocation(selectOptions(tt.risk, tt.safe), tt.age, InvestmentAgeBased, ScaleGraded)
			if got.RiskPercent != tt.expectedRisk || got.SafePercent != tt.expectedSafe {
				t.Errorf("actual split = %v/%v, expected %v/%v", got.RiskPercent, got.SafePercent, tt.expectedRisk, tt.expectedSafe)
			}
			if got.TargetRiskPercent != tt.expectedTarget {
				t.Errorf("target risk = %v, expected %v", got.TargetRiskPercent, tt.expectedTarget)
			}
			if got.TargetSafePercent != 100-tt.expectedTarget {
				t.Errorf("target safe = %v, expected %v", got.TargetSafePercent, 100-tt.expectedTarget)
			}
			if got.RiskDifference != tt.expectedDiff {
				t.Errorf("risk difference = %v, expected %v", got.RiskDifference, tt.expectedDiff)
			}
			if got.Score != tt.expectedScore {
				t.Errorf("score = %d, expected %d", got.Score, tt.expectedScore)
			}
		})
	}
}

func TestScoreAllocationBalance(t *testing.T) {
	tests := []struct {
		name          string
		risk          int
		safe          int
		expectedRisk  float64
		expectedScore int
	}{
		{"Nothing selected", 0, 0, 0, 1},
		{"Even split", 3, 3, 50, 5},
		{"Only safe", 0, 4, 0, 1},
		{"Two to three", 2, 3, 40, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreAllocation(selectOptions(tt.risk, tt.safe), 30, InvestmentBalance, ScaleGraded)
			if got.RiskPercent != tt.expectedRisk {
				t.Errorf("risk percent = %v, expected %v", got.RiskPercent, tt.expectedRisk)
			}
			if tt.risk+tt.safe > 0 && got.RiskPercent+got.SafePercent != 100 {
				t.Errorf("balance shares should sum to 100, got %v", got.RiskPercent+got.SafePercent)
			}
			if got.Score != tt.expectedScore {
				t.Errorf("score = %d, expected %d", got.Score, tt.expectedScore)
			}
		})
	}
}

func TestDeviationScoreBoundaries(t *testing.T) {
	tests := []struct {
		diff     float64
		expected int
	}{
		{0, 5}, {5, 5}, {-5, 5}, {5.01, 4}, {10, 4}, {-10, 4}, {20, 3}, {30, 2}, {-30, 2}, {30.5, 1}, {75, 1},
	}
	for _, tt := range tests {
		if got := DeviationScore(tt.diff); got != tt.expected {
			t.Errorf("DeviationScore(%v) = %d, expected %d", tt.diff, got, tt.expected)
		}
	}
}

func TestParseInvestmentOption(t *testing.T) {
	got, err := ParseInvestmentOption("GOLD")
	if err != nil || got != Gold {
		t.Errorf("ParseInvestmentOption(GOLD) = %v, %v; expected gold", got, err)
	}
	if _, err := ParseInvestmentOption("beanieBabies"); err == nil {
		t.Errorf("expected error for unknown option")
	}
	if Gold.DisplayName() != "Gold (Sovereign/Digital/Physical)" {
		t.Errorf("unexpected display name %q", Gold.DisplayName())
	}
}

func TestInvestmentOptionsWithDoesNotMutate(t *testing.T) {
	base := NewInvestmentOptions()
	next := base.With(PPF, true)
	if base[PPF] {
		t.Errorf("With mutated the receiver")
	}
	if !next[PPF] {
		t.Errorf("With did not set the option")
	}
	selected := next.With(CryptoAssets, true).Selected()
	if len(selected) != 2 || selected[0] != CryptoAssets || selected[1] != PPF {
		t.Errorf("Selected() = %v, expected [cryptoAssets ppf]", selected)
	}
}

func TestParseInvestmentMethod(t *testing.T) {
	if m, err := ParseInvestmentMethod(""); err != nil || m != InvestmentAgeBased {
		t.Errorf("default method = %v, %v", m, err)
	}
	if m, err := ParseInvestmentMethod("Balance"); err != nil || m != InvestmentBalance {
		t.Errorf("balance method = %v, %v", m, err)
	}
	if _, err := ParseInvestmentMethod("random"); err == nil {
		t.Errorf("expected error for unknown method")
	}
}
