// Package scoring implements the financial health scoring engine: target
// resolution, per-item scoring, investment allocation scoring and report
// aggregation. Everything in this package is pure; callers own the mutable
// state and call Recompute after every input change.
package scoring

import (
	"fmt"
	"strings"
)

// ItemKind identifies one row of the financial checklist.
type ItemKind int

// Checklist rows in display order.
const (
	IncomeProtection ItemKind = iota
	EmergencyFund
	HealthInsurance
	CriticalIllnessCover
	DisabilityInsurance
	RetirementGoals
	ChildEducationFund
	MarriageFund
	DebtManagement
	WealthPlanning
	HomeLoanOrRent
	CIBILScore
	SpouseCoverage
	TaxPlanning
	BudgetPlanning
	EstatePlanning
	LegacyFund
	HUFAccount
	FamilyGoals
	InvestmentDiversification

	itemKindCount
)

// Policy selects how an item's current status is compared with its target.
type Policy string

const (
	// PolicyStandard scores higher current values as better, up to the target.
	PolicyStandard Policy = "standard"
	// PolicyInverse scores lower current values as better.
	PolicyInverse Policy = "inverse"
	// PolicyCIBIL applies the quadratic credit score curve.
	PolicyCIBIL Policy = "cibil"
	// PolicyYesNo scores a Yes answer as 100% and anything else as 0%.
	PolicyYesNo Policy = "yesno"
	// PolicyInvestment is scored by the investment allocation scorer.
	PolicyInvestment Policy = "investment"
)

type itemSpec struct {
	name    string
	policy  Policy
	formula string
}

var itemSpecs = [itemKindCount]itemSpec{
	IncomeProtection:          {"Income Protection", PolicyStandard, "Annual Income × 20"},
	EmergencyFund:             {"Emergency Fund", PolicyStandard, "Monthly Expenses × 3"},
	HealthInsurance:           {"Health Insurance", PolicyStandard, "Annual Income × 8"},
	CriticalIllnessCover:      {"Critical Illness Cover", PolicyStandard, "Annual Income × 3"},
	DisabilityInsurance:       {"Disability Insurance", PolicyStandard, "Annual Income × 3"},
	RetirementGoals:           {"Retirement Goals", PolicyStandard, "Monthly Expenses × 300"},
	ChildEducationFund:        {"Child Education Fund", PolicyStandard, "Today Expenses + Future Inflation"},
	MarriageFund:              {"Marriage Fund", PolicyStandard, "According to Inflation Adjusted"},
	DebtManagement:            {"Debt Management", PolicyInverse, "Total EMI ≤ 40% of Monthly Income"},
	WealthPlanning:            {"Wealth Planning", PolicyStandard, "Savings ≥ 20% of Monthly Income"},
	HomeLoanOrRent:            {"Home Loan or Rent", PolicyInverse, "Rent ≤ 30% of Monthly Income"},
	CIBILScore:                {"CIBIL Score", PolicyCIBIL, "750+ Good, 800+ Very Good"},
	SpouseCoverage:            {"Spouse's Coverage", PolicyStandard, "Annual Income × 10"},
	TaxPlanning:               {"Tax Planning", PolicyStandard, "Up to ₹ 1.5L–2L Deductions"},
	BudgetPlanning:            {"Budget Planning", PolicyYesNo, "Do you plan your monthly or quarterly budget?"},
	EstatePlanning:            {"Estate Planning", PolicyYesNo, "Create Will For Property"},
	LegacyFund:                {"Legacy Fund", PolicyYesNo, "Give Donations and wealth successor"},
	HUFAccount:                {"HUF Account", PolicyYesNo, "Open an HUF Account"},
	FamilyGoals:               {"Family Goals", PolicyYesNo, "Identify major milestones"},
	InvestmentDiversification: {"Investment Diversification", PolicyInvestment, "Safe % ≈ Age, Risk % = 100 − Age"},
}

// AllItemKinds returns every checklist kind in display order.
func AllItemKinds() []ItemKind {
	kinds := make([]ItemKind, 0, itemKindCount)
	for k := ItemKind(0); k < itemKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Valid reports whether k names a checklist row.
func (k ItemKind) Valid() bool {
	return k >= 0 && k < itemKindCount
}

// String returns the display name of the item.
func (k ItemKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("ItemKind(%d)", int(k))
	}
	return itemSpecs[k].name
}

// Policy returns the scoring policy fixed for the item.
func (k ItemKind) Policy() Policy {
	if !k.Valid() {
		return PolicyStandard
	}
	return itemSpecs[k].policy
}

// Formula describes how the item's target is derived.
func (k ItemKind) Formula() string {
	if !k.Valid() {
		return ""
	}
	return itemSpecs[k].formula
}

// ParseItemKind resolves a display name such as "Spouse's Coverage". Matching
// ignores case and surrounding or repeated whitespace.
func ParseItemKind(name string) (ItemKind, error) {
	want := normalizeName(name)
	for k := ItemKind(0); k < itemKindCount; k++ {
		if normalizeName(itemSpecs[k].name) == want {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown checklist item %q", name)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// MarshalText encodes the kind as its display name.
func (k ItemKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid checklist item %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a display name.
func (k *ItemKind) UnmarshalText(text []byte) error {
	parsed, err := ParseItemKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
