// Package validation provides assessment validation utilities. Validation
// never fails an assessment; problems are returned as warnings for the caller
// to surface.
package validation

import (
	"fmt"
	"math"

	"github.com/iwvelando/finhealth/pkg/constants"
	"github.com/iwvelando/finhealth/pkg/datetime"
	"github.com/iwvelando/finhealth/pkg/scoring"
)

const (
	maxPlausibleAge = 120
	minCIBILScore   = 300
	maxCIBILScore   = 900
)

// ValidateAmount returns a warning when an entered amount would be ignored by
// the scoring engine.
func ValidateAmount(field string, value float64) string {
	switch {
	case math.IsNaN(value) || math.IsInf(value, 0):
		return fmt.Sprintf("%s is not a finite number and will be treated as 0", field)
	case value < 0:
		return fmt.Sprintf("%s is negative (%.2f) and will be treated as 0", field, value)
	}
	return ""
}

// ValidateAnswer returns a warning when a Yes/No answer is neither Yes, No,
// N/A nor blank. Such answers score as No.
func ValidateAnswer(field, answer string) string {
	switch answer {
	case "", constants.YesAnswer, constants.NoAnswer, constants.NotApplicable:
		return ""
	}
	return fmt.Sprintf("%s has unrecognised answer %q and will score as %s", field, answer, constants.NoAnswer)
}

// ValidateProfile checks the base figures and directly entered values of a
// profile and returns warnings.
func ValidateProfile(p scoring.Profile) []string {
	var warnings []string

	amounts := []struct {
		field string
		value float64
	}{
		{"annualIncome", p.AnnualIncome},
		{"monthlyExpenses", p.MonthlyExpenses},
		{"childEducationFundGoal", p.ChildEducationFundGoal},
		{"marriageFundGoal", p.MarriageFundGoal},
		{"wealthTarget", p.WealthTarget},
	}
	for _, a := range amounts {
		if w := ValidateAmount(a.field, a.value); w != "" {
			warnings = append(warnings, w)
		}
	}

	entered := []struct {
		field string
		value *float64
	}{
		{"debtManagementEmi", p.DebtManagementEMI},
		{"monthlySavings", p.MonthlySavings},
		{"housingCost", p.HousingCost},
		{"cibilScoreCurrent", p.CIBILScore},
		{"marriageFundCurrent", p.MarriageFundCurrent},
		{"spouseCoverageCurrent", p.SpouseCoverageCurrent},
		{"taxPlanningCurrent", p.TaxPlanningCurrent},
	}
	for _, e := range entered {
		if e.value == nil {
			continue
		}
		if w := ValidateAmount(e.field, *e.value); w != "" {
			warnings = append(warnings, w)
		}
	}

	answers := []struct {
		field string
		value string
	}{
		{"budgetPlanning", p.BudgetPlanning},
		{"estatePlanning", p.EstatePlanning},
		{"legacyFund", p.LegacyFund},
		{"hufAccount", p.HUFAccount},
		{"familyGoals", p.FamilyGoals},
	}
	for _, a := range answers {
		if w := ValidateAnswer(a.field, a.value); w != "" {
			warnings = append(warnings, w)
		}
	}

	switch {
	case p.Age < 0:
		warnings = append(warnings, fmt.Sprintf("age %d is negative; the ideal investment split will use age %d",
			p.Age, constants.DefaultInvestorAge))
	case p.Age == 0:
		warnings = append(warnings, fmt.Sprintf("age is not set; the ideal investment split will use age %d",
			constants.DefaultInvestorAge))
	case p.Age > maxPlausibleAge:
		warnings = append(warnings, fmt.Sprintf("age %d is above %d", p.Age, maxPlausibleAge))
	}

	if cibil := p.CIBILScore; cibil != nil && *cibil != 0 && (*cibil < minCIBILScore || *cibil > maxCIBILScore) {
		warnings = append(warnings, fmt.Sprintf("cibilScoreCurrent %.0f is outside the %d-%d bureau range",
			*cibil, minCIBILScore, maxCIBILScore))
	}

	dates := []struct {
		field string
		value string
	}{
		{"date", p.Date},
		{"dateOfBirth", p.DateOfBirth},
	}
	for _, d := range dates {
		if d.value == "" {
			continue
		}
		if _, err := datetime.ParseDate(d.value); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", d.field, err))
		}
	}
	if p.Date != "" && p.DateOfBirth != "" {
		if before, err := datetime.DateBeforeDate(p.Date, p.DateOfBirth); err == nil && before {
			warnings = append(warnings, fmt.Sprintf("date %s is before dateOfBirth %s", p.Date, p.DateOfBirth))
		}
	}

	if p.AnnualIncome == 0 {
		warnings = append(warnings, "annualIncome is not set; income-based targets will be 0")
	}

	return warnings
}
