// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/finhealth/pkg/scoring"
)

// SampleProfile returns a salaried 30-year-old with every base figure set.
func SampleProfile() scoring.Profile {
	return scoring.Profile{
		ClientName:        "Test Client",
		Date:              "2026-10-19",
		Age:               30,
		AnnualIncome:      1200000,
		MonthlyExpenses:   50000,
		MarriageFundGoal:  50000,
		DebtManagementEMI: scoring.Float(10000),
		MonthlySavings:    scoring.Float(25000),
		HousingCost:       scoring.Float(45000),
		CIBILScore:        scoring.Float(780),
		BudgetPlanning:    "Yes",
		EstatePlanning:    "No",
	}
}

// SampleAssessment scores SampleProfile with half the income protection
// target covered and one risk and one safe investment.
func SampleAssessment() scoring.Assessment {
	checklist := scoring.NewChecklist().
		SetCurrent(scoring.IncomeProtection, scoring.Amount(12000000)).
		SetCurrent(scoring.EmergencyFund, scoring.Amount(150000))
	investments := scoring.NewInvestmentOptions().
		With(scoring.EquityMutualFunds, true).
		With(scoring.PPF, true)
	return scoring.Recompute(SampleProfile(), checklist, investments, scoring.DefaultOptions())
}

// FindItem finds an item by kind in the items slice.
// Returns a pointer to the item if found, nil otherwise.
func FindItem(items []scoring.Item, kind scoring.ItemKind) *scoring.Item {
	for i := range items {
		if items[i].Kind == kind {
			return &items[i]
		}
	}
	return nil
}
