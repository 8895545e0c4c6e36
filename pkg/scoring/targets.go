package scoring

import (
	"github.com/iwvelando/finhealth/pkg/constants"
	"github.com/iwvelando/finhealth/pkg/mathutil"
	"github.com/shopspring/decimal"
)

var (
	monthsPerYear  = decimal.NewFromInt(constants.MonthsPerYear)
	debtShare      = decimal.RequireFromString("0.4")
	savingsShare   = decimal.RequireFromString("0.2")
	housingShare   = decimal.RequireFromString("0.3")
	incomeMultiple = map[ItemKind]int64{
		IncomeProtection:     20,
		HealthInsurance:      8,
		CriticalIllnessCover: 3,
		DisabilityInsurance:  3,
		SpouseCoverage:       10,
	}
	expenseMultiple = map[ItemKind]int64{
		EmergencyFund:   3,
		RetirementGoals: 300,
	}
)

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(mathutil.NonNegative(v))
}

// ResolveTarget returns the target for kind. It is total: every kind gets a
// target, and missing profile figures yield zero targets.
func ResolveTarget(p Profile, kind ItemKind) Value {
	income := money(p.AnnualIncome)
	expenses := money(p.MonthlyExpenses)

	if m, ok := incomeMultiple[kind]; ok {
		return Amount(income.Mul(decimal.NewFromInt(m)).InexactFloat64())
	}
	if m, ok := expenseMultiple[kind]; ok {
		return Amount(expenses.Mul(decimal.NewFromInt(m)).InexactFloat64())
	}

	switch kind {
	case ChildEducationFund:
		return Amount(money(p.ChildEducationFundGoal).InexactFloat64())
	case MarriageFund:
		return Amount(money(p.MarriageFundGoal).InexactFloat64())
	case DebtManagement:
		return Amount(income.Mul(debtShare).Div(monthsPerYear).InexactFloat64())
	case WealthPlanning:
		return Amount(income.Div(monthsPerYear).Mul(savingsShare).InexactFloat64())
	case HomeLoanOrRent:
		return Amount(income.Div(monthsPerYear).Mul(housingShare).InexactFloat64())
	case CIBILScore:
		return Amount(constants.CIBILDisplayTarget)
	case TaxPlanning:
		return Amount(constants.TaxPlanningTarget)
	case InvestmentDiversification:
		return Label(TargetLabel(p.Age))
	}

	if kind.Policy() == PolicyYesNo {
		return Answer(constants.YesAnswer)
	}
	return Amount(0)
}

// ResolveTargets returns the target of every checklist kind.
func ResolveTargets(p Profile) map[ItemKind]Value {
	targets := make(map[ItemKind]Value, itemKindCount)
	for _, kind := range AllItemKinds() {
		targets[kind] = ResolveTarget(p, kind)
	}
	return targets
}
