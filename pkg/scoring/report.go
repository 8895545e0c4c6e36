package scoring

import (
	"fmt"
	"math"

	"github.com/iwvelando/finhealth/pkg/constants"
)

// Grade is a letter grade with its remark.
type Grade struct {
	Letter  string `json:"grade"`
	Remarks string `json:"remarks"`
}

var gradeBands = []struct {
	min   float64
	grade Grade
}{
	{90, Grade{"A+", "Excellent"}},
	{80, Grade{"A", "Very Good"}},
	{70, Grade{"B+", "Good"}},
	{60, Grade{"B", "Above Average"}},
	{50, Grade{"C", "Average"}},
	{40, Grade{"D", "Needs Improvement"}},
}

// GradeF is awarded below the lowest band.
var GradeF = Grade{"F", "Critical Attention Needed"}

// GradeFor buckets a 0-100 percentage.
func GradeFor(percentage float64) Grade {
	p := math.Max(0, math.Min(100, percentage))
	for _, band := range gradeBands {
		if p >= band.min {
			return band.grade
		}
	}
	return GradeF
}

// ScoreGrade grades a single 1..5 score.
func ScoreGrade(score float64) Grade {
	return GradeFor(score / constants.MaxItemScore * constants.PercentageMultiplier)
}

// Category names.
const (
	CategoryRiskProtection      = "Risk Protection"
	CategoryEmergencyDebt       = "Emergency & Debt"
	CategoryGoalPlanning        = "Goal Planning"
	CategoryWealthInvestment    = "Wealth & Investment"
	CategoryFinancialManagement = "Financial Management"
	CategoryOther               = "Other"
)

var categoryMembers = []struct {
	name  string
	items []ItemKind
}{
	{CategoryRiskProtection, []ItemKind{IncomeProtection, HealthInsurance, CriticalIllnessCover, DisabilityInsurance, SpouseCoverage}},
	{CategoryEmergencyDebt, []ItemKind{EmergencyFund, DebtManagement, CIBILScore}},
	{CategoryGoalPlanning, []ItemKind{RetirementGoals, ChildEducationFund, MarriageFund, FamilyGoals}},
	{CategoryWealthInvestment, []ItemKind{WealthPlanning, InvestmentDiversification, LegacyFund}},
	{CategoryFinancialManagement, []ItemKind{HomeLoanOrRent, BudgetPlanning, TaxPlanning, HUFAccount, EstatePlanning}},
}

// CategoryOf returns the report category of kind.
func CategoryOf(kind ItemKind) string {
	for _, c := range categoryMembers {
		for _, k := range c.items {
			if k == kind {
				return c.name
			}
		}
	}
	return CategoryOther
}

// CategoryScore is the average score of the items in one category.
type CategoryScore struct {
	Name    string  `json:"name"`
	Average float64 `json:"averageScore"`
	Count   int     `json:"count"`
	Remarks string  `json:"remarks"`
}

// Report summarises a scored checklist.
type Report struct {
	TotalScore        int             `json:"totalScore"`
	MaxScore          int             `json:"maxScore"`
	OverallPercentage int             `json:"overallPercentage"`
	Grade             Grade           `json:"grade"`
	Categories        []CategoryScore `json:"categoryScores"`
	Insights          []string        `json:"insights"`
}

// Category returns the named category score.
func (r Report) Category(name string) (CategoryScore, bool) {
	for _, c := range r.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return CategoryScore{}, false
}

// Aggregate builds the report for items. Categories appear in fixed order and
// only when they have members.
func Aggregate(items []Item) Report {
	var r Report
	totals := make(map[string]int)
	counts := make(map[string]int)
	for _, item := range items {
		r.TotalScore += item.Score
		name := CategoryOf(item.Kind)
		totals[name] += item.Score
		counts[name]++
	}
	r.MaxScore = len(items) * constants.MaxItemScore
	if r.MaxScore > 0 {
		r.OverallPercentage = int(math.Round(float64(r.TotalScore) / float64(r.MaxScore) * constants.PercentageMultiplier))
	}
	r.Grade = GradeFor(float64(r.OverallPercentage))

	names := make([]string, 0, len(categoryMembers)+1)
	for _, c := range categoryMembers {
		names = append(names, c.name)
	}
	names = append(names, CategoryOther)
	for _, name := range names {
		n := counts[name]
		if n == 0 {
			continue
		}
		avg := float64(totals[name]) / float64(n)
		r.Categories = append(r.Categories, CategoryScore{
			Name:    name,
			Average: avg,
			Count:   n,
			Remarks: ScoreGrade(avg).Remarks,
		})
	}

	r.Insights = summaryInsights(r)
	return r
}

const (
	lowCategoryScore = 3.0
	midCategoryScore = 3.5
)

var categoryAdvice = []struct {
	name      string
	threshold float64
	advice    string
}{
	{CategoryRiskProtection, lowCategoryScore, "Risk protection strategies (Insurances) appear weak. Reviewing coverage amounts is crucial."},
	{CategoryEmergencyDebt, lowCategoryScore, "Focus on increasing the Emergency Fund and actively managing debt."},
	{CategoryGoalPlanning, midCategoryScore, "Progress towards long-term goals like Retirement and Education seems slow."},
	{CategoryWealthInvestment, lowCategoryScore, "Wealth creation and investment diversification need attention."},
	{CategoryFinancialManagement, midCategoryScore, "Review core financial habits including Budgeting, Tax Planning, and housing costs."},
}

func summaryInsights(r Report) []string {
	insights := []string{fmt.Sprintf("Overall Financial Health Score is %d%%, which is considered %s.", r.OverallPercentage, r.Grade.Remarks)}
	for _, a := range categoryAdvice {
		if c, ok := r.Category(a.name); ok && c.Average < a.threshold {
			insights = append(insights, a.advice)
		}
	}
	switch {
	case len(insights) == 1 && r.OverallPercentage >= 70:
		insights = append(insights, "The current financial standing appears robust. Maintain disciplined financial habits.")
	case len(insights) > 1:
		insights = append(insights, "Address the highlighted areas with lower scores first to build a stronger financial foundation.")
	}
	return insights
}
