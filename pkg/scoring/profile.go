package scoring

// Profile holds the base figures that drive target computation, the values
// the client enters directly for profile-backed checklist rows, and identity
// fields carried into reports.
type Profile struct {
	ClientName          string `json:"clientName" mapstructure:"clientName"`
	FinancialDoctorName string `json:"financialDoctorName" mapstructure:"financialDoctorName"`
	Date                string `json:"date" mapstructure:"date"`
	EmailID             string `json:"emailId" mapstructure:"emailId"`
	MobileNumber        string `json:"mobileNumber" mapstructure:"mobileNumber"`
	DateOfBirth         string `json:"dateOfBirth" mapstructure:"dateOfBirth"`
	FamilyMembers       string `json:"familyMembers" mapstructure:"familyMembers"`
	Age                 int    `json:"age" mapstructure:"age"`

	AnnualIncome           float64 `json:"annualIncome" mapstructure:"annualIncome"`
	MonthlyExpenses        float64 `json:"monthlyExpenses" mapstructure:"monthlyExpenses"`
	ChildEducationFundGoal float64 `json:"childEducationFundGoal" mapstructure:"childEducationFundGoal"`
	MarriageFundGoal       float64 `json:"marriageFundGoal" mapstructure:"marriageFundGoal"`
	WealthTarget           float64 `json:"wealthTarget" mapstructure:"wealthTarget"`

	// Entered amounts are nil when the client gave no figure. An entered
	// zero is a real value and replaces the checklist's current status.
	DebtManagementEMI     *float64 `json:"debtManagementEmi,omitempty" mapstructure:"debtManagementEmi"`
	MonthlySavings        *float64 `json:"monthlySavings,omitempty" mapstructure:"monthlySavings"`
	HousingCost           *float64 `json:"housingCost,omitempty" mapstructure:"housingCost"`
	CIBILScore            *float64 `json:"cibilScoreCurrent,omitempty" mapstructure:"cibilScoreCurrent"`
	MarriageFundCurrent   *float64 `json:"marriageFundCurrent,omitempty" mapstructure:"marriageFundCurrent"`
	SpouseCoverageCurrent *float64 `json:"spouseCoverageCurrent,omitempty" mapstructure:"spouseCoverageCurrent"`
	TaxPlanningCurrent    *float64 `json:"taxPlanningCurrent,omitempty" mapstructure:"taxPlanningCurrent"`

	BudgetPlanning string `json:"budgetPlanning" mapstructure:"budgetPlanning"`
	EstatePlanning string `json:"estatePlanning" mapstructure:"estatePlanning"`
	LegacyFund     string `json:"legacyFund" mapstructure:"legacyFund"`
	HUFAccount     string `json:"hufAccount" mapstructure:"hufAccount"`
	FamilyGoals    string `json:"familyGoals" mapstructure:"familyGoals"`
}

// Float returns a pointer to v, for filling in entered profile amounts.
func Float(v float64) *float64 {
	return &v
}

// ProfileBacked reports whether kind takes its current status from a
// Profile field rather than from the checklist.
func ProfileBacked(kind ItemKind) bool {
	_, backed, _ := Profile{}.currentFor(kind)
	return backed
}

// currentFor returns the profile value mapped onto kind's current status,
// whether kind is profile-backed at all, and whether the client entered a
// value for it.
func (p Profile) currentFor(kind ItemKind) (v Value, backed, entered bool) {
	switch kind {
	case DebtManagement:
		return enteredAmount(p.DebtManagementEMI)
	case WealthPlanning:
		return enteredAmount(p.MonthlySavings)
	case HomeLoanOrRent:
		return enteredAmount(p.HousingCost)
	case CIBILScore:
		return enteredAmount(p.CIBILScore)
	case MarriageFund:
		return enteredAmount(p.MarriageFundCurrent)
	case SpouseCoverage:
		return enteredAmount(p.SpouseCoverageCurrent)
	case TaxPlanning:
		return enteredAmount(p.TaxPlanningCurrent)
	case BudgetPlanning:
		return enteredAnswer(p.BudgetPlanning)
	case EstatePlanning:
		return enteredAnswer(p.EstatePlanning)
	case LegacyFund:
		return enteredAnswer(p.LegacyFund)
	case HUFAccount:
		return enteredAnswer(p.HUFAccount)
	case FamilyGoals:
		return enteredAnswer(p.FamilyGoals)
	}
	return Value{}, false, false
}

func enteredAmount(f *float64) (Value, bool, bool) {
	if f == nil {
		return Value{}, true, false
	}
	return Amount(*f), true, true
}

func enteredAnswer(s string) (Value, bool, bool) {
	v := Answer(s)
	return v, true, !v.IsZero()
}
