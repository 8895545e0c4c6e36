package scoring

import (
	"fmt"
	"strings"

	"github.com/iwvelando/finhealth/pkg/constants"
	"github.com/iwvelando/finhealth/pkg/mathutil"
)

// InvestmentOption is one instrument the client may hold.
type InvestmentOption string

// Risk instruments.
const (
	EquityDirectStocks      InvestmentOption = "equityDirectStocks"
	CryptoAssets            InvestmentOption = "cryptoAssets"
	RealEstateProperty      InvestmentOption = "realEstateProperty"
	OwnBusinessStartups     InvestmentOption = "ownBusinessStartups"
	EquityMutualFunds       InvestmentOption = "equityMutualFunds"
	Derivatives             InvestmentOption = "derivatives"
	CommoditiesForex        InvestmentOption = "commoditiesForex"
	P2PLending              InvestmentOption = "p2pLending"
	UnlistedSharesPreIPO    InvestmentOption = "unlistedSharesPreIPO"
	ReitsInvitsThematicETFs InvestmentOption = "reitsInvitsThematicETFs"
)

// Safe instruments.
const (
	FixedDepositsRDs         InvestmentOption = "fixedDepositsRDs"
	PPF                      InvestmentOption = "ppf"
	EPF                      InvestmentOption = "epf"
	NPS                      InvestmentOption = "nps"
	GovtBondsAAACorpBonds    InvestmentOption = "govtBondsAAACorpBonds"
	PostOfficeSchemes        InvestmentOption = "postOfficeSchemes"
	SukanyaSamriddhiYojana   InvestmentOption = "sukanyaSamriddhiYojana"
	ULIPSavingInsurance      InvestmentOption = "ulipSavingInsurance"
	Gold                     InvestmentOption = "gold"
	DebtMutualFundsIndexETFs InvestmentOption = "debtMutualFundsIndexETFs"
)

var riskOptions = []InvestmentOption{
	EquityDirectStocks, CryptoAssets, RealEstateProperty, OwnBusinessStartups, EquityMutualFunds,
	Derivatives, CommoditiesForex, P2PLending, UnlistedSharesPreIPO, ReitsInvitsThematicETFs,
}

var safeOptions = []InvestmentOption{
	FixedDepositsRDs, PPF, EPF, NPS, GovtBondsAAACorpBonds,
	PostOfficeSchemes, SukanyaSamriddhiYojana, ULIPSavingInsurance, Gold, DebtMutualFundsIndexETFs,
}

var optionDisplayNames = map[InvestmentOption]string{
	EquityDirectStocks:       "Equity (Direct Stocks)",
	CryptoAssets:             "Crypto Assets",
	RealEstateProperty:       "Real Estate / Property",
	OwnBusinessStartups:      "Own Business / Startups",
	EquityMutualFunds:        "Equity Mutual Funds",
	Derivatives:              "Derivatives (Futures & Options)",
	CommoditiesForex:         "Commodities & Forex Trading",
	P2PLending:               "Peer-to-Peer Lending (P2P)",
	UnlistedSharesPreIPO:     "Unlisted Shares / Pre-IPO",
	ReitsInvitsThematicETFs:  "REITs, InvITs & Thematic ETFs",
	FixedDepositsRDs:         "Fixed Deposits (FDs) & Recurring Deposits (RDs)",
	PPF:                      "Public Provident Fund (PPF)",
	EPF:                      "Employees' Provident Fund (EPF)",
	NPS:                      "National Pension Scheme (NPS)",
	GovtBondsAAACorpBonds:    "Government Bonds & AAA-rated Corporate Bonds",
	PostOfficeSchemes:        "Post Office Savings Schemes",
	SukanyaSamriddhiYojana:   "Sukanya Samriddhi Yojana",
	ULIPSavingInsurance:      "ULIP & Saving Insurance Plans",
	Gold:                     "Gold (Sovereign/Digital/Physical)",
	DebtMutualFundsIndexETFs: "Debt Mutual Funds & Index ETFs",
}

// RiskOptions returns the risk instruments in display order.
func RiskOptions() []InvestmentOption {
	return append([]InvestmentOption(nil), riskOptions...)
}

// SafeOptions returns the safe instruments in display order.
func SafeOptions() []InvestmentOption {
	return append([]InvestmentOption(nil), safeOptions...)
}

// DisplayName returns the human-readable instrument name.
func (o InvestmentOption) DisplayName() string {
	if name, ok := optionDisplayNames[o]; ok {
		return name
	}
	return string(o)
}

// IsRisk reports whether the option belongs to the risk category.
func (o InvestmentOption) IsRisk() bool {
	for _, r := range riskOptions {
		if r == o {
			return true
		}
	}
	return false
}

// ParseInvestmentOption resolves a camelCase key, case-insensitively.
func ParseInvestmentOption(key string) (InvestmentOption, error) {
	want := strings.ToLower(strings.TrimSpace(key))
	for o := range optionDisplayNames {
		if strings.ToLower(string(o)) == want {
			return o, nil
		}
	}
	return "", fmt.Errorf("unknown investment option %q", key)
}

// InvestmentOptions records which instruments the client holds. A missing key
// means not held.
type InvestmentOptions map[InvestmentOption]bool

// NewInvestmentOptions returns a set with every known option present and false.
func NewInvestmentOptions() InvestmentOptions {
	opts := make(InvestmentOptions, len(optionDisplayNames))
	for o := range optionDisplayNames {
		opts[o] = false
	}
	return opts
}

// With returns a copy with option set to held.
func (opts InvestmentOptions) With(option InvestmentOption, held bool) InvestmentOptions {
	out := make(InvestmentOptions, len(opts)+1)
	for k, v := range opts {
		out[k] = v
	}
	out[option] = held
	return out
}

// Selected returns held options in display order, risk first.
func (opts InvestmentOptions) Selected() []InvestmentOption {
	var selected []InvestmentOption
	for _, o := range riskOptions {
		if opts[o] {
			selected = append(selected, o)
		}
	}
	for _, o := range safeOptions {
		if opts[o] {
			selected = append(selected, o)
		}
	}
	return selected
}

func (opts InvestmentOptions) count(category []InvestmentOption) int {
	n := 0
	for _, o := range category {
		if opts[o] {
			n++
		}
	}
	return n
}

// InvestmentMethod selects how diversification is scored.
type InvestmentMethod string

const (
	// InvestmentAgeBased compares the risk share against 100 − age.
	InvestmentAgeBased InvestmentMethod = "age-based"
	// InvestmentBalance rewards an even split between risk and safe holdings.
	InvestmentBalance InvestmentMethod = "balance"
)

// ParseInvestmentMethod resolves a method name; empty selects the default.
func ParseInvestmentMethod(name string) (InvestmentMethod, error) {
	switch InvestmentMethod(strings.ToLower(strings.TrimSpace(name))) {
	case "", InvestmentAgeBased:
		return InvestmentAgeBased, nil
	case InvestmentBalance:
		return InvestmentBalance, nil
	}
	return "", fmt.Errorf("unknown investment method %q (expected %s or %s)", name, InvestmentAgeBased, InvestmentBalance)
}

// Allocation is the outcome of scoring the client's investment mix.
type Allocation struct {
	RiskCount         int     `json:"riskCount"`
	SafeCount         int     `json:"safeCount"`
	RiskPercent       float64 `json:"risk"`
	SafePercent       float64 `json:"safe"`
	TargetRiskPercent float64 `json:"targetRisk"`
	TargetSafePercent float64 `json:"targetSafe"`
	RiskDifference    float64 `json:"riskDifference"`
	Score             int     `json:"score"`
}

// IdealSplit returns the age-derived safe and risk percentages. Ages at or
// below zero fall back to DefaultInvestorAge.
func IdealSplit(age int) (safe, risk float64) {
	if age <= 0 {
		age = constants.DefaultInvestorAge
	}
	safe = mathutil.Clamp(float64(age), 0, 100)
	return safe, 100 - safe
}

// ScoreAllocation scores opts for a client of the given age.
func ScoreAllocation(opts InvestmentOptions, age int, method InvestmentMethod, scale ScalePolicy) Allocation {
	a := Allocation{
		RiskCount: opts.count(riskOptions),
		SafeCount: opts.count(safeOptions),
	}
	a.TargetSafePercent, a.TargetRiskPercent = IdealSplit(age)

	switch method {
	case InvestmentBalance:
		total := float64(a.RiskCount + a.SafeCount)
		a.RiskPercent = mathutil.CalculatePercentage(float64(a.RiskCount), total)
		a.SafePercent = mathutil.CalculatePercentage(float64(a.SafeCount), total)
		a.RiskDifference = a.RiskPercent - a.TargetRiskPercent
		a.Score = scale.Score(mathutil.Min(a.RiskPercent, a.SafePercent) * 2)
	default:
		// Each category is scaled by its own size, so the two shares need not sum to 100.
		a.RiskPercent = mathutil.CalculatePercentage(float64(a.RiskCount), float64(len(riskOptions)))
		a.SafePercent = mathutil.CalculatePercentage(float64(a.SafeCount), float64(len(safeOptions)))
		a.RiskDifference = a.RiskPercent - a.TargetRiskPercent
		a.Score = DeviationScore(a.RiskDifference)
	}
	return a
}

// Allowed distances from the ideal risk share for scores 5 down to 2.
var deviationBands = [...]float64{5, 10, 20, 30}

// DeviationScore maps the distance from the ideal risk share to 1..5.
func DeviationScore(riskDifference float64) int {
	d := mathutil.Finite(riskDifference)
	for i, band := range deviationBands {
		if mathutil.WithinTolerance(d, 0, band) {
			return constants.MaxItemScore - i
		}
	}
	return constants.MinItemScore
}

// TargetLabel renders the ideal split shown as the investment item's target.
func TargetLabel(age int) string {
	safe, risk := IdealSplit(age)
	return fmt.Sprintf("Risk %.0f%% / Safe %.0f%%", risk, safe)
}
