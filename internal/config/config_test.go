package config

import (
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/finhealth/pkg/constants"
	"github.com/iwvelando/finhealth/pkg/scoring"
)

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Test fixture",
			configPath: "../../test/test_assessment.yaml",
		},
		{
			name:       "Shipped example",
			configPath: "../../" + constants.ExampleConfigFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationStructure(t *testing.T) {
	config, err := LoadConfiguration("../../test/test_assessment.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if config.Profile.ClientName != "Test Client" {
		t.Errorf("Expected client name Test Client, got %q", config.Profile.ClientName)
	}
	if config.Profile.AnnualIncome != 1200000 {
		t.Errorf("Expected annual income 1200000, got %v", config.Profile.AnnualIncome)
	}
	if config.Profile.Age != 30 {
		t.Errorf("Expected age 30, got %d", config.Profile.Age)
	}
	if config.Profile.CIBILScore == nil || *config.Profile.CIBILScore != 780 {
		t.Errorf("Expected CIBIL 780, got %v", config.Profile.CIBILScore)
	}
	if config.Profile.MarriageFundGoal != 50000 {
		t.Errorf("Expected default marriage fund goal 50000, got %v", config.Profile.MarriageFundGoal)
	}
	if len(config.Holdings) != 4 {
		t.Errorf("Expected 4 holdings, got %d", len(config.Holdings))
	}
	if len(config.Investments) != 3 {
		t.Errorf("Expected 3 investments, got %d", len(config.Investments))
	}
	if config.Scoring.Scale != "strict" || config.Scoring.InvestmentMethod != "balance" {
		t.Errorf("Unexpected scoring config %+v", config.Scoring)
	}
	if config.Logging.Level != "debug" || config.Logging.Format != "json" {
		t.Errorf("Unexpected logging config %+v", config.Logging)
	}
	if config.Output.Format != "csv" {
		t.Errorf("Expected output format csv, got %q", config.Output.Format)
	}
	if config.Backend.BaseURL != "http://localhost:9000" || config.Backend.Timeout != 5*time.Second {
		t.Errorf("Unexpected backend config %+v", config.Backend)
	}
}

func TestLoadConfigurationDefaults(t *testing.T) {
	config, err := LoadConfigurationFromReader(strings.NewReader("profile:\n  annualIncome: 600000\n"))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if config.Scoring.Scale != "graded" {
		t.Errorf("Expected default scale graded, got %q", config.Scoring.Scale)
	}
	if config.Scoring.InvestmentMethod != "age-based" {
		t.Errorf("Expected default investment method age-based, got %q", config.Scoring.InvestmentMethod)
	}
	if config.Output.Format != "pretty" {
		t.Errorf("Expected default output format pretty, got %q", config.Output.Format)
	}
	if config.Backend.Timeout != 30*time.Second {
		t.Errorf("Expected default backend timeout 30s, got %v", config.Backend.Timeout)
	}
	if config.Profile.MarriageFundGoal != 50000 {
		t.Errorf("Expected default marriage fund goal, got %v", config.Profile.MarriageFundGoal)
	}
}

func TestLoadConfigurationFromReaderInvalid(t *testing.T) {
	if _, err := LoadConfigurationFromReader(strings.NewReader("profile: [unterminated")); err == nil {
		t.Errorf("LoadConfigurationFromReader() expected error for malformed YAML")
	}
}

func TestBackendTokenFromEnvironment(t *testing.T) {
	t.Setenv("FINHEALTH_BACKEND_TOKEN", "secret-token")
	config, err := LoadConfigurationFromReader(strings.NewReader("backend:\n  baseURL: http://example.test\n"))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if config.Backend.Token != "secret-token" {
		t.Errorf("Expected token from environment, got %q", config.Backend.Token)
	}
}

func TestInputs(t *testing.T) {
	config, err := LoadConfiguration("../../test/test_assessment.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	in, warnings, err := config.Inputs()
	if err != nil {
		t.Fatalf("Inputs() error = %v", err)
	}

	if in.Options.Scale.Name != "strict" || in.Options.Investment != scoring.InvestmentBalance {
		t.Errorf("Unexpected options %+v", in.Options)
	}

	item, _ := in.Checklist.Get(scoring.EmergencyFund)
	if item.Current != scoring.Amount(150000) {
		t.Errorf("Expected emergency fund 150000, got %+v", item.Current)
	}
	item, _ = in.Checklist.Get(scoring.HUFAccount)
	if item.Current != scoring.Answer("Yes") {
		t.Errorf("Expected HUF answer Yes, got %+v", item.Current)
	}

	if !in.Investments[scoring.EquityMutualFunds] || !in.Investments[scoring.PPF] {
		t.Errorf("Expected equityMutualFunds and ppf to be selected")
	}
	if len(in.Investments.Selected()) != 2 {
		t.Errorf("Expected 2 selected investments, got %v", in.Investments.Selected())
	}

	expectedWarnings := []string{"Yacht Fund", "beanieBabies"}
	for _, expected := range expectedWarnings {
		found := false
		for _, w := range warnings {
			if strings.Contains(strings.ToLower(w), strings.ToLower(expected)) {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected a warning mentioning %q, got %v", expected, warnings)
		}
	}
}

func TestInputsRejectsUnknownStrategies(t *testing.T) {
	tests := []struct {
		name    string
		scoring ScoringConfig
	}{
		{"Unknown scale", ScoringConfig{Scale: "lenient"}},
		{"Unknown investment method", ScoringConfig{InvestmentMethod: "random"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Configuration{Scoring: tt.scoring}
			if _, _, err := config.Inputs(); err == nil {
				t.Errorf("Inputs() expected error for %+v", tt.scoring)
			}
		})
	}
}

func TestInputsRejectsInvestmentHolding(t *testing.T) {
	config := &Configuration{
		Profile:  scoring.Profile{AnnualIncome: 1, Age: 30},
		Holdings: map[string]string{"investment diversification": "Yes"},
	}
	_, warnings, err := config.Inputs()
	if err != nil {
		t.Fatalf("Inputs() error = %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "derived from investments") {
		t.Errorf("Expected one derived-row warning, got %v", warnings)
	}
}

func TestAssess(t *testing.T) {
	config, err := LoadConfiguration("../../test/test_assessment.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	assessment, _, err := config.Assess()
	if err != nil {
		t.Fatalf("Assess() error = %v", err)
	}
	if len(assessment.Items()) != 20 {
		t.Fatalf("Expected 20 items, got %d", len(assessment.Items()))
	}

	// Balance method with one risk and one safe option is an even split.
	if assessment.Allocation.Score != 5 {
		t.Errorf("Expected balanced allocation score 5, got %d", assessment.Allocation.Score)
	}

	debt, _ := assessment.Checklist.Get(scoring.DebtManagement)
	if debt.Current.Number != 10000 || debt.Score != 5 {
		t.Errorf("Expected debt management from profile scored 5, got %+v", debt)
	}

	estate, _ := assessment.Checklist.Get(scoring.EstatePlanning)
	if estate.Score != 1 {
		t.Errorf("Expected estate planning score 1, got %d", estate.Score)
	}

	if assessment.Report.MaxScore != 100 {
		t.Errorf("Expected max score 100, got %d", assessment.Report.MaxScore)
	}
}

func TestCompleteProfile(t *testing.T) {
	now := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		profile  scoring.Profile
		expected int
	}{
		{"Entered age wins", scoring.Profile{Age: 40, DateOfBirth: "1990-01-01"}, 40},
		{"Age from date of birth as of now", scoring.Profile{DateOfBirth: "15-11-1990"}, 35},
		{"Age as of assessment date", scoring.Profile{DateOfBirth: "1990-11-15", Date: "2020-12-01"}, 30},
		{"Unparseable date of birth", scoring.Profile{DateOfBirth: "unknown"}, 0},
		{"No date of birth", scoring.Profile{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompleteProfile(tt.profile, now).Age; got != tt.expected {
				t.Errorf("CompleteProfile().Age = %d, expected %d", got, tt.expected)
			}
		})
	}
}
