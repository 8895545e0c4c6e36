package testutil

import (
	"testing"

	"github.com/iwvelando/finhealth/pkg/scoring"
)

func TestFindItem(t *testing.T) {
	items := SampleAssessment().Items()

	item := FindItem(items, scoring.EmergencyFund)
	if item == nil {
		t.Fatal("FindItem() returned nil for Emergency Fund")
	}
	if item.Score != 5 {
		t.Errorf("Emergency Fund score = %d, expected 5", item.Score)
	}

	if FindItem(nil, scoring.EmergencyFund) != nil {
		t.Error("FindItem() on empty slice should return nil")
	}
}

func TestSampleAssessment(t *testing.T) {
	a := SampleAssessment()
	if len(a.Items()) != 20 {
		t.Fatalf("expected 20 items, got %d", len(a.Items()))
	}
	income := FindItem(a.Items(), scoring.IncomeProtection)
	if income == nil || income.Score != 2 {
		t.Errorf("expected income protection at 50%% to score 2, got %+v", income)
	}
	if a.Profile.ClientName != SampleProfile().ClientName {
		t.Errorf("assessment should carry the sample profile")
	}
}
