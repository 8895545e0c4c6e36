package datetime

import (
	"testing"
	"time"

	"github.com/iwvelando/finhealth/pkg/constants"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"ISO", "2025-03-07", "2025-03-07", false},
		{"Day first with dashes", "07-03-2025", "2025-03-07", false},
		{"Day first with slashes", "07/03/2025", "2025-03-07", false},
		{"Short month name", "7 Mar 2025", "2025-03-07", false},
		{"Long month name", "March 7, 2025", "2025-03-07", false},
		{"Surrounding whitespace", "  2025-03-07 ", "2025-03-07", false},
		{"Empty", "", "", true},
		{"Month only", "2025-03", "", true},
		{"Garbage", "next tuesday", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got.Format(constants.DateLayout) != tt.expected {
				t.Errorf("ParseDate(%q) = %s, expected %s", tt.input, got.Format(constants.DateLayout), tt.expected)
			}
		})
	}
}

func TestDisplayDate(t *testing.T) {
	if got := DisplayDate("2025-03-07"); got != "07 Mar 2025" {
		t.Errorf("DisplayDate() = %q, expected 07 Mar 2025", got)
	}
	if got := DisplayDate("sometime"); got != "sometime" {
		t.Errorf("DisplayDate() should pass through unparseable input, got %q", got)
	}
}

func TestAgeOn(t *testing.T) {
	birth := time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		on       time.Time
		expected int
	}{
		{"Day before birthday", time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC), 34},
		{"On birthday", time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC), 35},
		{"Later month", time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), 35},
		{"Earlier month", time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC), 34},
		{"Before birth", time.Date(1989, time.January, 1, 0, 0, 0, 0, time.UTC), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AgeOn(birth, tt.on); got != tt.expected {
				t.Errorf("AgeOn() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestDateBeforeDate(t *testing.T) {
	before, err := DateBeforeDate("01-01-2024", "2024-06-30")
	if err != nil || !before {
		t.Errorf("DateBeforeDate() = %v, %v; expected true", before, err)
	}
	before, err = DateBeforeDate("2024-06-30", "2024-06-30")
	if err != nil || before {
		t.Errorf("DateBeforeDate() on equal dates = %v, %v; expected false", before, err)
	}
	if _, err := DateBeforeDate("bad", "2024-06-30"); err == nil {
		t.Error("expected error for unparseable date")
	}
}
