// Package datetime provides date utility functions for assessment dates and
// dates of birth.
package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/finhealth/pkg/constants"
)

// Layouts accepted for dates in assessments, tried in order. Day-first
// layouts follow the Indian convention.
var Layouts = []string{
	constants.DateLayout,
	"02-01-2006",
	"02/01/2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"January 2, 2006",
}

// ParseDate parses a date in any of the accepted layouts.
func ParseDate(date string) (time.Time, error) {
	trimmed := strings.TrimSpace(date)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range Layouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q (expected e.g. %s)", date, constants.DateLayout)
}

// DisplayDate renders a parseable date in the report layout and returns
// anything else unchanged.
func DisplayDate(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format(constants.DisplayDateLayout)
}

// AgeOn returns the number of whole years between birth and on. It returns
// 0 when on is before birth.
func AgeOn(birth, on time.Time) int {
	if on.Before(birth) {
		return 0
	}
	years := on.Year() - birth.Year()
	if on.Month() < birth.Month() || (on.Month() == birth.Month() && on.Day() < birth.Day()) {
		years--
	}
	return years
}

// DateBeforeDate returns true if firstDate is strictly before secondDate.
func DateBeforeDate(firstDate string, secondDate string) (bool, error) {
	firstDateT, err := ParseDate(firstDate)
	if err != nil {
		return false, err
	}
	secondDateT, err := ParseDate(secondDate)
	if err != nil {
		return false, err
	}
	return firstDateT.Before(secondDateT), nil
}
