// Package datetime provides date and time utility functions.
package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/GiftinTech/Loan-Calculator/pkg/constants"
)

const (
	// DateLayout is the format expected for start dates and is also the output
	// date format.
	DateLayout = constants.DateLayout
)

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(date string) (time.Time, error) {
	trimmed := strings.TrimSpace(date)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	return time.Parse(DateLayout, trimmed)
}

// FormatDate renders t with DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths advances t by the given number of calendar months. Unlike
// time.AddDate, a day that does not exist in the target month is clamped to
// that month's last day, so Jan 31 + 1 month is Feb 28 (or 29), not Mar 3.
func AddMonths(t time.Time, months int) time.Time {
	total := int(t.Month()) - 1 + months
	year := t.Year() + total/constants.MonthsPerYear
	offset := total % constants.MonthsPerYear
	if offset < 0 {
		offset += constants.MonthsPerYear
		year--
	}
	month := time.Month(offset + 1)

	day := t.Day()
	if last := DaysInMonth(year, month); day > last {
		day = last
	}

	hour, minute, sec := t.Clock()
	return time.Date(year, month, day, hour, minute, sec, t.Nanosecond(), t.Location())
}
