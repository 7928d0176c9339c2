package money

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// ParseLedgerDate parses the strict ledger date format M/D/YYYY (zero
// padding allowed). Returns false for anything else.
func ParseLedgerDate(value string) (civil.Date, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return civil.Date{}, false
	}
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return civil.Date{}, false
	}
	month, err1 := strconv.Atoi(parts[0])
	day, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return civil.Date{}, false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1000 {
		return civil.Date{}, false
	}
	d := civil.Date{Year: year, Month: time.Month(month), Day: day}
	if !d.IsValid() {
		return civil.Date{}, false
	}
	return d, true
}

var monthNames = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// ParseFlexibleDate accepts the formats users type in day-lookup queries:
// M/D, M/D/YYYY, YYYY-MM-DD, "today", "yesterday", and "March 5"/"March 5th"
// phrasing. Unqualified M/D resolves to today's year.
func ParseFlexibleDate(value string, today civil.Date) (civil.Date, bool) {
	s := strings.ToLower(strings.TrimSpace(value))
	if s == "" {
		return civil.Date{}, false
	}

	switch s {
	case "today":
		return today, true
	case "yesterday":
		return today.AddDays(-1), true
	}

	if d, ok := ParseLedgerDate(s); ok {
		return d, true
	}

	// YYYY-MM-DD
	if d, err := civil.ParseDate(s); err == nil {
		return d, true
	}

	// M/D without year
	if parts := strings.Split(s, "/"); len(parts) == 2 {
		month, err1 := strconv.Atoi(parts[0])
		day, err2 := strconv.Atoi(parts[1])
		if err1 == nil && err2 == nil {
			d := civil.Date{Year: today.Year, Month: time.Month(month), Day: day}
			if d.IsValid() {
				return d, true
			}
		}
	}

	// "march 5", "march 5th 2025", "july 1st"
	fields := strings.Fields(strings.NewReplacer(",", " ").Replace(s))
	if len(fields) == 2 || len(fields) == 3 {
		if month, ok := monthNames[fields[0]]; ok {
			dayStr := strings.TrimRight(fields[1], "stndrh")
			if day, err := strconv.Atoi(dayStr); err == nil {
				year := today.Year
				if len(fields) == 3 {
					if y, err := strconv.Atoi(fields[2]); err == nil {
						year = y
					}
				}
				d := civil.Date{Year: year, Month: month, Day: day}
				if d.IsValid() {
					return d, true
				}
			}
		}
	}

	return civil.Date{}, false
}

// FormatLedgerDate renders a date the way rows are written: M/D/YYYY with no
// zero padding.
func FormatLedgerDate(d civil.Date) string {
	return fmt.Sprintf("%d/%d/%d", int(d.Month), d.Day, d.Year)
}
