package money

import (
	"time"

	"cloud.google.com/go/civil"
)

// ReferenceTimezone anchors every month/week/day boundary computation. The
// ledger belongs to a Pacific-time household, so "today" is always Pacific
// regardless of where the process runs.
const ReferenceTimezone = "America/Los_Angeles"

// Clock provides "now" in the reference timezone. The zero value is not
// usable; construct with NewClock or NewFixedClock.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock returns a Clock backed by the system time.
func NewClock() Clock {
	return Clock{loc: mustLocation(), now: time.Now}
}

// NewFixedClock returns a Clock frozen at the given date, for tests and
// replay.
func NewFixedClock(d civil.Date) Clock {
	loc := mustLocation()
	fixed := d.In(loc).Add(12 * time.Hour)
	return Clock{loc: loc, now: func() time.Time { return fixed }}
}

func mustLocation() *time.Location {
	loc, err := time.LoadLocation(ReferenceTimezone)
	if err != nil {
		// Shipped tzdata always contains the reference zone.
		panic(err)
	}
	return loc
}

// Now returns the current instant in the reference timezone.
func (c Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Today returns the current calendar date in the reference timezone.
func (c Clock) Today() civil.Date {
	return civil.DateOf(c.Now())
}

// DaysInMonth returns the number of days in today's month: the day before
// the first day of the following month.
func (c Clock) DaysInMonth() int {
	return DaysInMonth(c.Today())
}

// DaysInMonth returns the length of d's month.
func DaysInMonth(d civil.Date) int {
	firstOfNext := civil.Date{Year: d.Year, Month: d.Month, Day: 1}.AddDays(32)
	firstOfNext.Day = 1
	return firstOfNext.AddDays(-1).Day
}

// StartOfWeek returns the Monday on or before d.
func StartOfWeek(d civil.Date, loc *time.Location) civil.Date {
	weekday := int(d.In(loc).Weekday())
	// time.Weekday has Sunday=0; shift so Monday=0.
	offset := (weekday + 6) % 7
	return d.AddDays(-offset)
}

// Weekday returns d's day of week.
func (c Clock) Weekday(d civil.Date) time.Weekday {
	return d.In(c.loc).Weekday()
}

// WeekStart returns the Monday on or before today.
func (c Clock) WeekStart() civil.Date {
	return StartOfWeek(c.Today(), c.loc)
}

// SameMonth reports whether d falls in today's month.
func SameMonth(d, today civil.Date) bool {
	return d.Year == today.Year && d.Month == today.Month
}
