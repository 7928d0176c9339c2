package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/deebers/bookiebot/internal/money"
	"github.com/deebers/bookiebot/internal/sheets"
)

// SpentThisWeek totals every entry dated on or after Monday of the current
// week.
func (e *Engine) SpentThisWeek(ctx context.Context, persons []string) (float64, error) {
	entries, err := e.entries(ctx, persons)
	if err != nil {
		return 0, fmt.Errorf("SpentThisWeek: %w", err)
	}
	weekStart := e.clock.WeekStart()
	var total float64
	for _, entry := range entries {
		if entry.Date.IsZero() || entry.Date.Before(weekStart) {
			continue
		}
		total += entry.Amount
	}
	return total, nil
}

// ProjectedSpending extrapolates the month-to-date total across the whole
// month: (total / dayOfMonth) * daysInMonth.
func (e *Engine) ProjectedSpending(ctx context.Context, persons []string) (float64, error) {
	entries, err := e.monthEntries(ctx, persons)
	if err != nil {
		return 0, fmt.Errorf("ProjectedSpending: %w", err)
	}
	day := e.clock.Today().Day
	if day == 0 {
		return 0, nil
	}
	var total float64
	for _, entry := range entries {
		total += entry.Amount
	}
	daily := total / float64(day)
	return daily * float64(e.clock.DaysInMonth()), nil
}

// WeekendVsWeekday splits spending into Saturday/Sunday versus the rest.
func (e *Engine) WeekendVsWeekday(ctx context.Context, persons []string) (weekend, weekday float64, err error) {
	entries, err := e.entries(ctx, persons)
	if err != nil {
		return 0, 0, fmt.Errorf("WeekendVsWeekday: %w", err)
	}
	for _, entry := range entries {
		if entry.Date.IsZero() {
			continue
		}
		switch e.clock.Weekday(entry.Date) {
		case time.Saturday, time.Sunday:
			weekend += entry.Amount
		default:
			weekday += entry.Amount
		}
	}
	return weekend, weekday, nil
}

// NoSpendDays lists the days so far this month with no matching spending.
func (e *Engine) NoSpendDays(ctx context.Context, persons []string) (int, []int, error) {
	totals, err := e.dayTotals(ctx, persons)
	if err != nil {
		return 0, nil, fmt.Errorf("NoSpendDays: %w", err)
	}
	var days []int
	for day := 1; day <= e.clock.Today().Day; day++ {
		if totals[day] == 0 {
			days = append(days, day)
		}
	}
	return len(days), days, nil
}

// Streak is a run of consecutive no-spend days.
type Streak struct {
	Length int
	Start  int
	End    int
}

// LongestNoSpendStreak finds the longest run of days from the 1st through
// today whose total is exactly zero. The earliest longest run wins ties;
// a zero-length streak means every day had spending.
func (e *Engine) LongestNoSpendStreak(ctx context.Context, persons []string) (Streak, error) {
	totals, err := e.dayTotals(ctx, persons)
	if err != nil {
		return Streak{}, fmt.Errorf("LongestNoSpendStreak: %w", err)
	}

	var best, current Streak
	for day := 1; day <= e.clock.Today().Day; day++ {
		if totals[day] == 0 {
			if current.Length == 0 {
				current.Start = day
			}
			current.Length++
			current.End = day
			if current.Length > best.Length {
				best = current
			}
		} else {
			current = Streak{}
		}
	}
	return best, nil
}

// DayAverage is one weekday's average spend.
type DayAverage struct {
	Day     string
	Average float64
}

// weekdayOrder matches how the ledger's week runs, Monday first.
var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// BestWorstDayOfWeek averages this month's spending per weekday. Best is
// the smallest average and worst the largest; a weekday with no
// transactions averages zero, so an untouched weekday can win best.
func (e *Engine) BestWorstDayOfWeek(ctx context.Context, persons []string) (best, worst DayAverage, err error) {
	entries, err := e.monthEntries(ctx, persons)
	if err != nil {
		return DayAverage{}, DayAverage{}, fmt.Errorf("BestWorstDayOfWeek: %w", err)
	}

	sums := make(map[time.Weekday]float64)
	counts := make(map[time.Weekday]int)
	for _, entry := range entries {
		wd := e.clock.Weekday(entry.Date)
		sums[wd] += entry.Amount
		counts[wd]++
	}

	for i, wd := range weekdayOrder {
		avg := 0.0
		if counts[wd] > 0 {
			avg = sums[wd] / float64(counts[wd])
		}
		da := DayAverage{Day: wd.String(), Average: avg}
		if i == 0 {
			best, worst = da, da
			continue
		}
		if avg < best.Average {
			best = da
		}
		if avg > worst.Average {
			worst = da
		}
	}
	return best, worst, nil
}

// ExpensesOnDay lists every entry on one calendar day. The date text is
// parsed flexibly ("05/10/2025", "yesterday", "March 5th"); ok is false
// when it does not parse.
func (e *Engine) ExpensesOnDay(ctx context.Context, dateText string, persons []string) ([]sheets.Entry, float64, bool, error) {
	target, ok := money.ParseFlexibleDate(dateText, e.clock.Today())
	if !ok {
		return nil, 0, false, nil
	}
	entries, err := e.entries(ctx, persons)
	if err != nil {
		return nil, 0, false, fmt.Errorf("ExpensesOnDay: %w", err)
	}
	var matches []sheets.Entry
	var total float64
	for _, entry := range entries {
		if entry.Date.IsZero() || entry.Date != target {
			continue
		}
		matches = append(matches, entry)
		total += entry.Amount
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Amount > matches[j].Amount
	})
	return matches, total, true, nil
}

// DailySpendingCalendar renders a day-by-day text summary of the month so
// far, one "DD: $X.XX" line per day.
func (e *Engine) DailySpendingCalendar(ctx context.Context, persons []string) (string, error) {
	totals, err := e.dayTotals(ctx, persons)
	if err != nil {
		return "", fmt.Errorf("DailySpendingCalendar: %w", err)
	}
	var b strings.Builder
	b.WriteString("Daily spending this month:\n")
	for day := 1; day <= e.clock.Today().Day; day++ {
		fmt.Fprintf(&b, "%02d: %s\n", day, money.Format(totals[day]))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
