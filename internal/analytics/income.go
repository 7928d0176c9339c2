package analytics

import (
	"context"
	"fmt"
	"strings"

	"github.com/deebers/bookiebot/internal/money"
	"github.com/deebers/bookiebot/internal/sheets"
)

// Income-tab queries. Summary rows are located by label substring, never by
// fixed address, so a "not found" result is a normal outcome rather than an
// error.

// BurnRate reads the burn-rate summary cell. The cell holds the whole line
// ("🔥 Burn rate: $2.63/day"); the rate is everything after the colon, and
// the description sits two columns to the right.
func (e *Engine) BurnRate(ctx context.Context) (rate, desc string, err error) {
	ws, err := e.repo.IncomeSheet(ctx)
	if err != nil {
		return "", "", fmt.Errorf("BurnRate: %w", err)
	}
	cell, ok, err := ws.Find(ctx, sheets.BurnRateLabel)
	if err != nil {
		return "", "", fmt.Errorf("BurnRate: %w", err)
	}
	if !ok {
		return "", "", nil
	}
	if idx := strings.Index(cell.Value, ":"); idx != -1 {
		rate = strings.TrimSpace(cell.Value[idx+1:])
	}
	desc, err = ws.Value(ctx, cell.Row, cell.Col+2)
	if err != nil {
		return "", "", fmt.Errorf("BurnRate: %w", err)
	}
	return rate, desc, nil
}

// paymentCheck reads the amount one column right of a labeled row.
// An absent label or empty amount reads as "not paid".
func (e *Engine) paymentCheck(ctx context.Context, label string) (bool, float64, error) {
	ws, err := e.repo.IncomeSheet(ctx)
	if err != nil {
		return false, 0, err
	}
	cell, ok, err := ws.Find(ctx, label)
	if err != nil || !ok {
		return false, 0, err
	}
	raw, err := ws.Value(ctx, cell.Row, cell.Col+1)
	if err != nil {
		return false, 0, err
	}
	amount := money.Parse(raw)
	return amount > 0, amount, nil
}

// CheckRentPaid reports whether rent shows as paid this month.
func (e *Engine) CheckRentPaid(ctx context.Context) (bool, float64, error) {
	paid, amount, err := e.paymentCheck(ctx, sheets.RentLabel)
	if err != nil {
		return false, 0, fmt.Errorf("CheckRentPaid: %w", err)
	}
	return paid, amount, nil
}

// CheckUtilitiesPaid reports whether the SMUD bill shows as paid.
func (e *Engine) CheckUtilitiesPaid(ctx context.Context) (bool, float64, error) {
	paid, amount, err := e.paymentCheck(ctx, sheets.SMUDLabel)
	if err != nil {
		return false, 0, fmt.Errorf("CheckUtilitiesPaid: %w", err)
	}
	return paid, amount, nil
}

// CheckStudentLoanPaid reports whether a student loan payment was logged.
func (e *Engine) CheckStudentLoanPaid(ctx context.Context) (bool, float64, error) {
	paid, amount, err := e.paymentCheck(ctx, sheets.StudentLoanLabel)
	if err != nil {
		return false, 0, fmt.Errorf("CheckStudentLoanPaid: %w", err)
	}
	return paid, amount, nil
}

// SavingsStatus describes one savings row: the actual deposit this month
// next to the label, then the ideal and minimum targets.
type SavingsStatus struct {
	Deposited bool
	Actual    float64
	Ideal     float64
	Minimum   float64
}

// CheckSavings reads a savings row. which is 1 or 2.
func (e *Engine) CheckSavings(ctx context.Context, which int) (SavingsStatus, bool, error) {
	label := sheets.FirstSavingsLabel
	if which == 2 {
		label = sheets.SecondSavingsLabel
	}
	ws, err := e.repo.IncomeSheet(ctx)
	if err != nil {
		return SavingsStatus{}, false, fmt.Errorf("CheckSavings: %w", err)
	}
	cell, ok, err := ws.Find(ctx, label)
	if err != nil {
		return SavingsStatus{}, false, fmt.Errorf("CheckSavings: %w", err)
	}
	if !ok {
		return SavingsStatus{}, false, nil
	}

	var vals [3]float64
	for i := range vals {
		raw, err := ws.Value(ctx, cell.Row, cell.Col+1+i)
		if err != nil {
			return SavingsStatus{}, false, fmt.Errorf("CheckSavings: %w", err)
		}
		vals[i] = money.Parse(raw)
	}
	status := SavingsStatus{
		Actual:    vals[0],
		Ideal:     vals[1],
		Minimum:   vals[2],
		Deposited: vals[0] > 0,
	}
	return status, true, nil
}

// TotalIncome reads the monthly income summary cell.
func (e *Engine) TotalIncome(ctx context.Context) (float64, error) {
	ws, err := e.repo.IncomeSheet(ctx)
	if err != nil {
		return 0, fmt.Errorf("TotalIncome: %w", err)
	}
	cell, ok, err := ws.Find(ctx, sheets.IncomeLabel)
	if err != nil {
		return 0, fmt.Errorf("TotalIncome: %w", err)
	}
	if !ok {
		return 0, nil
	}
	raw, err := ws.Value(ctx, cell.Row, cell.Col+1)
	if err != nil {
		return 0, fmt.Errorf("TotalIncome: %w", err)
	}
	return money.Parse(raw), nil
}

// RemainingBudget reads the margins summary cell, two columns right of the
// label. Negative means the month's budget is already exceeded.
func (e *Engine) RemainingBudget(ctx context.Context) (float64, bool, error) {
	ws, err := e.repo.IncomeSheet(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("RemainingBudget: %w", err)
	}
	cell, ok, err := ws.Find(ctx, sheets.MarginsLabel)
	if err != nil {
		return 0, false, fmt.Errorf("RemainingBudget: %w", err)
	}
	if !ok {
		return 0, false, nil
	}
	raw, err := ws.Value(ctx, cell.Row, cell.Col+2)
	if err != nil {
		return 0, false, fmt.Errorf("RemainingBudget: %w", err)
	}
	return money.Parse(raw), true, nil
}

// AverageDailySpend divides the sheet's food and shopping running-total
// cells by the day of month. This deliberately reads the two pre-aggregated
// cells instead of rescanning the ledger.
func (e *Engine) AverageDailySpend(ctx context.Context) (float64, error) {
	ws, err := e.repo.ExpenseSheet(ctx)
	if err != nil {
		return 0, fmt.Errorf("AverageDailySpend: %w", err)
	}
	food, err := sheets.ValueA1(ctx, ws, sheets.FoodRunningTotalCell)
	if err != nil {
		return 0, fmt.Errorf("AverageDailySpend: %w", err)
	}
	shopping, err := sheets.ValueA1(ctx, ws, sheets.ShoppingRunningTotalCell)
	if err != nil {
		return 0, fmt.Errorf("AverageDailySpend: %w", err)
	}
	day := e.clock.Today().Day
	if day == 0 {
		return 0, nil
	}
	return (money.Parse(food) + money.Parse(shopping)) / float64(day), nil
}

// DaysBudgetLasts estimates how long the remaining budget survives at the
// current average daily spend. ok is false when the average is zero and no
// estimate exists.
func (e *Engine) DaysBudgetLasts(ctx context.Context) (float64, bool, error) {
	remaining, _, err := e.RemainingBudget(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("DaysBudgetLasts: %w", err)
	}
	avg, err := e.AverageDailySpend(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("DaysBudgetLasts: %w", err)
	}
	if avg == 0 {
		return 0, false, nil
	}
	days := remaining / avg
	if days < 0 {
		days = 0
	}
	return round1(days), true, nil
}
