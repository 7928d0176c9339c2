package analytics

import (
	"context"
	"testing"

	"github.com/deebers/bookiebot/internal/sheets"
)

func TestBurnRate(t *testing.T) {
	repo := sheets.NewMemoryRepository()
	set(t, repo.Income, map[string]string{
		"B10": "🔥 Burn rate: $2.63/day",
		"D10": "Better than last month",
	})
	e := newEngine(repo)

	rate, desc, err := e.BurnRate(context.Background())
	if err != nil {
		t.Fatalf("BurnRate: %v", err)
	}
	if rate != "$2.63/day" {
		t.Errorf("rate = %q, want %q", rate, "$2.63/day")
	}
	if desc != "Better than last month" {
		t.Errorf("desc = %q, want %q", desc, "Better than last month")
	}
}

func TestBurnRate_Missing(t *testing.T) {
	e := newEngine(sheets.NewMemoryRepository())
	rate, desc, err := e.BurnRate(context.Background())
	if err != nil {
		t.Fatalf("BurnRate: %v", err)
	}
	if rate != "" || desc != "" {
		t.Errorf("got (%q, %q), want empty", rate, desc)
	}
}

func TestPaymentChecks(t *testing.T) {
	tests := []struct {
		name       string
		label      string
		amount     string
		check      func(*Engine, context.Context) (bool, float64, error)
		wantPaid   bool
		wantAmount float64
	}{
		{
			name:       "rent paid",
			label:      "Rent",
			amount:     "$1,200.00",
			check:      (*Engine).CheckRentPaid,
			wantPaid:   true,
			wantAmount: 1200,
		},
		{
			name:     "rent unpaid",
			label:    "Rent",
			amount:   "",
			check:    (*Engine).CheckRentPaid,
			wantPaid: false,
		},
		{
			name:       "utilities paid",
			label:      "SMUD",
			amount:     "$85.50",
			check:      (*Engine).CheckUtilitiesPaid,
			wantPaid:   true,
			wantAmount: 85.5,
		},
		{
			name:       "student loan paid",
			label:      "Student Loan Payment",
			amount:     "$250.00",
			check:      (*Engine).CheckStudentLoanPaid,
			wantPaid:   true,
			wantAmount: 250,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := sheets.NewMemoryRepository()
			set(t, repo.Income, map[string]string{
				"B12": tt.label,
				"C12": tt.amount,
			})
			paid, amount, err := tt.check(newEngine(repo), context.Background())
			if err != nil {
				t.Fatalf("check: %v", err)
			}
			if paid != tt.wantPaid || amount != tt.wantAmount {
				t.Errorf("got (%v, %v), want (%v, %v)", paid, amount, tt.wantPaid, tt.wantAmount)
			}
		})
	}
}

func TestPaymentCheck_LabelMissing(t *testing.T) {
	e := newEngine(sheets.NewMemoryRepository())
	paid, amount, err := e.CheckRentPaid(context.Background())
	if err != nil {
		t.Fatalf("CheckRentPaid: %v", err)
	}
	if paid || amount != 0 {
		t.Errorf("got (%v, %v), want (false, 0)", paid, amount)
	}
}

func TestCheckSavings(t *testing.T) {
	repo := sheets.NewMemoryRepository()
	set(t, repo.Income, map[string]string{
		"B20": "1st Savings",
		"C20": "$100.00",
		"D20": "$150.00",
		"E20": "$125.00",
		"B21": "2nd Savings",
		"D21": "$75.00",
		"E21": "$50.00",
	})
	e := newEngine(repo)

	first, found, err := e.CheckSavings(context.Background(), 1)
	if err != nil {
		t.Fatalf("CheckSavings(1): %v", err)
	}
	if !found {
		t.Fatal("first savings row not found")
	}
	want := SavingsStatus{Deposited: true, Actual: 100, Ideal: 150, Minimum: 125}
	if first != want {
		t.Errorf("first = %+v, want %+v", first, want)
	}

	second, found, err := e.CheckSavings(context.Background(), 2)
	if err != nil {
		t.Fatalf("CheckSavings(2): %v", err)
	}
	if !found {
		t.Fatal("second savings row not found")
	}
	if second.Deposited {
		t.Error("second savings should not read as deposited")
	}
	if second.Ideal != 75 || second.Minimum != 50 {
		t.Errorf("second = %+v, want ideal 75, minimum 50", second)
	}
}

func TestCheckSavings_Missing(t *testing.T) {
	e := newEngine(sheets.NewMemoryRepository())
	_, found, err := e.CheckSavings(context.Background(), 1)
	if err != nil {
		t.Fatalf("CheckSavings: %v", err)
	}
	if found {
		t.Error("found = true on empty sheet")
	}
}

func TestTotalIncome(t *testing.T) {
	repo := sheets.NewMemoryRepository()
	set(t, repo.Income, map[string]string{
		"B8": "Monthly Income:",
		"C8": "$5,000.00",
	})
	got, err := newEngine(repo).TotalIncome(context.Background())
	if err != nil {
		t.Fatalf("TotalIncome: %v", err)
	}
	if got != 5000 {
		t.Errorf("TotalIncome = %v, want 5000", got)
	}
}

func TestRemainingBudget(t *testing.T) {
	repo := sheets.NewMemoryRepository()
	set(t, repo.Income, map[string]string{
		"B9": "Margins:",
		"D9": "-$42.50",
	})
	got, found, err := newEngine(repo).RemainingBudget(context.Background())
	if err != nil {
		t.Fatalf("RemainingBudget: %v", err)
	}
	if !found {
		t.Fatal("margins row not found")
	}
	if got != -42.5 {
		t.Errorf("RemainingBudget = %v, want -42.5", got)
	}
}

func TestRemainingBudget_Missing(t *testing.T) {
	_, found, err := newEngine(sheets.NewMemoryRepository()).RemainingBudget(context.Background())
	if err != nil {
		t.Fatalf("RemainingBudget: %v", err)
	}
	if found {
		t.Error("found = true on empty sheet")
	}
}

func TestAverageDailySpend(t *testing.T) {
	repo := sheets.NewMemoryRepository()
	set(t, repo.Expense, map[string]string{
		"T2":  "$20.00",
		"AB2": "$40.00",
	})
	got, err := newEngine(repo).AverageDailySpend(context.Background())
	if err != nil {
		t.Fatalf("AverageDailySpend: %v", err)
	}
	// (20 + 40) / day 15
	if got != 4.0 {
		t.Errorf("AverageDailySpend = %v, want 4.0", got)
	}
}

func TestDaysBudgetLasts(t *testing.T) {
	repo := sheets.NewMemoryRepository()
	set(t, repo.Income, map[string]string{
		"B9": "Margins:",
		"D9": "$300.00",
	})
	set(t, repo.Expense, map[string]string{
		"T2":  "$300.00",
		"AB2": "$150.00",
	})
	got, ok, err := newEngine(repo).DaysBudgetLasts(context.Background())
	if err != nil {
		t.Fatalf("DaysBudgetLasts: %v", err)
	}
	if !ok {
		t.Fatal("ok = false with nonzero average")
	}
	// remaining 300 at 30/day
	if got != 10.0 {
		t.Errorf("DaysBudgetLasts = %v, want 10.0", got)
	}
}

func TestDaysBudgetLasts_NoSpend(t *testing.T) {
	repo := sheets.NewMemoryRepository()
	set(t, repo.Income, map[string]string{
		"B9": "Margins:",
		"D9": "$300.00",
	})
	_, ok, err := newEngine(repo).DaysBudgetLasts(context.Background())
	if err != nil {
		t.Fatalf("DaysBudgetLasts: %v", err)
	}
	if ok {
		t.Error("ok = true with zero average daily spend")
	}
}

func TestDaysBudgetLasts_Exceeded(t *testing.T) {
	repo := sheets.NewMemoryRepository()
	set(t, repo.Income, map[string]string{
		"B9": "Margins:",
		"D9": "-$100.00",
	})
	set(t, repo.Expense, map[string]string{"T2": "$150.00"})
	got, ok, err := newEngine(repo).DaysBudgetLasts(context.Background())
	if err != nil {
		t.Fatalf("DaysBudgetLasts: %v", err)
	}
	if !ok || got != 0 {
		t.Errorf("got (%v, %v), want (0, true)", got, ok)
	}
}
