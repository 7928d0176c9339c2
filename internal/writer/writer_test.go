package writer

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/deebers/bookiebot/internal/money"
	"github.com/deebers/bookiebot/internal/sheets"
)

func fixedClock() money.Clock {
	return money.NewFixedClock(civil.Date{Year: 2025, Month: time.May, Day: 15})
}

func cell(t *testing.T, ws sheets.Worksheet, ref string) string {
	t.Helper()
	v, err := sheets.ValueA1(context.Background(), ws, ref)
	if err != nil {
		t.Fatalf("ValueA1(%s): %v", ref, err)
	}
	return v
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		in   string
		want sheets.Category
		ok   bool
	}{
		{"grocery", sheets.Grocery, true},
		{"Groceries", sheets.Grocery, true},
		{"gas", sheets.Gas, true},
		{"food", sheets.Food, true},
		{"store", sheets.Shopping, true},
		{" Shopping ", sheets.Shopping, true},
		{"vacation", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeCategory(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("NormalizeCategory(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMissingFields(t *testing.T) {
	tests := []struct {
		name string
		exp  Expense
		want []string
	}{
		{
			name: "complete food",
			exp:  Expense{Category: sheets.Food, Item: "latte", Amount: 5, Person: "Hannah"},
		},
		{
			name: "gas needs no item",
			exp:  Expense{Category: sheets.Gas, Amount: 40, Person: "Hannah"},
		},
		{
			name: "missing amount and person",
			exp:  Expense{Category: sheets.Grocery},
			want: []string{"amount", "person"},
		},
		{
			name: "food missing item",
			exp:  Expense{Category: sheets.Food, Amount: 5, Person: "Hannah"},
			want: []string{"item"},
		},
		{
			name: "unknown category",
			exp:  Expense{Category: "vacation", Amount: 5, Person: "Hannah"},
			want: []string{"category"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MissingFields(tt.exp)
			if len(got) != len(tt.want) {
				t.Fatalf("MissingFields = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("MissingFields = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestLogExpense_Food(t *testing.T) {
	repo := sheets.NewMemoryRepository()
	w := New(repo, fixedClock())

	row, err := w.LogExpense(context.Background(), Expense{
		Category: sheets.Food,
		Item:     "latte",
		Amount:   5.5,
		Location: "Starbucks",
		Person:   "Hannah",
	})
	if err != nil {
		t.Fatalf("LogExpense: %v", err)
	}
	if row != 3 {
		t.Errorf("row = %d, want block start 3", row)
	}
	if got := cell(t, repo.Expense, "N3"); got != "5/15/2025" {
		t.Errorf("date = %q, want today", got)
	}
	if got := cell(t, repo.Expense, "O3"); got != "latte" {
		t.Errorf("item = %q", got)
	}
	if got := cell(t, repo.Expense, "P3"); got != "5.50" {
		t.Errorf("amount = %q, want 5.50", got)
	}
	if got := cell(t, repo.Expense, "Q3"); got != "Starbucks" {
		t.Errorf("location = %q", got)
	}
	if got := cell(t, repo.Expense, "R3"); got != "Hannah" {
		t.Errorf("person = %q", got)
	}
}

func TestLogExpense_AppendsBelowExisting(t *testing.T) {
	repo := sheets.NewMemoryRepository()
	if err := repo.Expense.SetA1("B3", "12.00"); err != nil {
		t.Fatal(err)
	}
	w := New(repo, fixedClock())

	row, err := w.LogExpense(context.Background(), Expense{
		Category: sheets.Grocery,
		Amount:   20,
		Location: "Safeway",
		Person:   "Brian (AL)",
	})
	if err != nil {
		t.Fatalf("LogExpense: %v", err)
	}
	if row != 4 {
		t.Errorf("row = %d, want 4", row)
	}
	if got := cell(t, repo.Expense, "B4"); got != "20.00" {
		t.Errorf("amount = %q, want 20.00", got)
	}
}

func TestLogExpense_ExplicitDate(t *testing.T) {
	repo := sheets.NewMemoryRepository()
	w := New(repo, fixedClock())

	_, err := w.LogExpense(context.Background(), Expense{
		Category: sheets.Gas,
		Date:     civil.Date{Year: 2025, Month: time.May, Day: 2},
		Amount:   40,
		Person:   "Hannah",
	})
	if err != nil {
		t.Fatalf("LogExpense: %v", err)
	}
	if got := cell(t, repo.Expense, "H3"); got != "5/2/2025" {
		t.Errorf("date = %q, want 5/2/2025", got)
	}
}

func TestLogExpense_MissingFields(t *testing.T) {
	w := New(sheets.NewMemoryRepository(), fixedClock())
	_, err := w.LogExpense(context.Background(), Expense{Category: sheets.Food, Amount: 5})
	if err == nil {
		t.Fatal("expected error for incomplete expense")
	}
}

func TestLogIncome(t *testing.T) {
	repo := sheets.NewMemoryRepository()
	seed := map[string]string{
		"B3":  "Paycheck",
		"C3":  "$2,000.00",
		"B10": "Monthly Income:",
		"C10": "$2,000.00",
	}
	for ref, v := range seed {
		if err := repo.Income.SetA1(ref, v); err != nil {
			t.Fatal(err)
		}
	}
	w := New(repo, fixedClock())

	if err := w.LogIncome(context.Background(), "freelance gig", 350); err != nil {
		t.Fatalf("LogIncome: %v", err)
	}
	// New row lands right under the last income line, pushing the summary
	// row down by one.
	if got := cell(t, repo.Income, "B4"); got != "freelance gig" {
		t.Errorf("B4 = %q, want the new description", got)
	}
	if got := cell(t, repo.Income, "C4"); got != "$350.00" {
		t.Errorf("C4 = %q, want $350.00", got)
	}
	if got := cell(t, repo.Income, "B11"); got != "Monthly Income:" {
		t.Errorf("B11 = %q, want the summary row shifted down", got)
	}
}

func TestLogIncome_NoSummaryRow(t *testing.T) {
	w := New(sheets.NewMemoryRepository(), fixedClock())
	if err := w.LogIncome(context.Background(), "gift", 50); err == nil {
		t.Fatal("expected error when the summary row is absent")
	}
}

func TestLogPayments(t *testing.T) {
	tests := []struct {
		name  string
		label string
		log   func(*Writer, context.Context, float64) (bool, error)
	}{
		{"rent", "Rent", (*Writer).LogRentPaid},
		{"utilities", "SMUD", (*Writer).LogUtilitiesPaid},
		{"student loan", "Student Loan Payment", (*Writer).LogStudentLoanPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := sheets.NewMemoryRepository()
			if err := repo.Income.SetA1("B12", tt.label); err != nil {
				t.Fatal(err)
			}
			w := New(repo, fixedClock())
			ok, err := tt.log(w, context.Background(), 123.45)
			if err != nil {
				t.Fatalf("log: %v", err)
			}
			if !ok {
				t.Fatal("label not found")
			}
			if got := cell(t, repo.Income, "C12"); got != "$123.45" {
				t.Errorf("C12 = %q, want $123.45", got)
			}
		})
	}
}

func TestLogPayment_LabelMissing(t *testing.T) {
	w := New(sheets.NewMemoryRepository(), fixedClock())
	ok, err := w.LogRentPaid(context.Background(), 100)
	if err != nil {
		t.Fatalf("LogRentPaid: %v", err)
	}
	if ok {
		t.Error("ok = true with no label on the sheet")
	}
}

func TestLogSavingsDeposit(t *testing.T) {
	repo := sheets.NewMemoryRepository()
	if err := repo.Income.SetA1("B20", "1st Savings"); err != nil {
		t.Fatal(err)
	}
	if err := repo.Income.SetA1("B21", "2nd Savings"); err != nil {
		t.Fatal(err)
	}
	w := New(repo, fixedClock())

	ok, err := w.LogSavingsDeposit(context.Background(), 2, 75)
	if err != nil {
		t.Fatalf("LogSavingsDeposit: %v", err)
	}
	if !ok {
		t.Fatal("second savings row not found")
	}
	if got := cell(t, repo.Income, "C21"); got != "$75.00" {
		t.Errorf("C21 = %q, want $75.00", got)
	}
	if got := cell(t, repo.Income, "C20"); got != "" {
		t.Errorf("C20 = %q, want untouched", got)
	}
}

func TestLogNeedExpense(t *testing.T) {
	repo := sheets.NewMemoryRepository()
	if err := repo.Subscriptions.SetA1("B7", "Internet"); err != nil {
		t.Fatal(err)
	}
	w := New(repo, fixedClock())

	row, err := w.LogNeedExpense(context.Background(), "Renters insurance", 22.5)
	if err != nil {
		t.Fatalf("LogNeedExpense: %v", err)
	}
	if row != 8 {
		t.Errorf("row = %d, want 8", row)
	}
	if got := cell(t, repo.Subscriptions, "B8"); got != "Renters insurance" {
		t.Errorf("B8 = %q", got)
	}
	if got := cell(t, repo.Subscriptions, "C8"); got != "$22.50" {
		t.Errorf("C8 = %q, want $22.50", got)
	}
}
