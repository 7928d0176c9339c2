// Package writer performs every mutation the bot makes to the ledger:
// expense rows, income inserts, payment and savings cells, and the
// subscriptions tab. Reads stay in the analytics package.
package writer

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/deebers/bookiebot/internal/money"
	"github.com/deebers/bookiebot/internal/sheets"
)

// Writer commits normalized entries to the sheet repository.
type Writer struct {
	repo  sheets.Repository
	clock money.Clock
}

// New creates a Writer.
func New(repo sheets.Repository, clock money.Clock) *Writer {
	return &Writer{repo: repo, clock: clock}
}

// Expense is a fully resolved ledger write. A zero Date means today.
type Expense struct {
	Category sheets.Category
	Date     civil.Date
	Item     string
	Amount   float64
	Location string
	Person   string
}

// categoryAliases maps the loose category words the model emits onto the
// four ledger categories.
var categoryAliases = map[string]sheets.Category{
	"grocery":    sheets.Grocery,
	"groceries":  sheets.Grocery,
	"gas":        sheets.Gas,
	"fuel":       sheets.Gas,
	"food":       sheets.Food,
	"restaurant": sheets.Food,
	"dining":     sheets.Food,
	"shopping":   sheets.Shopping,
	"store":      sheets.Shopping,
}

// NormalizeCategory resolves a free-text category to a ledger category.
func NormalizeCategory(s string) (sheets.Category, bool) {
	cat, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]
	return cat, ok
}

// MissingFields lists the required fields an expense still lacks. An item
// is only required for categories whose block records one.
func MissingFields(exp Expense) []string {
	block, ok := sheets.BlockFor(exp.Category)
	if !ok {
		return []string{"category"}
	}
	var missing []string
	if exp.Amount <= 0 {
		missing = append(missing, "amount")
	}
	if strings.TrimSpace(exp.Person) == "" {
		missing = append(missing, "person")
	}
	if block.HasItem() && strings.TrimSpace(exp.Item) == "" {
		missing = append(missing, "item")
	}
	return missing
}

// LogExpense writes one expense row into its category block and returns the
// row it landed on. The caller must have resolved the person to a single
// canonical account first.
func (w *Writer) LogExpense(ctx context.Context, exp Expense) (int, error) {
	if missing := MissingFields(exp); len(missing) > 0 {
		return 0, fmt.Errorf("LogExpense: missing fields: %s", strings.Join(missing, ", "))
	}
	block, _ := sheets.BlockFor(exp.Category)

	ws, err := w.repo.ExpenseSheet(ctx)
	if err != nil {
		return 0, fmt.Errorf("LogExpense: %w", err)
	}
	row, err := sheets.FirstFreeRow(ctx, ws, exp.Category)
	if err != nil {
		return 0, fmt.Errorf("LogExpense: %w", err)
	}

	date := exp.Date
	if date.IsZero() {
		date = w.clock.Today()
	}

	cells := map[int]string{
		block.Date:   money.FormatLedgerDate(date),
		block.Amount: fmt.Sprintf("%.2f", exp.Amount),
		block.Person: strings.TrimSpace(exp.Person),
	}
	if block.Location != 0 {
		cells[block.Location] = strings.TrimSpace(exp.Location)
	}
	if block.HasItem() {
		cells[block.Item] = strings.TrimSpace(exp.Item)
	}
	for col, value := range cells {
		if err := ws.UpdateCell(ctx, row, col, value); err != nil {
			return 0, fmt.Errorf("LogExpense: %w", err)
		}
	}
	return row, nil
}

// LogIncome inserts an income line above the monthly income summary row, so
// the sheet's own sum picks it up. The new row lands directly under the
// last existing income line.
func (w *Writer) LogIncome(ctx context.Context, description string, amount float64) error {
	ws, err := w.repo.IncomeSheet(ctx)
	if err != nil {
		return fmt.Errorf("LogIncome: %w", err)
	}
	cell, ok, err := ws.Find(ctx, sheets.IncomeLabel)
	if err != nil {
		return fmt.Errorf("LogIncome: %w", err)
	}
	if !ok {
		return fmt.Errorf("LogIncome: income summary row not found")
	}

	// Walk up from the summary row to the last non-empty income line.
	insertAt := cell.Row
	for row := cell.Row - 1; row >= 1; row-- {
		v, err := ws.Value(ctx, row, cell.Col)
		if err != nil {
			return fmt.Errorf("LogIncome: %w", err)
		}
		if strings.TrimSpace(v) != "" {
			break
		}
		insertAt = row
	}

	values := make([]string, cell.Col+1)
	values[cell.Col-1] = strings.TrimSpace(description)
	values[cell.Col] = money.Format(amount)
	if err := ws.InsertRow(ctx, insertAt, values); err != nil {
		return fmt.Errorf("LogIncome: %w", err)
	}
	return nil
}

// logLabeledAmount writes an amount one column right of a labeled income
// row. Returns false when the label is not on the sheet.
func (w *Writer) logLabeledAmount(ctx context.Context, label string, amount float64) (bool, error) {
	ws, err := w.repo.IncomeSheet(ctx)
	if err != nil {
		return false, err
	}
	cell, ok, err := ws.Find(ctx, label)
	if err != nil || !ok {
		return false, err
	}
	if err := ws.UpdateCell(ctx, cell.Row, cell.Col+1, money.Format(amount)); err != nil {
		return false, err
	}
	return true, nil
}

// LogRentPaid records this month's rent payment.
func (w *Writer) LogRentPaid(ctx context.Context, amount float64) (bool, error) {
	ok, err := w.logLabeledAmount(ctx, sheets.RentLabel, amount)
	if err != nil {
		return false, fmt.Errorf("LogRentPaid: %w", err)
	}
	return ok, nil
}

// LogUtilitiesPaid records this month's SMUD payment.
func (w *Writer) LogUtilitiesPaid(ctx context.Context, amount float64) (bool, error) {
	ok, err := w.logLabeledAmount(ctx, sheets.SMUDLabel, amount)
	if err != nil {
		return false, fmt.Errorf("LogUtilitiesPaid: %w", err)
	}
	return ok, nil
}

// LogStudentLoanPaid records a student loan payment.
func (w *Writer) LogStudentLoanPaid(ctx context.Context, amount float64) (bool, error) {
	ok, err := w.logLabeledAmount(ctx, sheets.StudentLoanLabel, amount)
	if err != nil {
		return false, fmt.Errorf("LogStudentLoanPaid: %w", err)
	}
	return ok, nil
}

// LogSavingsDeposit records an actual deposit against the 1st or 2nd
// savings row. which is 1 or 2.
func (w *Writer) LogSavingsDeposit(ctx context.Context, which int, amount float64) (bool, error) {
	label := sheets.FirstSavingsLabel
	if which == 2 {
		label = sheets.SecondSavingsLabel
	}
	ok, err := w.logLabeledAmount(ctx, label, amount)
	if err != nil {
		return false, fmt.Errorf("LogSavingsDeposit: %w", err)
	}
	return ok, nil
}

// LogNeedExpense appends a row to the needs column of the subscriptions
// tab and returns the row it landed on.
func (w *Writer) LogNeedExpense(ctx context.Context, name string, amount float64) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("LogNeedExpense: empty description")
	}
	ws, err := w.repo.SubscriptionsSheet(ctx)
	if err != nil {
		return 0, fmt.Errorf("LogNeedExpense: %w", err)
	}

	layout := sheets.SubscriptionsLayout
	row := layout.StartRow
	for {
		v, err := ws.Value(ctx, row, layout.NeedName)
		if err != nil {
			return 0, fmt.Errorf("LogNeedExpense: %w", err)
		}
		if strings.TrimSpace(v) == "" {
			break
		}
		row++
	}
	if err := ws.UpdateCell(ctx, row, layout.NeedName, name); err != nil {
		return 0, fmt.Errorf("LogNeedExpense: %w", err)
	}
	if err := ws.UpdateCell(ctx, row, layout.NeedAmount, money.Format(amount)); err != nil {
		return 0, fmt.Errorf("LogNeedExpense: %w", err)
	}
	return row, nil
}
