package sheets

import (
	"context"
	"fmt"

	"github.com/deebers/bookiebot/internal/money"
)

// SubscriptionsTab is the fixed tab name on the income workbook.
const SubscriptionsTab = "Subscriptions"

// Repository hands out the three worksheets the bot works against.
// The expense and income tabs are monthly; the subscriptions tab is fixed.
type Repository interface {
	ExpenseSheet(ctx context.Context) (Worksheet, error)
	IncomeSheet(ctx context.Context) (Worksheet, error)
	SubscriptionsSheet(ctx context.Context) (Worksheet, error)
}

// GoogleRepository resolves worksheets from the live workbooks, picking the
// monthly tab from the clock's current date.
type GoogleRepository struct {
	client     *Client
	expenseKey string
	incomeKey  string
	clock      money.Clock
}

// NewGoogleRepository wires a repository over the Sheets API client.
func NewGoogleRepository(client *Client, expenseKey, incomeKey string, clock money.Clock) *GoogleRepository {
	return &GoogleRepository{
		client:     client,
		expenseKey: expenseKey,
		incomeKey:  incomeKey,
		clock:      clock,
	}
}

func (r *GoogleRepository) ExpenseSheet(ctx context.Context) (Worksheet, error) {
	ws, err := r.client.Worksheet(ctx, r.expenseKey, MonthTitle(r.clock.Today()))
	if err != nil {
		return nil, fmt.Errorf("ExpenseSheet: %w", err)
	}
	return ws, nil
}

func (r *GoogleRepository) IncomeSheet(ctx context.Context) (Worksheet, error) {
	ws, err := r.client.Worksheet(ctx, r.incomeKey, MonthTitle(r.clock.Today()))
	if err != nil {
		return nil, fmt.Errorf("IncomeSheet: %w", err)
	}
	return ws, nil
}

func (r *GoogleRepository) SubscriptionsSheet(ctx context.Context) (Worksheet, error) {
	ws, err := r.client.Worksheet(ctx, r.incomeKey, SubscriptionsTab)
	if err != nil {
		return nil, fmt.Errorf("SubscriptionsSheet: %w", err)
	}
	return ws, nil
}

// MemoryRepository serves fixed in-memory worksheets. Used by tests.
type MemoryRepository struct {
	Expense       *MemoryWorksheet
	Income        *MemoryWorksheet
	Subscriptions *MemoryWorksheet
}

// NewMemoryRepository creates a repository with three empty worksheets.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		Expense:       NewMemoryWorksheet("Expense", nil),
		Income:        NewMemoryWorksheet("Income", nil),
		Subscriptions: NewMemoryWorksheet(SubscriptionsTab, nil),
	}
}

func (r *MemoryRepository) ExpenseSheet(ctx context.Context) (Worksheet, error) {
	return r.Expense, nil
}

func (r *MemoryRepository) IncomeSheet(ctx context.Context) (Worksheet, error) {
	return r.Income, nil
}

func (r *MemoryRepository) SubscriptionsSheet(ctx context.Context) (Worksheet, error) {
	return r.Subscriptions, nil
}
