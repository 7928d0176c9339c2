// Package analytics computes the read-only ledger queries: totals, rankings,
// time-based breakdowns, and the labeled summary cells on the income tab.
//
// Every computation is deterministic given the worksheet contents and the
// injected clock. Model calls never happen here.
package analytics

import (
	"context"
	"fmt"
	"math"

	"github.com/deebers/bookiebot/internal/money"
	"github.com/deebers/bookiebot/internal/sheets"
)

// Engine answers ledger queries against a sheet repository.
type Engine struct {
	repo  sheets.Repository
	clock money.Clock
}

// New creates an analytics engine.
func New(repo sheets.Repository, clock money.Clock) *Engine {
	return &Engine{repo: repo, clock: clock}
}

// entries returns every expense row for the given persons, across all
// category blocks. nil persons means no restriction.
func (e *Engine) entries(ctx context.Context, persons []string) ([]sheets.Entry, error) {
	ws, err := e.repo.ExpenseSheet(ctx)
	if err != nil {
		return nil, fmt.Errorf("entries: %w", err)
	}
	return sheets.Entries(ctx, ws, persons)
}

// monthEntries returns the subset of entries dated in the clock's current
// month. Rows with unparseable dates are dropped.
func (e *Engine) monthEntries(ctx context.Context, persons []string) ([]sheets.Entry, error) {
	all, err := e.entries(ctx, persons)
	if err != nil {
		return nil, err
	}
	today := e.clock.Today()
	var out []sheets.Entry
	for _, entry := range all {
		if entry.Date.IsZero() {
			continue
		}
		if money.SameMonth(entry.Date, today) {
			out = append(out, entry)
		}
	}
	return out, nil
}

// dayTotals sums the current month's entries per day of month.
func (e *Engine) dayTotals(ctx context.Context, persons []string) (map[int]float64, error) {
	entries, err := e.monthEntries(ctx, persons)
	if err != nil {
		return nil, err
	}
	totals := make(map[int]float64)
	for _, entry := range entries {
		totals[entry.Date.Day] += entry.Amount
	}
	return totals, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
