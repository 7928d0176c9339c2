package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/deebers/bookiebot/internal/fuzzy"
	"github.com/deebers/bookiebot/internal/money"
	"github.com/deebers/bookiebot/internal/sheets"
)

// TotalForCategory sums one category's amounts for the given persons.
// Unknown categories total to zero.
func (e *Engine) TotalForCategory(ctx context.Context, category string, persons []string) (float64, error) {
	cat := sheets.Category(strings.ToLower(strings.TrimSpace(category)))
	if _, ok := sheets.BlockFor(cat); !ok {
		return 0, nil
	}
	entries, err := e.entries(ctx, persons)
	if err != nil {
		return 0, fmt.Errorf("TotalForCategory: %w", err)
	}
	var total float64
	for _, entry := range entries {
		if entry.Category == cat {
			total += entry.Amount
		}
	}
	return total, nil
}

// TotalSpentAtStore sums every entry whose location fuzzily matches the
// store name. The total covers all matches; the returned list is sorted
// newest first for display.
func (e *Engine) TotalSpentAtStore(ctx context.Context, store string, persons []string) (float64, []sheets.Entry, error) {
	entries, err := e.entries(ctx, persons)
	if err != nil {
		return 0, nil, fmt.Errorf("TotalSpentAtStore: %w", err)
	}
	var total float64
	var matches []sheets.Entry
	for _, entry := range entries {
		if entry.Location == "" || !fuzzy.Matches(store, entry.Location) {
			continue
		}
		total += entry.Amount
		matches = append(matches, entry)
	}
	sortEntriesByDateDesc(matches)
	return total, matches, nil
}

// TotalSpentOnItem sums every entry whose item fuzzily matches.
func (e *Engine) TotalSpentOnItem(ctx context.Context, item string, persons []string) (float64, []sheets.Entry, error) {
	entries, err := e.entries(ctx, persons)
	if err != nil {
		return 0, nil, fmt.Errorf("TotalSpentOnItem: %w", err)
	}
	var total float64
	var matches []sheets.Entry
	for _, entry := range entries {
		if entry.Item == "" || !fuzzy.Matches(item, entry.Item) {
			continue
		}
		total += entry.Amount
		matches = append(matches, entry)
	}
	sortEntriesByDateDesc(matches)
	return total, matches, nil
}

// HighestExpenseCategory finds the category with the largest total.
// Ties keep the first category in catalog order.
func (e *Engine) HighestExpenseCategory(ctx context.Context, persons []string) (sheets.Category, float64, error) {
	entries, err := e.entries(ctx, persons)
	if err != nil {
		return "", 0, fmt.Errorf("HighestExpenseCategory: %w", err)
	}
	totals := make(map[sheets.Category]float64)
	for _, entry := range entries {
		totals[entry.Category] += entry.Amount
	}
	best := sheets.Categories[0]
	for _, cat := range sheets.Categories[1:] {
		if totals[cat] > totals[best] {
			best = cat
		}
	}
	return best, totals[best], nil
}

// LargestSingleExpense returns the single biggest entry. Strict comparison
// keeps the first encountered on ties. ok is false when the ledger has no
// matching entries.
func (e *Engine) LargestSingleExpense(ctx context.Context, persons []string) (sheets.Entry, bool, error) {
	entries, err := e.entries(ctx, persons)
	if err != nil {
		return sheets.Entry{}, false, fmt.Errorf("LargestSingleExpense: %w", err)
	}
	var best sheets.Entry
	found := false
	for _, entry := range entries {
		if !found || entry.Amount > best.Amount {
			best = entry
			found = true
		}
	}
	return best, found, nil
}

// TopNExpenses returns the n largest entries across every category block,
// sorted descending by amount. Equal amounts keep encounter order.
func (e *Engine) TopNExpenses(ctx context.Context, persons []string, n int) ([]sheets.Entry, error) {
	entries, err := e.entries(ctx, persons)
	if err != nil {
		return nil, fmt.Errorf("TopNExpenses: %w", err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Amount > entries[j].Amount
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// CategoryShare is one category's slice of the breakdown.
type CategoryShare struct {
	Amount     float64
	Percentage float64
}

// Breakdown is the per-category expense breakdown for a set of persons.
type Breakdown struct {
	Total      float64
	Categories map[sheets.Category]CategoryShare
}

// ExpenseBreakdown reads the sheet's pre-aggregated summary cells: each
// person's month-total cell sums into the denominator and their per-category
// summary cells into the numerators. ok is false when the denominator is
// zero, so callers never divide by zero.
func (e *Engine) ExpenseBreakdown(ctx context.Context, persons []string) (Breakdown, bool, error) {
	ws, err := e.repo.ExpenseSheet(ctx)
	if err != nil {
		return Breakdown{}, false, fmt.Errorf("ExpenseBreakdown: %w", err)
	}

	var total float64
	for _, person := range persons {
		ref, ok := sheets.PersonTotalCells[person]
		if !ok {
			continue
		}
		raw, err := sheets.ValueA1(ctx, ws, ref)
		if err != nil {
			return Breakdown{}, false, fmt.Errorf("ExpenseBreakdown: %w", err)
		}
		total += money.Parse(raw)
	}
	if total == 0 {
		return Breakdown{}, false, nil
	}

	categories := make(map[sheets.Category]CategoryShare, len(sheets.Categories))
	for _, cat := range sheets.Categories {
		col := sheets.CategorySummaryCols[cat]
		var amount float64
		for _, person := range persons {
			row, ok := sheets.PersonSummaryRows[person]
			if !ok {
				continue
			}
			raw, err := ws.Value(ctx, row, col)
			if err != nil {
				return Breakdown{}, false, fmt.Errorf("ExpenseBreakdown: %w", err)
			}
			amount += money.Parse(raw)
		}
		categories[cat] = CategoryShare{
			Amount:     amount,
			Percentage: round2(amount / total * 100),
		}
	}
	return Breakdown{Total: total, Categories: categories}, true, nil
}

// Purchase is one row of the most-frequent ranking.
type Purchase struct {
	Item  string
	Count int
	Total float64
}

// MostFrequentPurchases ranks items by how often they were bought. Items
// are keyed by lowercased text; ties in count keep first-encountered order.
func (e *Engine) MostFrequentPurchases(ctx context.Context, persons []string, n int) ([]Purchase, error) {
	entries, err := e.entries(ctx, persons)
	if err != nil {
		return nil, fmt.Errorf("MostFrequentPurchases: %w", err)
	}
	index := make(map[string]int)
	var purchases []Purchase
	for _, entry := range entries {
		if entry.Item == "" {
			continue
		}
		key := strings.ToLower(entry.Item)
		i, ok := index[key]
		if !ok {
			index[key] = len(purchases)
			purchases = append(purchases, Purchase{Item: key})
			i = index[key]
		}
		purchases[i].Count++
		purchases[i].Total += entry.Amount
	}
	sort.SliceStable(purchases, func(i, j int) bool {
		return purchases[i].Count > purchases[j].Count
	})
	if n > 0 && len(purchases) > n {
		purchases = purchases[:n]
	}
	return purchases, nil
}

// Subscription is one name/amount pair from the subscriptions tab.
type Subscription struct {
	Name   string
	Amount float64
}

// Subscriptions reads the fixed two-column layout: needs and wants run down
// the tab from the start row and stop independently at their first blank
// name.
func (e *Engine) Subscriptions(ctx context.Context) (needs []Subscription, needsTotal float64, wants []Subscription, wantsTotal float64, err error) {
	ws, err := e.repo.SubscriptionsSheet(ctx)
	if err != nil {
		return nil, 0, nil, 0, fmt.Errorf("Subscriptions: %w", err)
	}
	rows, err := ws.Rows(ctx)
	if err != nil {
		return nil, 0, nil, 0, fmt.Errorf("Subscriptions: %w", err)
	}

	layout := sheets.SubscriptionsLayout
	needsOpen, wantsOpen := true, true
	for i := layout.StartRow - 1; i < len(rows) && (needsOpen || wantsOpen); i++ {
		row := rows[i]
		if needsOpen {
			name := cellAt(row, layout.NeedName)
			if strings.TrimSpace(name) == "" {
				needsOpen = false
			} else {
				amount := money.Parse(cellAt(row, layout.NeedAmount))
				needs = append(needs, Subscription{Name: name, Amount: amount})
				needsTotal += amount
			}
		}
		if wantsOpen {
			name := cellAt(row, layout.WantName)
			if strings.TrimSpace(name) == "" {
				wantsOpen = false
			} else {
				amount := money.Parse(cellAt(row, layout.WantAmount))
				wants = append(wants, Subscription{Name: name, Amount: amount})
				wantsTotal += amount
			}
		}
	}
	return needs, needsTotal, wants, wantsTotal, nil
}

func sortEntriesByDateDesc(entries []sheets.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
}

func cellAt(row []string, col int) string {
	if col == 0 || col > len(row) {
		return ""
	}
	return row[col-1]
}
