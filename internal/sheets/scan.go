package sheets

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/deebers/bookiebot/internal/money"
)

// Entry is one ledger row inside a category block.
type Entry struct {
	Category Category
	Date     civil.Date
	RawDate  string
	Item     string
	Location string
	Person   string
	Amount   float64
}

// Entries scans every category block of the expense tab and returns the
// typed rows. persons restricts the result to the given canonical persons;
// nil means no restriction. Rows whose date cell does not parse keep the
// zero Date but are still returned, matching how the ledger tolerates
// hand-edited cells.
func Entries(ctx context.Context, ws Worksheet, persons []string) ([]Entry, error) {
	rows, err := ws.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("Entries: %w", err)
	}

	allowed := map[string]bool{}
	for _, p := range persons {
		allowed[p] = true
	}

	var entries []Entry
	for _, cat := range Categories {
		block := blocks[cat]
		for i := block.StartRow - 1; i < len(rows); i++ {
			row := rows[i]
			dateStr := cellAt(row, block.Date)
			amountStr := cellAt(row, block.Amount)
			if dateStr == "" && amountStr == "" {
				continue
			}
			person := cellAt(row, block.Person)
			if len(persons) > 0 && !allowed[person] {
				continue
			}
			entry := Entry{
				Category: cat,
				RawDate:  dateStr,
				Item:     cellAt(row, block.Item),
				Location: cellAt(row, block.Location),
				Person:   person,
				Amount:   money.Parse(amountStr),
			}
			if d, ok := money.ParseLedgerDate(dateStr); ok {
				entry.Date = d
			}
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// FirstFreeRow finds the next writable row for a category block: the row
// after the last occupied cell of the block's amount column, but never above
// the block's start row. Interior blanks count as occupied, mirroring how
// the sheet's own formulas treat the block.
func FirstFreeRow(ctx context.Context, ws Worksheet, cat Category) (int, error) {
	block, ok := blocks[cat]
	if !ok {
		return 0, fmt.Errorf("FirstFreeRow: unknown category %q", cat)
	}
	ref := block.Amount
	if ref == 0 {
		ref = block.Date
	}
	values, err := ws.ColumnValues(ctx, ref)
	if err != nil {
		return 0, fmt.Errorf("FirstFreeRow: %w", err)
	}
	free := len(values) + 1
	if free < block.StartRow {
		free = block.StartRow
	}
	return free, nil
}

func cellAt(row []string, col int) string {
	if col == 0 || col > len(row) {
		return ""
	}
	return row[col-1]
}
