// Package sheets provides access to the household ledger spreadsheets.
//
// The ledger is column-positional: each expense category owns a fixed block
// of columns on the monthly expense tab, and the income tab carries labeled
// summary cells that are located by substring search rather than by fixed
// address. Worksheet is the small spreadsheet surface the rest of the bot
// depends on; the Google Sheets implementation lives in google.go, and an
// in-memory implementation for tests lives in memory.go.
package sheets

import (
	"context"
	"fmt"
	"strings"
)

// CellRef is a located cell: 1-based row and column plus the cell's value.
type CellRef struct {
	Row   int
	Col   int
	Value string
}

// Worksheet is the subset of spreadsheet operations the bot uses.
// Rows and column indices are 1-based throughout.
type Worksheet interface {
	// Rows returns every row of the sheet. Cells are raw strings.
	Rows(ctx context.Context) ([][]string, error)

	// ColumnValues returns one column, trailing empty cells trimmed.
	ColumnValues(ctx context.Context, col int) ([]string, error)

	// Value returns the contents of a single cell, "" when out of range.
	Value(ctx context.Context, row, col int) (string, error)

	// Find locates the first cell whose value contains needle,
	// case-insensitive, scanning row-major.
	Find(ctx context.Context, needle string) (CellRef, bool, error)

	// UpdateCell writes a single cell.
	UpdateCell(ctx context.Context, row, col int, value string) error

	// InsertRow inserts a new row at index, shifting existing rows down.
	InsertRow(ctx context.Context, index int, values []string) error
}

// ColumnIndex converts a column letter like "A" or "AE" to a 1-based index.
func ColumnIndex(letter string) int {
	idx := 0
	for _, r := range strings.ToUpper(letter) {
		if r < 'A' || r > 'Z' {
			return 0
		}
		idx = idx*26 + int(r-'A'+1)
	}
	return idx
}

// ColumnLetter converts a 1-based column index back to its letter form.
func ColumnLetter(col int) string {
	var b []byte
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b)
}

// ParseA1 splits an A1-style reference like "AE28" into row and column.
func ParseA1(ref string) (row, col int, err error) {
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(ref) {
		return 0, 0, fmt.Errorf("ParseA1: malformed reference %q", ref)
	}
	col = ColumnIndex(ref[:i])
	if _, err := fmt.Sscanf(ref[i:], "%d", &row); err != nil {
		return 0, 0, fmt.Errorf("ParseA1: malformed reference %q: %w", ref, err)
	}
	return row, col, nil
}

// ValueA1 reads a cell by A1 reference.
func ValueA1(ctx context.Context, ws Worksheet, ref string) (string, error) {
	row, col, err := ParseA1(ref)
	if err != nil {
		return "", err
	}
	return ws.Value(ctx, row, col)
}
