package sheets

import (
	"context"
	"strings"
	"sync"
)

// MemoryWorksheet is an in-memory Worksheet. It backs unit tests and mirrors
// how a live sheet behaves: all values are strings and trailing empty cells
// are not significant. Safe for concurrent use.
type MemoryWorksheet struct {
	mu    sync.RWMutex
	title string
	rows  [][]string
}

// NewMemoryWorksheet creates a worksheet seeded with the given rows.
func NewMemoryWorksheet(title string, rows [][]string) *MemoryWorksheet {
	copied := make([][]string, len(rows))
	for i, row := range rows {
		copied[i] = append([]string(nil), row...)
	}
	return &MemoryWorksheet{title: title, rows: copied}
}

func (m *MemoryWorksheet) Rows(ctx context.Context) ([][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([][]string, len(m.rows))
	for i, row := range m.rows {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}

func (m *MemoryWorksheet) ColumnValues(ctx context.Context, col int) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var values []string
	for _, row := range m.rows {
		if col <= len(row) {
			values = append(values, row[col-1])
		} else {
			values = append(values, "")
		}
	}
	for len(values) > 0 && values[len(values)-1] == "" {
		values = values[:len(values)-1]
	}
	return values, nil
}

func (m *MemoryWorksheet) Value(ctx context.Context, row, col int) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if row < 1 || row > len(m.rows) || col < 1 || col > len(m.rows[row-1]) {
		return "", nil
	}
	return m.rows[row-1][col-1], nil
}

func (m *MemoryWorksheet) Find(ctx context.Context, needle string) (CellRef, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lowered := strings.ToLower(needle)
	for r, row := range m.rows {
		for c, value := range row {
			if strings.Contains(strings.ToLower(value), lowered) {
				return CellRef{Row: r + 1, Col: c + 1, Value: value}, true, nil
			}
		}
	}
	return CellRef{}, false, nil
}

func (m *MemoryWorksheet) UpdateCell(ctx context.Context, row, col int, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.grow(row, col)
	m.rows[row-1][col-1] = value
	return nil
}

func (m *MemoryWorksheet) InsertRow(ctx context.Context, index int, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := index - 1
	if idx < 0 {
		idx = 0
	}
	if idx > len(m.rows) {
		idx = len(m.rows)
	}
	row := append([]string(nil), values...)
	m.rows = append(m.rows[:idx], append([][]string{row}, m.rows[idx:]...)...)
	return nil
}

// SetA1 writes a cell by A1 reference. Test convenience.
func (m *MemoryWorksheet) SetA1(ref, value string) error {
	row, col, err := ParseA1(ref)
	if err != nil {
		return err
	}
	return m.UpdateCell(context.Background(), row, col, value)
}

func (m *MemoryWorksheet) grow(row, col int) {
	for len(m.rows) < row {
		m.rows = append(m.rows, []string{})
	}
	for len(m.rows[row-1]) < col {
		m.rows[row-1] = append(m.rows[row-1], "")
	}
}
