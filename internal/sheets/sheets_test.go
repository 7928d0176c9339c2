package sheets

import (
	"context"
	"testing"
)

func TestColumnIndex(t *testing.T) {
	tests := []struct {
		letter string
		want   int
	}{
		{"A", 1},
		{"B", 2},
		{"Z", 26},
		{"AA", 27},
		{"AB", 28},
		{"AE", 31},
	}
	for _, tt := range tests {
		if got := ColumnIndex(tt.letter); got != tt.want {
			t.Errorf("ColumnIndex(%q) = %d, want %d", tt.letter, got, tt.want)
		}
	}
}

func TestColumnLetter(t *testing.T) {
	for _, letter := range []string{"A", "Z", "AA", "AB", "AE"} {
		if got := ColumnLetter(ColumnIndex(letter)); got != letter {
			t.Errorf("ColumnLetter(ColumnIndex(%q)) = %q", letter, got)
		}
	}
}

func TestParseA1(t *testing.T) {
	row, col, err := ParseA1("AE28")
	if err != nil {
		t.Fatalf("ParseA1(AE28) error: %v", err)
	}
	if row != 28 || col != 31 {
		t.Errorf("ParseA1(AE28) = (%d, %d), want (28, 31)", row, col)
	}

	if _, _, err := ParseA1("28"); err == nil {
		t.Error("ParseA1(28) should fail")
	}
	if _, _, err := ParseA1("AE"); err == nil {
		t.Error("ParseA1(AE) should fail")
	}
}

func TestMemoryWorksheetFind(t *testing.T) {
	ws := NewMemoryWorksheet("Income", [][]string{
		{"", ""},
		{"", "Rent", "$2000"},
		{"", "Monthly Income:", "$5,000"},
	})
	ctx := context.Background()

	ref, ok, err := ws.Find(ctx, "monthly income:")
	if err != nil || !ok {
		t.Fatalf("Find() = ok=%v err=%v", ok, err)
	}
	if ref.Row != 3 || ref.Col != 2 {
		t.Errorf("Find() located (%d,%d), want (3,2)", ref.Row, ref.Col)
	}

	if _, ok, _ := ws.Find(ctx, "Margins:"); ok {
		t.Error("Find() should miss an absent label")
	}
}

func TestMemoryWorksheetColumnValuesTrimsTrailing(t *testing.T) {
	ws := NewMemoryWorksheet("Expense", [][]string{
		{"a"},
		{"", "x"},
		{"b"},
		{""},
		{""},
	})
	values, err := ws.ColumnValues(context.Background(), 1)
	if err != nil {
		t.Fatalf("ColumnValues() error: %v", err)
	}
	if len(values) != 3 {
		t.Fatalf("ColumnValues() = %v, want trailing blanks trimmed to 3 entries", values)
	}
	if values[1] != "" {
		t.Error("ColumnValues() should keep interior blanks")
	}
}

func TestMemoryWorksheetInsertRow(t *testing.T) {
	ws := NewMemoryWorksheet("Income", [][]string{
		{"", "Paycheck", "2000"},
		{"", "Monthly Income:", "2000"},
	})
	ctx := context.Background()
	if err := ws.InsertRow(ctx, 2, []string{"", "Bonus", "500"}); err != nil {
		t.Fatalf("InsertRow() error: %v", err)
	}
	rows, _ := ws.Rows(ctx)
	if len(rows) != 3 {
		t.Fatalf("Rows() = %d rows, want 3", len(rows))
	}
	if rows[1][1] != "Bonus" {
		t.Errorf("row 2 = %v, want the inserted row", rows[1])
	}
	if rows[2][1] != "Monthly Income:" {
		t.Errorf("row 3 = %v, want the shifted summary row", rows[2])
	}
}

func foodRow(date, item, amount, location, person string) []string {
	row := make([]string, 26)
	row[ColumnIndex("N")-1] = date
	row[ColumnIndex("O")-1] = item
	row[ColumnIndex("P")-1] = amount
	row[ColumnIndex("Q")-1] = location
	row[ColumnIndex("R")-1] = person
	return row
}

func shoppingRow(date, item, amount, location, person string) []string {
	row := make([]string, 26)
	row[ColumnIndex("V")-1] = date
	row[ColumnIndex("W")-1] = item
	row[ColumnIndex("X")-1] = amount
	row[ColumnIndex("Y")-1] = location
	row[ColumnIndex("Z")-1] = person
	return row
}

func headerRows() [][]string {
	return [][]string{make([]string, 26), make([]string, 26)}
}

func TestEntriesFiltersByPerson(t *testing.T) {
	rows := headerRows()
	rows = append(rows,
		foodRow("5/5/2025", "Latte", "5", "Cafe", "Hannah"),
		foodRow("5/6/2025", "Burrito", "7", "Chipotle", "Brian (BofA)"),
		shoppingRow("5/7/2025", "Shoes", "40", "Target", "SomeoneElse"),
	)
	ws := NewMemoryWorksheet("Expense", rows)

	entries, err := Entries(context.Background(), ws, []string{"Hannah", "Brian (BofA)"})
	if err != nil {
		t.Fatalf("Entries() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Entries() = %d entries, want 2", len(entries))
	}
	if entries[0].Item != "Latte" || entries[0].Amount != 5 {
		t.Errorf("first entry = %+v", entries[0])
	}
	if entries[0].Date.Day != 5 || entries[0].Date.Month != 5 {
		t.Errorf("first entry date = %v, want May 5", entries[0].Date)
	}
	if entries[1].Category != Food {
		t.Errorf("second entry category = %s, want food", entries[1].Category)
	}
}

func TestEntriesUnfiltered(t *testing.T) {
	rows := headerRows()
	rows = append(rows,
		foodRow("5/5/2025", "Latte", "5", "Cafe", "Hannah"),
		shoppingRow("5/7/2025", "Shoes", "40", "Target", "Brian (AL)"),
	)
	ws := NewMemoryWorksheet("Expense", rows)

	entries, err := Entries(context.Background(), ws, nil)
	if err != nil {
		t.Fatalf("Entries() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Entries() = %d entries, want 2", len(entries))
	}
}

func TestFirstFreeRow(t *testing.T) {
	rows := headerRows()
	rows = append(rows,
		foodRow("5/5/2025", "Latte", "5", "Cafe", "Hannah"),
		foodRow("5/6/2025", "Burrito", "7", "Chipotle", "Hannah"),
	)
	ws := NewMemoryWorksheet("Expense", rows)
	ctx := context.Background()

	free, err := FirstFreeRow(ctx, ws, Food)
	if err != nil {
		t.Fatalf("FirstFreeRow() error: %v", err)
	}
	if free != 5 {
		t.Errorf("FirstFreeRow(food) = %d, want 5", free)
	}

	// No grocery data at all: writes begin at the block start row.
	free, err = FirstFreeRow(ctx, ws, Grocery)
	if err != nil {
		t.Fatalf("FirstFreeRow() error: %v", err)
	}
	if free != 3 {
		t.Errorf("FirstFreeRow(grocery) = %d, want 3", free)
	}
}

func TestBlockFor(t *testing.T) {
	b, ok := BlockFor(Gas)
	if !ok {
		t.Fatal("BlockFor(gas) missing")
	}
	if b.HasItem() {
		t.Error("gas block should not carry an item column")
	}
	if b.Amount != ColumnIndex("I") {
		t.Errorf("gas amount column = %d, want I", b.Amount)
	}

	if _, ok := BlockFor(Category("restaurants")); ok {
		t.Error("BlockFor should reject unknown categories")
	}
}
