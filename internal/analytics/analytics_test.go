package analytics

import (
	"fmt"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/deebers/bookiebot/internal/money"
	"github.com/deebers/bookiebot/internal/sheets"
)

// fixedClock freezes time at Thursday May 15, 2025 so week and month
// boundaries are stable across all fixtures.
func fixedClock() money.Clock {
	return money.NewFixedClock(civil.Date{Year: 2025, Month: time.May, Day: 15})
}

func newEngine(repo sheets.Repository) *Engine {
	return New(repo, fixedClock())
}

func set(t *testing.T, ws *sheets.MemoryWorksheet, cells map[string]string) {
	t.Helper()
	for ref, value := range cells {
		if err := ws.SetA1(ref, value); err != nil {
			t.Fatalf("SetA1(%s): %v", ref, err)
		}
	}
}

func addGrocery(t *testing.T, ws *sheets.MemoryWorksheet, row int, date, amount, location, person string) {
	t.Helper()
	set(t, ws, map[string]string{
		fmt.Sprintf("A%d", row): date,
		fmt.Sprintf("B%d", row): amount,
		fmt.Sprintf("C%d", row): location,
		fmt.Sprintf("D%d", row): person,
	})
}

func addGas(t *testing.T, ws *sheets.MemoryWorksheet, row int, date, amount, person string) {
	t.Helper()
	set(t, ws, map[string]string{
		fmt.Sprintf("H%d", row): date,
		fmt.Sprintf("I%d", row): amount,
		fmt.Sprintf("J%d", row): person,
	})
}

func addFood(t *testing.T, ws *sheets.MemoryWorksheet, row int, date, item, amount, location, person string) {
	t.Helper()
	set(t, ws, map[string]string{
		fmt.Sprintf("N%d", row): date,
		fmt.Sprintf("O%d", row): item,
		fmt.Sprintf("P%d", row): amount,
		fmt.Sprintf("Q%d", row): location,
		fmt.Sprintf("R%d", row): person,
	})
}

func addShopping(t *testing.T, ws *sheets.MemoryWorksheet, row int, date, item, amount, location, person string) {
	t.Helper()
	set(t, ws, map[string]string{
		fmt.Sprintf("V%d", row): date,
		fmt.Sprintf("W%d", row): item,
		fmt.Sprintf("X%d", row): amount,
		fmt.Sprintf("Y%d", row): location,
		fmt.Sprintf("Z%d", row): person,
	})
}
