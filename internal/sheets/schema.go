package sheets

// Category is one of the four expense categories the ledger tracks.
type Category string

const (
	Grocery  Category = "grocery"
	Gas      Category = "gas"
	Food     Category = "food"
	Shopping Category = "shopping"
)

// Categories lists every category in catalog order. Iteration order matters:
// argmax-style analytics break ties by first category seen.
var Categories = []Category{Grocery, Gas, Food, Shopping}

// Block describes one category's run of columns on the expense tab.
// Column values are 1-based indices; 0 means the category has no such field.
type Block struct {
	StartRow int
	Date     int
	Item     int
	Amount   int
	Location int
	Person   int
}

// HasItem reports whether the category records a per-entry item.
func (b Block) HasItem() bool { return b.Item != 0 }

var blocks = map[Category]Block{
	Grocery: {
		StartRow: 3,
		Date:     ColumnIndex("A"),
		Amount:   ColumnIndex("B"),
		Location: ColumnIndex("C"),
		Person:   ColumnIndex("D"),
	},
	Gas: {
		StartRow: 3,
		Date:     ColumnIndex("H"),
		Amount:   ColumnIndex("I"),
		Person:   ColumnIndex("J"),
	},
	Food: {
		StartRow: 3,
		Date:     ColumnIndex("N"),
		Item:     ColumnIndex("O"),
		Amount:   ColumnIndex("P"),
		Location: ColumnIndex("Q"),
		Person:   ColumnIndex("R"),
	},
	Shopping: {
		StartRow: 3,
		Date:     ColumnIndex("V"),
		Item:     ColumnIndex("W"),
		Amount:   ColumnIndex("X"),
		Location: ColumnIndex("Y"),
		Person:   ColumnIndex("Z"),
	},
}

// BlockFor returns the column block for a category.
func BlockFor(c Category) (Block, bool) {
	b, ok := blocks[c]
	return b, ok
}

// Expense-tab summary cells. The sheet maintains these with formulas; the
// bot only reads them.
var (
	// PersonTotalCells maps a canonical person to their month-total cell.
	PersonTotalCells = map[string]string{
		"Brian (BofA)": "AE28",
		"Hannah":       "AE31",
		"Brian (AL)":   "AE34",
	}

	// PersonSummaryRows maps a canonical person to their row in the
	// per-category summary columns.
	PersonSummaryRows = map[string]int{
		"Brian (BofA)": 4,
		"Hannah":       5,
		"Brian (AL)":   6,
	}

	// CategorySummaryCols maps a category to its per-person summary column.
	CategorySummaryCols = map[Category]int{
		Grocery:  ColumnIndex("F"),
		Gas:      ColumnIndex("L"),
		Food:     ColumnIndex("T"),
		Shopping: ColumnIndex("AB"),
	}

	// FoodRunningTotalCell and ShoppingRunningTotalCell hold the sheet's
	// running month-to-date totals for their blocks. Average daily spend
	// reads these two cells instead of rescanning the ledger.
	FoodRunningTotalCell     = "T2"
	ShoppingRunningTotalCell = "AB2"
)

// Income-tab labels. Summary rows are located by substring search so the
// sheet can be rearranged without breaking the bot.
const (
	BurnRateLabel      = "Burn rate:"
	RentLabel          = "Rent"
	SMUDLabel          = "SMUD"
	StudentLoanLabel   = "Student Loan Payment"
	IncomeLabel        = "Monthly Income:"
	MarginsLabel       = "Margins:"
	FirstSavingsLabel  = "1st Savings"
	SecondSavingsLabel = "2nd Savings"
)

// Subscriptions tab layout: name/amount pairs from row 7 down, needs in
// columns B/C and wants in E/F. Each column stops independently at its
// first blank name.
var SubscriptionsLayout = struct {
	StartRow   int
	NeedName   int
	NeedAmount int
	WantName   int
	WantAmount int
}{
	StartRow:   7,
	NeedName:   ColumnIndex("B"),
	NeedAmount: ColumnIndex("C"),
	WantName:   ColumnIndex("E"),
	WantAmount: ColumnIndex("F"),
}
