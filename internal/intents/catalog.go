// Package intents defines the closed catalog of chat intents and resolves
// free-form messages to a catalog entry via Gemini.
package intents

import (
	"fmt"
	"strings"
)

// Fallback is returned when a message matches no catalog intent. The
// dispatcher answers these conversationally and never touches the ledger.
const Fallback = "fallback"

// Intent is one catalog entry.
type Intent struct {
	Key         string
	Name        string
	Description string
	Examples    []string
}

// Group is a display section of the catalog.
type Group struct {
	Name    string
	Intents []Intent
}

// Catalog lists every intent the bot understands, in display order.
// Numbering in listings and lookups is 1-based over this flattened order.
var Catalog = []Group{
	{
		Name: "Logging Actions",
		Intents: []Intent{
			{
				Key:         "log_expense",
				Name:        "Log Expense",
				Description: "Log a general expense to track your spending.",
				Examples:    []string{"log expense $25 at grocery store", "spent 40 at restaurant"},
			},
			{
				Key:         "log_need_expense",
				Name:        "Log NEED Expense",
				Description: "Log a necessary or non-discretionary expense.",
				Examples:    []string{"logged $80 for medication (need)", "spent 60 on gas (need)"},
			},
			{
				Key:         "log_income",
				Name:        "Log Income",
				Description: "Log income you received.",
				Examples:    []string{"received paycheck $1500", "logged income $200 from freelance"},
			},
			{
				Key:         "log_rent_paid",
				Name:        "Log Rent Paid",
				Description: "Log that you paid your rent.",
				Examples:    []string{"paid rent $1200", "logged rent $1300"},
			},
			{
				Key:         "log_smud_paid",
				Name:        "Log SMUD Paid",
				Description: "Log your SMUD (electricity) bill payment.",
				Examples:    []string{"paid SMUD $90", "logged electricity bill $100"},
			},
			{
				Key:         "log_student_loan_paid",
				Name:        "Log Student Loan Paid",
				Description: "Log your student loan payment.",
				Examples:    []string{"paid student loan $200", "logged student loan $150"},
			},
			{
				Key:         "log_1st_savings",
				Name:        "Log 1st Savings Deposit",
				Description: "Log a contribution to your first savings account.",
				Examples:    []string{"moved $100 to savings 1", "saved 50 in first savings"},
			},
			{
				Key:         "log_2nd_savings",
				Name:        "Log 2nd Savings Deposit",
				Description: "Log a contribution to your second savings account.",
				Examples:    []string{"moved $200 to savings 2", "saved 75 in second savings"},
			},
		},
	},
	{
		Name: "Checking Payments",
		Intents: []Intent{
			{
				Key:         "query_rent_paid",
				Name:        "Check Rent Paid",
				Description: "Check if/when your rent was paid.",
				Examples:    []string{"when did I last pay rent?", "have I paid rent this month?"},
			},
			{
				Key:         "query_smud_paid",
				Name:        "Check SMUD Paid",
				Description: "Check if/when your SMUD bill was paid.",
				Examples:    []string{"when did I last pay SMUD?", "show SMUD payments"},
			},
			{
				Key:         "query_student_loans_paid",
				Name:        "Check Student Loans Paid",
				Description: "Check if/when you paid your student loans.",
				Examples:    []string{"when did I pay student loans?", "show student loan payments"},
			},
			{
				Key:         "query_1st_savings",
				Name:        "Check 1st Savings Deposit",
				Description: "Check the balance or activity in your first savings account.",
				Examples:    []string{"how much in first savings?", "show savings 1 activity"},
			},
			{
				Key:         "query_2nd_savings",
				Name:        "Check 2nd Savings Deposit",
				Description: "Check the balance or activity in your second savings account.",
				Examples:    []string{"how much in second savings?", "show savings 2 activity"},
			},
			{
				Key:         "query_subscriptions",
				Name:        "Subscriptions",
				Description: "List recurring subscriptions and their costs.",
				Examples:    []string{"what are my subscriptions?", "list all recurring expenses"},
			},
		},
	},
	{
		Name: "Spending & Budget Overview",
		Intents: []Intent{
			{
				Key:         "query_burn_rate",
				Name:        "Burn Rate",
				Description: "Check your current burn rate (how fast you're spending money).",
				Examples:    []string{"what is my burn rate?", "show current spending rate"},
			},
			{
				Key:         "query_remaining_budget",
				Name:        "Remaining Budget",
				Description: "Check how much budget you have left.",
				Examples:    []string{"how much budget remains?", "remaining budget for the month"},
			},
			{
				Key:         "query_projected_spending",
				Name:        "Projected Monthly Spending",
				Description: "Get projected spending based on current trends.",
				Examples:    []string{"what is my projected spending?", "forecast my expenses"},
			},
			{
				Key:         "query_total_income",
				Name:        "Current Total Monthly Income",
				Description: "Get the total income over a period of time.",
				Examples:    []string{"what's my total income this month?", "how much money came in?"},
			},
			{
				Key:         "query_average_daily_spend",
				Name:        "Average Daily Spending Amount",
				Description: "Get your average daily spending.",
				Examples:    []string{"what's my average daily spend?", "daily spending average"},
			},
			{
				Key:         "query_expense_breakdown_percentages",
				Name:        "Overall Expense Breakdown",
				Description: "Get a percentage breakdown of expenses by category.",
				Examples:    []string{"show expenses by percentage", "expense category breakdown"},
			},
		},
	},
	{
		Name: "Category & Item Totals",
		Intents: []Intent{
			{
				Key:         "query_total_for_store",
				Name:        "Total Spent at Specific Store",
				Description: "Get the total amount spent at a specific store.",
				Examples:    []string{"how much did I spend at Target?", "total spent at Amazon"},
			},
			{
				Key:         "query_total_for_category",
				Name:        "Total for Category",
				Description: "Get the total amount spent in a specific category.",
				Examples:    []string{"total for groceries?", "how much did I spend on dining?"},
			},
			{
				Key:         "query_total_for_item",
				Name:        "Total Spent on Specific Item",
				Description: "Check total spent on a specific item.",
				Examples:    []string{"total spent on coffee?", "how much have I spent on shoes?"},
			},
		},
	},
	{
		Name: "Largest/Most Frequent Expenses",
		Intents: []Intent{
			{
				Key:         "query_largest_single_expense",
				Name:        "Largest Single Expense",
				Description: "Find your largest single expense.",
				Examples:    []string{"what's my biggest single expense?", "largest expense"},
			},
			{
				Key:         "query_top_n_expenses",
				Name:        "Largest N Expenses",
				Description: "Get your top N largest expenses.",
				Examples:    []string{"show top 3 expenses", "what are my 5 biggest expenses?"},
			},
			{
				Key:         "query_most_frequent_purchases",
				Name:        "Most Frequent N Purchases",
				Description: "List your most frequent purchases.",
				Examples:    []string{"what do I buy most often?", "most common expenses"},
			},
			{
				Key:         "query_highest_expense_category",
				Name:        "Highest Expense Category",
				Description: "Find out which expense category has the highest total.",
				Examples:    []string{"what's my highest expense category?", "biggest spending category"},
			},
		},
	},
	{
		Name: "Time-Based Analysis",
		Intents: []Intent{
			{
				Key:         "query_spent_this_week",
				Name:        "Spent This Week",
				Description: "See how much you've spent this week.",
				Examples:    []string{"how much did I spend this week?", "weekly spending"},
			},
			{
				Key:         "query_no_spend_days",
				Name:        "No Spend Days",
				Description: "Find out how many days you spent nothing.",
				Examples:    []string{"how many no-spend days?", "days with no spending"},
			},
			{
				Key:         "query_longest_no_spend_streak",
				Name:        "Longest No-Spend Streak",
				Description: "Find your longest streak of no-spend days.",
				Examples:    []string{"longest no-spend streak?", "longest period with no expenses"},
			},
			{
				Key:         "query_days_budget_lasts",
				Name:        "Days Budget Will Last",
				Description: "Estimate how many days your remaining budget will last.",
				Examples:    []string{"how long will my budget last?", "days left in budget"},
			},
			{
				Key:         "query_expenses_on_day",
				Name:        "Expenses on Specific Day",
				Description: "Show expenses on a specific day.",
				Examples:    []string{"expenses on March 5th", "what did I spend on July 1?"},
			},
			{
				Key:         "query_daily_spending_calendar",
				Name:        "Daily Spending Calendar",
				Description: "View spending on a daily calendar.",
				Examples:    []string{"show daily spending calendar", "daily expenses calendar"},
			},
			{
				Key:         "query_weekend_vs_weekday",
				Name:        "Weekend vs Weekday",
				Description: "Compare weekend and weekday spending.",
				Examples:    []string{"weekend vs weekday spending", "do I spend more on weekends?"},
			},
			{
				Key:         "query_best_worst_day_of_week",
				Name:        "Best/Worst Day of Week",
				Description: "Find your best (least spending) and worst (most spending) day of the week.",
				Examples:    []string{"best and worst spending day", "which day do I spend most?"},
			},
		},
	},
}

var (
	flattened []Intent
	byKey     map[string]Intent
)

func init() {
	byKey = make(map[string]Intent)
	for _, group := range Catalog {
		for _, intent := range group.Intents {
			flattened = append(flattened, intent)
			byKey[intent.Key] = intent
		}
	}
}

// All returns every intent in flattened catalog order.
func All() []Intent {
	return append([]Intent(nil), flattened...)
}

// Keys returns every intent key in flattened catalog order.
func Keys() []string {
	keys := make([]string, len(flattened))
	for i, intent := range flattened {
		keys[i] = intent.Key
	}
	return keys
}

// Known reports whether key is a catalog intent.
func Known(key string) bool {
	_, ok := byKey[key]
	return ok
}

// ListIntents renders the numbered catalog listing, grouped by section.
func ListIntents() string {
	var b strings.Builder
	b.WriteString("**Available Intents:**\n")
	counter := 1
	for _, group := range Catalog {
		fmt.Fprintf(&b, "\n__%s__\n", group.Name)
		for _, intent := range group.Intents {
			fmt.Fprintf(&b, "%d. `%s`\n", counter, intent.Name)
			counter++
		}
	}
	b.WriteString("\n➡️ Type a number (e.g., `4`) to learn more about that intent.")
	return b.String()
}

// DescribeIntent renders the description card for the nth catalog entry,
// 1-based over the flattened listing order.
func DescribeIntent(number int) string {
	idx := number - 1
	if idx < 0 || idx >= len(flattened) {
		return "⚠️ Invalid number. Please choose from the list."
	}
	intent := flattened[idx]

	var b strings.Builder
	fmt.Fprintf(&b, "🔷 **%s**\n**Description:** %s\n", intent.Name, intent.Description)
	if len(intent.Examples) > 0 {
		b.WriteString("**Examples:**\n")
		for _, ex := range intent.Examples {
			fmt.Fprintf(&b, "• `%s`\n", ex)
		}
	} else {
		b.WriteString("No examples available yet.")
	}
	return b.String()
}
