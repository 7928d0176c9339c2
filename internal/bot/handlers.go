package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/deebers/bookiebot/internal/intents"
	"github.com/deebers/bookiebot/internal/money"
	"github.com/deebers/bookiebot/internal/persons"
	"github.com/deebers/bookiebot/internal/sheets"
	"github.com/deebers/bookiebot/internal/writer"
)

// Write handlers.

func (b *Bot) handleLogExpense(ctx context.Context, msg Message, entities map[string]interface{}) Reply {
	payload, err := intents.DecodeLogExpense(entities)
	if err != nil {
		return Reply{Text: "❌ Could not log entry — missing: amount."}
	}

	cat, ok := writer.NormalizeCategory(payload.Category)
	if !ok {
		cat, ok = writer.NormalizeCategory(payload.Type)
	}
	if !ok {
		// A store name with no recognizable category reads as shopping.
		cat = sheets.Shopping
	}

	exp := writer.Expense{
		Category: cat,
		Item:     payload.Item,
		Amount:   payload.Amount,
		Location: firstNonEmpty(payload.Location, payload.Store),
	}
	if payload.Date != "" {
		if d, ok := money.ParseFlexibleDate(payload.Date, b.clock.Today()); ok {
			exp.Date = d
		}
	}

	claim := firstNonEmpty(payload.Person, intents.PersonClaim(entities))
	if persons.Known(claim) {
		exp.Person = claim
		return b.commitExpense(ctx, exp)
	}
	scope := persons.ResolveWrite(msg.User, claim, msg.UserID)
	switch len(scope) {
	case 0:
		return Reply{Text: "❌ Could not log entry — missing: person."}
	case 1:
		exp.Person = scope[0]
		return b.commitExpense(ctx, exp)
	default:
		pending := b.sessions.Put(msg.User, exp, scope)
		mention := msg.Mention
		if mention == "" {
			mention = msg.User
		}
		return Reply{
			Text:    fmt.Sprintf("%s, which card did you use?", mention),
			Choices: pending.Choices,
			Token:   pending.Token,
		}
	}
}

func (b *Bot) commitExpense(ctx context.Context, exp writer.Expense) Reply {
	if missing := writer.MissingFields(exp); len(missing) > 0 {
		return Reply{Text: fmt.Sprintf("❌ Could not log entry — missing: %s.", strings.Join(missing, ", "))}
	}
	if _, err := b.writer.LogExpense(ctx, exp); err != nil {
		b.log.Error().Err(err).Msg("expense write failed")
		return errorReply(err)
	}
	return Reply{Text: fmt.Sprintf("✅ %s expense logged: %s for %s",
		titleCategory(string(exp.Category)), money.Format(exp.Amount), exp.Person)}
}

func (b *Bot) handleLogNeed(ctx context.Context, entities map[string]interface{}) Reply {
	payload, err := intents.DecodeNeedExpense(entities)
	if err != nil {
		return Reply{Text: "❌ Could not log entry — missing: description, amount."}
	}
	if _, err := b.writer.LogNeedExpense(ctx, payload.Description, payload.Amount); err != nil {
		b.log.Error().Err(err).Msg("need write failed")
		return errorReply(err)
	}
	return Reply{Text: fmt.Sprintf("✅ Need expense logged: %s for %s",
		money.Format(payload.Amount), payload.Description)}
}

func (b *Bot) handleLogIncome(ctx context.Context, entities map[string]interface{}) Reply {
	payload, err := intents.DecodeLogIncome(entities)
	if err != nil {
		return Reply{Text: "❌ Could not log entry — missing: amount."}
	}
	source := firstNonEmpty(payload.Source, payload.Label, "income")
	description := strings.TrimSpace(strings.Join(nonEmpty(payload.Source, payload.Label), " "))
	if description == "" {
		description = source
	}
	if err := b.writer.LogIncome(ctx, description, payload.Amount); err != nil {
		b.log.Error().Err(err).Msg("income write failed")
		return errorReply(err)
	}
	return Reply{Text: fmt.Sprintf("Income logged: %s from %s", money.Format(payload.Amount), source)}
}

func (b *Bot) handleLogPayment(ctx context.Context, entities map[string]interface{}, what string, log func(context.Context, float64) (bool, error)) Reply {
	payload, err := intents.DecodePaymentAmount(entities)
	if err != nil {
		return Reply{Text: "❌ Could not log entry — missing: amount."}
	}
	found, err := log(ctx, payload.Amount)
	if err != nil {
		b.log.Error().Err(err).Msg("payment write failed")
		return errorReply(err)
	}
	if !found {
		return Reply{Text: fmt.Sprintf("❌ Could not find the %s row on this month's sheet.", what)}
	}
	return Reply{Text: fmt.Sprintf("✅ Logged %s payment: %s", what, money.Format(payload.Amount))}
}

func (b *Bot) handleLogSavings(ctx context.Context, entities map[string]interface{}, which int) Reply {
	payload, err := intents.DecodePaymentAmount(entities)
	if err != nil {
		return Reply{Text: "❌ Could not log entry — missing: amount."}
	}
	found, err := b.writer.LogSavingsDeposit(ctx, which, payload.Amount)
	if err != nil {
		b.log.Error().Err(err).Msg("savings write failed")
		return errorReply(err)
	}
	name := savingsName(which)
	if !found {
		return Reply{Text: fmt.Sprintf("❌ Could not find the %s row on this month's sheet.", name)}
	}
	return Reply{Text: fmt.Sprintf("✅ Logged %s deposit: %s", name, money.Format(payload.Amount))}
}

// Income-tab checks.

func (b *Bot) handlePaymentCheck(ctx context.Context, what string, check func(context.Context) (bool, float64, error)) Reply {
	paid, amount, err := check(ctx)
	if err != nil {
		return errorReply(err)
	}
	if !paid {
		return Reply{Text: fmt.Sprintf("❌ You have NOT paid %s yet this month.", what)}
	}
	return Reply{Text: fmt.Sprintf("✅ You paid $%.2f for %s this month.", amount, what)}
}

func (b *Bot) handleSavingsCheck(ctx context.Context, which int) Reply {
	status, found, err := b.engine.CheckSavings(ctx, which)
	if err != nil {
		return errorReply(err)
	}
	name := savingsName(which)
	if !found {
		return Reply{Text: fmt.Sprintf("❌ Could not find the %s row on this month's sheet.", name)}
	}
	if !status.Deposited {
		return Reply{Text: fmt.Sprintf("❌ No %s deposit yet this month (ideal %s, minimum %s).",
			name, money.Format(status.Ideal), money.Format(status.Minimum))}
	}
	return Reply{Text: fmt.Sprintf("✅ You deposited %s into %s this month (ideal %s, minimum %s).",
		money.Format(status.Actual), name, money.Format(status.Ideal), money.Format(status.Minimum))}
}

func (b *Bot) handleSubscriptions(ctx context.Context) Reply {
	needs, needsTotal, wants, wantsTotal, err := b.engine.Subscriptions(ctx)
	if err != nil {
		return errorReply(err)
	}
	var sb strings.Builder
	sb.WriteString("📋 Subscriptions:\n")
	sb.WriteString(fmt.Sprintf("__Needs__ (%s)\n", money.Format(needsTotal)))
	for _, s := range needs {
		sb.WriteString(fmt.Sprintf("• %s: %s\n", s.Name, money.Format(s.Amount)))
	}
	sb.WriteString(fmt.Sprintf("__Wants__ (%s)\n", money.Format(wantsTotal)))
	for _, s := range wants {
		sb.WriteString(fmt.Sprintf("• %s: %s\n", s.Name, money.Format(s.Amount)))
	}
	return Reply{Text: strings.TrimRight(sb.String(), "\n")}
}

func (b *Bot) handleBurnRate(ctx context.Context) Reply {
	rate, desc, err := b.engine.BurnRate(ctx)
	if err != nil {
		return errorReply(err)
	}
	if rate == "" {
		return Reply{Text: "❌ Could not find the burn rate on this month's sheet."}
	}
	if desc == "" {
		return Reply{Text: fmt.Sprintf("🔥 Burn rate: %s", rate)}
	}
	return Reply{Text: fmt.Sprintf("🔥 Burn rate: %s (%s)", rate, desc)}
}

func (b *Bot) handleRemainingBudget(ctx context.Context) Reply {
	remaining, found, err := b.engine.RemainingBudget(ctx)
	if err != nil {
		return errorReply(err)
	}
	if !found {
		return Reply{Text: "❌ Could not find the margins row on this month's sheet."}
	}
	if remaining < 0 {
		return Reply{Text: fmt.Sprintf("You're currently exceeding this month's spending budget by $%.2f.", -remaining)}
	}
	return Reply{Text: fmt.Sprintf("Remaining spending budget this month: $%.2f.", remaining)}
}

func (b *Bot) handleTotalIncome(ctx context.Context) Reply {
	total, err := b.engine.TotalIncome(ctx)
	if err != nil {
		return errorReply(err)
	}
	return Reply{Text: fmt.Sprintf("Total income this month: $%.2f.", total)}
}

func (b *Bot) handleAverageDailySpend(ctx context.Context) Reply {
	avg, err := b.engine.AverageDailySpend(ctx)
	if err != nil {
		return errorReply(err)
	}
	return Reply{Text: fmt.Sprintf("Average daily spend this month: $%.2f.", avg)}
}

func (b *Bot) handleDaysBudgetLasts(ctx context.Context) Reply {
	days, ok, err := b.engine.DaysBudgetLasts(ctx)
	if err != nil {
		return errorReply(err)
	}
	if !ok {
		return Reply{Text: "No spending recorded yet this month, so your budget isn't shrinking."}
	}
	return Reply{Text: fmt.Sprintf("⏳ At your current pace, your remaining budget lasts about %.1f more days.", days)}
}

// Ledger-scan queries.

func (b *Bot) handleProjectedSpending(ctx context.Context, scope []string) Reply {
	projected, err := b.engine.ProjectedSpending(ctx, scope)
	if err != nil {
		return errorReply(err)
	}
	return Reply{Text: fmt.Sprintf("📈 Projected spending for this month: $%.2f", projected)}
}

func (b *Bot) handleBreakdown(ctx context.Context, scope []string) Reply {
	breakdown, ok, err := b.engine.ExpenseBreakdown(ctx, scope)
	if err != nil {
		return errorReply(err)
	}
	if !ok {
		return Reply{Text: "❌ Could not calculate expense breakdown."}
	}
	var sb strings.Builder
	sb.WriteString("📊 Expense breakdown:\n")
	for _, cat := range sheets.Categories {
		share := breakdown.Categories[cat]
		sb.WriteString(fmt.Sprintf("• %s: %s (%.2f%%)\n",
			titleCategory(string(cat)), money.Format(share.Amount), share.Percentage))
	}
	return Reply{Text: strings.TrimRight(sb.String(), "\n")}
}

func (b *Bot) handleStoreTotal(ctx context.Context, entities map[string]interface{}, scope []string) Reply {
	q, err := intents.DecodeStoreQuery(entities)
	if err != nil {
		return Reply{Text: "❌ Which store did you mean?"}
	}
	total, _, err := b.engine.TotalSpentAtStore(ctx, q.Store, scope)
	if err != nil {
		return errorReply(err)
	}
	return Reply{Text: fmt.Sprintf("You've spent $%.2f at %s this month.", total, q.Store)}
}

func (b *Bot) handleCategoryTotal(ctx context.Context, entities map[string]interface{}, scope []string) Reply {
	q, err := intents.DecodeCategoryQuery(entities)
	if err != nil {
		return Reply{Text: "❌ Which category did you mean?"}
	}
	total, err := b.engine.TotalForCategory(ctx, q.Category, scope)
	if err != nil {
		return errorReply(err)
	}
	return Reply{Text: fmt.Sprintf("💰 You spent $%.2f on %s this month.", total, strings.ToLower(q.Category))}
}

func (b *Bot) handleItemTotal(ctx context.Context, entities map[string]interface{}, scope []string) Reply {
	q, err := intents.DecodeItemQuery(entities)
	if err != nil {
		return Reply{Text: "❌ Which item did you mean?"}
	}
	total, matches, err := b.engine.TotalSpentOnItem(ctx, q.Item, scope)
	if err != nil {
		return errorReply(err)
	}
	return Reply{Text: fmt.Sprintf("🧾 You've spent $%.2f on %s this month (%d purchases).",
		total, q.Item, len(matches))}
}

func (b *Bot) handleLargestExpense(ctx context.Context, scope []string) Reply {
	entry, found, err := b.engine.LargestSingleExpense(ctx, scope)
	if err != nil {
		return errorReply(err)
	}
	if !found {
		return Reply{Text: "No expenses recorded yet this month."}
	}
	return Reply{Text: fmt.Sprintf("💸 Largest single expense: %s", describeEntry(entry))}
}

func (b *Bot) handleTopN(ctx context.Context, entities map[string]interface{}, scope []string) Reply {
	n := intents.DecodeTopN(entities).N
	top, err := b.engine.TopNExpenses(ctx, scope, n)
	if err != nil {
		return errorReply(err)
	}
	if len(top) == 0 {
		return Reply{Text: "No expenses recorded yet this month."}
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🔝 Top %d expenses:\n", n))
	for i, entry := range top {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, describeEntry(entry)))
	}
	return Reply{Text: strings.TrimRight(sb.String(), "\n")}
}

func (b *Bot) handleMostFrequent(ctx context.Context, entities map[string]interface{}, scope []string) Reply {
	n := intents.DecodeTopN(entities).N
	purchases, err := b.engine.MostFrequentPurchases(ctx, scope, n)
	if err != nil {
		return errorReply(err)
	}
	if len(purchases) == 0 {
		return Reply{Text: "No itemized purchases recorded yet this month."}
	}
	var sb strings.Builder
	sb.WriteString("🔁 Most frequent purchases:\n")
	for i, p := range purchases {
		sb.WriteString(fmt.Sprintf("%d. %s — %d times (%s)\n", i+1, p.Item, p.Count, money.Format(p.Total)))
	}
	return Reply{Text: strings.TrimRight(sb.String(), "\n")}
}

func (b *Bot) handleHighestCategory(ctx context.Context, scope []string) Reply {
	cat, amount, err := b.engine.HighestExpenseCategory(ctx, scope)
	if err != nil {
		return errorReply(err)
	}
	return Reply{Text: fmt.Sprintf("Highest expense category: %s ($%.2f).", cat, amount)}
}

func (b *Bot) handleSpentThisWeek(ctx context.Context, scope []string) Reply {
	total, err := b.engine.SpentThisWeek(ctx, scope)
	if err != nil {
		return errorReply(err)
	}
	return Reply{Text: fmt.Sprintf("📆 You've spent $%.2f so far this week.", total)}
}

func (b *Bot) handleNoSpendDays(ctx context.Context, scope []string) Reply {
	count, days, err := b.engine.NoSpendDays(ctx, scope)
	if err != nil {
		return errorReply(err)
	}
	list := make([]string, len(days))
	for i, d := range days {
		list[i] = fmt.Sprintf("%d", d)
	}
	return Reply{Text: fmt.Sprintf("🚫 No-spend days this month: %d\nDays: %s", count, strings.Join(list, ", "))}
}

func (b *Bot) handleStreak(ctx context.Context, scope []string) Reply {
	streak, err := b.engine.LongestNoSpendStreak(ctx, scope)
	if err != nil {
		return errorReply(err)
	}
	if streak.Length == 0 {
		return Reply{Text: "No no-spend days yet this month."}
	}
	return Reply{Text: fmt.Sprintf("🏆 Longest no-spend streak: %d days (day %d to day %d).",
		streak.Length, streak.Start, streak.End)}
}

func (b *Bot) handleExpensesOnDay(ctx context.Context, entities map[string]interface{}, scope []string) Reply {
	q, err := intents.DecodeDayQuery(entities)
	if err != nil {
		return Reply{Text: "❌ Which day did you mean?"}
	}
	entries, total, ok, err := b.engine.ExpensesOnDay(ctx, q.Date, scope)
	if err != nil {
		return errorReply(err)
	}
	if !ok {
		return Reply{Text: fmt.Sprintf("❌ I couldn't read %q as a date.", q.Date)}
	}
	if len(entries) == 0 {
		return Reply{Text: fmt.Sprintf("No expenses recorded on %s.", q.Date)}
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🗓 Expenses on %s (%s total):\n", q.Date, money.Format(total)))
	for _, entry := range entries {
		sb.WriteString("• " + describeEntry(entry) + "\n")
	}
	return Reply{Text: strings.TrimRight(sb.String(), "\n")}
}

func (b *Bot) handleCalendar(ctx context.Context, scope []string) Reply {
	summary, err := b.engine.DailySpendingCalendar(ctx, scope)
	if err != nil {
		return errorReply(err)
	}
	return Reply{Text: "📅 " + summary}
}

func (b *Bot) handleWeekendVsWeekday(ctx context.Context, scope []string) Reply {
	weekend, weekday, err := b.engine.WeekendVsWeekday(ctx, scope)
	if err != nil {
		return errorReply(err)
	}
	return Reply{Text: fmt.Sprintf("🌞 Weekends: $%.2f\n📅 Weekdays: $%.2f", weekend, weekday)}
}

func (b *Bot) handleBestWorstDay(ctx context.Context, scope []string) Reply {
	best, worst, err := b.engine.BestWorstDayOfWeek(ctx, scope)
	if err != nil {
		return errorReply(err)
	}
	return Reply{Text: fmt.Sprintf("📉 Best day: %s (%s avg)\n📈 Worst day: %s (%s avg)",
		best.Day, money.Format(best.Average), worst.Day, money.Format(worst.Average))}
}

// describeEntry renders one ledger row for chat.
func describeEntry(entry sheets.Entry) string {
	parts := []string{money.Format(entry.Amount)}
	if entry.Item != "" {
		parts = append(parts, "for "+entry.Item)
	}
	if entry.Location != "" {
		parts = append(parts, "at "+entry.Location)
	}
	if entry.RawDate != "" {
		parts = append(parts, "on "+entry.RawDate)
	}
	return strings.Join(parts, " ")
}

func savingsName(which int) string {
	if which == 2 {
		return "2nd savings"
	}
	return "1st savings"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
