// Package bot wires intent resolution, analytics, and ledger writes into a
// single message handler. It is transport neutral: the caller feeds it chat
// messages and renders the replies however it likes.
package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/deebers/bookiebot/internal/analytics"
	"github.com/deebers/bookiebot/internal/config"
	"github.com/deebers/bookiebot/internal/intents"
	"github.com/deebers/bookiebot/internal/logger"
	"github.com/deebers/bookiebot/internal/money"
	"github.com/deebers/bookiebot/internal/persons"
	"github.com/deebers/bookiebot/internal/writer"
)

// Message is one inbound chat message.
type Message struct {
	Text    string
	User    string
	UserID  string
	Mention string
}

// Reply is the bot's answer. Choices is non-empty when the bot needs the
// user to pick an account before a write can commit; Token ties the pick
// back to the pending write.
type Reply struct {
	Text    string
	Choices []string
	Token   string
}

// Bot dispatches chat messages to the ledger.
type Bot struct {
	cfg       *config.Config
	log       zerolog.Logger
	resolver  *intents.Resolver
	engine    *analytics.Engine
	writer    *writer.Writer
	sessions  *writer.DisambiguationStore
	completer intents.Completer
	clock     money.Clock

	mu          sync.Mutex
	lastReplies map[string]string
}

// New creates a Bot. completer answers fallback messages conversationally
// and may be nil to disable small talk.
func New(cfg *config.Config, log zerolog.Logger, resolver *intents.Resolver, engine *analytics.Engine, w *writer.Writer, completer intents.Completer, clock money.Clock) *Bot {
	return &Bot{
		cfg:         cfg,
		log:         log,
		resolver:    resolver,
		engine:      engine,
		writer:      w,
		sessions:    writer.NewDisambiguationStore(),
		completer:   completer,
		clock:       clock,
		lastReplies: make(map[string]string),
	}
}

// HandleMessage processes one chat message end to end.
func (b *Bot) HandleMessage(ctx context.Context, msg Message) Reply {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return Reply{}
	}

	b.log.Debug().Str("user", msg.User).Str("text", text).Msg("handling message")

	if strings.HasPrefix(text, "!debug") {
		return b.remember(msg, b.handleDebug(msg, text))
	}

	// Catalog navigation short-circuits the model.
	switch strings.ToLower(text) {
	case "list", "intents", "list intents":
		return b.remember(msg, Reply{Text: intents.ListIntents()})
	}
	if n, err := strconv.Atoi(text); err == nil {
		return b.remember(msg, Reply{Text: intents.DescribeIntent(n)})
	}

	result := b.resolver.Resolve(ctx, b.log, text)
	return b.remember(msg, b.route(ctx, msg, result))
}

// ResolveChoice commits a write that was paused on an account question.
// The token must belong to the user's live session.
func (b *Bot) ResolveChoice(ctx context.Context, msg Message, token, choice string) Reply {
	pending, ok := b.sessions.Pop(msg.User, token)
	if !ok {
		return b.remember(msg, Reply{Text: "❌ Session expired."})
	}
	valid := false
	for _, c := range pending.Choices {
		if strings.EqualFold(c, choice) {
			choice = c
			valid = true
			break
		}
	}
	if !valid {
		return b.remember(msg, Reply{Text: "❌ Session expired."})
	}
	exp := pending.Expense
	exp.Person = choice
	return b.remember(msg, b.commitExpense(ctx, exp))
}

func (b *Bot) remember(msg Message, r Reply) Reply {
	if r.Text != "" {
		b.mu.Lock()
		b.lastReplies[msg.User] = r.Text
		b.mu.Unlock()
	}
	return r
}

func (b *Bot) lastReply(user string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastReplies[user]
}

func (b *Bot) route(ctx context.Context, msg Message, result intents.Result) Reply {
	switch result.Intent {
	case "log_expense":
		return b.handleLogExpense(ctx, msg, result.Entities)
	case "log_need_expense":
		return b.handleLogNeed(ctx, result.Entities)
	case "log_income":
		return b.handleLogIncome(ctx, result.Entities)
	case "log_rent_paid":
		return b.handleLogPayment(ctx, result.Entities, "rent", b.writer.LogRentPaid)
	case "log_smud_paid":
		return b.handleLogPayment(ctx, result.Entities, "SMUD", b.writer.LogUtilitiesPaid)
	case "log_student_loan_paid":
		return b.handleLogPayment(ctx, result.Entities, "student loan", b.writer.LogStudentLoanPaid)
	case "log_1st_savings":
		return b.handleLogSavings(ctx, result.Entities, 1)
	case "log_2nd_savings":
		return b.handleLogSavings(ctx, result.Entities, 2)

	case "query_rent_paid":
		return b.handlePaymentCheck(ctx, "rent", b.engine.CheckRentPaid)
	case "query_smud_paid":
		return b.handlePaymentCheck(ctx, "SMUD", b.engine.CheckUtilitiesPaid)
	case "query_student_loans_paid":
		return b.handlePaymentCheck(ctx, "student loans", b.engine.CheckStudentLoanPaid)
	case "query_1st_savings":
		return b.handleSavingsCheck(ctx, 1)
	case "query_2nd_savings":
		return b.handleSavingsCheck(ctx, 2)
	case "query_subscriptions":
		return b.handleSubscriptions(ctx)

	case "query_burn_rate":
		return b.handleBurnRate(ctx)
	case "query_remaining_budget":
		return b.handleRemainingBudget(ctx)
	case "query_projected_spending":
		return b.withPersons(ctx, msg, result.Entities, b.handleProjectedSpending)
	case "query_total_income":
		return b.handleTotalIncome(ctx)
	case "query_average_daily_spend":
		return b.handleAverageDailySpend(ctx)
	case "query_expense_breakdown_percentages":
		return b.withPersons(ctx, msg, result.Entities, b.handleBreakdown)

	case "query_total_for_store":
		return b.withPersons(ctx, msg, result.Entities, func(ctx context.Context, p []string) Reply {
			return b.handleStoreTotal(ctx, result.Entities, p)
		})
	case "query_total_for_category":
		return b.withPersons(ctx, msg, result.Entities, func(ctx context.Context, p []string) Reply {
			return b.handleCategoryTotal(ctx, result.Entities, p)
		})
	case "query_total_for_item":
		return b.withPersons(ctx, msg, result.Entities, func(ctx context.Context, p []string) Reply {
			return b.handleItemTotal(ctx, result.Entities, p)
		})

	case "query_largest_single_expense":
		return b.withPersons(ctx, msg, result.Entities, b.handleLargestExpense)
	case "query_top_n_expenses":
		return b.withPersons(ctx, msg, result.Entities, func(ctx context.Context, p []string) Reply {
			return b.handleTopN(ctx, result.Entities, p)
		})
	case "query_most_frequent_purchases":
		return b.withPersons(ctx, msg, result.Entities, func(ctx context.Context, p []string) Reply {
			return b.handleMostFrequent(ctx, result.Entities, p)
		})
	case "query_highest_expense_category":
		return b.withPersons(ctx, msg, result.Entities, b.handleHighestCategory)

	case "query_spent_this_week":
		return b.withPersons(ctx, msg, result.Entities, b.handleSpentThisWeek)
	case "query_no_spend_days":
		return b.withPersons(ctx, msg, result.Entities, b.handleNoSpendDays)
	case "query_longest_no_spend_streak":
		return b.withPersons(ctx, msg, result.Entities, b.handleStreak)
	case "query_days_budget_lasts":
		return b.handleDaysBudgetLasts(ctx)
	case "query_expenses_on_day":
		return b.withPersons(ctx, msg, result.Entities, func(ctx context.Context, p []string) Reply {
			return b.handleExpensesOnDay(ctx, result.Entities, p)
		})
	case "query_daily_spending_calendar":
		return b.withPersons(ctx, msg, result.Entities, b.handleCalendar)
	case "query_weekend_vs_weekday":
		return b.withPersons(ctx, msg, result.Entities, b.handleWeekendVsWeekday)
	case "query_best_worst_day_of_week":
		return b.withPersons(ctx, msg, result.Entities, b.handleBestWorstDay)

	default:
		return b.handleFallback(ctx, msg)
	}
}

// withPersons resolves the person scope for a ledger query and runs the
// handler with it.
func (b *Bot) withPersons(ctx context.Context, msg Message, entities map[string]interface{}, fn func(context.Context, []string) Reply) Reply {
	scope := persons.ResolveQuery(msg.User, intents.PersonClaim(entities), msg.UserID)
	if len(scope) == 0 {
		return Reply{Text: "❌ Could not determine person."}
	}
	return fn(ctx, scope)
}

func (b *Bot) handleDebug(msg Message, text string) Reply {
	if !b.cfg.IsDebugAdmin(msg.User) {
		return Reply{Text: "⛔ Not authorized."}
	}
	fields := strings.Fields(text)
	cmd := ""
	if len(fields) > 1 {
		cmd = fields[1]
	}
	switch cmd {
	case "uptime":
		return Reply{Text: fmt.Sprintf("Uptime: %.0f seconds", logger.UptimeSeconds())}
	case "logs":
		contains := ""
		if len(fields) > 2 {
			contains = strings.Join(fields[2:], " ")
		}
		lines := logger.Recent(20, "", contains)
		if len(lines) == 0 {
			return Reply{Text: "No matching log lines."}
		}
		return Reply{Text: strings.Join(lines, "\n")}
	default:
		return Reply{Text: "Debug commands: uptime, logs [filter]"}
	}
}

func (b *Bot) handleFallback(ctx context.Context, msg Message) Reply {
	if b.completer == nil {
		return Reply{Text: "🤖 I didn't catch that. Type `list` to see what I can do."}
	}
	system := "You are BookieBot, a friendly personal finance assistant for a Sacramento household. " +
		"Answer briefly and conversationally. You cannot access the ledger in this mode; " +
		"suggest typing `list` when the user seems to want a ledger action."
	prompt := msg.Text
	if prev := b.lastReply(msg.User); prev != "" {
		prompt = "Previous bot reply: " + prev + "\n\nUser: " + msg.Text
	}
	resp, err := b.completer.Complete(ctx, system, prompt)
	if err != nil {
		b.log.Warn().Err(err).Msg("fallback completion failed")
		return Reply{Text: "🤖 I didn't catch that. Type `list` to see what I can do."}
	}
	return Reply{Text: strings.TrimSpace(resp)}
}

func titleCategory(cat string) string {
	if cat == "" {
		return cat
	}
	return strings.ToUpper(cat[:1]) + cat[1:]
}

func errorReply(err error) Reply {
	return Reply{Text: "❌ Something went wrong reading the ledger: " + err.Error()}
}
