package intents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/deebers/bookiebot/internal/money"
)

// Completer produces a model completion for a system prompt plus a user
// message. The Gemini implementation is below; tests supply a canned one.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// GeminiCompleter calls Gemini through the genai client. Credentials come
// from the environment (GEMINI_API_KEY or application default credentials).
type GeminiCompleter struct {
	Model string
}

// NewGeminiCompleter creates a completer for the given model name.
func NewGeminiCompleter(model string) *GeminiCompleter {
	return &GeminiCompleter{Model: model}
}

func (g *GeminiCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("Complete: create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: system},
				{Text: user},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, g.Model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("Complete: generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("Complete: empty response from model")
	}
	return text, nil
}

// Result is the resolver's verdict on one message: a catalog intent key
// (or Fallback) with the raw entities map the model extracted.
type Result struct {
	Intent   string
	Entities map[string]interface{}
}

// Resolver maps chat messages onto the intent catalog.
type Resolver struct {
	completer Completer
	clock     money.Clock
}

// NewResolver creates a resolver using the given completer and clock.
func NewResolver(completer Completer, clock money.Clock) *Resolver {
	return &Resolver{completer: completer, clock: clock}
}

// Resolve classifies a message. It never returns an error: any model or
// decode failure degrades to the fallback intent so the bot can still
// answer conversationally.
func (r *Resolver) Resolve(ctx context.Context, logger zerolog.Logger, message string) Result {
	fallback := Result{Intent: Fallback, Entities: map[string]interface{}{}}

	raw, err := r.completer.Complete(ctx, r.systemPrompt(), message)
	if err != nil {
		logger.Warn().Err(err).Msg("intent resolution failed, using fallback")
		return fallback
	}

	clean := cleanModelJSON(raw)
	var parsed struct {
		Intent   string                 `json:"intent"`
		Entities map[string]interface{} `json:"entities"`
	}
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		logger.Warn().Err(err).Str("raw", raw).Msg("unparseable intent response, using fallback")
		return fallback
	}
	if parsed.Intent == "" || (parsed.Intent != Fallback && !Known(parsed.Intent)) {
		logger.Warn().Str("intent", parsed.Intent).Msg("unknown intent from model, using fallback")
		return fallback
	}
	if parsed.Entities == nil {
		parsed.Entities = map[string]interface{}{}
	}

	logger.Info().Str("intent", parsed.Intent).Msg("resolved intent")
	return Result{Intent: parsed.Intent, Entities: parsed.Entities}
}

func (r *Resolver) systemPrompt() string {
	today := r.clock.Today().String()

	var b strings.Builder
	b.WriteString("You are a financial assistant named BookieBot located in the PST time zone. ")
	b.WriteString("Given a message, identify the user's intent and extract entities if necessary.\n\n")

	b.WriteString("Available intents:\n")
	for _, key := range Keys() {
		fmt.Fprintf(&b, "- %s\n", key)
	}

	b.WriteString(`
If the message clearly matches one of the available intents above, return:
{"intent": "<intent_name>", "entities": { ... }}

If the message does NOT clearly match any available intent, return:
{"intent": "fallback", "entities": {}}

If the message is about logging a payment for rent, SMUD, a student loan, or a savings deposit, use the specific intents:
- "log_rent_paid" when paying rent
- "log_smud_paid" when paying SMUD (utilities)
- "log_student_loan_paid" when paying a student loan
- "log_1st_savings" / "log_2nd_savings" when depositing to savings

For these intents, extract only the amount paid:
- entities: {"amount": <float>}
Do NOT treat these payments as generic expenses. Do NOT assign them a category. Do NOT include item, location, or store.

If the message is about logging a Need expense, include only the description and the amount:
User: "Need expense 45 for bus ticket"
-> {"intent": "log_need_expense", "entities": {"description": "bus ticket", "amount": 45}}

If the message is about logging an expense or income:
- intent: "log_expense" or "log_income"
- entities must include:
  - type: "expense" or "income"
  - amount: float (do not include $)
`)
	fmt.Fprintf(&b, "  - date: always use today's date: %s\n", today)
	b.WriteString(`
If it's an EXPENSE, also include:
  - item: short label for what was bought (e.g., "coffee", "gas", "groceries")
  - location: where it was bought (e.g., Trader Joe's, Shell, Ulta)
  - category: one of ["grocery", "gas", "food", "shopping"]
Do NOT leave "item" blank; if unsure, infer from the location or context.

Valid options for the "person" field are:
- "Hannah"
- "Brian (BofA)"
- "Brian (AL)"
- "TOTAL" (for combined totals)

If the message clearly mentions one of these names or "TOTAL", include it as "person": "<name>".
If the message mentions "Brian", leave "person": "Brian" so downstream code can sum both of Brian's accounts.
If the message mentions "on my AL card" or "on my Alaska card", set "person": "Brian (AL)".
If the message mentions "on my BofA card", set "person": "Brian (BofA)".
If no name and no "TOTAL" is explicitly mentioned, leave "person" out of entities.

Categorize EXPENSE as:
- "grocery" = food or essentials from grocery stores (Trader Joe's, Costco, Safeway). If the word "groceries" is mentioned, always choose "grocery".
- "gas" = fuel purchases (Shell, Chevron, etc.)
- "food" = restaurants, cafes, or fast food (Chipotle, Starbucks, etc.)
- "shopping" = all other non-food, non-grocery, non-gas purchases

If the location or description does NOT clearly match one of the 4 categories, assume it refers to a specific store or vendor and extract it as the "store" entity.

If the message is about logging INCOME, also include:
  - source: who sent the money (e.g., Acme Corp, IRS, Mom)
  - label: reason or description (e.g., paycheck, birthday gift, tax refund)

If the message is a QUERY (not logging), return:
- intent: one of the query intents from the list above
- entities: any useful parameters ("store", "category", "item", "date", "n" for top-n queries), or empty if none.

Always return ONLY a valid JSON object. Do not wrap the response in code fences. Do not explain anything.
`)
	return b.String()
}

// cleanModelJSON strips Markdown fences and surrounding junk the model may
// wrap around its JSON object.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// If there is still junk around the JSON object, keep only the first
	// '{' through the last '}'.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
