package intents

import (
	"fmt"
	"strings"

	"github.com/deebers/bookiebot/internal/money"
)

// Typed payloads decoded from the model's loose entities map. Handlers
// receive these instead of digging through map[string]interface{}.

// LogExpense carries a generic expense or income logging request.
type LogExpense struct {
	Type     string
	Amount   float64
	Date     string
	Item     string
	Location string
	Category string
	Store    string
	Person   string
}

// LogIncome carries an income logging request.
type LogIncome struct {
	Amount float64
	Source string
	Label  string
}

// PaymentAmount carries a bare amount for rent/SMUD/loan/savings logging.
type PaymentAmount struct {
	Amount float64
}

// NeedExpense carries a needs-column logging request.
type NeedExpense struct {
	Description string
	Amount      float64
}

// StoreQuery asks for the total at one store.
type StoreQuery struct {
	Store string
}

// CategoryQuery asks for the total in one category.
type CategoryQuery struct {
	Category string
}

// ItemQuery asks for the total spent on one item.
type ItemQuery struct {
	Item string
}

// TopN bounds ranked listings. N defaults to 5 when the model omits it.
type TopN struct {
	N int
}

// DayQuery asks about a specific calendar day.
type DayQuery struct {
	Date string
}

// DecodeLogExpense validates a log_expense entities map.
func DecodeLogExpense(entities map[string]interface{}) (LogExpense, error) {
	amount, err := floatField(entities, "amount", true)
	if err != nil {
		return LogExpense{}, fmt.Errorf("DecodeLogExpense: %w", err)
	}
	return LogExpense{
		Type:     stringField(entities, "type"),
		Amount:   amount,
		Date:     stringField(entities, "date"),
		Item:     firstNonEmpty(stringField(entities, "item"), stringField(entities, "food")),
		Location: stringField(entities, "location"),
		Category: strings.ToLower(strings.TrimSpace(stringField(entities, "category"))),
		Store:    stringField(entities, "store"),
		Person:   strings.TrimSpace(stringField(entities, "person")),
	}, nil
}

// DecodeLogIncome validates a log_income entities map.
func DecodeLogIncome(entities map[string]interface{}) (LogIncome, error) {
	amount, err := floatField(entities, "amount", true)
	if err != nil {
		return LogIncome{}, fmt.Errorf("DecodeLogIncome: %w", err)
	}
	return LogIncome{
		Amount: amount,
		Source: stringField(entities, "source"),
		Label:  stringField(entities, "label"),
	}, nil
}

// DecodePaymentAmount validates a payment or savings logging map.
func DecodePaymentAmount(entities map[string]interface{}) (PaymentAmount, error) {
	amount, err := floatField(entities, "amount", true)
	if err != nil {
		return PaymentAmount{}, fmt.Errorf("DecodePaymentAmount: %w", err)
	}
	return PaymentAmount{Amount: amount}, nil
}

// DecodeNeedExpense validates a log_need_expense entities map.
func DecodeNeedExpense(entities map[string]interface{}) (NeedExpense, error) {
	amount, err := floatField(entities, "amount", true)
	if err != nil {
		return NeedExpense{}, fmt.Errorf("DecodeNeedExpense: %w", err)
	}
	desc := strings.TrimSpace(stringField(entities, "description"))
	if desc == "" {
		return NeedExpense{}, fmt.Errorf("DecodeNeedExpense: missing required field %q", "description")
	}
	return NeedExpense{Description: desc, Amount: amount}, nil
}

// DecodeStoreQuery validates a query_total_for_store entities map.
func DecodeStoreQuery(entities map[string]interface{}) (StoreQuery, error) {
	store := strings.TrimSpace(stringField(entities, "store"))
	if store == "" {
		return StoreQuery{}, fmt.Errorf("DecodeStoreQuery: missing required field %q", "store")
	}
	return StoreQuery{Store: store}, nil
}

// DecodeCategoryQuery validates a query_total_for_category entities map.
func DecodeCategoryQuery(entities map[string]interface{}) (CategoryQuery, error) {
	category := strings.ToLower(strings.TrimSpace(stringField(entities, "category")))
	if category == "" {
		return CategoryQuery{}, fmt.Errorf("DecodeCategoryQuery: missing required field %q", "category")
	}
	return CategoryQuery{Category: category}, nil
}

// DecodeItemQuery validates a query_total_for_item entities map.
func DecodeItemQuery(entities map[string]interface{}) (ItemQuery, error) {
	item := strings.TrimSpace(stringField(entities, "item"))
	if item == "" {
		return ItemQuery{}, fmt.Errorf("DecodeItemQuery: missing required field %q", "item")
	}
	return ItemQuery{Item: item}, nil
}

// DecodeTopN reads the optional n parameter, defaulting to 5.
func DecodeTopN(entities map[string]interface{}) TopN {
	n, err := floatField(entities, "n", false)
	if err != nil || n < 1 {
		return TopN{N: 5}
	}
	return TopN{N: int(n)}
}

// DecodeDayQuery validates a query_expenses_on_day entities map.
func DecodeDayQuery(entities map[string]interface{}) (DayQuery, error) {
	date := strings.TrimSpace(stringField(entities, "date"))
	if date == "" {
		return DayQuery{}, fmt.Errorf("DecodeDayQuery: missing required field %q", "date")
	}
	return DayQuery{Date: date}, nil
}

// PersonClaim extracts the optional person entity, if the model set one.
func PersonClaim(entities map[string]interface{}) string {
	return strings.TrimSpace(stringField(entities, "person"))
}

func stringField(m map[string]interface{}, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return fmt.Sprintf("%v", val)
	default:
		return ""
	}
}

func floatField(m map[string]interface{}, key string, required bool) (float64, error) {
	v, ok := m[key]
	if !ok || v == nil {
		if required {
			return 0, fmt.Errorf("missing required field %q", key)
		}
		return 0, nil
	}
	switch val := v.(type) {
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	case string:
		if strings.TrimSpace(val) == "" {
			if required {
				return 0, fmt.Errorf("required field %q is empty", key)
			}
			return 0, nil
		}
		return money.Parse(val), nil
	default:
		return 0, fmt.Errorf("field %q has type %T, want number", key, v)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
