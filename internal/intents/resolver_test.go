package intents

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"cloud.google.com/go/civil"

	"github.com/deebers/bookiebot/internal/logger"
	"github.com/deebers/bookiebot/internal/money"
)

type cannedCompleter struct {
	response string
	err      error
	system   string
}

func (c *cannedCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	c.system = system
	return c.response, c.err
}

func testClock() money.Clock {
	return money.NewFixedClock(civil.Date{Year: 2025, Month: 5, Day: 15})
}

func TestResolveValidIntent(t *testing.T) {
	completer := &cannedCompleter{
		response: `{"intent": "query_rent_paid", "entities": {}}`,
	}
	r := NewResolver(completer, testClock())
	buf := &bytes.Buffer{}

	result := r.Resolve(context.Background(), logger.NewWithWriter(buf), "did we pay rent?")

	if result.Intent != "query_rent_paid" {
		t.Errorf("Intent = %q, want query_rent_paid", result.Intent)
	}
	if result.Entities == nil {
		t.Error("Entities should never be nil")
	}
}

func TestResolveStripsCodeFences(t *testing.T) {
	completer := &cannedCompleter{
		response: "```json\n{\"intent\": \"log_expense\", \"entities\": {\"amount\": 18.5, \"category\": \"food\"}}\n```",
	}
	r := NewResolver(completer, testClock())
	buf := &bytes.Buffer{}

	result := r.Resolve(context.Background(), logger.NewWithWriter(buf), "Paid $18.50 for coffee")

	if result.Intent != "log_expense" {
		t.Fatalf("Intent = %q, want log_expense", result.Intent)
	}
	if result.Entities["amount"] != 18.5 {
		t.Errorf("amount entity = %v, want 18.5", result.Entities["amount"])
	}
}

func TestResolveFallbacks(t *testing.T) {
	tests := []struct {
		name      string
		completer *cannedCompleter
	}{
		{"completer error", &cannedCompleter{err: errors.New("model unavailable")}},
		{"garbage output", &cannedCompleter{response: "I think you want to log an expense!"}},
		{"unknown intent", &cannedCompleter{response: `{"intent": "query_lottery", "entities": {}}`}},
		{"empty intent", &cannedCompleter{response: `{"entities": {}}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.completer, testClock())
			buf := &bytes.Buffer{}
			result := r.Resolve(context.Background(), logger.NewWithWriter(buf), "whatever")
			if result.Intent != Fallback {
				t.Errorf("Intent = %q, want fallback", result.Intent)
			}
			if result.Entities == nil || len(result.Entities) != 0 {
				t.Errorf("Entities = %v, want empty map", result.Entities)
			}
		})
	}
}

func TestResolveExplicitFallback(t *testing.T) {
	completer := &cannedCompleter{response: `{"intent": "fallback", "entities": {}}`}
	r := NewResolver(completer, testClock())
	buf := &bytes.Buffer{}

	result := r.Resolve(context.Background(), logger.NewWithWriter(buf), "tell me a joke")
	if result.Intent != Fallback {
		t.Errorf("Intent = %q, want fallback", result.Intent)
	}
}

func TestSystemPromptContents(t *testing.T) {
	completer := &cannedCompleter{response: `{"intent": "fallback", "entities": {}}`}
	r := NewResolver(completer, testClock())
	buf := &bytes.Buffer{}
	r.Resolve(context.Background(), logger.NewWithWriter(buf), "hi")

	prompt := completer.system
	for _, want := range []string{
		"log_expense",
		"query_best_worst_day_of_week",
		"2025-05-15",
		`"Brian (BofA)"`,
		`"Brian (AL)"`,
		"log_need_expense",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}

func TestCleanModelJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"a": 1}`, `{"a": 1}`},
		{"fenced", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fenced no lang", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"prose around", "Here you go: {\"a\": 1} hope that helps", `{"a": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanModelJSON(tt.in); got != tt.want {
				t.Errorf("cleanModelJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
