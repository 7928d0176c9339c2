package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	log := New()
	if log.GetLevel() == zerolog.Disabled {
		t.Error("Expected logger to be enabled")
	}
}

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	log.Info().Msg("test message")

	output := buf.String()
	if output == "" {
		t.Error("Expected log output, got empty string")
	}
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected output to contain 'test message', got: %s", output)
	}
}

func TestWithContext(t *testing.T) {
	log := New()
	ctx := context.Background()

	ctxWithLogger := WithContext(ctx, log)

	if ctxWithLogger.Value(LoggerKey) == nil {
		t.Error("Expected logger in context, got nil")
	}
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	testLog := NewWithWriter(buf)
	ctx := WithContext(context.Background(), testLog)

	retrievedLog := FromContext(ctx)
	retrievedLog.Info().Msg("test")

	if buf.Len() == 0 {
		t.Error("Expected log output from retrieved logger")
	}
}

func TestFromContext_DefaultLogger(t *testing.T) {
	ctx := context.Background()

	// Should return a default logger when none is in context
	log := FromContext(ctx)

	if log.GetLevel() == zerolog.Disabled {
		t.Error("Expected default logger to be enabled")
	}
}

func TestRecent(t *testing.T) {
	ring.mu.Lock()
	ring.lines = nil
	ring.mu.Unlock()

	w := ringWriter{}
	lines := []string{
		"10:00AM INF resolved intent intent=query_burn_rate",
		"10:01AM WRN unparseable amount value=abc",
		"10:02AM INF logged expense category=food",
	}
	for _, line := range lines {
		if _, err := w.Write([]byte(line + "\n")); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	all := Recent(10, "", "")
	if len(all) != 3 {
		t.Fatalf("Recent() returned %d lines, want 3", len(all))
	}

	warns := Recent(10, "WRN", "")
	if len(warns) != 1 || !strings.Contains(warns[0], "unparseable") {
		t.Errorf("Recent(WRN) = %v, want the single warning line", warns)
	}

	filtered := Recent(10, "", "intent")
	if len(filtered) != 1 {
		t.Errorf("Recent(contains=intent) returned %d lines, want 1", len(filtered))
	}

	limited := Recent(2, "", "")
	if len(limited) != 2 || !strings.Contains(limited[1], "logged expense") {
		t.Errorf("Recent(2) = %v, want the newest two lines", limited)
	}
}

func TestUptimeSeconds(t *testing.T) {
	if UptimeSeconds() < 0 {
		t.Error("Expected non-negative uptime")
	}
}
