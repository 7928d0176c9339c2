package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("EXPENSE_SHEET_KEY", "")
	t.Setenv("INCOME_SHEET_KEY", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("CHANNEL_NAME", "")
	t.Setenv("CHANNEL_ID", "")
	t.Setenv("DEBUG_ADMINS", "")
	t.Setenv("TZ", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ModelName != DefaultModelName {
		t.Errorf("ModelName = %q, want %q", cfg.ModelName, DefaultModelName)
	}
	if cfg.ChannelName != DefaultChannelName {
		t.Errorf("ChannelName = %q, want %q", cfg.ChannelName, DefaultChannelName)
	}
	if cfg.Timezone != "America/Los_Angeles" {
		t.Errorf("Timezone = %q, want America/Los_Angeles", cfg.Timezone)
	}
	if cfg.ChannelID != 0 {
		t.Errorf("ChannelID = %d, want 0", cfg.ChannelID)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("EXPENSE_SHEET_KEY", "expense-key")
	t.Setenv("INCOME_SHEET_KEY", "income-key")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", `{"type":"service_account"}`)
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("CHANNEL_ID", "12345")
	t.Setenv("DEBUG_ADMINS", " .deebers , hannerish ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ExpenseSheetKey != "expense-key" {
		t.Errorf("ExpenseSheetKey = %q", cfg.ExpenseSheetKey)
	}
	if cfg.ModelName != "gemini-2.5-pro" {
		t.Errorf("ModelName = %q", cfg.ModelName)
	}
	if cfg.ChannelID != 12345 {
		t.Errorf("ChannelID = %d, want 12345", cfg.ChannelID)
	}
	if len(cfg.DebugAdmins) != 2 {
		t.Fatalf("DebugAdmins = %v, want two entries", cfg.DebugAdmins)
	}
	if !cfg.IsDebugAdmin(".deebers") || !cfg.IsDebugAdmin("HANNERISH") {
		t.Error("IsDebugAdmin should match listed admins case-insensitively")
	}
	if cfg.IsDebugAdmin("stranger") {
		t.Error("IsDebugAdmin should reject unknown usernames")
	}
	if err := cfg.RequireSheets(); err != nil {
		t.Errorf("RequireSheets() error: %v", err)
	}
}

func TestLoadBadChannelID(t *testing.T) {
	t.Setenv("CHANNEL_ID", "not-a-number")
	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail on a malformed CHANNEL_ID")
	}
}

func TestRequireSheetsMissing(t *testing.T) {
	cfg := &Config{}
	if err := cfg.RequireSheets(); err == nil {
		t.Fatal("RequireSheets() should fail when keys are missing")
	}
}
