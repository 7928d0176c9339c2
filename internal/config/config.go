// Package config loads the bot's runtime settings from the environment,
// with a .env file picked up automatically when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultModelName is the default Gemini model used for intent resolution.
	DefaultModelName = "gemini-2.5-flash"

	// DefaultChannelName is the chat channel the bot listens on.
	DefaultChannelName = "babys-books"
)

// Config holds all runtime settings for the bot.
type Config struct {
	// ExpenseSheetKey is the spreadsheet key of the expense workbook. Each
	// month lives on a tab named after the month ("May", "June", ...).
	ExpenseSheetKey string

	// IncomeSheetKey is the spreadsheet key of the income workbook. It also
	// carries the "Subscriptions" tab.
	IncomeSheetKey string

	// ServiceAccountJSON is the raw service-account credential used to talk
	// to the Sheets API.
	ServiceAccountJSON string

	// ModelName is the Gemini model used to resolve chat messages to intents.
	ModelName string

	// ChannelName is the chat channel the bot responds in.
	ChannelName string

	// ChannelID optionally pins the bot to a single channel by id.
	ChannelID int64

	// DebugAdmins lists usernames allowed to use operator commands.
	DebugAdmins []string

	// Timezone is the IANA zone all ledger dates are interpreted in.
	Timezone string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if one exists; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ExpenseSheetKey:    os.Getenv("EXPENSE_SHEET_KEY"),
		IncomeSheetKey:     os.Getenv("INCOME_SHEET_KEY"),
		ServiceAccountJSON: os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"),
		ModelName:          getenvDefault("GEMINI_MODEL", DefaultModelName),
		ChannelName:        getenvDefault("CHANNEL_NAME", DefaultChannelName),
		Timezone:           getenvDefault("TZ", "America/Los_Angeles"),
	}

	if raw := os.Getenv("CHANNEL_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("config.Load: parse CHANNEL_ID: %w", err)
		}
		cfg.ChannelID = id
	}

	for _, admin := range strings.Split(os.Getenv("DEBUG_ADMINS"), ",") {
		if admin = strings.TrimSpace(admin); admin != "" {
			cfg.DebugAdmins = append(cfg.DebugAdmins, admin)
		}
	}

	return cfg, nil
}

// RequireSheets validates that the settings needed to reach the live
// spreadsheets are present.
func (c *Config) RequireSheets() error {
	if c.ExpenseSheetKey == "" {
		return fmt.Errorf("config.RequireSheets: EXPENSE_SHEET_KEY is not set")
	}
	if c.IncomeSheetKey == "" {
		return fmt.Errorf("config.RequireSheets: INCOME_SHEET_KEY is not set")
	}
	if c.ServiceAccountJSON == "" {
		return fmt.Errorf("config.RequireSheets: GOOGLE_SERVICE_ACCOUNT_JSON is not set")
	}
	return nil
}

// IsDebugAdmin reports whether the given username may use operator commands.
func (c *Config) IsDebugAdmin(username string) bool {
	for _, admin := range c.DebugAdmins {
		if strings.EqualFold(admin, username) {
			return true
		}
	}
	return false
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
