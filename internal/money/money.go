// Package money normalizes the raw string cells of the ledger into values
// the analytics engine can compute with. Ledger cells are free-form text
// ("$1,250.00", " 12 ", ""), so every parser here degrades to a zero value
// instead of failing.
package money

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Parse converts a ledger money cell to a float64.
// "$1,250.00" -> 1250.0. Empty or unparseable input yields 0.0; parsing
// never fails, a warning is logged for non-empty garbage.
func Parse(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0.0
	}
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0.0
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		log.Warn().Str("value", value).Msg("failed to clean money value")
		return 0.0
	}
	return d.InexactFloat64()
}

// Format renders an amount the way the bot replies with it: "$12.00".
func Format(amount float64) string {
	return "$" + decimal.NewFromFloat(amount).StringFixed(2)
}
