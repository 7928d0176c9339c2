// Package persons maps chat identities to the canonical person identifiers
// the ledger recognizes. Resolution is a static policy table, not a lookup
// service: the ledger belongs to one household and the set of identities is
// closed.
package persons

import "strings"

// Canonical ledger person identifiers. Brian holds two ledger accounts, one
// per card; Hannah holds one.
const (
	Hannah    = "Hannah"
	BrianBofA = "Brian (BofA)"
	BrianAL   = "Brian (AL)"
)

// Total is the synthetic aggregate identity covering every canonical person.
const Total = "TOTAL"

// All returns every canonical person identifier, in ledger order.
func All() []string {
	return []string{Hannah, BrianBofA, BrianAL}
}

// BrianAccounts returns both of Brian's ledger accounts.
func BrianAccounts() []string {
	return []string{BrianBofA, BrianAL}
}

// usernameTable maps lowercased chat usernames to ledger persons. Usernames
// are checked before user IDs: a username match wins over a colliding ID.
var usernameTable = map[string][]string{
	"hannerish": {Hannah},
	".deebers":  {BrianBofA, BrianAL},
}

// userIDTable maps chat user IDs to ledger persons, for messages relayed
// through webhooks where only the ID survives.
var userIDTable = map[string][]string{
	"1395120954589315303": {BrianBofA, BrianAL},
	"1086719846781349951": {Hannah},
}

var aggregateClaims = map[string]bool{
	"total":    true,
	"all":      true,
	"both":     true,
	"combined": true,
	"everyone": true,
}

// ResolveQuery maps a chat identity plus an optional explicit person claim
// to the canonical persons a query should cover.
//
// The returned slice is empty when the identity cannot be resolved; callers
// must surface that as an error rather than guessing. A claim naming the
// shared informal name ("Brian") expands to both of Brian's accounts no
// matter who asked.
func ResolveQuery(chatUser, claim, chatUserID string) []string {
	c := strings.ToLower(strings.TrimSpace(claim))
	if c != "" {
		if aggregateClaims[c] || c == strings.ToLower(Total) {
			return All()
		}
		if c == "brian" {
			return BrianAccounts()
		}
		if c == "hannah" {
			return []string{Hannah}
		}
		for _, p := range All() {
			if strings.EqualFold(claim, p) {
				return []string{p}
			}
		}
		return nil
	}

	user := strings.ToLower(strings.TrimSpace(chatUser))
	// Discriminators like "hannerish#0000" are not part of the identity.
	if idx := strings.Index(user, "#"); idx >= 0 {
		user = user[:idx]
	}
	if persons, ok := usernameTable[user]; ok {
		return append([]string(nil), persons...)
	}
	if persons, ok := userIDTable[strings.TrimSpace(chatUserID)]; ok {
		return append([]string(nil), persons...)
	}
	return nil
}

// ResolveWrite resolves the person set for a ledger write. The rules are the
// same as ResolveQuery, but a multi-member result means the write is
// ambiguous: the writer must ask the user to pick exactly one account, never
// commit against the whole set.
func ResolveWrite(chatUser, claim, chatUserID string) []string {
	return ResolveQuery(chatUser, claim, chatUserID)
}

// Known reports whether p is a canonical person identifier.
func Known(p string) bool {
	for _, k := range All() {
		if k == p {
			return true
		}
	}
	return false
}
