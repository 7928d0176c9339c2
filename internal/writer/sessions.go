package writer

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// PendingExpense is an expense write paused on a card question. The token
// ties the eventual answer back to this exact request.
type PendingExpense struct {
	Token   string
	User    string
	Expense Expense
	Choices []string
	Created time.Time
}

// DisambiguationStore holds at most one pending expense per chat user.
// A new request from the same user replaces the old one, and a pending
// expense can be claimed exactly once. Safe for concurrent use.
type DisambiguationStore struct {
	mu      sync.Mutex
	pending map[string]PendingExpense
	now     func() time.Time
}

// NewDisambiguationStore creates an empty store.
func NewDisambiguationStore() *DisambiguationStore {
	return &DisambiguationStore{
		pending: make(map[string]PendingExpense),
		now:     time.Now,
	}
}

// Put parks an expense awaiting the user's account choice and returns the
// session it created. Any previous pending expense for the user is dropped.
func (s *DisambiguationStore) Put(user string, exp Expense, choices []string) PendingExpense {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := PendingExpense{
		Token:   uuid.NewString(),
		User:    user,
		Expense: exp,
		Choices: append([]string(nil), choices...),
		Created: s.now(),
	}
	s.pending[user] = p
	return p
}

// Pop claims the user's pending expense. The token must match the live
// session; a stale token from a replaced request claims nothing. The
// session is removed either way the claim succeeds.
func (s *DisambiguationStore) Pop(user, token string) (PendingExpense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[user]
	if !ok || p.Token != token {
		return PendingExpense{}, false
	}
	delete(s.pending, user)
	return p, true
}

// Peek returns the user's pending expense without claiming it.
func (s *DisambiguationStore) Peek(user string) (PendingExpense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[user]
	return p, ok
}
