// Package memory implements repositories.Store in process memory. Transactions are
// serialized and run against a private copy of the data that replaces the shared
// copy only on success, so callers observe the same all-or-nothing behaviour as
// with PostgreSQL. Each transaction copies the whole dataset under one lock, so the
// store is for tests and demos only.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/yigit/campus-election/internal/app/repositories"
)

// Store is an in-memory repositories.Store
type Store struct {
	*queries

	mu  sync.Mutex
	st  *state
	now func() time.Time

	failMu   sync.Mutex
	failures map[string]error
}

var _ repositories.Store = (*Store)(nil)

// NewStore creates an empty store
func NewStore() *Store {
	s := &Store{
		st:       newState(),
		now:      time.Now,
		failures: map[string]error{},
	}
	s.queries = &queries{s: s}
	return s
}

// SetClock replaces the clock used for created_at and updated_at columns
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// FailOn makes the next call of the named query method return err
func (s *Store) FailOn(op string, err error) {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	s.failures[op] = err
}

func (s *Store) injected(op string) error {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	err, ok := s.failures[op]
	if !ok {
		return nil
	}
	delete(s.failures, op)
	return err
}

// WithTx runs fn against a private copy of the data and publishes it when fn succeeds
func (s *Store) WithTx(ctx context.Context, fn repositories.TxFn) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.st.clone()
	if err := fn(ctx, &queries{s: s, st: draft}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.injected("Commit"); err != nil {
		return err
	}

	s.st = draft
	return nil
}

// VoteCount returns the number of rows in the vote ledger
func (s *Store) VoteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.votes)
}
