// Package memory implements the ledger in process memory. Used by tests and
// as a throwaway dev backend; nothing survives a restart.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Hmd-Khan/Money-tracker/internal/core"
)

type Store struct {
	mu    sync.Mutex
	items []core.Transaction
}

func New() *Store {
	return &Store{}
}

// Append stores the transaction and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, tx)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// ReadAll returns a snapshot copy in insertion order. Callers never see the
// store's own slice, so aggregation operates on immutable data.
func (s *Store) ReadAll(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.items))
	copy(out, s.items)
	return out, nil
}
