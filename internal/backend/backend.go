// Package backend selects and builds the ledger store the application runs
// on: the durable CSV file (default), SQLite, or process memory.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Hmd-Khan/Money-tracker/internal/config"
	"github.com/Hmd-Khan/Money-tracker/internal/ledger"
	"github.com/Hmd-Khan/Money-tracker/internal/ledger/csvfile"
	"github.com/Hmd-Khan/Money-tracker/internal/ledger/memory"
	"github.com/Hmd-Khan/Money-tracker/internal/ledger/sqlite"
)

// Type represents the kind of ledger backend.
type Type string

const (
	CSVBackend    Type = "csv"
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid.
func (t Type) IsValid() bool {
	switch t {
	case CSVBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// CleanupFunc releases whatever the backend holds open.
type CleanupFunc func() error

// Result contains the store instance and its cleanup function.
type Result struct {
	Store   ledger.Store
	Cleanup CleanupFunc
}

// New builds the ledger store named by the config. Reads go through the
// abort-on-corrupt policy; the handlers surface the offending row instead
// of silently skipping it.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	t := Type(cfg.DataBackend)
	switch t {
	case CSVBackend:
		store := csvfile.New(cfg.CSVPath)
		logger.Info("Initialized CSV ledger backend", "path", cfg.CSVPath)
		return &Result{Store: store, Cleanup: func() error { return nil }}, nil

	case SQLiteBackend:
		store, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite ledger: %w", err)
		}
		logger.Info("Initialized SQLite ledger backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: store, Cleanup: store.Close}, nil

	case MemoryBackend:
		logger.Info("Initialized memory ledger backend")
		return &Result{Store: memory.New(), Cleanup: func() error { return nil }}, nil

	default:
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}
}
