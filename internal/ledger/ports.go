// Package ledger defines the ports every transaction store implements and
// the error reported for malformed persisted rows.
package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/Hmd-Khan/Money-tracker/internal/core"
)

type (
	// TransactionAppender durably persists a single validated transaction.
	// On validation failure the store is left unchanged and the core
	// validation error is returned.
	TransactionAppender interface {
		Append(ctx context.Context, tx core.Transaction) (rowRef string, err error)
	}

	// TransactionReader returns every stored record in storage order.
	// Storage order is stable for a given store state but carries no
	// semantic meaning; aggregation keys on date and category only.
	// A store that has never been written yields an empty slice.
	TransactionReader interface {
		ReadAll(ctx context.Context) ([]core.Transaction, error)
	}

	// Store is the full ledger port the backend factory hands out.
	Store interface {
		TransactionAppender
		TransactionReader
	}

	// CorruptHandler decides what a read does with a malformed persisted
	// row: return nil to skip it and continue, or an error to abort the
	// whole read. The default handler aborts.
	CorruptHandler func(*CorruptRecordError) error
)

// CorruptRecordError identifies a persisted row that no longer parses into a
// valid transaction: wrong column count, unparseable date or amount, unknown
// kind. Line is 1-based for file stores and the row id for SQLite.
type CorruptRecordError struct {
	Line int
	Row  []string
	Err  error
}

func (e *CorruptRecordError) Error() string {
	if len(e.Row) == 0 {
		return fmt.Sprintf("corrupt record at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("corrupt record at line %d (%s): %v", e.Line, strings.Join(e.Row, ","), e.Err)
}

func (e *CorruptRecordError) Unwrap() error {
	return e.Err
}

// AbortOnCorrupt stops the read at the first malformed row.
func AbortOnCorrupt(e *CorruptRecordError) error {
	return e
}

// SkipCorrupt continues the read past malformed rows.
func SkipCorrupt(*CorruptRecordError) error {
	return nil
}
