// Package sqlite implements the ledger over a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Hmd-Khan/Money-tracker/internal/core"
	"github.com/Hmd-Khan/Money-tracker/internal/ledger"

	_ "modernc.org/sqlite"
)

type Store struct {
	db        *sql.DB
	onCorrupt ledger.CorruptHandler
}

type Option func(*Store)

// WithCorruptHandler sets the policy for stored rows that no longer satisfy
// the domain invariants. The default aborts the read.
func WithCorruptHandler(h ledger.CorruptHandler) Option {
	return func(s *Store) { s.onCorrupt = h }
}

func New(dbPath string, opts ...Option) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	s := &Store{db: db, onCorrupt: ledger.AbortOnCorrupt}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Append implements ledger.TransactionAppender. The returned ref is the
// inserted row id.
func (s *Store) Append(ctx context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (date, category, amount_cents, kind, note) VALUES (?, ?, ?, ?, ?)`,
		tx.Date.Format(), tx.Category, tx.Amount.Cents, tx.Kind.String(), tx.Note,
	)
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("last insert id: %w", err)
	}
	return strconv.FormatInt(id, 10), nil
}

// ReadAll implements ledger.TransactionReader, returning rows in id order.
// A row that fails to parse back into a valid transaction goes through the
// corrupt handler with the row id as its line.
func (s *Store) ReadAll(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, category, amount_cents, kind, note FROM transactions ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}
	defer rows.Close()

	out := []core.Transaction{}
	for rows.Next() {
		var (
			id               int64
			dateStr, kindStr string
			category, note   string
			cents            int64
		)
		if err := rows.Scan(&id, &dateStr, &category, &cents, &kindStr, &note); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx, err := restore(dateStr, category, cents, kindStr, note)
		if err != nil {
			cerr := &ledger.CorruptRecordError{
				Line: int(id),
				Row:  []string{dateStr, category, strconv.FormatInt(cents, 10), kindStr, note},
				Err:  err,
			}
			if herr := s.onCorrupt(cerr); herr != nil {
				return nil, herr
			}
			continue
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

func restore(dateStr, category string, cents int64, kindStr, note string) (core.Transaction, error) {
	date, err := core.ParseDate(dateStr)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("date %q: %w", dateStr, err)
	}
	kind, err := core.ParseKind(kindStr)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("kind %q: %w", kindStr, err)
	}
	tx := core.Transaction{
		Date:     date,
		Category: category,
		Amount:   core.Money{Cents: cents},
		Kind:     kind,
		Note:     note,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return tx, nil
}
