// Package csvfile implements the ledger over a single CSV file, the durable
// tabular encoding the tracker has always used: one header row, one row per
// transaction, columns date,category,amount,kind,note.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Hmd-Khan/Money-tracker/internal/core"
	"github.com/Hmd-Khan/Money-tracker/internal/ledger"
)

var header = []string{"date", "category", "amount", "kind", "note"}

// Store is an append-only CSV file ledger. Safe for concurrent use within a
// single process; it is not safe for concurrent writers from multiple
// processes.
type Store struct {
	mu        sync.Mutex
	path      string
	onCorrupt ledger.CorruptHandler
}

type Option func(*Store)

// WithCorruptHandler sets the policy for malformed rows found on read.
// The default aborts the read with the corrupt-record error.
func WithCorruptHandler(h ledger.CorruptHandler) Option {
	return func(s *Store) { s.onCorrupt = h }
}

func New(path string, opts ...Option) *Store {
	s := &Store{path: path, onCorrupt: ledger.AbortOnCorrupt}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append validates the transaction and writes it as one CSV row. The header
// is written first when the file is new or empty. The file is fsynced before
// returning so a crash after Append cannot lose the record. On validation
// failure nothing is written.
func (s *Store) Append(ctx context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create ledger directory: %w", err)
		}
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat ledger file: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return "", fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.Write(encode(tx)); err != nil {
		return "", fmt.Errorf("write record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush record: %w", err)
	}
	if err := f.Sync(); err != nil {
		return "", fmt.Errorf("sync ledger file: %w", err)
	}

	return fmt.Sprintf("csv:%d", info.Size()), nil
}

// ReadAll parses the whole file into transactions, in file order. A missing
// or empty file is an empty ledger. Malformed rows go through the corrupt
// handler: the default aborts the read, SkipCorrupt drops the row and keeps
// going. A malformed row is never returned as a partial record.
func (s *Store) ReadAll(ctx context.Context) ([]core.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []core.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // column count is checked per row for a precise error

	out := []core.Transaction{}
	line := 0
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		line++
		if err != nil {
			cerr := &ledger.CorruptRecordError{Line: lineOf(err, line), Err: err}
			if herr := s.onCorrupt(cerr); herr != nil {
				return nil, herr
			}
			continue
		}
		if line == 1 {
			if err := checkHeader(row); err != nil {
				cerr := &ledger.CorruptRecordError{Line: 1, Row: row, Err: err}
				if herr := s.onCorrupt(cerr); herr != nil {
					return nil, herr
				}
			}
			continue
		}
		tx, err := decode(row)
		if err != nil {
			cerr := &ledger.CorruptRecordError{Line: line, Row: row, Err: err}
			if herr := s.onCorrupt(cerr); herr != nil {
				return nil, herr
			}
			continue
		}
		out = append(out, tx)
	}
}

func encode(tx core.Transaction) []string {
	return []string{
		tx.Date.Format(),
		tx.Category,
		tx.Amount.Decimal(),
		tx.Kind.String(),
		tx.Note,
	}
}

func decode(row []string) (core.Transaction, error) {
	if len(row) != len(header) {
		return core.Transaction{}, fmt.Errorf("expected %d columns, got %d", len(header), len(row))
	}
	date, err := core.ParseDate(row[0])
	if err != nil {
		return core.Transaction{}, fmt.Errorf("date %q: %w", row[0], err)
	}
	cents, err := core.ParseDecimalToCents(row[2])
	if err != nil {
		return core.Transaction{}, fmt.Errorf("amount %q: %w", row[2], err)
	}
	kind, err := core.ParseKind(row[3])
	if err != nil {
		return core.Transaction{}, fmt.Errorf("kind %q: %w", row[3], err)
	}
	tx := core.Transaction{
		Date:     date,
		Category: row[1],
		Amount:   core.Money{Cents: cents},
		Kind:     kind,
		Note:     row[4],
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return tx, nil
}

func checkHeader(row []string) error {
	if len(row) != len(header) {
		return fmt.Errorf("expected %d header columns, got %d", len(header), len(row))
	}
	for i, col := range header {
		if !strings.EqualFold(strings.TrimSpace(row[i]), col) {
			return fmt.Errorf("unexpected header column %q, want %q", row[i], col)
		}
	}
	return nil
}

// lineOf pulls the line number out of a csv.ParseError when the reader
// itself rejects a row (bad quoting), falling back to our own counter.
func lineOf(err error, fallback int) int {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return perr.Line
	}
	return fallback
}
