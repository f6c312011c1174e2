package csvfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Hmd-Khan/Money-tracker/internal/core"
	"github.com/Hmd-Khan/Money-tracker/internal/ledger"
)

func testTx() core.Transaction {
	return core.Transaction{
		Date:     core.NewDate(2024, 1, 5),
		Category: "Salary",
		Amount:   core.Money{Cents: 300000},
		Kind:     core.Income,
		Note:     "january paycheck",
	}
}

func TestReadAllMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope.csv"))
	got, err := s.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty ledger, got %v", got)
	}
}

func TestAppendAndReadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	s := New(path)
	ctx := context.Background()

	ref, err := s.Append(ctx, testTx())
	if err != nil || ref == "" {
		t.Fatalf("unexpected append: ref=%q err=%v", ref, err)
	}

	second := core.Transaction{
		Date:     core.NewDate(2024, 1, 10),
		Category: "Rent",
		Amount:   core.Money{Cents: 120000},
		Kind:     core.Expense,
	}
	if _, err := s.Append(ctx, second); err != nil {
		t.Fatalf("second append: %v", err)
	}

	got, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0] != testTx() {
		t.Fatalf("first record mismatch: %+v", got[0])
	}
	if got[1] != second {
		t.Fatalf("second record mismatch: %+v", got[1])
	}

	// Exactly one header row regardless of append count.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if n := strings.Count(string(raw), "date,category,amount,kind,note"); n != 1 {
		t.Fatalf("expected 1 header row, found %d:\n%s", n, raw)
	}
}

func TestAppendRejectsInvalidLeavingStoreUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	s := New(path)
	ctx := context.Background()

	if _, err := s.Append(ctx, testTx()); err != nil {
		t.Fatalf("seed append: %v", err)
	}

	bads := []core.Transaction{
		{Date: core.NewDate(2024, 1, 5), Category: "Rent", Amount: core.Money{Cents: 0}, Kind: core.Expense},
		{Date: core.NewDate(2024, 1, 5), Category: "Rent", Amount: core.Money{Cents: -50}, Kind: core.Expense},
		{Date: core.NewDate(2024, 1, 5), Category: "", Amount: core.Money{Cents: 100}, Kind: core.Expense},
		{Date: core.Date{}, Category: "Rent", Amount: core.Money{Cents: 100}, Kind: core.Expense},
		{Date: core.NewDate(2024, 1, 5), Category: "Rent", Amount: core.Money{Cents: 100}, Kind: "Other"},
	}
	for i, tx := range bads {
		if _, err := s.Append(ctx, tx); err == nil {
			t.Fatalf("case %d expected validation error", i)
		}
	}

	got, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(got) != 1 || got[0] != testTx() {
		t.Fatalf("failed appends must leave the store unchanged, got %v", got)
	}
}

func TestReadAllCorruptRowAborts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	content := strings.Join([]string{
		"date,category,amount,kind,note",
		"2024-01-05,Salary,3000.00,Income,",
		"2024-01-10,Rent,not-a-number,Expense,",
		"2024-02-01,Groceries,200.00,Expense,",
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	s := New(path)
	got, err := s.ReadAll(context.Background())
	if err == nil {
		t.Fatalf("expected corrupt record error, got %v", got)
	}
	var cerr *ledger.CorruptRecordError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *CorruptRecordError, got %T: %v", err, err)
	}
	if cerr.Line != 3 {
		t.Fatalf("expected offending line 3, got %d", cerr.Line)
	}
	if got != nil {
		t.Fatalf("aborted read must not return partial records, got %v", got)
	}
}

func TestReadAllSkipCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	content := strings.Join([]string{
		"date,category,amount,kind,note",
		"2024-01-05,Salary,3000.00,Income,",
		"2024-01-10,Rent,not-a-number,Expense,",
		"garbage,row",
		"2024-02-01,Groceries,200.00,Expense,",
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	var seen []int
	s := New(path, WithCorruptHandler(func(e *ledger.CorruptRecordError) error {
		seen = append(seen, e.Line)
		return nil
	}))
	got, err := s.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("expected ok with skip handler, got %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 good records, got %d", len(got))
	}
	if got[0].Category != "Salary" || got[1].Category != "Groceries" {
		t.Fatalf("unexpected records: %v", got)
	}
	if len(seen) != 2 || seen[0] != 3 || seen[1] != 4 {
		t.Fatalf("handler should have seen lines 3 and 4, got %v", seen)
	}
}

func TestReadAllWrongColumnCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	content := "date,category,amount,kind,note\n2024-01-05,Salary,3000.00,Income\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	s := New(path)
	_, err := s.ReadAll(context.Background())
	var cerr *ledger.CorruptRecordError
	if !errors.As(err, &cerr) || cerr.Line != 2 {
		t.Fatalf("expected corrupt record at line 2, got %v", err)
	}
}

func TestReadAllBadHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	if err := os.WriteFile(path, []byte("foo,bar\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	s := New(path)
	_, err := s.ReadAll(context.Background())
	var cerr *ledger.CorruptRecordError
	if !errors.As(err, &cerr) || cerr.Line != 1 {
		t.Fatalf("expected corrupt header at line 1, got %v", err)
	}
}

func TestAppendCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "ledger.csv")
	s := New(path)
	if _, err := s.Append(context.Background(), testTx()); err != nil {
		t.Fatalf("append into missing directory: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("ledger file not created: %v", err)
	}
}

func TestNoteWithCommaSurvivesRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "ledger.csv"))
	ctx := context.Background()

	tx := testTx()
	tx.Note = `groceries, "weekly" run`
	if _, err := s.Append(ctx, tx); err != nil {
		t.Fatalf("append: %v", err)
	}
	got, err := s.ReadAll(ctx)
	if err != nil || len(got) != 1 {
		t.Fatalf("read all: %v (err=%v)", got, err)
	}
	if got[0].Note != tx.Note {
		t.Fatalf("note mangled: %q != %q", got[0].Note, tx.Note)
	}
}
