package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Hmd-Khan/Money-tracker/internal/config"
	"github.com/Hmd-Khan/Money-tracker/internal/core"
)

func TestTypeIsValid(t *testing.T) {
	for _, valid := range []Type{CSVBackend, SQLiteBackend, MemoryBackend} {
		if !valid.IsValid() {
			t.Fatalf("%s should be valid", valid)
		}
	}
	for _, invalid := range []Type{"", "postgres", "sheets"} {
		if invalid.IsValid() {
			t.Fatalf("%q should be invalid", invalid)
		}
	}
}

func TestNewMemoryBackend(t *testing.T) {
	cfg := &config.Config{DataBackend: "memory"}
	result, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	defer result.Cleanup()

	if _, err := result.Store.Append(context.Background(), core.Transaction{
		Date:     core.NewDate(2024, 1, 5),
		Category: "Salary",
		Amount:   core.Money{Cents: 100},
		Kind:     core.Income,
	}); err != nil {
		t.Fatalf("append through backend: %v", err)
	}
}

func TestNewCSVBackend(t *testing.T) {
	cfg := &config.Config{
		DataBackend: "csv",
		CSVPath:     filepath.Join(t.TempDir(), "ledger.csv"),
	}
	result, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	defer result.Cleanup()

	ctx := context.Background()
	if _, err := result.Store.Append(ctx, core.Transaction{
		Date:     core.NewDate(2024, 1, 5),
		Category: "Salary",
		Amount:   core.Money{Cents: 100},
		Kind:     core.Income,
	}); err != nil {
		t.Fatalf("append through backend: %v", err)
	}
	got, err := result.Store.ReadAll(ctx)
	if err != nil || len(got) != 1 {
		t.Fatalf("read through backend: %v (err=%v)", got, err)
	}
}

func TestNewUnknownBackend(t *testing.T) {
	cfg := &config.Config{DataBackend: "postgres"}
	if _, err := New(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
