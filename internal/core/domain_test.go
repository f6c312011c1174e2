package core

import (
	"strings"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-05")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.Year() != 2024 || int(d.Month()) != 1 || d.Day() != 5 {
		t.Fatalf("unexpected date: %v", d)
	}

	for _, bad := range []string{"", "05.01.2024", "2024-13-01", "2024-01-32", "not-a-date"} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("%q expected error", bad)
		}
	}
}

func TestDateValidate(t *testing.T) {
	if err := NewDate(2025, 1, 1).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Date{Time: time.Time{}}).Validate(); err == nil {
		t.Fatalf("expected error for zero date")
	}
}

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"Income", Income, true},
		{"Expense", Expense, true},
		{" Income ", Income, true},
		{"income", "", false}, // kind literals are case-sensitive
		{"Transfer", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseKind(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q expected %q, got %q (err=%v)", tc.in, tc.want, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Date:     NewDate(2024, 1, 5),
		Category: "Salary",
		Amount:   Money{Cents: 300000},
		Kind:     Income,
		Note:     "january paycheck",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Note is optional.
	good.Note = ""
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok without note, got %v", err)
	}

	bads := []Transaction{
		{Date: Date{}, Category: "c", Amount: Money{Cents: 1}, Kind: Income},
		{Date: NewDate(2024, 1, 5), Category: "", Amount: Money{Cents: 1}, Kind: Income},
		{Date: NewDate(2024, 1, 5), Category: "  ", Amount: Money{Cents: 1}, Kind: Income},
		{Date: NewDate(2024, 1, 5), Category: "c", Amount: Money{Cents: 0}, Kind: Income},
		{Date: NewDate(2024, 1, 5), Category: "c", Amount: Money{Cents: -100}, Kind: Income},
		{Date: NewDate(2024, 1, 5), Category: "c", Amount: Money{Cents: 1}, Kind: "Transfer"},
		{Date: NewDate(2024, 1, 5), Category: strings.Repeat("x", 101), Amount: Money{Cents: 1}, Kind: Income},
		{Date: NewDate(2024, 1, 5), Category: "c", Amount: Money{Cents: 1}, Kind: Income, Note: strings.Repeat("x", 201)},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, 2, 1)
	b, err := d.MarshalJSON()
	if err != nil || string(b) != `"2024-02-01"` {
		t.Fatalf("unexpected marshal: %s (err=%v)", b, err)
	}
	var back Date
	if err := back.UnmarshalJSON(b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Fatalf("round trip mismatch: %v != %v", back, d)
	}
}
