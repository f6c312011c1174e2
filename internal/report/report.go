// Package report is the aggregation engine over ledger snapshots.
//
// Every function is pure: inputs are never mutated and the same records with
// the same parameters always produce the same result. Callers obtain a
// snapshot via the ledger's ReadAll and pass it in; nothing here touches
// storage or logs.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/Hmd-Khan/Money-tracker/internal/core"
)

const (
	BucketDay   Bucket = "day"
	BucketWeek  Bucket = "week"
	BucketMonth Bucket = "month"
)

type (
	// Bucket selects the time-series granularity.
	Bucket string

	// SeriesPoint is one bucket of the time-series. Start is the bucket
	// boundary date (the day itself, the Monday of the week, or the first
	// of the month).
	SeriesPoint struct {
		Start   core.Date  `json:"start"`
		Income  core.Money `json:"income"`
		Expense core.Money `json:"expense"`
		Net     core.Money `json:"net"`
	}
)

// ParseBucket maps user-facing bucket names to a Bucket.
func ParseBucket(s string) (Bucket, error) {
	switch Bucket(s) {
	case BucketDay, BucketWeek, BucketMonth:
		return Bucket(s), nil
	default:
		return "", fmt.Errorf("invalid bucket %q", s)
	}
}

// FilterByRange returns the records whose date satisfies start <= date <= end.
// A zero start or end leaves that side unbounded. start > end yields an empty
// result, not an error. The input slice is never modified.
func FilterByRange(records []core.Transaction, start, end core.Date) []core.Transaction {
	out := make([]core.Transaction, 0, len(records))
	for _, tx := range records {
		if !start.IsZero() && tx.Date.Before(start) {
			continue
		}
		if !end.IsZero() && tx.Date.After(end) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// Summarize computes range totals. The empty record set yields the all-zero
// summary. A record violating the domain invariants is reported as an error;
// records read through a ledger store are already validated, so this is a
// guard against callers constructing transactions by hand.
func Summarize(records []core.Transaction) (core.Summary, error) {
	var s core.Summary
	for i, tx := range records {
		if err := tx.Validate(); err != nil {
			return core.Summary{}, fmt.Errorf("record %d: %w", i, err)
		}
		switch tx.Kind {
		case core.Income:
			s.TotalIncome.Cents += tx.Amount.Cents
		case core.Expense:
			s.TotalExpense.Cents += tx.Amount.Cents
		}
	}
	s.Net.Cents = s.TotalIncome.Cents - s.TotalExpense.Cents
	return s, nil
}

// TimeSeries groups records into day, week or month buckets and totals each
// bucket. Buckets are returned in ascending date order and the series is
// sparse: a bucket with no transactions is absent, gap filling is the
// renderer's job. A date exactly on a week or month boundary belongs to the
// bucket it starts.
func TimeSeries(records []core.Transaction, bucket Bucket) ([]SeriesPoint, error) {
	if _, err := ParseBucket(string(bucket)); err != nil {
		return nil, err
	}
	totals := make(map[time.Time]*SeriesPoint)
	for i, tx := range records {
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		start := truncate(tx.Date, bucket)
		p, ok := totals[start.Time]
		if !ok {
			p = &SeriesPoint{Start: start}
			totals[start.Time] = p
		}
		switch tx.Kind {
		case core.Income:
			p.Income.Cents += tx.Amount.Cents
		case core.Expense:
			p.Expense.Cents += tx.Amount.Cents
		}
	}
	out := make([]SeriesPoint, 0, len(totals))
	for _, p := range totals {
		p.Net.Cents = p.Income.Cents - p.Expense.Cents
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out, nil
}

// CategoryDistribution sums amounts per category restricted to the given
// kind. Categories with no matching records are absent. The result is
// ordered by descending total, ties broken by category name ascending, so
// chart rendering and tests are deterministic. Category comparison is
// case-sensitive.
func CategoryDistribution(records []core.Transaction, kind core.Kind) ([]core.CategoryAmount, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	totals := make(map[string]int64)
	for i, tx := range records {
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if tx.Kind != kind {
			continue
		}
		totals[tx.Category] += tx.Amount.Cents
	}
	out := make([]core.CategoryAmount, 0, len(totals))
	for name, cents := range totals {
		out = append(out, core.CategoryAmount{Name: name, Amount: core.Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// truncate maps a date to the start of its bucket: the day itself, the
// Monday of its week, or the first of its month.
func truncate(d core.Date, bucket Bucket) core.Date {
	switch bucket {
	case BucketWeek:
		// ISO week: Monday is day 0.
		offset := (int(d.Weekday()) + 6) % 7
		return core.DateOf(d.AddDate(0, 0, -offset))
	case BucketMonth:
		return core.NewDate(d.Year(), int(d.Month()), 1)
	default:
		return d
	}
}
