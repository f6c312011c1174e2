package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/Hmd-Khan/Money-tracker/internal/core"
	"github.com/Hmd-Khan/Money-tracker/internal/ledger"
	"github.com/Hmd-Khan/Money-tracker/internal/report"
)

const maxBodyBytes = 1 << 16 // 64KB, transactions are tiny

// createTransactionRequest is the JSON body for POST /api/transactions.
// Amount is decimal text so clients never round through floats.
type createTransactionRequest struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Kind     string `json:"kind"`
	Note     string `json:"note"`
}

type transactionResponse struct {
	Date     core.Date  `json:"date"`
	Category string     `json:"category"`
	Amount   core.Money `json:"amount"`
	Kind     core.Kind  `json:"kind"`
	Note     string     `json:"note,omitempty"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}
	var req createTransactionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date, want YYYY-MM-DD")
		return
	}
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount, want positive decimal")
		return
	}
	kind, err := core.ParseKind(req.Kind)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid kind, want Income or Expense")
		return
	}

	tx := core.Transaction{
		Date:     date,
		Category: sanitizeInput(req.Category),
		Amount:   core.Money{Cents: cents},
		Kind:     kind,
		Note:     sanitizeInput(req.Note),
	}
	if err := tx.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ref, err := s.store.Append(r.Context(), tx)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to append transaction",
			"error", err,
			"category", tx.Category,
			"amount_cents", tx.Amount.Cents,
			"kind", tx.Kind.String(),
			"operation", "append")
		writeError(w, http.StatusInternalServerError, "error saving transaction")
		return
	}

	slog.InfoContext(r.Context(), "Transaction recorded",
		"category", tx.Category,
		"amount_cents", tx.Amount.Cents,
		"kind", tx.Kind.String(),
		"date", tx.Date.Format(),
		"row_ref", ref)

	writeJSON(w, http.StatusCreated, map[string]string{"ref": ref})
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	records, ok := s.readFiltered(w, r)
	if !ok {
		return
	}
	out := make([]transactionResponse, 0, len(records))
	for _, tx := range records {
		out = append(out, transactionResponse{
			Date:     tx.Date,
			Category: tx.Category,
			Amount:   tx.Amount,
			Kind:     tx.Kind,
			Note:     tx.Note,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	records, ok := s.readFiltered(w, r)
	if !ok {
		return
	}
	summary, err := report.Summarize(records)
	if err != nil {
		slog.ErrorContext(r.Context(), "Summary failed", "error", err, "operation", "summarize")
		writeError(w, http.StatusInternalServerError, "error computing summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleTimeSeries(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	// Day is the default: the original tracker plotted daily activity.
	bucket := report.BucketDay
	if v := r.URL.Query().Get("bucket"); v != "" {
		parsed, err := report.ParseBucket(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid bucket, want day, week or month")
			return
		}
		bucket = parsed
	}
	records, ok := s.readFiltered(w, r)
	if !ok {
		return
	}
	series, err := report.TimeSeries(records, bucket)
	if err != nil {
		slog.ErrorContext(r.Context(), "Time series failed", "error", err, "operation", "timeseries")
		writeError(w, http.StatusInternalServerError, "error computing time series")
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	// Expense is the default: the original pie chart analyzed expenses.
	kind := core.Expense
	if v := r.URL.Query().Get("kind"); v != "" {
		parsed, err := core.ParseKind(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid kind, want Income or Expense")
			return
		}
		kind = parsed
	}
	records, ok := s.readFiltered(w, r)
	if !ok {
		return
	}
	dist, err := report.CategoryDistribution(records, kind)
	if err != nil {
		slog.ErrorContext(r.Context(), "Category distribution failed", "error", err, "operation", "categories")
		writeError(w, http.StatusInternalServerError, "error computing distribution")
		return
	}
	writeJSON(w, http.StatusOK, dist)
}

// readFiltered reads the full ledger snapshot and applies the optional
// from/to range. It writes the HTTP error response itself and returns
// ok=false when the caller should stop.
func (s *Server) readFiltered(w http.ResponseWriter, r *http.Request) ([]core.Transaction, bool) {
	start, end, err := parseRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	records, err := s.store.ReadAll(r.Context())
	if err != nil {
		var cerr *ledger.CorruptRecordError
		if errors.As(err, &cerr) {
			slog.ErrorContext(r.Context(), "Ledger contains corrupt record",
				"error", cerr, "line", cerr.Line, "operation", "read")
			writeError(w, http.StatusInternalServerError, cerr.Error())
			return nil, false
		}
		slog.ErrorContext(r.Context(), "Failed to read ledger", "error", err, "operation", "read")
		writeError(w, http.StatusInternalServerError, "error reading ledger")
		return nil, false
	}

	return report.FilterByRange(records, start, end), true
}
