// Package http exposes the ledger and the aggregation engine as a small JSON
// API. This is the call boundary the interactive UI talks to; rendering is
// entirely the UI's business.
package http

import (
	"net/http"

	"github.com/Hmd-Khan/Money-tracker/internal/ledger"
	applog "github.com/Hmd-Khan/Money-tracker/internal/log"
)

type Server struct {
	http.Server
	store ledger.Store
}

// NewServer wires the API routes around the given ledger store.
func NewServer(addr string, store ledger.Store, logger *applog.Logger) *Server {
	s := &Server{store: store}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/transactions", s.handleTransactions)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/timeseries", s.handleTimeSeries)
	mux.HandleFunc("/api/categories", s.handleCategories)

	s.Addr = addr
	s.Handler = applog.RequestMiddleware(logger)(mux)
	return s
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// handleTransactions dispatches on method: POST appends, GET lists.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateTransaction(w, r)
	case http.MethodGet:
		s.handleListTransactions(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
