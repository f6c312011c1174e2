package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Hmd-Khan/Money-tracker/internal/core"
)

// parseRange extracts the optional from/to query parameters. Absent
// parameters leave that side unbounded; a malformed date is an error.
// from > to is not an error here: the filter yields an empty result.
func parseRange(r *http.Request) (start, end core.Date, err error) {
	q := r.URL.Query()
	if v := strings.TrimSpace(q.Get("from")); v != "" {
		start, err = core.ParseDate(v)
		if err != nil {
			return core.Date{}, core.Date{}, fmt.Errorf("invalid from date %q, want YYYY-MM-DD", v)
		}
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		end, err = core.ParseDate(v)
		if err != nil {
			return core.Date{}, core.Date{}, fmt.Errorf("invalid to date %q, want YYYY-MM-DD", v)
		}
	}
	return start, end, nil
}

func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// sanitizeInput trims whitespace and strips control characters from
// free-text fields before they hit validation.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
