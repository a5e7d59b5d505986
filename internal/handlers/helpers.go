// Package handlers contains the HTTP handlers for every screen. Each entity
// gets the same shape: List with an in-memory text filter, New/Create,
// Edit/Update, Delete with a flash-reported outcome.
package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tsukino/go-hanbai/auth"
)

// searchable is implemented by every listed entity; the two returned values
// are what the list view's text query is matched against.
type searchable interface {
	SearchFields() (name, code string)
}

// filterByQuery returns the rows whose name or code contains q
// case-insensitively. An empty query returns the input unchanged.
// Pure function: runs against already-loaded rows, no I/O.
func filterByQuery[T searchable](items []T, q string) []T {
	if q == "" {
		return items
	}
	q = strings.ToLower(q)
	out := make([]T, 0, len(items))
	for _, it := range items {
		name, code := it.SearchFields()
		if strings.Contains(strings.ToLower(name), q) || strings.Contains(strings.ToLower(code), q) {
			out = append(out, it)
		}
	}
	return out
}

// actorRef returns the acting user's ID for the created_by/updated_by
// audit fields, or nil for an unauthenticated request.
func actorRef(r *http.Request) *string {
	if uid, ok := auth.UserIDFromContext(r.Context()); ok {
		return &uid
	}
	return nil
}

// parseDate parses an HTML date input ("2006-01-02"); blank or malformed
// input falls back to today.
func parseDate(s string) time.Time {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Now().Truncate(24 * time.Hour)
}

// parseOptionalDate returns nil for blank or malformed input.
func parseOptionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// optionalID turns a blank select value into a nil reference.
func optionalID(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
