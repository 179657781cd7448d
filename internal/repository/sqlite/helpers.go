package sqlite

import (
	"database/sql"
	"time"

	"eunify/internal/domain"
	"eunify/internal/errors"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// boolToInt stores booleans as 0/1
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ============================================================================
// Time Helpers
// ============================================================================

// Timestamps are stored as fixed-width RFC 3339 text in UTC so they sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parse timestamp %q", s)
	}
	return t, nil
}

// ============================================================================
// History Row Scanner
// ============================================================================

// historyRow holds all columns from a query_history query for scanning
type historyRow struct {
	ID          int64
	Query       string
	Visualize   int
	Outcome     string
	VertexCount int
	Error       sql.NullString
	ExecutedAt  string
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match historyColumns order exactly
func (r *historyRow) scanArgs() []interface{} {
	return []interface{}{
		&r.ID,
		&r.Query,
		&r.Visualize,
		&r.Outcome,
		&r.VertexCount,
		&r.Error,
		&r.ExecutedAt,
	}
}

// toDomain converts the scanned row to a domain.QueryRecord
func (r *historyRow) toDomain() (domain.QueryRecord, error) {
	at, err := parseTime(r.ExecutedAt)
	if err != nil {
		return domain.QueryRecord{}, err
	}
	return domain.QueryRecord{
		ID:          r.ID,
		Query:       r.Query,
		Visualize:   r.Visualize != 0,
		Outcome:     domain.QueryOutcome(r.Outcome),
		VertexCount: r.VertexCount,
		Error:       nullToString(r.Error),
		ExecutedAt:  at,
	}, nil
}

// historyColumns returns the SELECT column list for history queries
const historyColumns = `id, query, visualize, outcome, vertex_count, error, executed_at`
