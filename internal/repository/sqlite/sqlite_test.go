package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"eunify/internal/domain"
)

// ============================================================================
// Test Helpers
// ============================================================================

// newTestRepo creates an in-memory SQLite repository for testing
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}
	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

// assertNoError fails the test if err is not nil
func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// assertEqual fails the test if expected != actual
func assertEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("expected %v, got %v", expected, actual)
	}
}

// ============================================================================
// Helper Function Tests
// ============================================================================

func TestNullToString(t *testing.T) {
	tests := []struct {
		name     string
		input    sql.NullString
		expected string
	}{
		{
			name:     "valid string",
			input:    sql.NullString{String: "test", Valid: true},
			expected: "test",
		},
		{
			name:     "invalid string",
			input:    sql.NullString{String: "test", Valid: false},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertEqual(t, tt.expected, nullToString(tt.input))
		})
	}
}

func TestStringToNull(t *testing.T) {
	assertEqual(t, sql.NullString{String: "x", Valid: true}, stringToNull("x"))
	assertEqual(t, sql.NullString{}, stringToNull(""))
}

func TestTimeRoundTrip(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 6, 789, time.FixedZone("EST", -5*3600))
	got, err := parseTime(formatTime(at))
	assertNoError(t, err)
	if !got.Equal(at) {
		t.Fatalf("expected %v, got %v", at, got)
	}

	if _, err := parseTime("yesterday"); err == nil {
		t.Fatal("expected error for malformed timestamp")
	}
}

// ============================================================================
// History Tests
// ============================================================================

func TestRecordAssignsID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	rec := &domain.QueryRecord{Query: "g.V().count()", Outcome: domain.OutcomeSuccess}
	assertNoError(t, repo.Record(ctx, rec))

	if rec.ID == 0 {
		t.Fatal("expected ID to be set")
	}
	if rec.ExecutedAt.IsZero() {
		t.Fatal("expected ExecutedAt to default to now")
	}
}

func TestRecentNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	records := []domain.QueryRecord{
		{Query: "g.V().limit(5)", Visualize: true, Outcome: domain.OutcomeSuccess, VertexCount: 5, ExecutedAt: base},
		{Query: "g.V().foo()", Outcome: domain.OutcomeQueryFailed, Error: "No such property", ExecutedAt: base.Add(time.Minute)},
		{Query: "g.V().count()", Visualize: true, Outcome: domain.OutcomeNotShowable, ExecutedAt: base.Add(2 * time.Minute)},
	}
	for i := range records {
		assertNoError(t, repo.Record(ctx, &records[i]))
	}

	got, err := repo.Recent(ctx, 2)
	assertNoError(t, err)
	assertEqual(t, 2, len(got))
	assertEqual(t, records[2].ID, got[0].ID)
	assertEqual(t, records[2].Outcome, got[0].Outcome)
	assertEqual(t, records[1].ID, got[1].ID)
	if !got[0].ExecutedAt.Equal(records[2].ExecutedAt) {
		t.Fatalf("expected %v, got %v", records[2].ExecutedAt, got[0].ExecutedAt)
	}
	assertEqual(t, "No such property", got[1].Error)
	assertEqual(t, false, got[1].Visualize)

	n, err := repo.Count(ctx)
	assertNoError(t, err)
	assertEqual(t, 3, n)
}

func TestRecentZeroLimit(t *testing.T) {
	repo := newTestRepo(t)
	got, err := repo.Recent(context.Background(), 0)
	assertNoError(t, err)
	assertEqual(t, 0, len(got))
}

func TestClear(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	assertNoError(t, repo.Record(ctx, &domain.QueryRecord{Query: "g.E()", Outcome: domain.OutcomeSuccess}))
	assertNoError(t, repo.Clear(ctx))

	n, err := repo.Count(ctx)
	assertNoError(t, err)
	assertEqual(t, 0, n)
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	repo, err := New(path)
	assertNoError(t, err)
	assertNoError(t, repo.Record(ctx, &domain.QueryRecord{Query: "g.V()", Outcome: domain.OutcomeSuccess}))
	assertNoError(t, repo.Close())

	repo, err = New(path)
	assertNoError(t, err)
	defer repo.Close()

	got, err := repo.Recent(ctx, 10)
	assertNoError(t, err)
	assertEqual(t, 1, len(got))
	assertEqual(t, "g.V()", got[0].Query)
}
