package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"eunify/internal/domain"
	"eunify/internal/errors"
)

// Repository stores query console history in SQLite
type Repository struct {
	db *sql.DB
}

// New opens or creates the database at dbPath. ":memory:" gives a private
// in-memory database.
func New(dbPath string) (*Repository, error) {
	dsn := dbPath
	if dbPath != ":memory:" && !strings.Contains(dbPath, "?") {
		dsn = "file:" + dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	// a single connection keeps in-memory databases shared and serializes writes
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS query_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		query TEXT NOT NULL,
		visualize INTEGER NOT NULL DEFAULT 0,
		outcome TEXT NOT NULL,
		vertex_count INTEGER NOT NULL DEFAULT 0,
		error TEXT,
		executed_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_query_history_executed ON query_history(executed_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Record appends rec and sets its ID
func (r *Repository) Record(ctx context.Context, rec *domain.QueryRecord) error {
	if rec.ExecutedAt.IsZero() {
		rec.ExecutedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO query_history (query, visualize, outcome, vertex_count, error, executed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.Query, boolToInt(rec.Visualize), string(rec.Outcome), rec.VertexCount,
		stringToNull(rec.Error), formatTime(rec.ExecutedAt))
	if err != nil {
		return errors.Wrap(err, "failed to insert query history")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "failed to read history id")
	}
	rec.ID = id
	return nil
}

// Recent returns up to limit records, newest first
func (r *Repository) Recent(ctx context.Context, limit int) ([]domain.QueryRecord, error) {
	if limit <= 0 {
		return []domain.QueryRecord{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+historyColumns+`
		FROM query_history
		ORDER BY executed_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query history")
	}
	defer rows.Close()

	records := make([]domain.QueryRecord, 0, limit)
	for rows.Next() {
		var row historyRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, errors.Wrap(err, "failed to scan history")
		}
		rec, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns the number of stored records
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM query_history`).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "failed to count history")
	}
	return n, nil
}

// Clear deletes all records
func (r *Repository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM query_history`); err != nil {
		return errors.Wrap(err, "failed to clear history")
	}
	return nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
