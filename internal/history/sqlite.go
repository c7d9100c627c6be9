package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteSink stores search events in a SQLite database.
type SQLiteSink struct {
	db *sql.DB
}

// NewSQLiteSink opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteSink(dbPath string) (*SQLiteSink, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteSink{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS searches (
		id TEXT PRIMARY KEY,
		query TEXT NOT NULL,
		specialty TEXT,
		location TEXT,
		result_count INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_searches_created_at ON searches(created_at);
	`
	_, err := db.Exec(schema)
	return err
}

// Record inserts one search event. Missing ID and CreatedAt are filled in.
func (s *SQLiteSink) Record(ctx context.Context, e Event) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO searches (id, query, specialty, location, result_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Query, e.Specialty, e.Location, e.ResultCount, e.CreatedAt,
	)
	return err
}

// Recent returns the most recent events, newest first.
func (s *SQLiteSink) Recent(ctx context.Context, limit int) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, specialty, location, result_count, created_at
		 FROM searches ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var specialty, location sql.NullString
		if err := rows.Scan(&e.ID, &e.Query, &specialty, &location, &e.ResultCount, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Specialty = specialty.String
		e.Location = location.String
		events = append(events, e)
	}
	return events, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
