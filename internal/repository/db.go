// Package repository persists conversion history in a local SQLite database.
package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS conversions (
	id                TEXT PRIMARY KEY,
	filename          TEXT NOT NULL,
	format            TEXT NOT NULL,
	file_size         INTEGER NOT NULL DEFAULT 0,
	used_ocr          INTEGER NOT NULL DEFAULT 0,
	pages             INTEGER NOT NULL DEFAULT 0,
	predicted_title   TEXT NOT NULL DEFAULT '',
	markdown_content  TEXT NOT NULL DEFAULT '',
	categories        TEXT NOT NULL DEFAULT '[]',
	keywords          TEXT NOT NULL DEFAULT '[]',
	severity          TEXT NOT NULL DEFAULT '',
	summary_content   TEXT NOT NULL DEFAULT '',
	corrected_content TEXT NOT NULL DEFAULT '',
	created_at        TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_conversions_created_at ON conversions(created_at DESC);
`

// Open opens (or creates) the SQLite database and applies the schema.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	logger.Info("opening database", "path", path)
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return nil, err
	}

	// SQLite serializes writers; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		logger.Error("failed to apply schema", "error", err)
		_ = db.Close()
		return nil, err
	}

	logger.Info("database ready")
	return db, nil
}

// Close closes the database connection gracefully.
func Close(db *sql.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
		return
	}
	logger.Info("database closed")
}

// HealthCheck pings the database to catch path and permission issues early.
func HealthCheck(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return db.PingContext(ctx)
}
