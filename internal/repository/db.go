package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

// OpenCatalogDB opens (creating if needed) the sqlite file backing the
// catalog mirror and ensures its schema.
func OpenCatalogDB(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	logger.Info("opening catalog database", "path", path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// modernc sqlite is in-process; a single writer connection avoids
	// SQLITE_BUSY during mirror rewrites.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS catalog_items (
			sku   TEXT PRIMARY KEY,
			name  TEXT NOT NULL,
			price REAL NOT NULL,
			stock INTEGER NOT NULL,
			moq   INTEGER NOT NULL
		)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure catalog schema: %w", err)
	}

	logger.Info("catalog database ready")
	return db, nil
}

// CloseDB closes the database gracefully.
func CloseDB(db *sql.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Error("failed to close catalog database", "error", err)
	}
}
