package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/salesdesk/order-intake/internal/catalog"
	"github.com/salesdesk/order-intake/internal/common"
)

// CatalogRepository mirrors loaded catalog entries into sqlite so the product
// endpoints can list and search them. The in-memory index stays authoritative
// for enrichment; this mirror is a read surface only.
type CatalogRepository interface {
	ReplaceAll(ctx context.Context, entries []catalog.Entry) error
	Get(ctx context.Context, sku string) (catalog.Entry, error)
	Search(ctx context.Context, query string, limit int) ([]catalog.Entry, error)
}

type catalogRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewCatalogRepository(db *sql.DB, logger *slog.Logger) CatalogRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &catalogRepository{db: db, logger: logger}
}

// ReplaceAll rewrites the mirror wholesale inside one transaction, matching
// the index's replace-on-refresh semantics.
func (r *catalogRepository) ReplaceAll(ctx context.Context, entries []catalog.Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin catalog replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_items`); err != nil {
		return fmt.Errorf("clear catalog mirror: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO catalog_items (sku, name, price, stock, moq) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare catalog insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.SKU, e.Description, e.Price, e.Stock, e.MinOrderQty); err != nil {
			return fmt.Errorf("mirror catalog item %s: %w", e.SKU, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit catalog replace: %w", err)
	}

	r.logger.Info("catalog mirrored", "entries", len(entries))
	return nil
}

func (r *catalogRepository) Get(ctx context.Context, sku string) (catalog.Entry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT sku, name, price, stock, moq FROM catalog_items WHERE sku = ?`, sku)
	var e catalog.Entry
	err := row.Scan(&e.SKU, &e.Description, &e.Price, &e.Stock, &e.MinOrderQty)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Entry{}, common.ErrNotFound
	}
	if err != nil {
		return catalog.Entry{}, fmt.Errorf("get catalog item %s: %w", sku, err)
	}
	return e, nil
}

// Search lists products whose sku or name contains query (case-insensitive),
// shorter names first. An empty query lists everything up to limit.
func (r *catalogRepository) Search(ctx context.Context, query string, limit int) ([]catalog.Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	pattern := "%" + query + "%"
	rows, err := r.db.QueryContext(ctx, `
		SELECT sku, name, price, stock, moq
		FROM catalog_items
		WHERE sku LIKE ? OR name LIKE ?
		ORDER BY LENGTH(name), sku
		LIMIT ?`, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search catalog: %w", err)
	}
	defer rows.Close()

	var out []catalog.Entry
	for rows.Next() {
		var e catalog.Entry
		if err := rows.Scan(&e.SKU, &e.Description, &e.Price, &e.Stock, &e.MinOrderQty); err != nil {
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
