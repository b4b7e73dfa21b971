package repository

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdesk/order-intake/internal/catalog"
	"github.com/salesdesk/order-intake/internal/common"
)

func testCatalogRepo(t *testing.T) CatalogRepository {
	t.Helper()
	db, err := OpenCatalogDB(context.Background(), ":memory:", slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewCatalogRepository(db, nil)
}

func TestCatalogRepositoryReplaceAndGet(t *testing.T) {
	repo := testCatalogRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, []catalog.Entry{
		{SKU: "DSK-0001", Description: "Desk TRANHOLM 19", Price: 902.78, Stock: 31, MinOrderQty: 2},
		{SKU: "CHR-0042", Description: "Chair VILSTAD", Price: 149.50, Stock: 0, MinOrderQty: 1},
	}))

	e, err := repo.Get(ctx, "DSK-0001")
	require.NoError(t, err)
	assert.Equal(t, "Desk TRANHOLM 19", e.Description)
	assert.Equal(t, 31, e.Stock)

	_, err = repo.Get(ctx, "NOPE-1")
	assert.ErrorIs(t, err, common.ErrNotFound)

	// replace is wholesale, not additive
	require.NoError(t, repo.ReplaceAll(ctx, []catalog.Entry{
		{SKU: "LMP-0007", Description: "Lamp SOLVIK", Price: 39.99, Stock: 10, MinOrderQty: 4},
	}))
	_, err = repo.Get(ctx, "DSK-0001")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCatalogRepositorySearch(t *testing.T) {
	repo := testCatalogRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, []catalog.Entry{
		{SKU: "A2", Description: "Blue Desk Extra Large", Price: 1, Stock: 1, MinOrderQty: 1},
		{SKU: "A1", Description: "Blue Desk", Price: 1, Stock: 1, MinOrderQty: 1},
		{SKU: "C1", Description: "Red Chair", Price: 1, Stock: 1, MinOrderQty: 1},
	}))

	got, err := repo.Search(ctx, "blue desk", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// shorter name first
	assert.Equal(t, "A1", got[0].SKU)
	assert.Equal(t, "A2", got[1].SKU)

	all, err := repo.Search(ctx, "", 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
