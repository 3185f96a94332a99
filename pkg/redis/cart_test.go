package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	redisclient "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/anupamdas/gokart/pkg/global"
	"github.com/anupamdas/gokart/pkg/models"
)

func setupTestCart(t *testing.T) (*CartStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redisclient.NewClient(&redisclient.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewCartStore(client), mr
}

func cartProduct(t *testing.T, price string) *models.Product {
	t.Helper()
	p, err := decimal.NewFromString(price)
	require.NoError(t, err)
	return &models.Product{
		ID:        bson.NewObjectID(),
		Name:      "Widget",
		Slug:      "widget",
		Price:     models.NewMoney(p),
		Available: true,
	}
}

func TestCartAdd_RepeatAddsIncrementQuantity(t *testing.T) {
	store, _ := setupTestCart(t)
	ctx := context.Background()
	product := cartProduct(t, "100.00")

	require.NoError(t, store.Add(ctx, "sess-1", product, 2, false))
	require.NoError(t, store.Add(ctx, "sess-1", product, 3, false))

	lines, err := store.Lines(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestCartAdd_ReplaceOverwritesQuantity(t *testing.T) {
	store, _ := setupTestCart(t)
	ctx := context.Background()
	product := cartProduct(t, "100.00")

	require.NoError(t, store.Add(ctx, "sess-1", product, 2, false))
	require.NoError(t, store.Add(ctx, "sess-1", product, 7, true))

	lines, err := store.Lines(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 7, lines[0].Quantity)
}

func TestCartAdd_KeepsPriceSnapshotOnReAdd(t *testing.T) {
	store, _ := setupTestCart(t)
	ctx := context.Background()
	product := cartProduct(t, "100.00")

	require.NoError(t, store.Add(ctx, "sess-1", product, 1, false))

	// The catalog price moves; the line keeps the add-time snapshot.
	product.Price = models.NewMoney(decimal.RequireFromString("150.00"))
	require.NoError(t, store.Add(ctx, "sess-1", product, 1, false))

	lines, err := store.Lines(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "100.00", lines[0].UnitPrice.StringFixed(2))

	total, err := store.Total(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "200.00", total.StringFixed(2))
}

func TestCartAdd_RejectsNonPositiveQuantity(t *testing.T) {
	store, _ := setupTestCart(t)
	ctx := context.Background()
	product := cartProduct(t, "100.00")

	assert.ErrorIs(t, store.Add(ctx, "sess-1", product, 0, false), global.ErrInvalidQuantity)
	assert.ErrorIs(t, store.Add(ctx, "sess-1", product, -3, false), global.ErrInvalidQuantity)

	lines, err := store.Lines(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartAdd_RefreshesTTL(t *testing.T) {
	store, mr := setupTestCart(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "sess-1", cartProduct(t, "100.00"), 1, false))
	assert.Equal(t, store.TTL, mr.TTL(cartKey("sess-1")))
}

func TestCartRemove_AbsentProductIsNoOp(t *testing.T) {
	store, _ := setupTestCart(t)
	ctx := context.Background()
	product := cartProduct(t, "100.00")

	require.NoError(t, store.Add(ctx, "sess-1", product, 2, false))
	require.NoError(t, store.Remove(ctx, "sess-1", bson.NewObjectID().Hex()))

	lines, err := store.Lines(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, product.ID.Hex(), lines[0].ProductID)
}

func TestCartRemove_DeletesLine(t *testing.T) {
	store, _ := setupTestCart(t)
	ctx := context.Background()
	keep := cartProduct(t, "100.00")
	drop := cartProduct(t, "50.00")

	require.NoError(t, store.Add(ctx, "sess-1", keep, 1, false))
	require.NoError(t, store.Add(ctx, "sess-1", drop, 1, false))
	require.NoError(t, store.Remove(ctx, "sess-1", drop.ID.Hex()))

	lines, err := store.Lines(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, keep.ID.Hex(), lines[0].ProductID)
}

func TestCartTotal_SumsSnapshotLines(t *testing.T) {
	store, _ := setupTestCart(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "sess-1", cartProduct(t, "100.00"), 2, false))
	require.NoError(t, store.Add(ctx, "sess-1", cartProduct(t, "50.00"), 1, false))

	total, err := store.Total(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "250.00", total.StringFixed(2))
}

func TestCartTotal_EmptyCartIsZero(t *testing.T) {
	store, _ := setupTestCart(t)

	total, err := store.Total(context.Background(), "sess-nobody")
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestCartClear(t *testing.T) {
	store, _ := setupTestCart(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "sess-1", cartProduct(t, "100.00"), 1, false))
	require.NoError(t, store.Clear(ctx, "sess-1"))

	lines, err := store.Lines(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartSessionsAreIsolated(t *testing.T) {
	store, _ := setupTestCart(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "sess-a", cartProduct(t, "100.00"), 1, false))

	lines, err := store.Lines(ctx, "sess-b")
	require.NoError(t, err)
	assert.Empty(t, lines)
}
