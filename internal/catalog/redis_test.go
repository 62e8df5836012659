package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/flavorinthejar/smakosz/backend/internal/model"
	"github.com/flavorinthejar/smakosz/backend/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedisStore(t *testing.T) {
	client := testdb.Redis(t)
	store := NewRedisStore(client, time.Minute, zap.NewNop())
	ctx := context.Background()

	_, ok := store.Get(ctx, "catalog:missing")
	assert.False(t, ok)

	entry := &Entry{
		FetchedAt: time.Now().UTC().Truncate(time.Second),
		Products: []model.Product{
			{ID: 7, Name: "Pieprz czarny", Price: "12.99", Images: []string{"https://sklep.example/p.jpg"}},
		},
	}
	store.Set(ctx, productsKeyBase+"7", entry)

	got, ok := store.Get(ctx, productsKeyBase+"7")
	require.True(t, ok)
	assert.True(t, entry.FetchedAt.Equal(got.FetchedAt))
	assert.Equal(t, entry.Products, got.Products)

	ttl, err := client.TTL(ctx, productsKeyBase+"7").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestRedisStoreCorruptEntryIsMiss(t *testing.T) {
	client := testdb.Redis(t)
	store := NewRedisStore(client, 0, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, categoriesKey, "not json", time.Minute).Err())
	_, ok := store.Get(ctx, categoriesKey)
	assert.False(t, ok)
}

func TestRedisStoreUnreachableIsMiss(t *testing.T) {
	client := testdb.Redis(t)
	store := NewRedisStore(client, time.Minute, zap.NewNop())
	require.NoError(t, client.Close())

	ctx := context.Background()
	store.Set(ctx, categoriesKey, &Entry{FetchedAt: time.Now()})
	_, ok := store.Get(ctx, categoriesKey)
	assert.False(t, ok)
}
