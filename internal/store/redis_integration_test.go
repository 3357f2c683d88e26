//go:build integration

package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlinks/internal/links"
	"github.com/serroba/shortlinks/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getRedisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

func TestRedisStoreIntegration(t *testing.T) {
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{Addr: getRedisAddr()})
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	s := store.NewRedisStore(client)

	cleanupLink(t, client)

	t.Run("insert and find", func(t *testing.T) {
		created, err := s.Insert(ctx, links.NewLink{
			OwnerID:     "rd-owner",
			OriginalURL: "https://example.com",
			ShortCode:   "rdcode1",
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)

		byCode, err := s.FindByShortCode(ctx, "rdcode1")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byCode.ID)

		byID, err := s.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "rdcode1", byID.ShortCode)
	})

	t.Run("duplicate code returns slug taken", func(t *testing.T) {
		_, err := s.Insert(ctx, links.NewLink{
			OwnerID: "rd-owner", OriginalURL: "https://example.com", ShortCode: "rddup1",
		})
		require.NoError(t, err)

		_, err = s.Insert(ctx, links.NewLink{
			OwnerID: "rd-other", OriginalURL: "https://example.com", ShortCode: "rddup1",
		})
		assert.ErrorIs(t, err, links.ErrSlugTaken)
	})

	t.Run("update frees the old code", func(t *testing.T) {
		created, err := s.Insert(ctx, links.NewLink{
			OwnerID: "rd-owner", OriginalURL: "https://example.com", ShortCode: "rdold1",
		})
		require.NoError(t, err)

		updated, err := s.UpdateByID(ctx, created.ID, "rd-owner", "https://example.com/new", "rdnew1")
		require.NoError(t, err)
		assert.Equal(t, "rdnew1", updated.ShortCode)

		_, err = s.FindByShortCode(ctx, "rdold1")
		assert.ErrorIs(t, err, links.ErrNotFound)
	})

	t.Run("update scoped to the wrong owner fails", func(t *testing.T) {
		created, err := s.Insert(ctx, links.NewLink{
			OwnerID: "rd-owner", OriginalURL: "https://example.com", ShortCode: "rdscope1",
		})
		require.NoError(t, err)

		_, err = s.UpdateByID(ctx, created.ID, "rd-intruder", "https://evil.example.com", "")
		assert.ErrorIs(t, err, links.ErrNotFound)
	})

	t.Run("find all by owner orders by update recency", func(t *testing.T) {
		first, err := s.Insert(ctx, links.NewLink{
			OwnerID: "rd-order-owner", OriginalURL: "https://example.com/1", ShortCode: "rdord1",
		})
		require.NoError(t, err)

		_, err = s.Insert(ctx, links.NewLink{
			OwnerID: "rd-order-owner", OriginalURL: "https://example.com/2", ShortCode: "rdord2",
		})
		require.NoError(t, err)

		_, err = s.UpdateByID(ctx, first.ID, "rd-order-owner", "https://example.com/1b", "")
		require.NoError(t, err)

		owned, err := s.FindAllByOwner(ctx, "rd-order-owner")
		require.NoError(t, err)
		require.Len(t, owned, 2)
		assert.Equal(t, "rdord1", owned[0].ShortCode)
		assert.Equal(t, "rdord2", owned[1].ShortCode)
	})

	t.Run("delete is scoped and idempotent", func(t *testing.T) {
		created, err := s.Insert(ctx, links.NewLink{
			OwnerID: "rd-owner", OriginalURL: "https://example.com", ShortCode: "rddel1",
		})
		require.NoError(t, err)

		deleted, err := s.DeleteByID(ctx, created.ID, "rd-intruder")
		require.NoError(t, err)
		assert.False(t, deleted)

		deleted, err = s.DeleteByID(ctx, created.ID, "rd-owner")
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = s.DeleteByID(ctx, created.ID, "rd-owner")
		require.NoError(t, err)
		assert.False(t, deleted)

		_, err = s.FindByShortCode(ctx, "rddel1")
		assert.ErrorIs(t, err, links.ErrNotFound)
	})
}

// cleanupLink wipes the link keyspace so runs do not interfere.
func cleanupLink(t *testing.T, client *redis.Client) {
	t.Helper()

	ctx := context.Background()

	keys, err := client.Keys(ctx, "links:*").Result()
	require.NoError(t, err)

	if len(keys) > 0 {
		require.NoError(t, client.Del(ctx, keys...).Err())
	}
}
