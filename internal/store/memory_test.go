package store_test

import (
	"context"
	"sync"
	"testing"

	"github.com/serroba/shortlinks/internal/links"
	"github.com/serroba/shortlinks/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURL = "https://example.com"

func TestMemoryStore_Insert(t *testing.T) {
	t.Run("assigns ids and timestamps", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		link, err := memStore.Insert(context.Background(), links.NewLink{
			OwnerID:     "owner-1",
			OriginalURL: testURL,
			ShortCode:   "abc123",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), link.ID)
		assert.False(t, link.CreatedAt.IsZero())
		assert.Equal(t, link.CreatedAt, link.UpdatedAt)
	})

	t.Run("rejects duplicate short codes", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		_, err := memStore.Insert(context.Background(), links.NewLink{
			OwnerID: "owner-1", OriginalURL: testURL, ShortCode: "dup",
		})
		require.NoError(t, err)

		link, err := memStore.Insert(context.Background(), links.NewLink{
			OwnerID: "owner-2", OriginalURL: testURL, ShortCode: "dup",
		})

		assert.Nil(t, link)
		assert.ErrorIs(t, err, links.ErrSlugTaken)
	})

	t.Run("exactly one concurrent insert with the same code wins", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		const racers = 16

		var wg sync.WaitGroup

		errs := make([]error, racers)

		for i := range racers {
			wg.Add(1)

			go func() {
				defer wg.Done()

				_, errs[i] = memStore.Insert(context.Background(), links.NewLink{
					OwnerID: "owner-1", OriginalURL: testURL, ShortCode: "contested",
				})
			}()
		}

		wg.Wait()

		winners := 0

		for _, err := range errs {
			if err == nil {
				winners++
			} else {
				assert.ErrorIs(t, err, links.ErrSlugTaken)
			}
		}

		assert.Equal(t, 1, winners)
	})
}

func TestMemoryStore_Find(t *testing.T) {
	t.Run("finds by short code and id", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		created, err := memStore.Insert(context.Background(), links.NewLink{
			OwnerID: "owner-1", OriginalURL: testURL, ShortCode: "findme",
		})
		require.NoError(t, err)

		byCode, err := memStore.FindByShortCode(context.Background(), "findme")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byCode.ID)

		byID, err := memStore.FindByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, "findme", byID.ShortCode)
	})

	t.Run("returns not found for missing entries", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		_, err := memStore.FindByShortCode(context.Background(), "nope")
		assert.ErrorIs(t, err, links.ErrNotFound)

		_, err = memStore.FindByID(context.Background(), 42)
		assert.ErrorIs(t, err, links.ErrNotFound)
	})
}

func TestMemoryStore_UpdateByID(t *testing.T) {
	t.Run("frees the old code when it changes", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		created, err := memStore.Insert(context.Background(), links.NewLink{
			OwnerID: "owner-1", OriginalURL: testURL, ShortCode: "before",
		})
		require.NoError(t, err)

		_, err = memStore.UpdateByID(context.Background(), created.ID, "owner-1", testURL, "after")
		require.NoError(t, err)

		_, err = memStore.FindByShortCode(context.Background(), "before")
		assert.ErrorIs(t, err, links.ErrNotFound)

		// The freed code is reusable.
		_, err = memStore.Insert(context.Background(), links.NewLink{
			OwnerID: "owner-2", OriginalURL: testURL, ShortCode: "before",
		})
		assert.NoError(t, err)
	})

	t.Run("scopes the mutation by owner", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		created, err := memStore.Insert(context.Background(), links.NewLink{
			OwnerID: "owner-1", OriginalURL: testURL, ShortCode: "scoped",
		})
		require.NoError(t, err)

		updated, err := memStore.UpdateByID(context.Background(), created.ID, "owner-2", "https://other.example.com", "")

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, links.ErrNotFound)
	})
}

func TestMemoryStore_FindAllByOwner(t *testing.T) {
	t.Run("orders by updatedAt descending", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		first, err := memStore.Insert(context.Background(), links.NewLink{
			OwnerID: "owner-1", OriginalURL: testURL, ShortCode: "one",
		})
		require.NoError(t, err)

		_, err = memStore.Insert(context.Background(), links.NewLink{
			OwnerID: "owner-1", OriginalURL: testURL, ShortCode: "two",
		})
		require.NoError(t, err)

		_, err = memStore.UpdateByID(context.Background(), first.ID, "owner-1", testURL, "")
		require.NoError(t, err)

		owned, err := memStore.FindAllByOwner(context.Background(), "owner-1")

		require.NoError(t, err)
		require.Len(t, owned, 2)
		assert.Equal(t, "one", owned[0].ShortCode)
		assert.Equal(t, "two", owned[1].ShortCode)
	})

	t.Run("returns empty for an unknown owner", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		owned, err := memStore.FindAllByOwner(context.Background(), "nobody")

		require.NoError(t, err)
		assert.Empty(t, owned)
	})
}

func TestMemoryStore_DeleteByID(t *testing.T) {
	t.Run("frees the code and reports the outcome", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		created, err := memStore.Insert(context.Background(), links.NewLink{
			OwnerID: "owner-1", OriginalURL: testURL, ShortCode: "gone",
		})
		require.NoError(t, err)

		deleted, err := memStore.DeleteByID(context.Background(), created.ID, "owner-1")
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = memStore.DeleteByID(context.Background(), created.ID, "owner-1")
		require.NoError(t, err)
		assert.False(t, deleted)

		_, err = memStore.FindByShortCode(context.Background(), "gone")
		assert.ErrorIs(t, err, links.ErrNotFound)
	})

	t.Run("ignores deletes scoped to the wrong owner", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		created, err := memStore.Insert(context.Background(), links.NewLink{
			OwnerID: "owner-1", OriginalURL: testURL, ShortCode: "kept",
		})
		require.NoError(t, err)

		deleted, err := memStore.DeleteByID(context.Background(), created.ID, "owner-2")
		require.NoError(t, err)
		assert.False(t, deleted)

		_, err = memStore.FindByID(context.Background(), created.ID)
		assert.NoError(t, err)
	})
}
