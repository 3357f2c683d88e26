package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlinks/internal/links"
)

// RedisStore is a Redis implementation of links.Repository. Link records are
// JSON values keyed by id; a hash maps short codes to ids and HSETNX on that
// hash is the atomic arbiter for code uniqueness; a per-owner sorted set
// scored by UpdatedAt provides the list ordering.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisStore creates a new Redis-backed link store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		now:    time.Now,
	}
}

const (
	redisIDSeqKey = "links:next_id"
	redisCodesKey = "links:codes"
)

func redisLinkKey(id int64) string {
	return fmt.Sprintf("links:link:%d", id)
}

func redisOwnerKey(ownerID string) string {
	return "links:owner:" + ownerID
}

func (r *RedisStore) FindByShortCode(ctx context.Context, code string) (*links.Link, error) {
	idStr, err := r.client.HGet(ctx, redisCodesKey, code).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, links.ErrNotFound
		}

		return nil, err
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

func (r *RedisStore) FindByID(ctx context.Context, id int64) (*links.Link, error) {
	payload, err := r.client.Get(ctx, redisLinkKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, links.ErrNotFound
		}

		return nil, err
	}

	var link links.Link
	if err = json.Unmarshal(payload, &link); err != nil {
		return nil, err
	}

	return &link, nil
}

func (r *RedisStore) FindAllByOwner(ctx context.Context, ownerID string) ([]links.Link, error) {
	ids, err := r.client.ZRevRange(ctx, redisOwnerKey(ownerID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	owned := make([]links.Link, 0, len(ids))

	for _, idStr := range ids {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, err
		}

		link, err := r.FindByID(ctx, id)
		if err != nil {
			// Index entry without a record: a concurrent delete won the race.
			if errors.Is(err, links.ErrNotFound) {
				continue
			}

			return nil, err
		}

		owned = append(owned, *link)
	}

	return owned, nil
}

func (r *RedisStore) Insert(ctx context.Context, newLink links.NewLink) (*links.Link, error) {
	id, err := r.client.Incr(ctx, redisIDSeqKey).Result()
	if err != nil {
		return nil, err
	}

	// HSETNX claims the code atomically; a losing concurrent insert with the
	// same code observes claimed == false.
	claimed, err := r.client.HSetNX(ctx, redisCodesKey, newLink.ShortCode, id).Result()
	if err != nil {
		return nil, err
	}

	if !claimed {
		return nil, links.ErrSlugTaken
	}

	now := r.now()
	link := &links.Link{
		ID:          id,
		OwnerID:     newLink.OwnerID,
		OriginalURL: newLink.OriginalURL,
		ShortCode:   newLink.ShortCode,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err = r.writeRecord(ctx, link); err != nil {
		return nil, err
	}

	return link, nil
}

func (r *RedisStore) UpdateByID(ctx context.Context, id int64, ownerID, originalURL, shortCode string) (*links.Link, error) {
	link, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if link.OwnerID != ownerID {
		return nil, links.ErrNotFound
	}

	oldCode := link.ShortCode

	if shortCode != "" && shortCode != oldCode {
		claimed, err := r.client.HSetNX(ctx, redisCodesKey, shortCode, id).Result()
		if err != nil {
			return nil, err
		}

		if !claimed {
			return nil, links.ErrSlugTaken
		}

		link.ShortCode = shortCode
	}

	link.OriginalURL = originalURL
	link.UpdatedAt = r.now()

	if err = r.writeRecord(ctx, link); err != nil {
		return nil, err
	}

	if link.ShortCode != oldCode {
		if err = r.client.HDel(ctx, redisCodesKey, oldCode).Err(); err != nil {
			return nil, err
		}
	}

	return link, nil
}

func (r *RedisStore) DeleteByID(ctx context.Context, id int64, ownerID string) (bool, error) {
	link, err := r.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, links.ErrNotFound) {
			return false, nil
		}

		return false, err
	}

	if link.OwnerID != ownerID {
		return false, nil
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, redisLinkKey(id))
	pipe.HDel(ctx, redisCodesKey, link.ShortCode)
	pipe.ZRem(ctx, redisOwnerKey(ownerID), id)

	if _, err = pipe.Exec(ctx); err != nil {
		return false, err
	}

	return true, nil
}

func (r *RedisStore) writeRecord(ctx context.Context, link *links.Link) error {
	payload, err := json.Marshal(link)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, redisLinkKey(link.ID), payload, 0)
	pipe.ZAdd(ctx, redisOwnerKey(link.OwnerID), redis.Z{
		Score:  float64(link.UpdatedAt.UnixMicro()),
		Member: link.ID,
	})

	_, err = pipe.Exec(ctx)

	return err
}
