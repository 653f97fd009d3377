package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eduplatform/constants"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Cache is a JSON-over-redis read-through cache. A nil *Cache is valid and
// behaves as a permanently empty cache.
type Cache struct {
	rdb *redis.Client
}

func NewCache(rdb *redis.Client) *Cache {
	if rdb == nil {
		return nil
	}
	return &Cache{rdb: rdb}
}

// Get decodes key into target. The bool is false on a miss.
func (c *Cache) Get(ctx context.Context, key string, target interface{}) (bool, error) {
	if c == nil {
		return false, nil
	}
	cached, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(cached, target); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Fill runs load while watching guard and stores the loaded value under key
// only when guard was not bumped before the write. A lost race leaves the
// key empty. load's error is returned unchanged.
func (c *Cache) Fill(ctx context.Context, guard, key string, ttl time.Duration, load func() (interface{}, error)) error {
	if c == nil {
		_, err := load()
		return err
	}
	err := c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		value, err := load()
		if err != nil {
			return err
		}
		data, err := json.Marshal(value)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, ttl)
			return nil
		})
		return err
	}, guard)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// Bump advances guard and drops keys in one transaction, failing any Fill
// still in flight on guard.
func (c *Cache) Bump(ctx context.Context, guard string, ttl time.Duration, keys ...string) error {
	if c == nil {
		return nil
	}
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, guard)
		pipe.Expire(ctx, guard, ttl)
		if len(keys) > 0 {
			pipe.Del(ctx, keys...)
		}
		return nil
	})
	return err
}

func unreadCountKey(userID uint) string {
	return fmt.Sprintf("%s%d", constants.UnreadCountKeyPrefix, userID)
}

func unreadGenerationKey(userID uint) string {
	return fmt.Sprintf("%sgen:%d", constants.UnreadCountKeyPrefix, userID)
}
