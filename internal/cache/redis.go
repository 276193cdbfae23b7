package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	pageKeyPrefix  = "view:"
	indexKeyPrefix = "view:index:"
	epochKey       = "view:epoch"
)

// RedisCache is a ViewCache backed by Redis. Each page is a hash holding the
// content type and body; each path has a set of the page keys filed under it.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisCache connects to redisURL and verifies the connection.
func NewRedisCache(ctx context.Context, redisURL string, ttl time.Duration, logger zerolog.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "view_cache").Logger(),
	}, nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Get returns the page cached under key, or nil on a miss.
func (c *RedisCache) Get(ctx context.Context, key string) (*Page, error) {
	fields, err := c.client.HGetAll(ctx, pageKeyPrefix+key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get cached view: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	return &Page{
		ContentType: fields["content_type"],
		Body:        []byte(fields["body"]),
	}, nil
}

// Epoch returns the revalidation counter; 0 before the first revalidation.
func (c *RedisCache) Epoch(ctx context.Context) (int64, error) {
	epoch, err := c.client.Get(ctx, epochKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read view epoch: %w", err)
	}
	return epoch, nil
}

// Set caches page under key and files it under path and its ancestors. The
// epoch check and the write run in one optimistic transaction on the epoch
// key, so a Revalidate racing the render always wins.
func (c *RedisCache) Set(ctx context.Context, path, key string, epoch int64, page Page) error {
	pageKey := pageKeyPrefix + key

	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, epochKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != epoch {
			return ErrStale
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, pageKey, "content_type", page.ContentType, "body", page.Body)
			pipe.Expire(ctx, pageKey, c.ttl)
			for _, p := range ancestors(path) {
				indexKey := indexKeyPrefix + p
				pipe.SAdd(ctx, indexKey, pageKey)
				pipe.Expire(ctx, indexKey, c.ttl)
			}
			return nil
		})
		return err
	}, epochKey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStale), errors.Is(err, redis.TxFailedErr):
		return ErrStale
	default:
		return fmt.Errorf("failed to cache view: %w", err)
	}
}

// Revalidate advances the epoch, then drops every page filed under the given
// paths.
func (c *RedisCache) Revalidate(ctx context.Context, paths ...string) error {
	if err := c.client.Incr(ctx, epochKey).Err(); err != nil {
		return fmt.Errorf("failed to advance view epoch: %w", err)
	}

	for _, path := range paths {
		indexKey := indexKeyPrefix + path

		keys, err := c.client.SMembers(ctx, indexKey).Result()
		if err != nil {
			return fmt.Errorf("failed to read view index for %s: %w", path, err)
		}

		if err := c.client.Del(ctx, append(keys, indexKey)...).Err(); err != nil {
			return fmt.Errorf("failed to revalidate %s: %w", path, err)
		}

		c.logger.Debug().Str("path", path).Int("views", len(keys)).Msg("views revalidated")
	}
	return nil
}
