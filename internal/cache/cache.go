// Package cache stores rendered pages and drops them when the data behind
// them changes.
package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"mini-admin/internal/config"

	"github.com/rs/zerolog"
)

// Revalidator marks the views rendered under the given paths as stale.
type Revalidator interface {
	Revalidate(ctx context.Context, paths ...string) error
}

// Page is a cached rendered response.
type Page struct {
	ContentType string
	Body        []byte
}

// ViewCache stores rendered pages keyed by request URI. A page is filed under
// its path and every ancestor path below the root, so revalidating "/users"
// also drops "/users/{id}/edit".
type ViewCache interface {
	Revalidator

	// Get returns the page cached under key, or nil on a miss.
	Get(ctx context.Context, key string) (*Page, error)

	// Epoch returns a counter advanced by every Revalidate. Read it before
	// rendering and hand it to Set.
	Epoch(ctx context.Context) (int64, error)

	// Set caches page under key, filed under path. It returns ErrStale and
	// stores nothing if a revalidation happened since epoch was read.
	Set(ctx context.Context, path, key string, epoch int64, page Page) error

	Close() error
}

// ErrStale reports a page rendered before the latest revalidation.
var ErrStale = errors.New("view rendered before the latest revalidation")

// ancestors returns path followed by each parent path, stopping before "/".
// The root is only returned for the root itself.
func ancestors(path string) []string {
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return []string{"/"}
	}

	out := []string{path}
	for {
		i := strings.LastIndex(path, "/")
		if i <= 0 {
			return out
		}
		path = path[:i]
		out = append(out, path)
	}
}

// Nop caches nothing. It is used when no Redis URL is configured.
type Nop struct{}

func (Nop) Revalidate(context.Context, ...string) error { return nil }

func (Nop) Get(context.Context, string) (*Page, error) { return nil, nil }

func (Nop) Epoch(context.Context) (int64, error) { return 0, nil }

func (Nop) Set(context.Context, string, string, int64, Page) error { return nil }

func (Nop) Close() error { return nil }

// Open returns a Redis-backed cache when cfg names a server. An empty URL or
// an unreachable server yields Nop, so pages are always rendered fresh.
func Open(ctx context.Context, cfg config.CacheConfig, logger zerolog.Logger) ViewCache {
	if cfg.RedisURL == "" {
		logger.Info().Msg("view cache disabled")
		return Nop{}
	}

	c, err := NewRedisCache(ctx, cfg.RedisURL, time.Duration(cfg.TTL)*time.Second, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to connect to Redis, view cache disabled")
		return Nop{}
	}
	return c
}
