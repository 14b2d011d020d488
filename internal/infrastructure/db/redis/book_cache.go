package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pageturn/bookshelf-api/internal/core/domain"
)

const defaultCacheTTL = 5 * time.Minute

// BookCache is a Redis-backed read cache for single-book lookups.
// Key format: book:<id>
//
// The cache is best-effort: any Redis failure is logged at debug level and
// reported as a miss, so a degraded Redis never breaks reads.
type BookCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewBookCache creates a BookCache wrapping the given Redis client. A ttl
// of zero or below selects the default entry lifetime.
func NewBookCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *BookCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &BookCache{client: client, ttl: ttl, logger: logger}
}

func (c *BookCache) Get(ctx context.Context, id string) (*domain.Book, bool) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug().Err(err).Str("book_id", id).Msg("cache get failed")
		}
		return nil, false
	}

	var book domain.Book
	if err := json.Unmarshal(raw, &book); err != nil {
		c.logger.Debug().Err(err).Str("book_id", id).Msg("cache entry corrupt")
		return nil, false
	}
	return &book, true
}

func (c *BookCache) Set(ctx context.Context, book *domain.Book) {
	raw, err := json.Marshal(book)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(book.ID), raw, c.ttl).Err(); err != nil {
		c.logger.Debug().Err(err).Str("book_id", book.ID).Msg("cache set failed")
	}
}

func (c *BookCache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		c.logger.Debug().Err(err).Str("book_id", id).Msg("cache invalidate failed")
	}
}

func (c *BookCache) key(id string) string {
	return "book:" + id
}
