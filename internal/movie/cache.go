// Copyright (c) 2026 Cinerate. All rights reserved.

package movie

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/cinerate/cinerate/internal/platform/constants"
	"github.com/cinerate/cinerate/internal/platform/ctxutil"
	"github.com/cinerate/cinerate/internal/platform/metrics"
)

// DetailCache is the contract the service layer uses for cached movie
// detail reads. [Cache] is the Redis implementation.
type DetailCache interface {
	Get(context context.Context, id string) (*Movie, bool)
	Set(context context.Context, value *Movie)
	Invalidate(context context.Context, id string)
}

// Cache is the Redis read-through cache for movie detail representations.
//
// The cache is best-effort: a Redis failure degrades to a database read and
// is logged, never surfaced to the caller.
type Cache struct {
	client  *redis.Client
	metrics *metrics.Metrics
}

// NewCache creates a Redis-backed movie cache.
func NewCache(client *redis.Client, m *metrics.Metrics) *Cache {
	return &Cache{client: client, metrics: m}
}

/*
Get retrieves a cached movie representation by ID.

Returns:
  - *Movie: The cached representation, nil on a miss
  - bool: Whether the lookup was a hit
*/
func (cache *Cache) Get(context context.Context, id string) (*Movie, bool) {

	// Use constants for key prefix
	key := constants.RedisPrefixMovie + id

	// Get the cached payload from Redis
	payload, err := cache.client.Get(context, key).Bytes()

	// Handle errors
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			ctxutil.GetLogger(context).Warn("movie_cache_get_failed",
				slog.String("movie_id", id),
				slog.String("error", err.Error()),
			)
		}
		cache.metrics.RecordCacheMiss(context, "movie")
		return nil, false
	}

	// Decode the cached representation
	var cached Movie
	if err := json.Unmarshal(payload, &cached); err != nil {
		// A corrupt entry is treated as a miss and evicted
		_ = cache.client.Del(context, key).Err()
		cache.metrics.RecordCacheMiss(context, "movie")
		return nil, false
	}

	cache.metrics.RecordCacheHit(context, "movie")
	return &cached, true
}

/*
Set stores a movie representation with the standard TTL.
*/
func (cache *Cache) Set(context context.Context, value *Movie) {

	// Use constants for key prefix
	key := constants.RedisPrefixMovie + value.ID.String()

	// Encode the representation
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}

	// Set the entry with TTL
	if err := cache.client.Set(context, key, payload, constants.MovieCacheTTL).Err(); err != nil {
		ctxutil.GetLogger(context).Warn("movie_cache_set_failed",
			slog.String("movie_id", value.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

/*
Invalidate drops the cached entry for a movie after a mutation.
*/
func (cache *Cache) Invalidate(context context.Context, id string) {

	// Use constants for key prefix
	key := constants.RedisPrefixMovie + id

	// Delete the entry from Redis
	if err := cache.client.Del(context, key).Err(); err != nil {
		ctxutil.GetLogger(context).Warn("movie_cache_invalidate_failed",
			slog.String("movie_id", id),
			slog.String("error", err.Error()),
		)
	}
}
