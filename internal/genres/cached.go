// Tunegraph - Artist Listening Network Analytics
// Copyright 2026 Tunegraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunegraph/tunegraph

package genres

import (
	"context"
	"strings"
	"time"

	"github.com/tunegraph/tunegraph/internal/cache"
	"github.com/tunegraph/tunegraph/internal/metrics"
)

// CachedResolver decorates a Resolver with a capacity-bounded LRU.
// Genre tags change rarely, so a generous TTL keeps the upstream
// provider out of the request path for warm artists.
//
// Empty results are cached too: an artist the provider does not know
// stays unknown for the TTL instead of being re-fetched per build.
type CachedResolver struct {
	inner Resolver
	lru   *cache.LRU[[]string]
}

// NewCachedResolver wraps inner with an LRU of the given capacity and TTL.
func NewCachedResolver(inner Resolver, capacity int, ttl time.Duration) *CachedResolver {
	return &CachedResolver{
		inner: inner,
		lru:   cache.NewLRU[[]string](capacity, ttl),
	}
}

// GenresFor implements Resolver.
func (r *CachedResolver) GenresFor(ctx context.Context, artist string) []string {
	key := strings.ToLower(artist)

	if genres, ok := r.lru.Get(key); ok {
		metrics.GenreCacheHits.Inc()
		return genres
	}
	metrics.GenreCacheMisses.Inc()

	genres := r.inner.GenresFor(ctx, artist)
	r.lru.Add(key, genres)
	return genres
}
