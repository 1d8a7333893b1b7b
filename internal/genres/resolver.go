// Tunegraph - Artist Listening Network Analytics
// Copyright 2026 Tunegraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunegraph/tunegraph

// Package genres resolves artists to genre tag sets.
//
// The graph core treats genre resolution as a pure lookup: misses and
// provider failures resolve to an empty set, never an error. Resolvers
// are injected as collaborators so the metadata backend can be swapped
// (static table, Last.fm API, cached) without touching the graph
// algorithm.
package genres

import (
	"context"
	"strings"
)

// Resolver looks up the genre tags for an artist. The argument may be
// an artist ID or name, depending on what the event source records.
//
// Implementations return an empty set on miss or failure; they never
// surface lookup errors to the graph pipeline.
type Resolver interface {
	GenresFor(ctx context.Context, artist string) []string
}

// StaticResolver serves genre lookups from a fixed in-memory table.
// Used for tests and offline deployments. Keys are matched
// case-insensitively.
type StaticResolver struct {
	tags map[string][]string
}

// NewStaticResolver creates a resolver over the given artist→genres
// table. The table is copied; later mutation of the argument does not
// affect the resolver.
func NewStaticResolver(tags map[string][]string) *StaticResolver {
	normalized := make(map[string][]string, len(tags))
	for artist, genres := range tags {
		normalized[strings.ToLower(artist)] = append([]string(nil), genres...)
	}
	return &StaticResolver{tags: normalized}
}

// GenresFor implements Resolver.
func (r *StaticResolver) GenresFor(_ context.Context, artist string) []string {
	genres, ok := r.tags[strings.ToLower(artist)]
	if !ok {
		return nil
	}
	return append([]string(nil), genres...)
}
