// Tunegraph - Artist Listening Network Analytics
// Copyright 2026 Tunegraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunegraph/tunegraph

package graph

import (
	"context"
	"sort"

	"github.com/tunegraph/tunegraph/internal/genres"
	"github.com/tunegraph/tunegraph/internal/models"
)

// artistAggregate accumulates per-artist state during the aggregation
// pass. It is mutated only during aggregation and discarded once the
// node set is finalized.
type artistAggregate struct {
	id        string
	name      string
	playCount int
	genres    []string
	firstSeen int // index of the artist's first event, for stable tie-breaking
}

// aggregateNodes groups events by artist, resolves genres, applies the
// minPlayCount/maxArtists filters, and emits the final node set sorted
// by play count descending.
//
// Ties are broken by first-seen order in the input so the selection is
// deterministic. An artist with no resolvable genre still produces a
// valid node with the "Unknown" sentinel; empty input yields an empty
// node list.
func aggregateNodes(ctx context.Context, events []models.ListenEvent, resolver genres.Resolver, minPlayCount, maxArtists int) []models.ArtistNode {
	aggregates := make(map[string]*artistAggregate)

	for i, ev := range events {
		agg, ok := aggregates[ev.ArtistID]
		if !ok {
			agg = &artistAggregate{
				id:        ev.ArtistID,
				name:      ev.ArtistName,
				firstSeen: i,
			}
			aggregates[ev.ArtistID] = agg
		}
		agg.playCount++
		if agg.name == "" {
			agg.name = ev.ArtistName
		}
	}

	survivors := make([]*artistAggregate, 0, len(aggregates))
	for _, agg := range aggregates {
		if agg.playCount >= minPlayCount {
			survivors = append(survivors, agg)
		}
	}

	sort.Slice(survivors, func(i, j int) bool {
		if survivors[i].playCount != survivors[j].playCount {
			return survivors[i].playCount > survivors[j].playCount
		}
		return survivors[i].firstSeen < survivors[j].firstSeen
	})

	if maxArtists > 0 && len(survivors) > maxArtists {
		survivors = survivors[:maxArtists]
	}

	// Resolve genres only for artists that made the cut; resolver
	// misses are empty sets, never errors.
	nodes := make([]models.ArtistNode, 0, len(survivors))
	for _, agg := range survivors {
		agg.genres = resolver.GenresFor(ctx, agg.id)

		primary := models.UnknownGenre
		if len(agg.genres) > 0 {
			primary = agg.genres[0]
		}

		name := agg.name
		if name == "" {
			name = agg.id
		}

		nodes = append(nodes, models.ArtistNode{
			ID:        agg.id,
			Name:      name,
			Genre:     primary,
			Genres:    agg.genres,
			PlayCount: agg.playCount,
		})
	}

	return nodes
}
