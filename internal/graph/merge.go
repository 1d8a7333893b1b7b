// Tunegraph - Artist Listening Network Analytics
// Copyright 2026 Tunegraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunegraph/tunegraph

package graph

import (
	"sort"

	"github.com/tunegraph/tunegraph/internal/models"
)

// pairKey is the canonical unordered artist pair. A struct key rather
// than a joined string avoids delimiter-collision bugs if artist IDs
// ever contain the separator character.
type pairKey struct {
	a, b string
}

// newPairKey canonicalizes so {x,y} and {y,x} collide.
func newPairKey(x, y string) pairKey {
	if x > y {
		x, y = y, x
	}
	return pairKey{a: x, b: y}
}

// mergeEdges combines the genre and proximity edge lists keyed by
// unordered pair, summing weights and reclassifying to EdgeKindBoth
// when both signals are present, then drops edges below minWeight.
//
// The merge is commutative: edges are combined field-wise, so feeding
// the lists in either order yields an identical result. Output order is
// sorted by pair for determinism but is not part of the contract.
func mergeEdges(genreEdges, proximityEdges []models.ArtistEdge, minWeight float64) []models.ArtistEdge {
	merged := make(map[pairKey]*models.ArtistEdge, len(genreEdges)+len(proximityEdges))

	insert := func(e models.ArtistEdge) {
		key := newPairKey(e.Source, e.Target)
		existing, ok := merged[key]
		if !ok {
			edge := e
			edge.Source, edge.Target = key.a, key.b
			merged[key] = &edge
			return
		}

		existing.Weight += e.Weight
		if existing.Kind != e.Kind {
			existing.Kind = models.EdgeKindBoth
		}
		if e.SharedGenres != nil {
			existing.SharedGenres = e.SharedGenres
		}
		if e.ProximityScore > 0 {
			existing.ProximityScore = e.ProximityScore
		}
	}

	for _, e := range genreEdges {
		insert(e)
	}
	for _, e := range proximityEdges {
		insert(e)
	}

	edges := make([]models.ArtistEdge, 0, len(merged))
	for _, edge := range merged {
		if edge.Weight < minWeight {
			continue
		}
		edges = append(edges, *edge)
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})

	return edges
}
