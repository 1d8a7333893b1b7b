// Tunegraph - Artist Listening Network Analytics
// Copyright 2026 Tunegraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunegraph/tunegraph

package graph

import "github.com/tunegraph/tunegraph/internal/models"

// genreWeightMultiplier scales shared-genre count into edge weight so a
// single shared genre outweighs a single proximity co-occurrence.
// Preserved as observed tuning; not validated as a design choice.
const genreWeightMultiplier = 2.0

// buildGenreEdges emits one genre-typed edge per unordered pair of
// nodes sharing at least one genre tag, weighted by shared-genre count.
//
// O(n²) in node count, acceptable because maxArtists bounds n. Artists
// with no resolved genres carry the "Unknown" primary and an empty
// genre set, so they can never match each other here.
func buildGenreEdges(nodes []models.ArtistNode) []models.ArtistEdge {
	var edges []models.ArtistEdge

	for i := 0; i < len(nodes); i++ {
		if len(nodes[i].Genres) == 0 {
			continue
		}
		tags := make(map[string]struct{}, len(nodes[i].Genres))
		for _, g := range nodes[i].Genres {
			if g == models.UnknownGenre {
				continue
			}
			tags[g] = struct{}{}
		}

		for j := i + 1; j < len(nodes); j++ {
			var shared []string
			for _, g := range nodes[j].Genres {
				if _, ok := tags[g]; ok {
					shared = append(shared, g)
				}
			}
			if len(shared) == 0 {
				continue
			}

			edges = append(edges, models.ArtistEdge{
				Source:       nodes[i].ID,
				Target:       nodes[j].ID,
				Weight:       float64(len(shared)) * genreWeightMultiplier,
				Kind:         models.EdgeKindGenre,
				SharedGenres: shared,
			})
		}
	}

	return edges
}
