// Tunegraph - Artist Listening Network Analytics
// Copyright 2026 Tunegraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunegraph/tunegraph

package graph

import (
	"time"

	"github.com/tunegraph/tunegraph/internal/models"
)

// buildProximityEdges emits one proximity-typed edge per unordered pair
// of artists whose plays co-occur within the window, weighted by
// co-occurrence count.
//
// Events must be in ascending play-time order. The scan uses a
// two-pointer sliding window: the window is monotonic in time, so the
// left bound only ever advances, giving amortized O(n) comparisons over
// the whole stream instead of rescanning from the start for every
// event. Listening histories can span months, which is what makes the
// naive O(n·window) scan unacceptable.
//
// Two events at the exact same timestamp are within the window by
// definition (diff = 0 <= window). Same-artist pairs are never counted.
func buildProximityEdges(events []models.ListenEvent, nodes []models.ArtistNode, window time.Duration) []models.ArtistEdge {
	if len(events) < 2 || len(nodes) == 0 {
		return nil
	}

	selected := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		selected[n.ID] = struct{}{}
	}

	// Restrict the stream to selected nodes, preserving order. The
	// node set is closed at this point: filtered-out artists must not
	// contribute edges even though they appear in the raw stream.
	stream := make([]models.ListenEvent, 0, len(events))
	for _, ev := range events {
		if _, ok := selected[ev.ArtistID]; ok {
			stream = append(stream, ev)
		}
	}

	counts := make(map[pairKey]int)
	left := 0

	for right := 0; right < len(stream); right++ {
		for stream[right].PlayedAt.Sub(stream[left].PlayedAt) > window {
			left++
		}

		for i := left; i < right; i++ {
			if stream[i].ArtistID == stream[right].ArtistID {
				continue
			}
			counts[newPairKey(stream[i].ArtistID, stream[right].ArtistID)]++
		}
	}

	edges := make([]models.ArtistEdge, 0, len(counts))
	for key, count := range counts {
		edges = append(edges, models.ArtistEdge{
			Source:         key.a,
			Target:         key.b,
			Weight:         float64(count),
			Kind:           models.EdgeKindProximity,
			ProximityScore: float64(count),
		})
	}

	return edges
}
