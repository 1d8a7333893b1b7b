// Tunegraph - Artist Listening Network Analytics
// Copyright 2026 Tunegraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunegraph/tunegraph

package graph

import (
	"testing"
	"time"

	"github.com/tunegraph/tunegraph/internal/models"
)

func nodeSet(ids ...string) []models.ArtistNode {
	nodes := make([]models.ArtistNode, len(ids))
	for i, id := range ids {
		nodes[i] = models.ArtistNode{ID: id, Name: id, Genre: models.UnknownGenre, PlayCount: 1}
	}
	return nodes
}

// edgeCounts collapses edges into a pair→weight map for assertions.
func edgeCounts(edges []models.ArtistEdge) map[pairKey]float64 {
	counts := make(map[pairKey]float64, len(edges))
	for _, e := range edges {
		counts[newPairKey(e.Source, e.Target)] = e.Weight
	}
	return counts
}

func TestBuildProximityEdges(t *testing.T) {
	window := 30 * time.Minute

	tests := []struct {
		name   string
		events []models.ListenEvent
		nodes  []models.ArtistNode
		want   map[pairKey]float64
	}{
		{
			name:   "empty stream",
			events: nil,
			nodes:  nodeSet("a", "b"),
			want:   map[pairKey]float64{},
		},
		{
			name:   "single event has no pairs",
			events: []models.ListenEvent{play("a", 0)},
			nodes:  nodeSet("a"),
			want:   map[pairKey]float64{},
		},
		{
			name: "plays inside window co-occur",
			events: []models.ListenEvent{
				play("a", 0),
				play("b", 10),
			},
			nodes: nodeSet("a", "b"),
			want:  map[pairKey]float64{{a: "a", b: "b"}: 1},
		},
		{
			name: "plays outside window do not",
			events: []models.ListenEvent{
				play("a", 0),
				play("b", 31),
			},
			nodes: nodeSet("a", "b"),
			want:  map[pairKey]float64{},
		},
		{
			name: "boundary gap exactly equal to window counts",
			events: []models.ListenEvent{
				play("a", 0),
				play("b", 30),
			},
			nodes: nodeSet("a", "b"),
			want:  map[pairKey]float64{{a: "a", b: "b"}: 1},
		},
		{
			name: "identical timestamps count",
			events: []models.ListenEvent{
				play("a", 0),
				play("b", 0),
			},
			nodes: nodeSet("a", "b"),
			want:  map[pairKey]float64{{a: "a", b: "b"}: 1},
		},
		{
			name: "same artist never pairs with itself",
			events: []models.ListenEvent{
				play("a", 0),
				play("a", 5),
				play("a", 10),
			},
			nodes: nodeSet("a"),
			want:  map[pairKey]float64{},
		},
		{
			name: "repeated co-occurrences accumulate",
			events: []models.ListenEvent{
				play("a", 0),
				play("b", 5),
				play("a", 100),
				play("b", 110),
			},
			nodes: nodeSet("a", "b"),
			want:  map[pairKey]float64{{a: "a", b: "b"}: 2},
		},
		{
			name: "filtered artists contribute nothing",
			events: []models.ListenEvent{
				play("a", 0),
				play("dropped", 5),
				play("b", 10),
			},
			nodes: nodeSet("a", "b"),
			want:  map[pairKey]float64{{a: "a", b: "b"}: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edges := buildProximityEdges(tt.events, tt.nodes, window)

			got := edgeCounts(edges)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d pairs %v, want %d", len(got), got, len(tt.want))
			}
			for key, weight := range tt.want {
				if got[key] != weight {
					t.Errorf("pair %v weight = %g, want %g", key, got[key], weight)
				}
			}

			for _, e := range edges {
				if e.Kind != models.EdgeKindProximity {
					t.Errorf("edge %s-%s kind = %q, want proximity", e.Source, e.Target, e.Kind)
				}
				if e.ProximityScore != e.Weight {
					t.Errorf("edge %s-%s proximity score %g != weight %g", e.Source, e.Target, e.ProximityScore, e.Weight)
				}
			}
		})
	}
}

func TestBuildProximityEdgesSlidingWindowChain(t *testing.T) {
	// a..b within window, b..c within window, but a..c outside it:
	// only adjacent pairs co-occur.
	events := []models.ListenEvent{
		play("a", 0),
		play("b", 25),
		play("c", 50),
	}

	edges := buildProximityEdges(events, nodeSet("a", "b", "c"), 30*time.Minute)

	got := edgeCounts(edges)
	want := map[pairKey]float64{
		{a: "a", b: "b"}: 1,
		{a: "b", b: "c"}: 1,
	}
	if len(got) != len(want) {
		t.Fatalf("got pairs %v, want %v", got, want)
	}
	for key, weight := range want {
		if got[key] != weight {
			t.Errorf("pair %v weight = %g, want %g", key, got[key], weight)
		}
	}
}
