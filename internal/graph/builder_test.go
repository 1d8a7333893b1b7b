// Tunegraph - Artist Listening Network Analytics
// Copyright 2026 Tunegraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunegraph/tunegraph

package graph

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/tunegraph/tunegraph/internal/genres"
	"github.com/tunegraph/tunegraph/internal/models"
)

// fakeSource is an in-memory EventSource. It returns its events as-is
// and records the last query for assertions.
type fakeSource struct {
	events    []models.ListenEvent
	err       error
	lastQuery models.EventQuery
}

func (s *fakeSource) FetchListenEvents(_ context.Context, q models.EventQuery) ([]models.ListenEvent, error) {
	s.lastQuery = q
	if s.err != nil {
		return nil, s.err
	}
	return append([]models.ListenEvent(nil), s.events...), nil
}

func testResolver() genres.Resolver {
	return genres.NewStaticResolver(map[string][]string{
		"a": {"IDM", "Ambient"},
		"b": {"IDM"},
		"c": {"Jazz"},
	})
}

func TestBuildEmptyHistory(t *testing.T) {
	builder := NewBuilder(&fakeSource{}, testResolver())

	result, err := builder.Build(context.Background(), Params{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(result.Nodes) != 0 || len(result.Edges) != 0 {
		t.Errorf("got %d nodes, %d edges; want empty graph", len(result.Nodes), len(result.Edges))
	}
	if result.Summary.TotalArtists != 0 || result.Summary.TotalConnections != 0 {
		t.Errorf("summary = %+v, want zeroes", result.Summary)
	}
	if result.Summary.DateRange != nil {
		t.Error("date range present without bounds")
	}
	if result.Metadata.EventCount != 0 {
		t.Errorf("event count = %d, want 0", result.Metadata.EventCount)
	}
}

func TestBuildInvalidParams(t *testing.T) {
	builder := NewBuilder(&fakeSource{}, testResolver())

	tests := []struct {
		name   string
		params Params
	}{
		{"negative min play count", Params{MinPlayCount: -1}},
		{"negative max artists", Params{MaxArtists: -1}},
		{"negative window", Params{ProximityWindowMinutes: -5}},
		{"negative min edge weight", Params{MinEdgeWeight: -0.5}},
		{"start after end", Params{
			StartDate: timePtr(testEpoch.AddDate(0, 0, 1)),
			EndDate:   timePtr(testEpoch),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := builder.Build(context.Background(), tt.params)
			if !errors.Is(err, ErrInvalidParams) {
				t.Errorf("err = %v, want ErrInvalidParams", err)
			}
		})
	}
}

func TestBuildSourceErrorPropagates(t *testing.T) {
	boom := errors.New("disk on fire")
	builder := NewBuilder(&fakeSource{err: boom}, testResolver())

	_, err := builder.Build(context.Background(), Params{})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped source error", err)
	}
}

func TestBuildForwardsQueryFilters(t *testing.T) {
	source := &fakeSource{}
	builder := NewBuilder(source, testResolver())

	start := testEpoch
	end := testEpoch.AddDate(0, 0, 7)

	_, err := builder.Build(context.Background(), Params{
		UserID:    "u1",
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if source.lastQuery.UserID == nil || *source.lastQuery.UserID != "u1" {
		t.Errorf("query user = %v, want u1", source.lastQuery.UserID)
	}
	if source.lastQuery.StartDate == nil || !source.lastQuery.StartDate.Equal(start) {
		t.Errorf("query start = %v, want %v", source.lastQuery.StartDate, start)
	}
	if source.lastQuery.EndDate == nil || !source.lastQuery.EndDate.Equal(end) {
		t.Errorf("query end = %v, want %v", source.lastQuery.EndDate, end)
	}
}

func TestBuildDateRangeOnlyWithBothBounds(t *testing.T) {
	builder := NewBuilder(&fakeSource{}, testResolver())
	start := testEpoch
	end := testEpoch.AddDate(0, 0, 7)

	tests := []struct {
		name      string
		params    Params
		wantRange bool
	}{
		{"no bounds", Params{}, false},
		{"start only", Params{StartDate: &start}, false},
		{"end only", Params{EndDate: &end}, false},
		{"both bounds", Params{StartDate: &start, EndDate: &end}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := builder.Build(context.Background(), tt.params)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if got := result.Summary.DateRange != nil; got != tt.wantRange {
				t.Errorf("date range present = %v, want %v", got, tt.wantRange)
			}
			if tt.wantRange {
				if !result.Summary.DateRange.Start.Equal(start) || !result.Summary.DateRange.End.Equal(end) {
					t.Errorf("date range = %+v, want [%v, %v]", result.Summary.DateRange, start, end)
				}
			}
		})
	}
}

func TestBuildCombinedSignals(t *testing.T) {
	// a and b share a genre and co-occur once; a and c only co-occur;
	// b and c share nothing and never land in the same window.
	events := []models.ListenEvent{
		play("a", 0),
		play("b", 5),
		play("a", 40),
		play("c", 45),
	}
	builder := NewBuilder(&fakeSource{events: events}, testResolver())

	result, err := builder.Build(context.Background(), Params{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if result.Summary.TotalArtists != 3 {
		t.Fatalf("total artists = %d, want 3", result.Summary.TotalArtists)
	}
	if result.Metadata.EventCount != len(events) {
		t.Errorf("event count = %d, want %d", result.Metadata.EventCount, len(events))
	}

	byPair := make(map[pairKey]models.ArtistEdge, len(result.Edges))
	for _, e := range result.Edges {
		byPair[newPairKey(e.Source, e.Target)] = e
	}

	ab, ok := byPair[newPairKey("a", "b")]
	if !ok {
		t.Fatal("missing a-b edge")
	}
	// Shared IDM (weight 2) plus one co-occurrence within 30 minutes.
	if ab.Kind != models.EdgeKindBoth {
		t.Errorf("a-b kind = %q, want both", ab.Kind)
	}
	if ab.Weight != 3 {
		t.Errorf("a-b weight = %g, want 3", ab.Weight)
	}
	if ab.ProximityScore != 1 {
		t.Errorf("a-b proximity score = %g, want 1", ab.ProximityScore)
	}
	if !reflect.DeepEqual(ab.SharedGenres, []string{"IDM"}) {
		t.Errorf("a-b shared genres = %v, want [IDM]", ab.SharedGenres)
	}

	ac, ok := byPair[newPairKey("a", "c")]
	if !ok {
		t.Fatal("missing a-c edge")
	}
	if ac.Kind != models.EdgeKindProximity {
		t.Errorf("a-c kind = %q, want proximity", ac.Kind)
	}
	if ac.Weight != 1 {
		t.Errorf("a-c weight = %g, want 1", ac.Weight)
	}

	if _, ok := byPair[newPairKey("b", "c")]; ok {
		t.Error("unexpected b-c edge: no shared genre, no co-occurrence")
	}
}

func TestBuildUnsortedInputHandled(t *testing.T) {
	// Events arrive out of order; the proximity result must match the
	// chronologically sorted stream.
	events := []models.ListenEvent{
		play("b", 5),
		play("a", 0),
	}
	builder := NewBuilder(&fakeSource{events: events}, testResolver())

	result, err := builder.Build(context.Background(), Params{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var found bool
	for _, e := range result.Edges {
		if newPairKey(e.Source, e.Target) == newPairKey("a", "b") && e.ProximityScore == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("edges = %+v, want a-b with proximity score 1", result.Edges)
	}
}

func TestBuildNodeClosure(t *testing.T) {
	// Artist c survives the play-count filter but its edges must only
	// reference surviving nodes; the dropped artist d co-occurs with
	// everyone yet appears nowhere.
	events := []models.ListenEvent{
		play("a", 0),
		play("d", 2),
		play("b", 4),
		play("a", 6),
		play("b", 8),
	}
	builder := NewBuilder(&fakeSource{events: events}, testResolver())

	result, err := builder.Build(context.Background(), Params{MinPlayCount: 2})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	ids := make(map[string]struct{}, len(result.Nodes))
	for _, n := range result.Nodes {
		ids[n.ID] = struct{}{}
	}
	if _, ok := ids["d"]; ok {
		t.Fatal("artist d survived a min play count of 2 with one play")
	}

	for _, e := range result.Edges {
		if _, ok := ids[e.Source]; !ok {
			t.Errorf("edge source %q not in node set", e.Source)
		}
		if _, ok := ids[e.Target]; !ok {
			t.Errorf("edge target %q not in node set", e.Target)
		}
		if e.Source == e.Target {
			t.Errorf("self-loop %s-%s", e.Source, e.Target)
		}
	}
}

func TestBuildPairUniqueness(t *testing.T) {
	events := []models.ListenEvent{
		play("a", 0),
		play("b", 5),
		play("a", 10),
		play("b", 15),
	}
	builder := NewBuilder(&fakeSource{events: events}, testResolver())

	result, err := builder.Build(context.Background(), Params{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	seen := make(map[pairKey]bool, len(result.Edges))
	for _, e := range result.Edges {
		key := newPairKey(e.Source, e.Target)
		if seen[key] {
			t.Errorf("duplicate edge for pair %v", key)
		}
		seen[key] = true
	}
}

func TestBuildIdempotent(t *testing.T) {
	events := []models.ListenEvent{
		play("a", 0),
		play("b", 5),
		play("c", 10),
		play("a", 40),
	}
	builder := NewBuilder(&fakeSource{events: events}, testResolver())
	params := Params{MinPlayCount: 1, ProximityWindowMinutes: 30}

	first, err := builder.Build(context.Background(), params)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	second, err := builder.Build(context.Background(), params)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if !reflect.DeepEqual(first.Nodes, second.Nodes) {
		t.Error("node lists differ between identical builds")
	}
	if !reflect.DeepEqual(first.Edges, second.Edges) {
		t.Error("edge lists differ between identical builds")
	}
}

func TestBuildMinEdgeWeightDropsLightEdges(t *testing.T) {
	// a-b merges to weight 3 (shared IDM doubled, one co-occurrence);
	// a threshold above that drops the edge and the summary reflects it.
	events := []models.ListenEvent{
		play("a", 0),
		play("b", 5),
	}
	builder := NewBuilder(&fakeSource{events: events}, testResolver())

	result, err := builder.Build(context.Background(), Params{MinEdgeWeight: 5})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(result.Edges) != 0 {
		t.Errorf("got edges %+v, want none above weight 5", result.Edges)
	}
	if result.Summary.TotalConnections != 0 {
		t.Errorf("total connections = %d, want 0 after the drop", result.Summary.TotalConnections)
	}
	if result.Summary.TotalArtists != 2 {
		t.Errorf("total artists = %d, want 2 (node set unaffected)", result.Summary.TotalArtists)
	}
}

func TestBuildMonotonicFiltering(t *testing.T) {
	events := []models.ListenEvent{
		play("a", 0), play("a", 1), play("a", 2),
		play("b", 3), play("b", 4),
		play("c", 5),
	}
	builder := NewBuilder(&fakeSource{events: events}, testResolver())

	loose, err := builder.Build(context.Background(), Params{MinPlayCount: 1})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	strict, err := builder.Build(context.Background(), Params{MinPlayCount: 2})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(strict.Nodes) > len(loose.Nodes) {
		t.Errorf("raising min play count grew the node set: %d > %d", len(strict.Nodes), len(loose.Nodes))
	}

	looseIDs := make(map[string]struct{}, len(loose.Nodes))
	for _, n := range loose.Nodes {
		looseIDs[n.ID] = struct{}{}
	}
	for _, n := range strict.Nodes {
		if _, ok := looseIDs[n.ID]; !ok {
			t.Errorf("node %q appears only under the stricter filter", n.ID)
		}
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
