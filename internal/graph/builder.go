// Tunegraph - Artist Listening Network Analytics
// Copyright 2026 Tunegraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunegraph/tunegraph

package graph

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tunegraph/tunegraph/internal/genres"
	"github.com/tunegraph/tunegraph/internal/models"
)

// ErrInvalidParams is returned when Build is called with parameters
// that violate the input contract. These are caller bugs, caught before
// any scan begins.
var ErrInvalidParams = errors.New("invalid graph parameters")

// Default thresholds applied when Params fields are left at zero.
const (
	DefaultMinPlayCount           = 1
	DefaultProximityWindowMinutes = 30
	DefaultMinEdgeWeight          = 1.0
)

// EventSource supplies the listening history the graph is built from.
// Rows may arrive unordered; Build sorts them by play time itself.
// Implementations must support concurrent independent reads.
type EventSource interface {
	FetchListenEvents(ctx context.Context, q models.EventQuery) ([]models.ListenEvent, error)
}

// Params is the configuration bundle for one graph build.
type Params struct {
	// UserID restricts the history to one listener. Empty means all.
	UserID string

	// StartDate and EndDate bound the history window (inclusive).
	// Both must be set for the summary to carry a date range.
	StartDate *time.Time
	EndDate   *time.Time

	// MinPlayCount drops artists played fewer times (default 1).
	MinPlayCount int

	// MaxArtists keeps only the top N artists by play count.
	// Zero means unbounded.
	MaxArtists int

	// ProximityWindowMinutes is the maximum gap between two plays for
	// them to count as a co-occurrence (default 30).
	ProximityWindowMinutes int

	// MinEdgeWeight drops edges below this merged weight (default 1).
	MinEdgeWeight float64
}

// withDefaults returns a copy of p with zero-valued thresholds replaced
// by their defaults. Explicit values are never overridden.
func (p Params) withDefaults() Params {
	if p.MinPlayCount == 0 {
		p.MinPlayCount = DefaultMinPlayCount
	}
	if p.ProximityWindowMinutes == 0 {
		p.ProximityWindowMinutes = DefaultProximityWindowMinutes
	}
	if p.MinEdgeWeight == 0 {
		p.MinEdgeWeight = DefaultMinEdgeWeight
	}
	return p
}

// validate rejects contract violations before any work happens.
func (p Params) validate() error {
	if p.MinPlayCount < 1 {
		return fmt.Errorf("%w: min_play_count must be >= 1, got %d", ErrInvalidParams, p.MinPlayCount)
	}
	if p.MaxArtists < 0 {
		return fmt.Errorf("%w: max_artists must be >= 0, got %d", ErrInvalidParams, p.MaxArtists)
	}
	if p.ProximityWindowMinutes <= 0 {
		return fmt.Errorf("%w: proximity_window_minutes must be > 0, got %d", ErrInvalidParams, p.ProximityWindowMinutes)
	}
	if p.MinEdgeWeight < 0 {
		return fmt.Errorf("%w: min_edge_weight must be >= 0, got %g", ErrInvalidParams, p.MinEdgeWeight)
	}
	if p.StartDate != nil && p.EndDate != nil && p.StartDate.After(*p.EndDate) {
		return fmt.Errorf("%w: start_date is after end_date", ErrInvalidParams)
	}
	return nil
}

// Builder assembles artist network graphs. It holds only the two
// collaborators and is safe for concurrent use; every Build call owns
// its intermediate state exclusively.
type Builder struct {
	events   EventSource
	resolver genres.Resolver
}

// NewBuilder creates a graph builder over the given collaborators.
func NewBuilder(events EventSource, resolver genres.Resolver) *Builder {
	return &Builder{events: events, resolver: resolver}
}

// Build fetches the listening history matching params and constructs
// the artist network graph.
//
// Degenerate data (no events, no surviving nodes, no related pairs) is
// never an error: the result is a valid graph with empty nodes/edges.
// Collaborator failures propagate unchanged; Build does not retry.
func (b *Builder) Build(ctx context.Context, params Params) (*models.ArtistGraph, error) {
	params = params.withDefaults()
	if err := params.validate(); err != nil {
		return nil, err
	}

	started := time.Now()

	events, err := b.events.FetchListenEvents(ctx, models.EventQuery{
		UserID:    optionalString(params.UserID),
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch listen events: %w", err)
	}

	// The proximity scan requires chronological order; the store
	// usually returns it, but the contract does not guarantee it.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].PlayedAt.Before(events[j].PlayedAt)
	})

	nodes := aggregateNodes(ctx, events, b.resolver, params.MinPlayCount, params.MaxArtists)

	genreEdges := buildGenreEdges(nodes)
	window := time.Duration(params.ProximityWindowMinutes) * time.Minute
	proximityEdges := buildProximityEdges(events, nodes, window)

	edges := mergeEdges(genreEdges, proximityEdges, params.MinEdgeWeight)

	return assembleGraph(nodes, edges, params, len(events), started), nil
}

// assembleGraph pairs the final node and edge lists with summary and
// provenance metadata.
func assembleGraph(nodes []models.ArtistNode, edges []models.ArtistEdge, params Params, eventCount int, started time.Time) *models.ArtistGraph {
	summary := models.GraphSummary{
		TotalArtists:     len(nodes),
		TotalConnections: len(edges),
	}

	// Date range is included only when both bounds were supplied;
	// it is omitted (not null) otherwise.
	if params.StartDate != nil && params.EndDate != nil {
		summary.DateRange = &models.DateRange{
			Start: *params.StartDate,
			End:   *params.EndDate,
		}
	}

	return &models.ArtistGraph{
		Nodes:   nodes,
		Edges:   edges,
		Summary: summary,
		Metadata: models.GraphMetadata{
			EventCount:  eventCount,
			GeneratedAt: time.Now().UTC(),
			BuildTimeMs: time.Since(started).Milliseconds(),
		},
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
