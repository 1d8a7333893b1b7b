// Tunegraph - Artist Listening Network Analytics
// Copyright 2026 Tunegraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunegraph/tunegraph

// Artist network graph models. The graph relates artists through two
// signals: shared genre tags and temporal proximity of plays, exposing
// listening neighborhoods and the bridge artists between them.

package models

import "time"

// EdgeKind categorizes the signal that produced an artist edge.
type EdgeKind string

const (
	// EdgeKindGenre marks edges derived from shared genre tags.
	EdgeKindGenre EdgeKind = "genre"

	// EdgeKindProximity marks edges derived from plays close together in time.
	EdgeKindProximity EdgeKind = "proximity"

	// EdgeKindBoth marks edges where both signals are present.
	EdgeKindBoth EdgeKind = "both"
)

// UnknownGenre is the sentinel primary genre for artists with no
// resolvable genre tags. Two artists never match each other on this
// sentinel.
const UnknownGenre = "Unknown"

// ArtistNode represents one artist in the network graph.
// Nodes are immutable once the node set is finalized; node ID is the
// join key for all edge construction.
type ArtistNode struct {
	// ID is the unique artist identifier.
	ID string `json:"id"`

	// Name is the artist display name.
	Name string `json:"name"`

	// Genre is the primary genre, or "Unknown" when no tags resolved.
	Genre string `json:"genre"`

	// Genres is the full resolved genre set (empty for unknown artists).
	Genres []string `json:"genres,omitempty"`

	// PlayCount is the number of listen events for this artist in range.
	PlayCount int `json:"play_count"`

	// ImageURL is an optional artist image for visualization.
	ImageURL string `json:"image_url,omitempty"`

	// ExternalID is an optional upstream identifier (e.g. MusicBrainz).
	ExternalID string `json:"external_id,omitempty"`
}

// ArtistEdge represents a relationship between two artists.
//
// Invariants: Source != Target, and the unordered {Source, Target} pair
// is unique in a graph's edge set. When both signals link a pair the
// edge carries EdgeKindBoth and the summed weight.
type ArtistEdge struct {
	// Source is the ID of the first artist.
	Source string `json:"source"`

	// Target is the ID of the second artist.
	Target string `json:"target"`

	// Weight is the combined strength of the connection (higher = stronger).
	Weight float64 `json:"weight"`

	// Kind categorizes the relationship signal.
	Kind EdgeKind `json:"kind"`

	// SharedGenres lists the genre tags both artists carry (genre/both edges).
	SharedGenres []string `json:"shared_genres,omitempty"`

	// ProximityScore is the co-occurrence count within the proximity
	// window (proximity/both edges).
	ProximityScore float64 `json:"proximity_score,omitempty"`
}

// DateRange is the inclusive date window a graph was built over.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// GraphSummary provides aggregate statistics about the network.
type GraphSummary struct {
	// TotalArtists is the count of nodes in the graph.
	TotalArtists int `json:"total_artists"`

	// TotalConnections is the count of edges after merging and filtering.
	TotalConnections int `json:"total_connections"`

	// DateRange is present only when both a start and end date were
	// supplied; it is omitted entirely otherwise.
	DateRange *DateRange `json:"date_range,omitempty"`
}

// GraphMetadata provides provenance information for a build.
type GraphMetadata struct {
	// EventCount is the number of listen events analyzed.
	EventCount int `json:"event_count"`

	// GeneratedAt is when the graph was built.
	GeneratedAt time.Time `json:"generated_at"`

	// BuildTimeMs is the graph construction time.
	BuildTimeMs int64 `json:"build_time_ms"`
}

// ArtistGraph is the complete artist relationship network for one
// request. It is a pure function's output: constructed once, fully
// owned by the caller, never mutated afterwards.
type ArtistGraph struct {
	Nodes    []ArtistNode  `json:"nodes"`
	Edges    []ArtistEdge  `json:"edges"`
	Summary  GraphSummary  `json:"summary"`
	Metadata GraphMetadata `json:"metadata"`
}
