// Tunegraph - Artist Listening Network Analytics
// Copyright 2026 Tunegraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunegraph/tunegraph

// Package graph builds the weighted, typed artist network from a user's
// listening history.
//
// Two independent relation signals are computed and merged:
//
//   - genre affinity: artists sharing one or more genre tags
//   - temporal proximity: artists played close together in time
//
// The pipeline runs as one synchronous computation per request:
//
//	events -> node aggregation -> {genre edges, proximity edges} -> merge -> graph
//
// The node set is closed before edge construction begins: no edge may
// reference an artist that was filtered out of the node set, even if it
// appears in the raw event stream. All intermediate state is owned by a
// single Build call; concurrent requests share nothing but the read path
// to the event store.
package graph
