// Tunegraph - Artist Listening Network Analytics
// Copyright 2026 Tunegraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunegraph/tunegraph

// Package models provides the shared data structures for Tunegraph:
// listening events, the artist network graph (nodes, edges, summary),
// and the standardized API response envelope.
package models
