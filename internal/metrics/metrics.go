// Tunegraph - Artist Listening Network Analytics
// Copyright 2026 Tunegraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunegraph/tunegraph

// Package metrics provides Prometheus instrumentation for:
// - Graph construction (duration, size, errors)
// - Database query performance (DuckDB)
// - API endpoint latency and throughput
// - Genre resolver cache efficiency and circuit breaker state
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Graph Build Metrics
	GraphBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graph_build_duration_seconds",
			Help:    "Duration of artist graph builds in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	GraphBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graph_builds_total",
			Help: "Total number of artist graph builds",
		},
		[]string{"status"}, // "success", "invalid_params", "error"
	)

	GraphNodesPerBuild = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graph_nodes_per_build",
			Help:    "Number of artist nodes in built graphs",
			Buckets: []float64{0, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	GraphEdgesPerBuild = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graph_edges_per_build",
			Help:    "Number of edges in built graphs",
			Buckets: []float64{0, 10, 50, 100, 500, 1000, 5000, 10000},
		},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	// Genre Resolver Metrics
	GenreCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "genre_cache_hits_total",
			Help: "Total number of genre cache hits",
		},
	)

	GenreCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "genre_cache_misses_total",
			Help: "Total number of genre cache misses",
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 = closed, 1 = half-open, 2 = open)",
		},
		[]string{"name"},
	)
)
