// Package observability provides logging and metrics support for the paper
// metadata service.
//
// # Overview
//
// The observability package provides:
//
//   - Structured logging with zerolog
//   - Prometheus metrics for searches, normalization, and upstream requests
//
// # Logging
//
// Create a logger from configuration:
//
//	cfg := observability.LoggingConfig{
//	    Level:     "info",
//	    Format:    "json",
//	    Output:    "stdout",
//	    AddSource: true,
//	}
//
//	logger := observability.NewLogger(cfg)
//	logger.Info().Str("query", query).Msg("search started")
//
// Add search context to logger:
//
//	logger = observability.WithSearchContext(logger, query, source)
//
// # Metrics
//
// Initialize metrics:
//
//	metrics := observability.NewMetrics("paper_metadata")
//
// Record metrics:
//
//	metrics.SearchesStarted.Inc()
//	metrics.RecordsNormalized.Add(42)
//
// # Standard Fields
//
// Common fields used across the service:
//
//   - query: User's search query
//   - source: Upstream metadata source (openalex)
//   - work_id: Work identifier
//   - correlation_id: Request correlation identifier
//
// # Thread Safety
//
// All components are safe for concurrent use from multiple goroutines.
package observability
