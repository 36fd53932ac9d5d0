// Package metasource provides the upstream client capability for the academic
// metadata source.
//
// The search layer composes filter constraints and delegates the actual network
// call to a Client implementation injected by the caller. This keeps transport
// concerns (rate limiting, retries, timeouts) out of the request builder and
// allows tests to substitute a deterministic stand-in without network access.
package metasource

import (
	"context"

	"github.com/helixir/paper-metadata-service/internal/domain"
)

// WorksRequest carries already-composed search constraints to the upstream
// source. Filters are ordered by the request builder; implementations must
// preserve that order when encoding them.
type WorksRequest struct {
	// Query is the base full-text search query.
	Query string

	// Filters holds composed constraint expressions in builder order,
	// e.g. "is_retracted:false" or "oa_status:gold".
	Filters []string

	// Page is the 1-indexed result page.
	Page int

	// PerPage is the number of records per page.
	PerPage int
}

// WorksResult contains the raw records returned by a works search.
type WorksResult struct {
	// Records holds the raw, untyped works in result order.
	// May be empty if nothing matches the search criteria.
	Records []domain.RawRecord

	// TotalResults is the total number of works matching the query regardless
	// of pagination. Reported by the source and may be an estimate.
	TotalResults int

	// Page and PerPage echo the pagination the source applied.
	Page    int
	PerPage int
}

// Client defines the upstream metadata source capability.
//
// Implementations should:
//   - Respect context cancellation
//   - Apply rate limiting as needed
//   - Return raw records as decoded, without reshaping them
//   - Include appropriate error wrapping with source context
type Client interface {
	// Works queries the source for works matching the given request.
	Works(ctx context.Context, req WorksRequest) (*WorksResult, error)

	// GetWork retrieves a single work by its source-specific identifier
	// (e.g. an OpenAlex ID or DOI).
	//
	// Returns domain.ErrNotFound if the work does not exist.
	GetWork(ctx context.Context, id string) (domain.RawRecord, error)

	// Name returns a human-readable name for this source.
	// Used for logging, metrics, and error attribution.
	Name() string
}
