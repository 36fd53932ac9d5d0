package search

import (
	"context"
	"errors"
	"strings"

	"github.com/helixir/paper-metadata-service/internal/domain"
	"github.com/helixir/paper-metadata-service/internal/metasource"
)

// Works validates the filter specification, issues exactly one call to the
// injected upstream client, and returns the raw records it produced.
//
// Validation failures surface as InvalidFilterError before any network
// attempt. Any failure raised by the upstream client is re-wrapped as
// UpstreamRequestError carrying the original cause. No retry is performed
// here; retry policy belongs to the upstream client or the caller.
func Works(ctx context.Context, client metasource.Client, spec FilterSpec) (*metasource.WorksResult, error) {
	spec.applyDefaults()

	if err := spec.Validate(); err != nil {
		return nil, err
	}

	result, err := client.Works(ctx, spec.worksRequest())
	if err != nil {
		return nil, domain.NewUpstreamRequestError(client.Name(), "failed to retrieve works", err)
	}

	return result, nil
}

// GetWork retrieves a single raw record by its source identifier through the
// injected upstream client. Not-found passes through untouched so callers can
// distinguish it from transport failures; everything else is re-wrapped as
// UpstreamRequestError.
func GetWork(ctx context.Context, client metasource.Client, id string) (domain.RawRecord, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewInvalidFilterError("work_id", "must be a non-empty string")
	}

	record, err := client.GetWork(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, domain.NewUpstreamRequestError(client.Name(), "failed to retrieve work", err)
	}

	return record, nil
}
