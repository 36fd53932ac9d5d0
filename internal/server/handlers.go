package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/helixir/paper-metadata-service/internal/domain"
	"github.com/helixir/paper-metadata-service/internal/normalize"
	"github.com/helixir/paper-metadata-service/internal/search"
)

// searchWorksResponse is the envelope for GET /api/v1/works/search.
type searchWorksResponse struct {
	Records      []*domain.Record `json:"records"`
	TotalResults int              `json:"total_results"`
	Page         int              `json:"page"`
	PerPage      int              `json:"per_page"`
}

// searchWorks handles GET /api/v1/works/search.
// It validates the filter parameters, issues one upstream search, and returns
// the normalized records with pagination metadata.
func (s *Server) searchWorks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	spec, err := filterSpecFromQuery(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if s.metrics != nil {
		s.metrics.SearchesStarted.Inc()
		s.metrics.UpstreamRequestsTotal.WithLabelValues(s.client.Name(), "works").Inc()
	}
	start := time.Now()

	result, err := search.Works(ctx, s.client, spec)
	if s.metrics != nil {
		s.metrics.UpstreamRequestDuration.
			WithLabelValues(s.client.Name(), "works").
			Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if s.metrics != nil {
			s.metrics.SearchesFailed.WithLabelValues(errorKind(err)).Inc()
			if errors.Is(err, domain.ErrUpstreamRequest) {
				s.metrics.UpstreamRequestsFailed.WithLabelValues(s.client.Name(), "works").Inc()
			}
		}
		s.logger.Error().
			Err(err).
			Str("query", spec.Query).
			Str("correlation_id", correlationIDFromContext(ctx)).
			Msg("work search failed")
		writeDomainError(w, err)
		return
	}

	records := normalize.Records(result.Records)
	if s.metrics != nil {
		s.metrics.SearchesCompleted.Inc()
		s.metrics.SearchDuration.Observe(time.Since(start).Seconds())
		s.metrics.RecordsPerSearch.Observe(float64(len(records)))
		s.metrics.RecordsNormalized.Add(float64(len(records)))
		for _, record := range records {
			if record.Abstract == "" {
				s.metrics.EmptyAbstracts.Inc()
			}
		}
	}

	writeJSON(w, http.StatusOK, searchWorksResponse{
		Records:      records,
		TotalResults: result.TotalResults,
		Page:         result.Page,
		PerPage:      result.PerPage,
	})
}

// getWork handles GET /api/v1/works/{workID}.
// It fetches a single work by its source identifier and returns it normalized.
func (s *Server) getWork(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	workID := chi.URLParam(r, "workID")

	if s.metrics != nil {
		s.metrics.UpstreamRequestsTotal.WithLabelValues(s.client.Name(), "work").Inc()
	}
	start := time.Now()

	raw, err := search.GetWork(ctx, s.client, workID)
	if s.metrics != nil {
		s.metrics.UpstreamRequestDuration.
			WithLabelValues(s.client.Name(), "work").
			Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if s.metrics != nil && errors.Is(err, domain.ErrUpstreamRequest) {
			s.metrics.UpstreamRequestsFailed.WithLabelValues(s.client.Name(), "work").Inc()
		}
		s.logger.Error().
			Err(err).
			Str("work_id", workID).
			Str("correlation_id", correlationIDFromContext(ctx)).
			Msg("work fetch failed")
		writeDomainError(w, err)
		return
	}

	record, err := normalize.Normalize(raw)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordsMalformed.Inc()
		}
		writeDomainError(w, err)
		return
	}
	if s.metrics != nil {
		s.metrics.RecordsNormalized.Inc()
	}

	writeJSON(w, http.StatusOK, record)
}

// filterSpecFromQuery builds a FilterSpec from request query parameters.
// Unparseable numeric or boolean parameters surface as InvalidFilterError so
// callers get the same error shape as for out-of-range values.
func filterSpecFromQuery(r *http.Request) (search.FilterSpec, error) {
	q := r.URL.Query()

	spec := search.NewFilterSpec(q.Get("q"))

	if perPageParam := q.Get("per_page"); perPageParam != "" {
		perPage, err := strconv.Atoi(perPageParam)
		if err != nil {
			return spec, domain.NewInvalidFilterError("per_page", "must be an integer")
		}
		spec.PerPage = perPage
	}

	if pageParam := q.Get("page"); pageParam != "" {
		page, err := strconv.Atoi(pageParam)
		if err != nil {
			return spec, domain.NewInvalidFilterError("page", "must be an integer")
		}
		spec.Page = page
	}

	if excludeParam := q.Get("exclude_retracted"); excludeParam != "" {
		exclude, err := strconv.ParseBool(excludeParam)
		if err != nil {
			return spec, domain.NewInvalidFilterError("exclude_retracted", "must be a boolean")
		}
		spec.ExcludeRetracted = exclude
	}

	if oaOnlyParam := q.Get("open_access_only"); oaOnlyParam != "" {
		oaOnly, err := strconv.ParseBool(oaOnlyParam)
		if err != nil {
			return spec, domain.NewInvalidFilterError("open_access_only", "must be a boolean")
		}
		spec.OpenAccessOnly = oaOnly
	}

	if oaStatusParam := q.Get("oa_status"); oaStatusParam != "" {
		spec.OAStatus = domain.OAStatus(oaStatusParam)
	}

	return spec, nil
}

// writeDomainError maps domain errors to appropriate HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidFilter):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUpstreamRequest):
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, domain.ErrMalformedRecord):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// errorKind labels an error for the searches_failed_total metric.
func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidFilter):
		return "invalid_filter"
	case errors.Is(err, domain.ErrUpstreamRequest):
		return "upstream"
	default:
		return "other"
	}
}
