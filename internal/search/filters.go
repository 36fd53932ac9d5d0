// Package search builds, validates, and executes filtered work searches
// against an injected upstream metadata source.
package search

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/helixir/paper-metadata-service/internal/domain"
	"github.com/helixir/paper-metadata-service/internal/metasource"
)

const (
	// DefaultPerPage is the default number of records per page.
	DefaultPerPage = 25

	// MaxPerPage is the upstream per-page limit.
	MaxPerPage = 200
)

var validate = validator.New()

// FilterSpec is the bounded set of search filters accepted by the service.
// A specification is fully validated before any upstream call is attempted;
// no partially-valid request is ever issued.
type FilterSpec struct {
	// Query is the full-text search query (required).
	Query string `validate:"required"`

	// PerPage is the number of results per page, between 1 and 200.
	// Defaults to 25.
	PerPage int `validate:"min=1,max=200"`

	// Page is the 1-indexed result page. Defaults to 1.
	Page int `validate:"min=1"`

	// ExcludeRetracted filters out retracted works. Defaults to true via
	// NewFilterSpec; a zero-value FilterSpec does not exclude them.
	ExcludeRetracted bool

	// OpenAccessOnly restricts results to open access works.
	OpenAccessOnly bool

	// OAStatus optionally restricts results to one open access type.
	// Applied independently of OpenAccessOnly: a caller may request a specific
	// OA type without forcing the OA-only constraint.
	OAStatus domain.OAStatus `validate:"omitempty,oneof=gold green hybrid bronze"`
}

// NewFilterSpec returns a FilterSpec for the given query with default
// pagination and the retracted-works exclusion enabled.
func NewFilterSpec(query string) FilterSpec {
	return FilterSpec{
		Query:            query,
		PerPage:          DefaultPerPage,
		Page:             1,
		ExcludeRetracted: true,
	}
}

// applyDefaults backfills unset pagination fields so a spec built without
// NewFilterSpec still validates usefully. Explicit out-of-range values are
// left alone for validation to reject.
func (s *FilterSpec) applyDefaults() {
	if s.PerPage == 0 {
		s.PerPage = DefaultPerPage
	}
	if s.Page == 0 {
		s.Page = 1
	}
}

// Validate checks every constraint on the specification and returns an
// InvalidFilterError naming the first offending field.
func (s FilterSpec) Validate() error {
	if strings.TrimSpace(s.Query) == "" {
		return domain.NewInvalidFilterError("query", "must be a non-empty string")
	}

	if err := validate.Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return invalidFilterError(fieldErrs[0])
		}
		return domain.NewInvalidFilterError("filter", err.Error())
	}

	return nil
}

// invalidFilterError maps a validator field error to the typed filter error.
func invalidFilterError(fe validator.FieldError) error {
	switch fe.StructField() {
	case "Query":
		return domain.NewInvalidFilterError("query", "must be a non-empty string")
	case "PerPage":
		return domain.NewInvalidFilterError("per_page", "must be between 1 and 200")
	case "Page":
		return domain.NewInvalidFilterError("page", "must be at least 1")
	case "OAStatus":
		return domain.NewInvalidFilterError("oa_status", "must be one of gold, green, hybrid, bronze")
	default:
		return domain.NewInvalidFilterError(strings.ToLower(fe.StructField()), "invalid value")
	}
}

// Filters returns the composed constraint expressions. The order is fixed
// (retracted, open access, OA type) so combined filters are deterministic and
// commutative in effect.
func (s FilterSpec) Filters() []string {
	var filters []string

	if s.ExcludeRetracted {
		filters = append(filters, "is_retracted:false")
	}

	if s.OpenAccessOnly {
		filters = append(filters, "is_oa:true")
	}

	if s.OAStatus != "" {
		filters = append(filters, "oa_status:"+string(s.OAStatus))
	}

	return filters
}

// worksRequest assembles the upstream request: base query, composed filter
// constraints, then pagination.
func (s FilterSpec) worksRequest() metasource.WorksRequest {
	return metasource.WorksRequest{
		Query:   s.Query,
		Filters: s.Filters(),
		Page:    s.Page,
		PerPage: s.PerPage,
	}
}
