// Package domain defines the normalized record schema and error taxonomy for
// the paper metadata service.
package domain

import "strings"

// RawRecord is one work as decoded from the upstream JSON response.
// It is an externally-defined nested structure: fields may be absent, null,
// or malformed, and it is treated as read-only input.
type RawRecord = map[string]any

// OAStatus classifies how a paper's full text is made freely available.
type OAStatus string

// Open access status values as reported by OpenAlex.
const (
	OAStatusGold   OAStatus = "gold"
	OAStatusGreen  OAStatus = "green"
	OAStatusHybrid OAStatus = "hybrid"
	OAStatusBronze OAStatus = "bronze"
	OAStatusClosed OAStatus = "closed"
)

// ValidFilterOAStatuses lists the OA status values accepted as search filters.
// "closed" is a normalization default only and cannot be requested as a filter.
var ValidFilterOAStatuses = []OAStatus{OAStatusGold, OAStatusGreen, OAStatusHybrid, OAStatusBronze}

// IsValidFilterValue reports whether s may be used as an oa_status search filter.
func (s OAStatus) IsValidFilterValue() bool {
	switch s {
	case OAStatusGold, OAStatusGreen, OAStatusHybrid, OAStatusBronze:
		return true
	}
	return false
}

// ParseOAStatus maps a raw status string to an OAStatus, defaulting to
// OAStatusClosed when the value is absent or unrecognized.
func ParseOAStatus(s string) OAStatus {
	switch OAStatus(strings.ToLower(strings.TrimSpace(s))) {
	case OAStatusGold:
		return OAStatusGold
	case OAStatusGreen:
		return OAStatusGreen
	case OAStatusHybrid:
		return OAStatusHybrid
	case OAStatusBronze:
		return OAStatusBronze
	default:
		return OAStatusClosed
	}
}

// Author is one contributor to a work, in source order.
type Author struct {
	Name string `json:"name"`
	// ORCID is the author's ORCID identifier without the URL prefix,
	// or empty when the source does not report one.
	ORCID string `json:"orcid"`
	// Institutions holds affiliation display names in source order.
	Institutions []string `json:"institutions"`
}

// Concept is a topic tag assigned to a work with a relevance score.
type Concept struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Record is the stable, consumer-facing shape of one work. Every field is
// always present in serialized output; absence is expressed with empty or zero
// sentinels so downstream consumers never need existence checks. A Record is
// constructed fresh per raw record and never mutated afterwards.
type Record struct {
	// SourceID is the stable external identifier of the work.
	SourceID string `json:"source_id"`
	// Title may be empty when the source reports none.
	Title string `json:"title"`
	// Authors preserves the source ordering of authorship entries.
	Authors []Author `json:"authors"`
	// Abstract is reconstructed from the source's inverted index.
	Abstract string `json:"abstract"`
	// PublicationYear is 0 when the source reports none.
	PublicationYear int `json:"publication_year"`
	// DOI is normalized (URL prefix stripped, lowercased), empty when absent.
	DOI string `json:"doi"`
	// CitedByCount defaults to 0.
	CitedByCount int `json:"cited_by_count"`
	// Concepts holds at most five entries, ranked descending by score.
	Concepts []Concept `json:"concepts"`
	// SourceName is the primary venue or journal name, empty when absent.
	SourceName string `json:"source_name"`
	// IsOpenAccess defaults to false.
	IsOpenAccess bool `json:"is_open_access"`
	// OAStatus defaults to OAStatusClosed.
	OAStatus OAStatus `json:"oa_status"`
	// FullTextURL is the best open-access location, empty when absent.
	FullTextURL string `json:"full_text_url"`
}
