// Package normalize converts raw, untyped works from the upstream metadata
// source into the stable consumer-facing record schema.
//
// Normalization is a pure extraction pass over an already-parsed nested
// structure: every missing or malformed field degrades to its documented
// empty or default value rather than raising, because upstream records are
// known to be inconsistently populated. The only error a caller can see is
// MalformedRecordError, for input that is not a structured record at all.
package normalize

import (
	"sort"
	"strings"

	"github.com/helixir/paper-metadata-service/internal/domain"
)

const (
	// doiPrefix is the URL prefix that OpenAlex uses for DOIs.
	doiPrefix = "https://doi.org/"

	// orcidPrefix is the URL prefix for ORCID identifiers.
	orcidPrefix = "https://orcid.org/"

	// maxConcepts caps the ranked concept list.
	maxConcepts = 5
)

// Normalize converts one raw record into a normalized Record. It is a total
// function over any dict-like nested structure: data-quality gaps never fail.
// Only input that is not a structured record yields MalformedRecordError.
func Normalize(raw any) (*domain.Record, error) {
	record, ok := raw.(map[string]any)
	if !ok || record == nil {
		return nil, domain.NewMalformedRecordError("input is not a structured record")
	}

	openAccess := getMap(record, "open_access")

	return &domain.Record{
		SourceID:        getString(record, "id"),
		Title:           extractTitle(record),
		Authors:         extractAuthors(record),
		Abstract:        reconstructAbstract(record["abstract_inverted_index"]),
		PublicationYear: getInt(record, "publication_year"),
		DOI:             normalizeDOI(getString(record, "doi")),
		CitedByCount:    getInt(record, "cited_by_count"),
		Concepts:        extractConcepts(record),
		SourceName:      extractSourceName(record),
		IsOpenAccess:    getBool(openAccess, "is_oa"),
		OAStatus:        domain.ParseOAStatus(getString(openAccess, "oa_status")),
		FullTextURL:     extractFullTextURL(record),
	}, nil
}

// Records normalizes a batch of raw records, preserving order. Entries that
// are not structured records are dropped; with a well-formed upstream client
// that never happens.
func Records(raws []domain.RawRecord) []*domain.Record {
	records := make([]*domain.Record, 0, len(raws))
	for _, raw := range raws {
		record, err := Normalize(raw)
		if err != nil {
			continue
		}
		records = append(records, record)
	}
	return records
}

// extractTitle reads the work title, falling back to display_name which is
// usually populated even when title is not.
func extractTitle(record map[string]any) string {
	if title := getString(record, "title"); title != "" {
		return title
	}
	return getString(record, "display_name")
}

// extractAuthors reads authorship entries in source order. A malformed single
// entry is skipped, not fatal to the whole record.
func extractAuthors(record map[string]any) []domain.Author {
	entries := getSlice(record, "authorships")
	authors := make([]domain.Author, 0, len(entries))

	for _, entry := range entries {
		authorship, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		author := getMap(authorship, "author")

		institutions := make([]string, 0)
		for _, inst := range getSlice(authorship, "institutions") {
			instMap, ok := inst.(map[string]any)
			if !ok {
				continue
			}
			if name := getString(instMap, "display_name"); name != "" {
				institutions = append(institutions, name)
			}
		}

		authors = append(authors, domain.Author{
			Name:         getString(author, "display_name"),
			ORCID:        normalizeORCID(getString(author, "orcid")),
			Institutions: institutions,
		})
	}

	return authors
}

// extractConcepts reads concept entries, ranks them descending by score with
// the original order preserved on ties, and keeps the top entries.
func extractConcepts(record map[string]any) []domain.Concept {
	entries := getSlice(record, "concepts")
	concepts := make([]domain.Concept, 0, len(entries))

	for _, entry := range entries {
		conceptMap, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		concepts = append(concepts, domain.Concept{
			Name:  getString(conceptMap, "display_name"),
			Score: getFloat(conceptMap, "score"),
		})
	}

	sort.SliceStable(concepts, func(i, j int) bool {
		return concepts[i].Score > concepts[j].Score
	})

	if len(concepts) > maxConcepts {
		concepts = concepts[:maxConcepts]
	}

	return concepts
}

// extractSourceName reads the primary venue name from the nested location block.
func extractSourceName(record map[string]any) string {
	location := getMap(record, "primary_location")
	source := getMap(location, "source")
	return getString(source, "display_name")
}

// extractFullTextURL reads the best open-access location, preferring a direct
// PDF link and falling back to the publisher's landing page.
func extractFullTextURL(record map[string]any) string {
	bestOA := getMap(record, "best_oa_location")

	if pdfURL := getString(bestOA, "pdf_url"); pdfURL != "" {
		return pdfURL
	}

	return getString(bestOA, "landing_page_url")
}

// normalizeDOI strips the https://doi.org/ prefix from DOIs and returns lowercase.
func normalizeDOI(doi string) string {
	if doi == "" {
		return ""
	}
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, doiPrefix)
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.ToLower(strings.TrimSpace(doi))
}

// normalizeORCID strips any URL prefix from ORCID identifiers.
func normalizeORCID(orcid string) string {
	if orcid == "" {
		return ""
	}
	orcid = strings.TrimPrefix(orcid, orcidPrefix)
	orcid = strings.TrimPrefix(orcid, "http://orcid.org/")
	return strings.TrimSpace(orcid)
}

// getString reads a string field, returning "" when the field is absent,
// null, or not a string.
func getString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// getBool reads a boolean field, defaulting to false.
func getBool(m map[string]any, key string) bool {
	if m == nil {
		return false
	}
	if b, ok := m[key].(bool); ok {
		return b
	}
	return false
}

// getInt reads an integer field. JSON decoding yields float64, so both
// numeric representations are accepted.
func getInt(m map[string]any, key string) int {
	if m == nil {
		return 0
	}
	switch n := m[key].(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}

// getFloat reads a numeric field as float64, defaulting to 0.
func getFloat(m map[string]any, key string) float64 {
	if m == nil {
		return 0
	}
	switch n := m[key].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

// getMap reads a nested object field, returning nil when absent or not an object.
func getMap(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	if nested, ok := m[key].(map[string]any); ok {
		return nested
	}
	return nil
}

// getSlice reads an array field, returning nil when absent or not an array.
func getSlice(m map[string]any, key string) []any {
	if m == nil {
		return nil
	}
	if list, ok := m[key].([]any); ok {
		return list
	}
	return nil
}
