package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOAStatus(t *testing.T) {
	tests := []struct {
		input string
		want  OAStatus
	}{
		{"gold", OAStatusGold},
		{"green", OAStatusGreen},
		{"hybrid", OAStatusHybrid},
		{"bronze", OAStatusBronze},
		{"closed", OAStatusClosed},
		{"GOLD", OAStatusGold},
		{"  green  ", OAStatusGreen},
		{"", OAStatusClosed},
		{"diamond", OAStatusClosed},
		{"unknown", OAStatusClosed},
	}

	for _, tt := range tests {
		t.Run("input "+tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOAStatus(tt.input))
		})
	}
}

func TestOAStatusIsValidFilterValue(t *testing.T) {
	t.Run("accepts requestable statuses", func(t *testing.T) {
		for _, status := range ValidFilterOAStatuses {
			assert.True(t, status.IsValidFilterValue(), "%q should be a valid filter value", status)
		}
	})

	t.Run("rejects closed and unknown values", func(t *testing.T) {
		for _, status := range []OAStatus{OAStatusClosed, "", "diamond", "Gold"} {
			assert.False(t, status.IsValidFilterValue(), "%q should not be a valid filter value", status)
		}
	})
}

func TestRecordJSONShape(t *testing.T) {
	t.Run("every field is present in serialized output", func(t *testing.T) {
		record := Record{
			Authors:  []Author{},
			Concepts: []Concept{},
			OAStatus: OAStatusClosed,
		}

		data, err := json.Marshal(record)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))

		for _, field := range []string{
			"source_id", "title", "authors", "abstract", "publication_year",
			"doi", "cited_by_count", "concepts", "source_name",
			"is_open_access", "oa_status", "full_text_url",
		} {
			assert.Contains(t, decoded, field)
		}

		// Empty collections serialize as [] rather than null.
		assert.Equal(t, []any{}, decoded["authors"])
		assert.Equal(t, []any{}, decoded["concepts"])
		assert.Equal(t, "closed", decoded["oa_status"])
	})

	t.Run("author institutions serialize in order", func(t *testing.T) {
		author := Author{
			Name:         "John Smith",
			ORCID:        "0000-0001-2345-6789",
			Institutions: []string{"MIT", "Broad Institute"},
		}

		data, err := json.Marshal(author)
		require.NoError(t, err)

		assert.JSONEq(t,
			`{"name":"John Smith","orcid":"0000-0001-2345-6789","institutions":["MIT","Broad Institute"]}`,
			string(data))
	})
}
