package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixir/paper-metadata-service/internal/domain"
)

func TestNewFilterSpec(t *testing.T) {
	t.Run("applies documented defaults", func(t *testing.T) {
		spec := NewFilterSpec("machine learning")

		assert.Equal(t, "machine learning", spec.Query)
		assert.Equal(t, DefaultPerPage, spec.PerPage)
		assert.Equal(t, 1, spec.Page)
		assert.True(t, spec.ExcludeRetracted)
		assert.False(t, spec.OpenAccessOnly)
		assert.Empty(t, spec.OAStatus)
	})
}

func TestFilterSpecValidate(t *testing.T) {
	t.Run("accepts a default spec", func(t *testing.T) {
		require.NoError(t, NewFilterSpec("quantum computing").Validate())
	})

	t.Run("accepts every valid oa_status", func(t *testing.T) {
		for _, status := range domain.ValidFilterOAStatuses {
			spec := NewFilterSpec("ai")
			spec.OAStatus = status
			assert.NoError(t, spec.Validate(), "oa_status %q should be valid", status)
		}
	})

	t.Run("rejects empty query", func(t *testing.T) {
		spec := NewFilterSpec("")

		err := spec.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidFilter)

		var filterErr *domain.InvalidFilterError
		require.ErrorAs(t, err, &filterErr)
		assert.Equal(t, "query", filterErr.Field)
	})

	t.Run("rejects whitespace-only query", func(t *testing.T) {
		spec := NewFilterSpec("   \t ")

		err := spec.Validate()
		assert.ErrorIs(t, err, domain.ErrInvalidFilter)
	})

	t.Run("rejects per_page out of range", func(t *testing.T) {
		for _, perPage := range []int{-5, 201, 1000} {
			spec := NewFilterSpec("ai")
			spec.PerPage = perPage

			err := spec.Validate()
			require.Error(t, err, "per_page %d should be rejected", perPage)

			var filterErr *domain.InvalidFilterError
			require.ErrorAs(t, err, &filterErr)
			assert.Equal(t, "per_page", filterErr.Field)
		}
	})

	t.Run("accepts per_page boundaries", func(t *testing.T) {
		for _, perPage := range []int{1, MaxPerPage} {
			spec := NewFilterSpec("ai")
			spec.PerPage = perPage
			assert.NoError(t, spec.Validate())
		}
	})

	t.Run("rejects page below one", func(t *testing.T) {
		spec := NewFilterSpec("ai")
		spec.Page = -1

		err := spec.Validate()
		require.Error(t, err)

		var filterErr *domain.InvalidFilterError
		require.ErrorAs(t, err, &filterErr)
		assert.Equal(t, "page", filterErr.Field)
	})

	t.Run("rejects unknown oa_status", func(t *testing.T) {
		for _, status := range []domain.OAStatus{"diamond", "closed", "GOLD"} {
			spec := NewFilterSpec("ai")
			spec.OAStatus = status

			err := spec.Validate()
			require.Error(t, err, "oa_status %q should be rejected", status)

			var filterErr *domain.InvalidFilterError
			require.ErrorAs(t, err, &filterErr)
			assert.Equal(t, "oa_status", filterErr.Field)
		}
	})
}

func TestFilterSpecFilters(t *testing.T) {
	t.Run("default spec excludes retracted only", func(t *testing.T) {
		spec := NewFilterSpec("ai")

		assert.Equal(t, []string{"is_retracted:false"}, spec.Filters())
	})

	t.Run("open access only adds is_oa constraint", func(t *testing.T) {
		spec := NewFilterSpec("ai")
		spec.OpenAccessOnly = true

		assert.Equal(t, []string{"is_retracted:false", "is_oa:true"}, spec.Filters())
	})

	t.Run("oa_status combines with open access only", func(t *testing.T) {
		spec := NewFilterSpec("ai")
		spec.OpenAccessOnly = true
		spec.OAStatus = domain.OAStatusGold

		assert.Equal(t,
			[]string{"is_retracted:false", "is_oa:true", "oa_status:gold"},
			spec.Filters())
	})

	t.Run("oa_status applies without open access only", func(t *testing.T) {
		spec := NewFilterSpec("ai")
		spec.OAStatus = domain.OAStatusGreen

		assert.Equal(t, []string{"is_retracted:false", "oa_status:green"}, spec.Filters())
	})

	t.Run("no constraints when everything is off", func(t *testing.T) {
		spec := NewFilterSpec("ai")
		spec.ExcludeRetracted = false

		assert.Empty(t, spec.Filters())
	})

	t.Run("composition order is fixed", func(t *testing.T) {
		spec := NewFilterSpec("ai")
		spec.OpenAccessOnly = true
		spec.OAStatus = domain.OAStatusHybrid

		first := spec.Filters()
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, spec.Filters())
		}
	})
}
