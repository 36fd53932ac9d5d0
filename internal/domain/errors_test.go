package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidFilterError(t *testing.T) {
	err := NewInvalidFilterError("per_page", "must be between 1 and 200")

	assert.ErrorIs(t, err, ErrInvalidFilter)
	assert.Contains(t, err.Error(), "per_page")
	assert.Contains(t, err.Error(), "must be between 1 and 200")

	var filterErr *InvalidFilterError
	require.ErrorAs(t, error(err), &filterErr)
	assert.Equal(t, "per_page", filterErr.Field)
}

func TestUpstreamRequestError(t *testing.T) {
	t.Run("matches the sentinel and preserves the cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewUpstreamRequestError("OpenAlex", "failed to retrieve works", cause)

		assert.ErrorIs(t, err, ErrUpstreamRequest)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "OpenAlex")
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("survives further wrapping", func(t *testing.T) {
		cause := errors.New("timeout")
		err := fmt.Errorf("handling search: %w",
			NewUpstreamRequestError("OpenAlex", "failed to retrieve works", cause))

		assert.ErrorIs(t, err, ErrUpstreamRequest)
		assert.ErrorIs(t, err, cause)

		var upstreamErr *UpstreamRequestError
		require.ErrorAs(t, err, &upstreamErr)
		assert.Equal(t, "OpenAlex", upstreamErr.Source)
	})

	t.Run("works without a cause", func(t *testing.T) {
		err := NewUpstreamRequestError("OpenAlex", "rate limited", nil)

		assert.ErrorIs(t, err, ErrUpstreamRequest)
		assert.Contains(t, err.Error(), "rate limited")
	})

	t.Run("does not match unrelated sentinels", func(t *testing.T) {
		err := NewUpstreamRequestError("OpenAlex", "boom", nil)

		assert.NotErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrInvalidFilter)
	})
}

func TestMalformedRecordError(t *testing.T) {
	err := NewMalformedRecordError("input is not a structured record")

	assert.ErrorIs(t, err, ErrMalformedRecord)
	assert.Contains(t, err.Error(), "not a structured record")
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("work", "W404")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "work")
	assert.Contains(t, err.Error(), "W404")

	var notFoundErr *NotFoundError
	require.ErrorAs(t, error(err), &notFoundErr)
	assert.Equal(t, "work", notFoundErr.Entity)
	assert.Equal(t, "W404", notFoundErr.ID)
}

func TestExternalAPIError(t *testing.T) {
	t.Run("reports source and status", func(t *testing.T) {
		err := NewExternalAPIError("OpenAlex", 503, "service unavailable", nil)

		assert.Contains(t, err.Error(), "OpenAlex")
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("unwraps to the cause", func(t *testing.T) {
		cause := errors.New("read: connection reset")
		err := NewExternalAPIError("OpenAlex", 502, "bad gateway", cause)

		assert.ErrorIs(t, err, cause)
	})
}
