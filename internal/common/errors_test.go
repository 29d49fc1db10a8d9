package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	wrapped := NewUserError("invalid search parameters", ErrNoLocations)

	assert.Equal(t, "invalid search parameters: no locations provided", wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrNoLocations)

	var userErr *UserError
	require.ErrorAs(t, wrapped, &userErr)
	assert.Equal(t, "invalid search parameters", userErr.UserMessage)
}

func TestUserError_NoCause(t *testing.T) {
	err := NewUserError("something went wrong", nil)
	assert.Equal(t, "something went wrong", err.Error())
	assert.NoError(t, errors.Unwrap(err))
}
