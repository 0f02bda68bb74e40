package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(http.StatusNotFound, "thing not found")
	assert.Equal(t, http.StatusNotFound, err.Code)
	assert.Equal(t, "thing not found", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestWrapKeepsSentinelMatching(t *testing.T) {
	sentinel := New(http.StatusBadRequest, "capacity exceeded")
	wrapped := Wrap(sentinel, sentinel.Code, "capacity exceeded, maximum: 8")

	assert.ErrorIs(t, wrapped, sentinel)
	assert.Equal(t, "capacity exceeded, maximum: 8", wrapped.Error())
	assert.Equal(t, http.StatusBadRequest, wrapped.Code)
}
