package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHashAndCompare(t *testing.T) {
	h := NewBcryptPasswordHasherWithCost(4)

	hash, err := h.Hash("supersecret")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret", hash)

	assert.NoError(t, h.Compare(hash, "supersecret"))
	assert.Error(t, h.Compare(hash, "wrong"))
}

func TestBcryptHashesDiffer(t *testing.T) {
	h := NewBcryptPasswordHasherWithCost(4)

	a, err := h.Hash("supersecret")
	require.NoError(t, err)
	b, err := h.Hash("supersecret")
	require.NoError(t, err)

	// bcrypt salts per hash.
	assert.NotEqual(t, a, b)
}
