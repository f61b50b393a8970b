package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("pw123456")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NotContains(t, hash, "pw123456")
	assert.True(t, CheckPassword("pw123456", hash))
	assert.False(t, CheckPassword("wrong-password", hash))
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("pw123456")
	require.NoError(t, err)
	h2, err := HashPassword("pw123456")
	require.NoError(t, err)

	// Different salts produce different hashes for the same input.
	assert.NotEqual(t, h1, h2)
	assert.True(t, CheckPassword("pw123456", h1))
	assert.True(t, CheckPassword("pw123456", h2))
}

func TestHashPasswordTooLong(t *testing.T) {
	// bcrypt rejects inputs over 72 bytes.
	_, err := HashPassword(strings.Repeat("x", 100))
	assert.Error(t, err)
}
