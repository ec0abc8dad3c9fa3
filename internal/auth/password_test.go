package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Password1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, VerifyPassword("Password1", hash))
	assert.False(t, VerifyPassword("Password2", hash))
	assert.False(t, VerifyPassword("", hash))
}

func TestHashPassword_Salted(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("Password1")
	require.NoError(t, err)
	h2, err := HashPassword("Password1")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "two hashes of the same input must differ")
	assert.True(t, VerifyPassword("Password1", h1))
	assert.True(t, VerifyPassword("Password1", h2))
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	t.Parallel()

	for _, digest := range []string{
		"",
		"no-separator",
		"!!!:???",
		"dmFsaWQ:!!!",
	} {
		assert.False(t, VerifyPassword("Password1", digest), "digest %q", digest)
	}
}
