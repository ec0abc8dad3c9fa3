package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T, secret string) *TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec(secret, "HS256", 30*time.Minute)
	require.NoError(t, err)
	return codec
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, "super-secret")

	tok, err := codec.Issue("a@x.com", 42)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := codec.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Subject)
	assert.Equal(t, int64(42), claims.UserID)
}

func TestTokenCodec_Expired(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, "secret")

	tok, err := codec.IssueWithTTL("a@x.com", 1, -1*time.Second)
	require.NoError(t, err)

	_, err = codec.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := newTestCodec(t, "right-secret").Issue("a@x.com", 1)
	require.NoError(t, err)

	_, err = newTestCodec(t, "wrong-secret").Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodec_Malformed(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, "secret")

	for _, tok := range []string{"", "not.a.jwt", "a.b"} {
		_, err := codec.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestNewTokenCodec_RejectsUnknownAlgorithm(t *testing.T) {
	t.Parallel()

	_, err := NewTokenCodec("secret", "none", time.Minute)
	assert.Error(t, err)

	_, err = NewTokenCodec("secret", "RS256", time.Minute)
	assert.Error(t, err)
}
