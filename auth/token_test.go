package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse battery staple", hash)
	assert.True(t, CheckPassword("correct horse battery staple", hash))
	assert.False(t, CheckPassword("wrong password", hash))
}

func TestHashPasswordSalts(t *testing.T) {
	first, err := HashPassword("same input")
	require.NoError(t, err)
	second, err := HashPassword("same input")
	require.NoError(t, err)

	// bcrypt embeds a fresh salt, so two hashes of the same input differ
	assert.NotEqual(t, first, second)
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken("a@b.com", testSecret)
	require.NoError(t, err)

	email, err := DecodeToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", email)
}

func TestDecodeTamperedToken(t *testing.T) {
	token, err := GenerateAccessToken("a@b.com", testSecret)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("x", len(parts[2]))

	_, err = DecodeToken(tampered, testSecret)
	assert.Error(t, err)
}

func TestDecodeWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken("a@b.com", testSecret)
	require.NoError(t, err)

	_, err = DecodeToken(token, "another-secret")
	assert.Error(t, err)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := DecodeToken("not-a-token", testSecret)
	assert.Error(t, err)
}
