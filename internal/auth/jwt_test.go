package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute, time.Hour)

	pair, err := tm.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	userID, err := tm.VerifyAccess(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestTokenManager_TypeMismatch(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute, time.Hour)

	pair, err := tm.Issue(42)
	require.NoError(t, err)

	// a refresh token must not grant access
	_, err = tm.VerifyAccess(pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// and an access token must not refresh
	_, err = tm.Refresh(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute, time.Hour)
	other := NewTokenManager("different", time.Minute, time.Hour)

	pair, err := tm.Issue(42)
	require.NoError(t, err)

	_, err = other.VerifyAccess(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Expiry(t *testing.T) {
	tm := NewTokenManager("secret", time.Nanosecond, time.Hour)

	pair, err := tm.Issue(42)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = tm.VerifyAccess(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Refresh(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute, time.Hour)

	pair, err := tm.Issue(42)
	require.NoError(t, err)

	next, err := tm.Refresh(pair.Refresh)
	require.NoError(t, err)

	userID, err := tm.VerifyAccess(next.Access)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestTokenManager_Garbage(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute, time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tm.VerifyAccess(token)
		assert.ErrorIs(t, err, ErrInvalidToken, token)
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("super-secret")
	require.NoError(t, err)
	assert.NotEqual(t, "super-secret", hash)

	assert.True(t, CheckPassword(hash, "super-secret"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("", "super-secret"))
}
