package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestSignAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(15 * time.Minute).UTC()
	token, err := SignAccessToken(42, "admin", testSecret, exp)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := AccessClaimsFromToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, "admin", claims.Role)
	uid, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), uid)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestSignRefreshToken_UniqueJTI(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(24 * time.Hour)
	first, err := SignRefreshToken(42, testSecret, exp)
	require.NoError(t, err)
	second, err := SignRefreshToken(42, testSecret, exp)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	claims, err := RefreshClaimsFromToken(first, testSecret)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
}

func TestAccessClaimsFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := SignAccessToken(42, "user", testSecret, time.Now().Add(time.Minute))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, []byte("other-secret"))
	require.Error(t, err)
}

func TestAccessClaimsFromToken_Expired(t *testing.T) {
	t.Parallel()

	token, err := SignAccessToken(42, "user", testSecret, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, testSecret)
	require.Error(t, err)
}
