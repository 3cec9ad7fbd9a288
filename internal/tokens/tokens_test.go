package tokens

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := []byte("access-secret")
	id := uuid.New()

	tok, err := NewAccessToken(secret, id, "admin", time.Now().Add(time.Minute))
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(tok, secret)
	require.NoError(t, err)
	require.Equal(t, id.String(), claims.Subject)
	require.Equal(t, "admin", claims.Role)
}

func TestAccessTokenRejectsWrongSecretAndExpiry(t *testing.T) {
	id := uuid.New()

	tok, err := NewAccessToken([]byte("a"), id, "user", time.Now().Add(time.Minute))
	require.NoError(t, err)
	_, err = AccessClaimsFromToken(tok, []byte("b"))
	require.Error(t, err)

	expired, err := NewAccessToken([]byte("a"), id, "user", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = AccessClaimsFromToken(expired, []byte("a"))
	require.Error(t, err)
}

func TestRefreshTokenCarriesJTI(t *testing.T) {
	secret := []byte("refresh-secret")
	id := uuid.New()

	tok, jti, err := NewRefreshToken(secret, id, time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := RefreshClaimsFromToken(tok, secret)
	require.NoError(t, err)
	require.Equal(t, jti, claims.ID)
	require.Equal(t, id.String(), claims.Subject)
	require.Len(t, Sha256Hex(tok), 64)
}
