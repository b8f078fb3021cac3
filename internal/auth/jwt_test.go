package auth

import (
	"testing"
	"time"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	a := NewAuthenticator("secret")

	token, err := a.Issue(7, "HOTEL_OWNER", time.Hour)
	require.NoError(t, err)

	id, err := a.Authenticate("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: 7, Role: "HOTEL_OWNER"}, id)
}

func TestAuthenticate_Rejects(t *testing.T) {
	a := NewAuthenticator("secret")

	expired, err := a.Issue(7, "", -time.Minute)
	require.NoError(t, err)

	foreign, err := NewAuthenticator("other").Issue(7, "", time.Hour)
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Role: "USER"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 7}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, header := range map[string]string{
		"empty":        "",
		"no scheme":    token(t, a),
		"expired":      "Bearer " + expired,
		"wrong secret": "Bearer " + foreign,
		"no user":      "Bearer " + noUser,
		"alg none":     "Bearer " + none,
		"garbage":      "Bearer not-a-token",
		"bearer only":  "Bearer ",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := a.Authenticate(header)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}

func token(t *testing.T, a *Authenticator) string {
	t.Helper()
	s, err := a.Issue(1, "", time.Hour)
	require.NoError(t, err)
	return s
}
