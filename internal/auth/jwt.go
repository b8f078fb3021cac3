package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the caller resolved from a bearer token.
type Identity struct {
	UserID int64
	Role   string
}

type Claims struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Authenticate resolves an Authorization header value of the form "Bearer <token>".
func (a *Authenticator) Authenticate(header string) (Identity, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return Identity{}, domain.NewError(domain.KindUnauthorized, "missing bearer token")
	}

	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !tok.Valid {
		return Identity{}, domain.Wrap(domain.KindUnauthorized, "invalid token", err)
	}
	if claims.UserID <= 0 {
		return Identity{}, domain.NewError(domain.KindUnauthorized, "token has no user")
	}
	return Identity{UserID: claims.UserID, Role: claims.Role}, nil
}

// Issue signs an HS256 token for the user. Used by tooling and tests.
func (a *Authenticator) Issue(userID int64, role string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}
