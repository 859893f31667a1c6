// Package auth issues and verifies the signed identity tokens handed to clerks.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that cannot be trusted:
// bad signature, wrong algorithm, expired, or missing the clerk id.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the standard claims plus the clerk id
type Claims struct {
	jwt.RegisteredClaims
	ClerkID int64 `json:"clerk_id"`
}

// TokenManager is stateless; there is no revocation list.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns how long issued tokens stay valid
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for clerkID that expires after the configured TTL
func (m *TokenManager) Issue(clerkID int64) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(clerkID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		ClerkID: clerkID,
	})

	return token.SignedString(m.secret)
}

// Verify returns the clerk id embedded in a valid token
func (m *TokenManager) Verify(tokenString string) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid || claims.ExpiresAt == nil || claims.ClerkID <= 0 {
		return 0, ErrInvalidToken
	}

	return claims.ClerkID, nil
}
