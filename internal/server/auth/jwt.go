// Package auth issues and verifies HS256 access tokens, keeps the signing
// secret, and decides which callers may perform privileged operations.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lacs/lacsapi/internal/common"
	"github.com/lacs/lacsapi/internal/server/models"
)

// DefaultTokenTTL is the lifetime of an access token when none is configured.
const DefaultTokenTTL = 480 * time.Minute

// Kind tells apart tokens minted for users and for administrators.
type Kind string

const (
	KindUser  Kind = "user"
	KindAdmin Kind = "admin"
)

// Claims is the payload of an access token. Subject carries the nickname.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string      `json:"id"`
	Rol       models.Role `json:"rol"`
	Tipo      Kind        `json:"tipo"`
}

// GenerateToken signs claims with secretKey, stamping iat=now and
// exp=now+validity.
func GenerateToken(claims Claims, secretKey []byte, validity time.Duration, now time.Time) (string, error) {
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(validity))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ParseToken verifies signature and expiry against now. Every failure is
// reported as common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte, now func() time.Time) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// KeySource yields the current signing secret.
type KeySource interface {
	Key(ctx context.Context) ([]byte, error)
}

// Issuer mints and checks tokens with the secret held by a KeySource.
type Issuer struct {
	keys KeySource
	ttl  time.Duration
	now  func() time.Time
}

// NewIssuer returns an Issuer; a non-positive ttl means DefaultTokenTTL.
func NewIssuer(keys KeySource, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Issuer{keys: keys, ttl: ttl, now: time.Now}
}

// TTL returns the configured token lifetime.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue signs claims after adding iat and exp.
func (i *Issuer) Issue(ctx context.Context, claims Claims) (string, error) {
	key, err := i.keys.Key(ctx)
	if err != nil {
		return "", fmt.Errorf("signing key: %w", err)
	}
	return GenerateToken(claims, key, i.ttl, i.now())
}

// Verify returns the claims of a valid token, or common.ErrInvalidToken.
func (i *Issuer) Verify(ctx context.Context, token string) (*Claims, error) {
	key, err := i.keys.Key(ctx)
	if err != nil {
		return nil, fmt.Errorf("signing key: %w", err)
	}
	return ParseToken(token, key, i.now)
}
