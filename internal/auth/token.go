package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long an issued token stays valid unless configured
// otherwise.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Claims are the identity facts embedded in an access token.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Codec signs and validates HS256 access tokens. The secret and TTL are set
// once at startup and never change; rotating the secret invalidates every
// outstanding token.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec builds a token codec. A non-positive ttl falls back to
// DefaultTokenTTL.
func NewCodec(secret []byte, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Codec{secret: secret, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for the given subject using the configured TTL.
func (c *Codec) Issue(subject, email, role string) (string, error) {
	return c.IssueWithTTL(subject, email, role, c.ttl)
}

// IssueWithTTL signs a token with an explicit lifetime.
func (c *Codec) IssueWithTTL(subject, email, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
		Role:  role,
	})
	return token.SignedString(c.secret)
}

// Validate parses and verifies a token, returning its claims unchanged.
// Failures are one of ErrTokenMalformed, ErrTokenExpired or
// ErrTokenSignature. Expiry is checked against wall-clock time with no
// leeway, and only HS256 is accepted.
func (c *Codec) Validate(tokenStr string) (Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrTokenSignature
		default:
			return Claims{}, ErrTokenMalformed
		}
	}
	if !token.Valid {
		return Claims{}, ErrTokenSignature
	}
	return *claims, nil
}
