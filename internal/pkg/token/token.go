// Package token signs and verifies the session credential carried in the
// sessionToken cookie. Only HS256 with the process-wide secret is accepted.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/gradebook/portal/internal/core/domain"
)

const defaultTTL = 24 * time.Hour

// Claims is the JWT body: the credential plus the registered expiry fields.
type Claims struct {
	Account  string      `json:"account"`
	Role     domain.Role `json:"role"`
	CourseID string      `json:"course_id,omitempty"`
	jwt.RegisteredClaims
}

// Codec issues and verifies credentials with a fixed secret. It holds no
// mutable state and is safe for concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec returns a Codec signing with secret. A non-positive ttl falls back
// to 24h. It panics on an empty secret.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if secret == "" {
		panic("token: empty signing secret")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL is the lifetime stamped on issued tokens.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs cred and returns the compact token and its expiry.
func (c *Codec) Issue(cred domain.Credential) (string, time.Time, error) {
	now := c.now()
	expires := now.Add(c.ttl)
	claims := Claims{
		Account:  cred.Account,
		Role:     cred.Role,
		CourseID: cred.CourseID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   cred.Account,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing credential: %w", err)
	}
	return signed, expires, nil
}

// Verify checks the signature and expiry of raw and returns its credential.
// Every failure wraps domain.ErrInvalidCredential; expiry additionally wraps
// domain.ErrCredentialExpired.
func (c *Codec) Verify(raw string) (*domain.Credential, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(_ *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCredential, domain.ErrCredentialExpired)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCredential, err)
	}
	if !tkn.Valid {
		return nil, domain.ErrInvalidCredential
	}

	return &domain.Credential{
		Account:  claims.Account,
		Role:     claims.Role,
		CourseID: claims.CourseID,
	}, nil
}
