package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/gradebook/portal/internal/core/domain"
)

// SessionCookie carries the signed credential.
const SessionCookie = "sessionToken"

const credentialKey = "credential"

// Verifier checks a raw session token.
type Verifier interface {
	Verify(raw string) (*domain.Credential, error)
}

// ReadCredential extracts and verifies the session cookie. It returns
// domain.ErrMissingCredential when the cookie is absent or empty.
func ReadCredential(c echo.Context, cookieName string, v Verifier) (*domain.Credential, error) {
	cookie, err := c.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil, domain.ErrMissingCredential
	}

	cred, err := v.Verify(cookie.Value)
	if err != nil {
		return nil, fmt.Errorf("read credential: %w", err)
	}
	return cred, nil
}

// SetCredential stores a verified credential on the request context.
func SetCredential(c echo.Context, cred *domain.Credential) {
	c.Set(credentialKey, cred)
}

// CredentialFrom returns the credential stored by the gate.
func CredentialFrom(c echo.Context) (*domain.Credential, bool) {
	cred, ok := c.Get(credentialKey).(*domain.Credential)
	return cred, ok && cred != nil
}
