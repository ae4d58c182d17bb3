package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gradebook/portal/internal/api/middleware"
	"github.com/gradebook/portal/internal/core/domain"
)

// ctxCredential returns the credential the gate verified. Its absence means
// the route was mounted outside the gate; reject with 401.
func ctxCredential(c echo.Context) (domain.Credential, error) {
	cred, ok := middleware.CredentialFrom(c)
	if !ok {
		return domain.Credential{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return *cred, nil
}
