package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gradebook/portal/internal/api/middleware"
	"github.com/gradebook/portal/internal/core/domain"
	"github.com/gradebook/portal/internal/pkg/metrics"
)

// SessionHandler answers session status and logout. Neither touches any
// server-side state: the cookie is the whole session.
type SessionHandler struct {
	verifier middleware.Verifier
	cookie   CookieConfig
	log      zerolog.Logger
}

func NewSessionHandler(verifier middleware.Verifier, cookie CookieConfig, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{verifier: verifier, cookie: cookie, log: log}
}

// Session reports whether the request carries a valid session cookie.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  sessionResponse
// @Router       /api/session [get]
func (h *SessionHandler) Session(c echo.Context) error {
	cred, err := middleware.ReadCredential(c, h.cookie.name(), h.verifier)
	switch {
	case errors.Is(err, domain.ErrMissingCredential):
		metrics.SessionChecksTotal.WithLabelValues("anonymous").Inc()
		return c.JSON(http.StatusUnauthorized, sessionResponse{Authenticated: false})
	case err != nil:
		metrics.SessionChecksTotal.WithLabelValues("invalid").Inc()
		h.log.Debug().Err(err).Msg("session cookie rejected")
		return c.JSON(http.StatusUnauthorized, sessionResponse{Authenticated: false})
	}

	metrics.SessionChecksTotal.WithLabelValues("authenticated").Inc()
	user := toSessionUser(*cred)
	return c.JSON(http.StatusOK, sessionResponse{Authenticated: true, User: &user})
}

// Logout expires the session cookie. It always succeeds; an issued token
// stays valid until its own expiry.
//
// @Summary      Logout
// @Tags         session
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /api/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	h.cookie.clear(c)
	metrics.LogoutsTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}
