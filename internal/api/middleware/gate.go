package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/gradebook/portal/internal/core/domain"
	"github.com/gradebook/portal/internal/pkg/metrics"
)

// GateConfig configures the access-control gate.
type GateConfig struct {
	// Skipper bypasses the gate entirely. Defaults to StaticSkipper.
	Skipper echomiddleware.Skipper
	// Verifier checks the session token. Required.
	Verifier Verifier
	// Policy defaults to DefaultPolicy().
	Policy *Policy
	// CookieName defaults to SessionCookie.
	CookieName string
	Log        zerolog.Logger
}

// StaticSkipper excludes static assets and the favicon from the gate.
func StaticSkipper(c echo.Context) bool {
	path := c.Request().URL.Path
	return path == "/favicon.ico" ||
		strings.HasPrefix(path, "/static/") ||
		strings.HasPrefix(path, "/assets/")
}

// Gate classifies each request path, verifies the session cookie on protected
// paths and enforces the role and course tables. Every rejection is a
// redirect: "/" for a missing or bad credential, "/unauthorized" for a role
// mismatch and "/select-course" for a missing course association.
func Gate(cfg GateConfig) echo.MiddlewareFunc {
	if cfg.Verifier == nil {
		panic("gate: verifier is required")
	}
	if cfg.Skipper == nil {
		cfg.Skipper = StaticSkipper
	}
	if cfg.Policy == nil {
		cfg.Policy = DefaultPolicy()
	}
	if cfg.CookieName == "" {
		cfg.CookieName = SessionCookie
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper(c) {
				return next(c)
			}

			path := c.Request().URL.Path
			if cfg.Policy.IsPublic(path) {
				metrics.GateDecisionsTotal.WithLabelValues(metrics.OutcomePublic).Inc()
				return next(c)
			}

			cred, err := ReadCredential(c, cfg.CookieName, cfg.Verifier)
			if err == nil {
				err = cfg.Policy.Authorize(path, *cred)
			}
			if err != nil {
				outcome := outcomeFor(err)
				metrics.GateDecisionsTotal.WithLabelValues(outcome).Inc()
				cfg.Log.Debug().
					Str("path", path).
					Str("outcome", outcome).
					Msg("gate redirect")
				return c.Redirect(http.StatusTemporaryRedirect, redirectFor(err))
			}

			metrics.GateDecisionsTotal.WithLabelValues(metrics.OutcomeAllowed).Inc()
			SetCredential(c, cred)
			return next(c)
		}
	}
}

func redirectFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrRoleMismatch):
		return PathUnauthorized
	case errors.Is(err, domain.ErrMissingCourse):
		return PathSelectCourse
	default:
		return PathRoot
	}
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingCredential):
		return metrics.OutcomeMissingCredential
	case errors.Is(err, domain.ErrCredentialExpired):
		return metrics.OutcomeExpiredCredential
	case errors.Is(err, domain.ErrRoleMismatch):
		return metrics.OutcomeRoleMismatch
	case errors.Is(err, domain.ErrMissingCourse):
		return metrics.OutcomeMissingCourse
	default:
		return metrics.OutcomeInvalidCredential
	}
}
