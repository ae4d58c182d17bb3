package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gradebook/portal/internal/api/middleware"
)

// CookieConfig shapes the session cookie written by login, course selection
// and logout.
type CookieConfig struct {
	Name   string
	Secure bool
}

func (cc CookieConfig) name() string {
	if cc.Name == "" {
		return middleware.SessionCookie
	}
	return cc.Name
}

// set writes a session cookie that expires with the token.
func (cc CookieConfig) set(c echo.Context, value string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     cc.name(),
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clear overwrites the session cookie with an empty, already expired one.
func (cc CookieConfig) clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     cc.name(),
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
