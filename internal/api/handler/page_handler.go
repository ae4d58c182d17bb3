package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gradebook/portal/internal/api/middleware"
)

// PageHandler answers the browser-facing routes with a small descriptor
// naming the page to render. The UI itself lives in the frontend.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Named returns a handler for a fixed page.
func (h *PageHandler) Named(page string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, h.describe(c, page))
	}
}

// Dashboard names the page after the request path, e.g.
// /dashboard/teacher/grades → "dashboard/teacher/grades".
func (h *PageHandler) Dashboard(c echo.Context) error {
	page := strings.Trim(c.Request().URL.Path, "/")
	return c.JSON(http.StatusOK, h.describe(c, page))
}

func (h *PageHandler) describe(c echo.Context, page string) pageResponse {
	resp := pageResponse{Page: page}
	if cred, ok := middleware.CredentialFrom(c); ok {
		user := toSessionUser(*cred)
		resp.User = &user
	}
	return resp
}
