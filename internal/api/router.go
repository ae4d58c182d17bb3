package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/gradebook/portal/docs"
	"github.com/gradebook/portal/internal/api/handler"
	"github.com/gradebook/portal/internal/api/middleware"
	"github.com/gradebook/portal/internal/core/ports"
	"github.com/gradebook/portal/internal/pkg/token"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Codec         *token.Codec
	AuthService   ports.AuthService
	CourseService ports.CourseService
	Health        map[string]handler.Pinger
	Cookie        handler.CookieConfig
	Log           zerolog.Logger

	// Registerer receives the HTTP request metrics. Defaults to the
	// process-wide prometheus registerer.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	registerer := d.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "gradebook",
		Registerer: registerer,
	}))
	e.Use(middleware.Gate(middleware.GateConfig{
		Skipper:  gateSkipper,
		Verifier: d.Codec,
		Policy:   middleware.DefaultPolicy(),
		Log:      d.Log,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.AuthService, d.Cookie)
	sessionHandler := handler.NewSessionHandler(d.Codec, d.Cookie, d.Log)
	courseHandler := handler.NewCourseHandler(d.CourseService, d.Cookie)
	pages := handler.NewPageHandler()
	healthHandler := handler.NewHealthHandler(d.Health)

	// --- Session API (public by path) ---
	e.GET("/api/session", sessionHandler.Session)
	e.POST("/api/logout", sessionHandler.Logout)
	e.POST("/api/login", authHandler.Login)
	e.POST("/api/register", authHandler.Register)

	// --- Dashboard API (gate-protected) ---
	dash := e.Group("/api/dashboard")
	dash.GET("/courses", courseHandler.List)
	dash.POST("/course", courseHandler.Select)
	dash.GET("/teacher/*", pages.Dashboard)
	dash.GET("/student/*", pages.Dashboard)

	// --- Pages ---
	e.GET(middleware.PathRoot, pages.Named("home"))
	e.GET(middleware.PathLogin, pages.Named("login"))
	e.GET(middleware.PathUnauthorized, pages.Named("unauthorized"))
	e.GET(middleware.PathSelectCourse, pages.Named("select-course"))
	e.GET("/dashboard", pages.Dashboard)
	e.GET("/dashboard/*", pages.Dashboard)

	// --- Operational endpoints (outside the gate) ---
	e.GET("/health", healthHandler.Liveness)        // liveness
	e.GET("/health/ready", healthHandler.Readiness) // readiness
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// gateSkipper extends the static-asset exclusion with the operational
// endpoints, which are never user-facing.
func gateSkipper(c echo.Context) bool {
	if middleware.StaticSkipper(c) {
		return true
	}
	path := c.Request().URL.Path
	return path == "/health" || path == "/health/ready" || path == "/metrics" ||
		strings.HasPrefix(path, "/swagger/")
}
