package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/thapelomagqazana/accounts-api/internal/api/handler"
	"github.com/thapelomagqazana/accounts-api/internal/api/middleware"
	"github.com/thapelomagqazana/accounts-api/internal/core/ports"
	"github.com/thapelomagqazana/accounts-api/internal/core/service"
)

// RouterConfig carries the transport-level settings the router needs.
type RouterConfig struct {
	// CORSOrigin is the single allowed origin for browser clients.
	CORSOrigin string
	// Backend names the selected storage backend for the readiness probe.
	Backend string
	// Ping checks connectivity to the selected storage backend.
	Ping handler.PingFunc
	// Metrics overrides the Prometheus registry for request metrics.
	// Nil means the process-wide default registry.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(repo ports.AccountRepository, tokens ports.TokenService, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
	}))
	registerer := prometheus.Registerer(prometheus.DefaultRegisterer)
	gatherer := prometheus.Gatherer(prometheus.DefaultGatherer)
	if cfg.Metrics != nil {
		registerer = cfg.Metrics
		gatherer = cfg.Metrics
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "accounts",
		Registerer: registerer,
	}))

	// --- Dependencies ---
	accountService := service.NewAccountService(repo, tokens, log)
	authHandler := handler.NewAuthHandler(accountService)
	accountHandler := handler.NewAccountHandler(accountService)
	authMiddleware := middleware.Auth(tokens)

	// --- Auth routes ---
	e.POST("/auth/signin", authHandler.Signin)
	e.POST("/auth/signout", authHandler.Signout, authMiddleware)

	// --- Account routes ---
	// Create and list are open to unauthenticated callers; the remaining
	// operations require a valid bearer token.
	e.POST("/accounts", accountHandler.Create)
	e.GET("/accounts", accountHandler.List)
	e.GET("/accounts/:id", accountHandler.Get, authMiddleware)
	e.PUT("/accounts/:id", accountHandler.Update, authMiddleware)
	e.DELETE("/accounts/:id", accountHandler.Delete, authMiddleware)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.Backend, cfg.Ping)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))

	return e
}
