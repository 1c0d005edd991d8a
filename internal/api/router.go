package api

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/edgerelay/edgerelay/internal/api/handler"
	"github.com/edgerelay/edgerelay/internal/api/middleware"
	"github.com/edgerelay/edgerelay/internal/core/domain"
	"github.com/edgerelay/edgerelay/internal/core/ports"
)

// Deps carries everything the router wires together. All dependencies are
// constructed in main and injected here; nothing is reached globally.
type Deps struct {
	AdminAuth      ports.AuthService
	ClientAuth     ports.AuthService
	Clients        ports.ClientDirectory
	AdminPool      *pgxpool.Pool
	ClientPool     *pgxpool.Pool
	Redis          *redis.Client
	Env            string
	RequestTimeout time.Duration
	Log            zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestTimeout(deps.RequestTimeout))
	e.Use(echoprometheus.NewMiddleware("edgerelay"))

	adminAuth := middleware.Auth(deps.AdminAuth, domain.RealmAdmin)
	clientAuth := middleware.Auth(deps.ClientAuth, domain.RealmClient)

	// --- Admin realm ---
	adminHandler := handler.NewAuthHandler(deps.AdminAuth, domain.RealmAdmin)
	clientMgmt := handler.NewClientHandler(deps.Clients)

	admin := e.Group("/api/admin")
	admin.POST("/auth/login", adminHandler.Login)
	admin.GET("/auth/me", adminHandler.Me, adminAuth)
	admin.POST("/auth/logout", adminHandler.Logout, adminAuth)

	clients := admin.Group("/clients", adminAuth)
	clients.POST("", clientMgmt.Create)
	clients.GET("", clientMgmt.List)
	clients.GET("/:id", clientMgmt.Get)
	clients.PUT("/:id", clientMgmt.Update)
	clients.DELETE("/:id", clientMgmt.Deactivate)

	// --- Client realm ---
	clientHandler := handler.NewAuthHandler(deps.ClientAuth, domain.RealmClient)

	client := e.Group("/api/client")
	client.POST("/auth/login", clientHandler.Login)
	client.GET("/auth/me", clientHandler.Me, clientAuth)
	client.POST("/auth/logout", clientHandler.Logout, clientAuth)
	client.GET("/status", clientHandler.Status, clientAuth)

	// --- System metadata (no auth required) ---
	systemHandler := handler.NewSystemHandler(deps.Env)
	e.GET("/api/system/status", systemHandler.Status)
	e.GET("/api/system/info", systemHandler.Info)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.AdminPool, deps.ClientPool, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
