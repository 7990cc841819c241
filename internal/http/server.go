// Package http wires the gin router and runs the public HTTP server.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	accountHTTP "github.com/aitoolbox/gatekeeper/internal/account/http"
	catalogHTTP "github.com/aitoolbox/gatekeeper/internal/catalog/http"
	"github.com/aitoolbox/gatekeeper/internal/config"
	"github.com/aitoolbox/gatekeeper/internal/metrics"
)

// RouterDeps carries the handlers and middleware inputs for the public router.
type RouterDeps struct {
	Config            *config.Config
	Logger            *slog.Logger
	MetricsProvider   *metrics.Provider
	ProfileHandler    *accountHTTP.ProfileHandler
	ModerationHandler *accountHTTP.ModerationHandler
	EntryHandler      *catalogHTTP.EntryHandler
	ReadyCheck        func(ctx context.Context) error
}

// NewRouter builds the public gin router: health probes, the unauthenticated
// registration, catalog and moderation endpoints, and the API-key protected
// admin review API.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(deps.Config.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(deps.Logger))

	if deps.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(
			deps.MetricsProvider.MeterProvider(),
			deps.Config.MetricsNamespace,
		))
	}

	if corsMiddleware := createCORSMiddleware(
		deps.Config.CORSEnabled,
		deps.Config.CORSAllowOrigins,
		deps.Logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/ready", func(c *gin.Context) {
		if deps.ReadyCheck != nil {
			if err := deps.ReadyCheck(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	// The moderation endpoint is reached from email links, carries its
	// credential in the URL and is the only place the rate limiter applies.
	moderation := router.Group("/moderation")
	if deps.Config.RateLimitModerationEnabled {
		moderation.Use(RateLimitMiddleware(
			deps.Config.RateLimitModerationRequestsPerSec,
			deps.Config.RateLimitModerationBurst,
		))
	}
	moderation.GET("", deps.ModerationHandler.ModerateHandler)

	v1 := router.Group("/v1")
	{
		v1.POST("/accounts", deps.ProfileHandler.RegisterHandler)
		v1.POST("/catalog", deps.EntryHandler.SubmitHandler)
		v1.GET("/catalog", deps.EntryHandler.ListApprovedHandler)
	}

	admin := v1.Group("", AdminAuthMiddleware(deps.Config.AdminAPIKey))
	{
		admin.GET("/accounts/pending", deps.ProfileHandler.ListPendingHandler)
		admin.GET("/accounts/:id", deps.ProfileHandler.GetHandler)
		admin.POST("/accounts/:id/status", deps.ProfileHandler.SetStatusHandler)
		admin.GET("/catalog/pending", deps.EntryHandler.ListPendingHandler)
		admin.POST("/catalog/:id/status", deps.EntryHandler.ModerateHandler)
	}

	return router
}

// Server represents the public HTTP server.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new HTTP server.
func NewServer(
	host string,
	port int,
	handler http.Handler,
	logger *slog.Logger,
) *Server {
	return &Server{
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
