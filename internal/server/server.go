package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/osa911/contactrelay/internal/api/handlers"
	apimiddleware "github.com/osa911/contactrelay/internal/api/middleware"
	"github.com/osa911/contactrelay/internal/api/validation"
	"github.com/osa911/contactrelay/internal/config"
	"github.com/osa911/contactrelay/internal/logging"
	"github.com/osa911/contactrelay/internal/middleware"
	"github.com/osa911/contactrelay/internal/server/routes"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "contactrelay"

// Server represents the HTTP server
type Server struct {
	router     *gin.Engine
	cfg        *config.Config
	logger     *logging.Logger
	limiter    *apimiddleware.RateLimiter
	httpServer *http.Server
}

// NewServer creates a server with all middleware and routes installed
func NewServer(cfg *config.Config, deps Dependencies) (*Server, error) {
	if deps.ContactService == nil {
		return nil, errors.New("contact service is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	// Set release mode unless a test already chose test mode
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	// Create a new engine without default middleware
	router := gin.New()
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false
	router.HandleMethodNotAllowed = false

	// An empty list trusts no proxy, so ClientIP is the socket address
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}

	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	if cfg.OTLPEndpoint != "" {
		router.Use(otelgin.Middleware(serviceName))
	}
	router.Use(middleware.Logger(logger, cfg.LogRequests))
	router.Use(apimiddleware.CORS())
	router.Use(apimiddleware.SecurityHeaders(cfg.IsProduction()))

	limiter := apimiddleware.NewRateLimiter(apimiddleware.RateLimitConfig{
		RPS:     cfg.RateLimit.RPS,
		Burst:   cfg.RateLimit.Burst,
		APIKeys: cfg.RateLimit.APIKeys,
	}, logger)

	h := &routes.Handlers{
		Health:  handlers.NewHealthHandler(),
		Contact: handlers.NewContactHandler(deps.ContactService),
	}
	m := &routes.Middleware{
		Validation:   apimiddleware.NewValidationMiddleware(validation.NewValidator(cfg.MaxBodyBytes), logger),
		RateLimiter:  limiter,
		MaxBodyBytes: cfg.MaxBodyBytes,
	}
	routes.Setup(router, h, m)

	return &Server{
		router:  router,
		cfg:     cfg,
		logger:  logger,
		limiter: limiter,
	}, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then drains in-flight requests for at
// most ShutdownTimeout
func (s *Server) Start(ctx context.Context) error {
	// A request may spend two mail timeouts plus the retry delay dispatching
	writeTimeout := 2*s.cfg.Mail.Timeout + s.cfg.Mail.RetryDelay + 5*time.Second

	s.httpServer = &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening on %s", s.cfg.ListenAddr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.Close()
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	s.logger.Info("Server stopped")
	return nil
}

// Close releases background resources. It does not stop a running listener.
func (s *Server) Close() {
	s.limiter.Close()
}
