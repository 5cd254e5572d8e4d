// Package server provides the HTTP server implementation.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vyrodovalexey/bookcatalog/internal/config"
	"github.com/vyrodovalexey/bookcatalog/internal/handler"
	"github.com/vyrodovalexey/bookcatalog/internal/middleware"
	"github.com/vyrodovalexey/bookcatalog/internal/store"
	"github.com/vyrodovalexey/bookcatalog/internal/web"
)

// Server represents the HTTP server.
type Server struct {
	httpServer  *http.Server
	router      *mux.Router
	handler     http.Handler
	config      *config.Config
	logger      *zap.Logger
	feedHandler *handler.FeedHandler
}

// New creates a new Server instance.
func New(cfg *config.Config, logger *zap.Logger, bookStore store.Store) *Server {
	router := mux.NewRouter()

	s := &Server{
		router: router,
		config: cfg,
		logger: logger,
	}

	s.setupRoutes(bookStore)
	s.setupMiddleware()
	s.setupHTTPServer()

	return s
}

// setupRoutes configures the API, feed, metrics and browser routes.
func (s *Server) setupRoutes(bookStore store.Store) {
	var events handler.EventPublisher
	if s.config.EventsEnabled {
		s.feedHandler = handler.NewFeedHandler(s.logger)
		s.feedHandler.RegisterRoutes(s.router)
		events = s.feedHandler
	}

	restHandler := handler.NewRESTHandler(bookStore, events, s.logger)
	restHandler.RegisterRoutes(s.router)

	if s.config.MetricsEnabled {
		s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}

	notFound := http.HandlerFunc(restHandler.NotFound)
	web.NewHandler(notFound, s.logger).RegisterRoutes(s.router)

	// A known path with an unsupported method is answered like an unknown path.
	s.router.NotFoundHandler = notFound
	s.router.MethodNotAllowedHandler = notFound
}

// setupMiddleware wraps the whole router, so unmatched requests and CORS
// preflights pass through the chain too.
func (s *Server) setupMiddleware() {
	allowedMethods := []string{
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodDelete,
		http.MethodOptions,
	}
	allowedHeaders := []string{
		"Origin",
		"X-Requested-With",
		"Content-Type",
		"Accept",
		middleware.RequestIDHeader,
	}

	// First listed = outermost
	chain := []middleware.Middleware{
		middleware.Recovery(s.logger),
		middleware.RequestID(),
	}

	if s.config.MetricsEnabled {
		chain = append(chain, middleware.Metrics(s.router))
	}

	chain = append(chain,
		middleware.Logging(s.logger),
		middleware.CORS(allowedMethods, allowedHeaders),
	)

	if s.config.RateLimitEnabled() {
		limiter := middleware.NewRateLimiter(s.config.RateLimit, s.config.RateLimitBurst)
		chain = append(chain, middleware.RateLimit(limiter, s.logger))
	}

	s.handler = middleware.Chain(chain...)(s.router)
}

// setupHTTPServer configures the HTTP server.
func (s *Server) setupHTTPServer() {
	s.httpServer = &http.Server{
		Addr:              s.config.Address(),
		Handler:           s.handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting server",
		zap.String("address", s.config.Address()),
		zap.Bool("metrics_enabled", s.config.MetricsEnabled),
		zap.Bool("events_enabled", s.config.EventsEnabled),
		zap.Bool("rate_limit_enabled", s.config.RateLimitEnabled()),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server listen and serve: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	// Hijacked feed connections are not closed by http.Server.Shutdown.
	if s.feedHandler != nil {
		s.feedHandler.CloseAllConnections()
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Router returns the server's router for testing purposes.
func (s *Server) Router() *mux.Router {
	return s.router
}

// Handler returns the router wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return s.handler
}
