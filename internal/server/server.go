// package server contains the HTTP handlers & middleware for the playlist viewer backend
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytview/internal/services"
	"github.com/desertthunder/ytview/internal/shared"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, CORS, rate limiting, metrics.
type Middleware func(http.Handler) http.Handler

// Route binds one method and path pattern to a handler.
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

// Handler groups related routes (auth, proxy) so they can be registered together.
type Handler interface {
	Routes() []Route // Routes returns the method, pattern & handler for every endpoint
}

// Router defines the interface for HTTP routing and middleware management.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers every route of a [Handler]
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// Options holds the collaborators of a [Server]. Nil fields are built from the config.
type Options struct {
	Playlists services.PlaylistService
	OAuth     services.OAuthService
	Logger    *log.Logger
}

// Server wires configuration, upstream clients and routes into one [http.Handler].
type Server struct {
	config *shared.Config
	logger *log.Logger
	router *BasicRouter
}

// New builds the server and registers all routes.
//
// Upstream clients share an [http.Client] bounded by upstream.timeout_seconds.
func New(config *shared.Config, opts Options) *Server {
	if config == nil {
		config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(os.Stderr)
	}

	client := &http.Client{Timeout: config.Upstream.Timeout()}
	if opts.Playlists == nil {
		opts.Playlists = services.NewYouTubeService(config.Upstream.BaseURL, client)
	}
	if opts.OAuth == nil {
		opts.OAuth = services.NewGoogleOAuth(config.Credentials.YouTube, config.Upstream, client)
	}

	s := &Server{
		config: config,
		logger: opts.Logger,
		router: NewBasicRouter(shared.WithLogger(opts.Logger, "component", "router")),
	}

	s.router.Use(RequestLogger(s.logger), Instrument, CORS(config.Server.AllowedOrigins))
	if config.Server.RateLimit > 0 {
		limiter := NewRateLimiter(config.Server.RateLimit, config.Server.RateBurst, s.logger)
		s.router.Use(limiter.Middleware)
	}

	s.router.Handle(http.MethodGet, "/healthz", http.HandlerFunc(s.health))
	if config.Server.Metrics {
		s.router.Handle(http.MethodGet, "/metrics", promhttp.Handler())
	}
	s.router.Handler(NewAuthHandler(config, opts.OAuth, opts.Playlists, shared.WithLogger(s.logger, "component", "auth")))
	s.router.Handler(NewProxyHandler(config, opts.Playlists, opts.OAuth, shared.WithLogger(s.logger, "component", "proxy")))
	s.router.Fallback(http.HandlerFunc(s.notFound))

	return s
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on server.host:server.port until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Server.Addr(),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusNotFound, errorBody{Error: "Not found"})
}
