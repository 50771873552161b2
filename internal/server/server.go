// Package server exposes the gateway as JSON tools over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/leapstack-labs/querygate/internal/gateway"
	"github.com/leapstack-labs/querygate/internal/search"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 5 * time.Second

// maxBodyBytes bounds tool request bodies.
const maxBodyBytes = 1 << 20

// Config holds configuration for the tool server.
type Config struct {
	Gateway  *gateway.Gateway
	Searcher *search.Searcher
	Addr     string
	Logger   *slog.Logger

	// CacheByDefault is used for run_query requests that omit use_cache.
	CacheByDefault bool
}

// Server serves the query tools.
type Server struct {
	gateway        *gateway.Gateway
	searcher       *search.Searcher
	addr           string
	logger         *slog.Logger
	cacheByDefault bool
}

// New creates a tool server. A nil logger discards output.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		gateway:        cfg.Gateway,
		searcher:       cfg.Searcher,
		addr:           cfg.Addr,
		logger:         logger,
		cacheByDefault: cfg.CacheByDefault,
	}
}

// Handler returns the HTTP handler with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		requestID,
		s.requestLogger,
		middleware.Recoverer,
	)

	r.Get("/healthz", s.handleHealth)
	r.Route("/tools", func(r chi.Router) {
		r.Get("/", s.handleCatalog)
		r.Post("/run_query", s.handleRunQuery)
		r.Post("/clear_cache", s.handleClearCache)
		r.Get("/cache_info", s.handleCacheInfo)
		r.Post("/search_sql", s.handleSearch)
	})
	return r
}

// Serve listens on the configured address and blocks until ctx is
// cancelled or the server fails.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx is cancelled.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	s.logger.Info("starting tool server", slog.String("addr", "http://"+ln.Addr().String()))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down tool server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
