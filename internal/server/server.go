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

	"tubeconv/internal/logging"
	"tubeconv/internal/metrics"
)

// Server owns the HTTP listener and its lifecycle.
type Server struct {
	bind   string
	logger *slog.Logger

	listener net.Listener
	server   *http.Server
}

// New constructs a server around the provided handler set.
func New(bind string, handler *Handler, logger *slog.Logger) *Server {
	logger = logging.NewComponentLogger(logger, "server")

	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)

	router.Post("/download", handler.Download)
	router.Post("/api/download", handler.Download)
	router.Get("/downloads/{filename}", handler.ServeArtifact)
	router.Get("/api/download-file/{filename}", handler.ServeArtifact)
	router.Get("/health", handler.Health)
	router.Get("/api/faqs", handler.FAQs)
	router.Post("/api/contact", handler.Contact)
	router.Get("/api/stats", handler.Stats)
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	return &Server{
		bind:   bind,
		logger: logger,
		server: &http.Server{
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			// Long enough to stream a large artifact to a slow client.
			WriteTimeout: 10 * time.Minute,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Router returns the configured route tree.
func (s *Server) Router() http.Handler { return s.server.Handler }

// Start begins serving and returns once the listener is bound. The server
// shuts down gracefully when ctx is done.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.bind, err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("http server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Addr returns the bound listener address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(wrapped, r)
			logger.Info("request",
				logging.String("method", r.Method),
				logging.String("path", r.URL.Path),
				logging.Int("status", wrapped.Status()),
				logging.Duration("elapsed", time.Since(start)),
			)
		})
	}
}
