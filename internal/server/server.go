// Package server provides the HTTP garden viewer. It is stateless: the
// document and the viewport state travel in the request URL.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fentz26/gardenview/internal/codec"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Options configures a Server.
type Options struct {
	Addr string
	// BaseURL prefixes links created by POST /api/links.
	BaseURL        string
	Decoder        *codec.Decoder
	AllowedOrigins []string
	Logger         *slog.Logger
	Version        string
	// MCP is served under /mcp when set.
	MCP http.Handler
}

// Server serves the viewer pages and the JSON API.
type Server struct {
	opts   Options
	logger *slog.Logger
	server *http.Server
}

// NewServer creates a new HTTP server.
func NewServer(opts Options) *Server {
	if opts.Decoder == nil {
		opts.Decoder = codec.NewDecoder(0)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	return &Server{
		opts:   opts,
		logger: opts.Logger,
	}
}

// Handler returns the router with all middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	if len(s.opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleViewer)
	r.Get("/garden.svg", s.handleSVG)

	r.Route("/api", func(api chi.Router) {
		api.Get("/garden", s.handleGarden)
		api.Post("/links", s.handleCreateLink)
	})

	if s.opts.MCP != nil {
		r.Handle("/mcp", s.opts.MCP)
		r.Handle("/mcp/*", s.opts.MCP)
	}

	return r
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.logger.Info("starting garden viewer", "addr", s.opts.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// requestLogger logs one line per request. The query string is left out
// since it carries the whole document.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", requestID(r),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

func requestID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}
