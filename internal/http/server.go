package http

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-folio/internal/collections"
	"github.com/goliatone/go-folio/internal/generator"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/redirects"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// APIPrefix mounts the development endpoints.
const APIPrefix = "/_folio/api"

const shutdownTimeout = 5 * time.Second

// ErrFilesRequired is returned when the server has nothing to serve.
var ErrFilesRequired = errors.New("folio server: output filesystem is required")

// Config wires the server collaborators. Generator and Collections are
// optional; their endpoints answer 404 when missing.
type Config struct {
	Addr        string
	Files       fs.FS
	Redirects   *redirects.Table
	Collections *collections.Registry
	Generator   generator.Service
	Logger      interfaces.Logger
}

// Server serves the output directory and the development API.
type Server struct {
	cfg    Config
	router chi.Router
	logger interfaces.Logger

	buildMu sync.Mutex
	mu      sync.RWMutex
	last    *buildSummary
}

type buildSummary struct {
	ID           string    `json:"id"`
	Pages        int       `json:"pages"`
	PagesSkipped int       `json:"pages_skipped"`
	Assets       int       `json:"assets"`
	Artifacts    []string  `json:"artifacts"`
	DurationMS   int64     `json:"duration_ms"`
	FinishedAt   time.Time `json:"finished_at"`
	Error        string    `json:"error,omitempty"`
}

// New builds the router.
func New(cfg Config) (*Server, error) {
	if cfg.Files == nil {
		return nil, ErrFilesRequired
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	s := &Server{cfg: cfg, logger: logger}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(RedirectMiddleware(s.cfg.Redirects))

	r.Route(APIPrefix, func(r chi.Router) {
		r.Get("/build", s.getBuild)
		r.Post("/build", s.postBuild)
		r.Get("/redirects", s.getRedirects)
		r.Get("/schemas/{collection}", s.getSchema)
	})

	files := http.FileServer(http.FS(s.cfg.Files))
	r.With(middleware.NoCache).Handle("/*", files)
	return r
}

// Handler exposes the router, mostly for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// RedirectMiddleware answers requests whose path is a redirect source.
func RedirectMiddleware(table *redirects.Table) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rule, ok := table.Lookup(r.URL.Path); ok {
				http.Redirect(w, r, rule.Destination, rule.Status)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("server.request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// Rebuild runs a build and records its summary. Concurrent calls are
// serialised.
func (s *Server) Rebuild(ctx context.Context) (*generator.BuildResult, error) {
	if s.cfg.Generator == nil {
		return nil, errors.New("folio server: generator is not configured")
	}
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	result, err := s.cfg.Generator.Build(ctx, generator.BuildOptions{})
	summary := &buildSummary{FinishedAt: time.Now().UTC()}
	if err != nil {
		summary.Error = err.Error()
		s.logger.Error("server.rebuild.failed", "error", err)
	} else {
		summary.ID = result.ID.String()
		summary.Pages = result.Pages
		summary.PagesSkipped = result.PagesSkipped
		summary.Assets = result.Assets
		summary.Artifacts = result.Artifacts
		summary.DurationMS = result.Duration.Milliseconds()
		s.logger.Info("server.rebuild.completed", "build_id", summary.ID, "pages", result.Pages)
	}

	s.mu.Lock()
	s.last = summary
	s.mu.Unlock()
	return result, err
}

func (s *Server) getBuild(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()
	if last == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: "no build has run yet"})
		return
	}
	writeJSON(w, http.StatusOK, last)
}

func (s *Server) postBuild(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Generator == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: "generator is not configured"})
		return
	}
	if _, err := s.Rebuild(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	s.getBuild(w, r)
}

func (s *Server) getRedirects(w http.ResponseWriter, _ *http.Request) {
	rules := s.cfg.Redirects.Rules()
	if rules == nil {
		rules = []redirects.Rule{}
	}
	writeJSON(w, http.StatusOK, rules)
}

func (s *Server) getSchema(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")
	if s.cfg.Collections == nil || !s.cfg.Collections.Has(name) {
		writeError(w, fmt.Errorf("%w: %q", collections.ErrUnknownCollection, name))
		return
	}
	writeJSON(w, http.StatusOK, s.cfg.Collections.JSONSchemas()[name])
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server.listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.logger.Info("server.stopped")
		return nil
	}
}
