// Package web serves the survey menu views over HTTP, plus a JSON API for
// charting front ends, the branding image, health and Prometheus metrics.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/bisurvey/internal/store"
	"github.com/mesh-intelligence/bisurvey/internal/views"
)

// Server timeouts.
const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	// DataFile is the survey CSV path. Required.
	DataFile string
	// LogoFile is the branding image; a placeholder is served when it is
	// empty or missing.
	LogoFile string
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// Registry receives the server's metrics. A fresh registry is used
	// when nil.
	Registry *prometheus.Registry
	// AllowedOrigins lists CORS origins for the JSON API.
	AllowedOrigins []string
}

// Server is the web presentation shell. Handlers share only the store,
// which holds nothing but the file path.
type Server struct {
	store   *store.Store
	logo    string
	logger  *zap.Logger
	metrics *metrics
	pages   map[views.View]*template.Template
	router  chi.Router
}

// New builds a Server and its routes.
func New(opts Options) (*Server, error) {
	if opts.DataFile == "" {
		return nil, errors.New("web: data file is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("web: parse templates: %w", err)
	}

	s := &Server{
		store:   store.New(opts.DataFile),
		logo:    opts.LogoFile,
		logger:  logger,
		metrics: newMetrics(reg),
		pages:   pages,
	}
	s.router = s.routes(reg, opts.AllowedOrigins)
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes(reg *prometheus.Registry, origins []string) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, views.Default.Path(), http.StatusFound)
	})
	r.Get(views.Encuesta.Path(), s.handleEncuesta)
	r.Post(views.Encuesta.Path(), s.handleSubmit)
	r.Get(views.EditarEncuesta.Path(), s.handleEditor)
	r.Post(views.EditarEncuesta.Path(), s.handleSaveEditor)
	r.Get(views.Respuestas.Path(), s.handleRespuestas)
	r.Get(views.Analisis.Path(), s.handleAnalisis)
	r.Get("/logo", s.handleLogo)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	r.Route("/api", func(r chi.Router) {
		if len(origins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: origins,
				AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
				AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
				ExposedHeaders: []string{"X-Request-Id"},
				MaxAge:         300,
			}))
		}
		r.Get("/responses", s.apiListResponses)
		r.Post("/responses", s.apiAppendResponse)
		r.Put("/responses", s.apiOverwriteResponses)
		r.Get("/stats", s.apiRespuestas)
		r.Get("/stats/{field}", s.apiQuestion)
		r.Get("/analysis", s.apiAnalisis)
	})
	return r
}

// Run listens on addr and serves until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          zap.NewStdLog(s.logger),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}
