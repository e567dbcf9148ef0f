// Package httpserver serves the contract form, the finalized contract view,
// document downloads and the JSON API.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/goliatone/go-rentalcontract/pkg/apidoc"
	"github.com/goliatone/go-rentalcontract/pkg/model"
	"github.com/goliatone/go-rentalcontract/pkg/render"
	"github.com/goliatone/go-rentalcontract/pkg/renderers/html"
)

// Route paths.
const (
	PathHome     = "/"
	PathContract = "/contract"
	PathDownload = "/contract/download"
	PathValidate = "/api/contracts/validate"
	PathCreate   = "/api/contracts"
	PathOpenAPI  = "/api/openapi.yaml"
	PathAssets   = "/assets"
	PathMetrics  = "/metrics"
	PathPing     = "/ping"
)

const (
	defaultMaxBodyBytes    = 1 << 20
	defaultShutdownTimeout = 10 * time.Second
)

// Pages draws the HTML pages of the form flow.
type Pages interface {
	render.FormRenderer
	RenderView(ctx context.Context, doc render.Document, options render.RenderOptions) ([]byte, error)
}

// Options configure a Server. Logger, Form, Pages and Documents are
// required.
type Options struct {
	Logger    *zap.Logger
	Form      model.FormModel
	Pages     Pages
	Documents *render.Registry
	// API enables schema checks on JSON bodies. Bodies are only decoded when
	// nil.
	API *apidoc.Document
	// Print is passed to every document renderer.
	Print render.RenderOptions
	// Downloads lists the formats offered on the contract view.
	Downloads []string
	// StaticDir is served for unknown GET paths before the form page.
	StaticDir       string
	AllowedOrigins  []string
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
	// Registry receives the HTTP and contract metrics. A private registry is
	// created when nil.
	Registry *prometheus.Registry
	Now      func() time.Time
}

// Server is the HTTP front end of the contract form.
type Server struct {
	opts    Options
	metrics *metrics
	handler http.Handler
}

// New validates opts and builds the router.
func New(opts Options) (*Server, error) {
	switch {
	case opts.Logger == nil:
		return nil, errors.New("httpserver: logger is required")
	case opts.Pages == nil:
		return nil, errors.New("httpserver: pages renderer is required")
	case opts.Documents == nil:
		return nil, errors.New("httpserver: document registry is required")
	case len(opts.Form.Fields) == 0:
		return nil, errors.New("httpserver: form model is required")
	}
	for _, name := range opts.Downloads {
		if !opts.Documents.Has(name) {
			return nil, fmt.Errorf("httpserver: download %q: %w", name, render.ErrUnknownRenderer)
		}
	}
	if len(opts.Downloads) == 0 {
		opts.Downloads = opts.Documents.List()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{opts: opts, metrics: newMetrics(opts.Registry)}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(middleware.RequestID)
	mux.Use(requestLogger(s.opts.Logger))
	mux.Use(recovery(s.opts.Logger))
	mux.Use(s.metrics.instrument)

	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"https://*", "http://*"}
	}
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))
	mux.Use(middleware.Heartbeat(PathPing))

	mux.Handle(PathMetrics, promhttp.HandlerFor(s.opts.Registry, promhttp.HandlerOpts{}))
	mux.Handle(PathAssets+"/*", http.StripPrefix(PathAssets, http.FileServerFS(html.AssetsFS())))

	mux.Get(PathHome, s.formPage)
	mux.Post(PathContract, s.submitContract)
	mux.Post(PathDownload, s.downloadContract)

	mux.Route("/api", func(r chi.Router) {
		r.Get("/openapi.yaml", s.openAPI)
		r.Post("/contracts/validate", s.validateContract)
		r.Post("/contracts", s.createContract)
	})

	mux.NotFound(s.fallback)
	return mux
}

// Run listens on addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("httpserver: listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.opts.Logger.Info("HTTP server listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("httpserver: serve: %w", err)
	case <-ctx.Done():
	}

	s.opts.Logger.Info("Shutting down HTTP server", zap.Duration("timeout", s.opts.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("httpserver: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpserver: serve: %w", err)
	}
	return nil
}
