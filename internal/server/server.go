// Package server exposes the estimator over HTTP: the page, the chart, the
// JSON API and its description, static assets, metrics and a health probe.
package server

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"k8s.io/klog/v2"

	"github.com/goliatone/go-cellcount/internal/metrics"
	"github.com/goliatone/go-cellcount/internal/openapi"
	"github.com/goliatone/go-cellcount/pkg/calibration"
	"github.com/goliatone/go-cellcount/pkg/orchestrator"
	"github.com/goliatone/go-cellcount/pkg/render"
	"github.com/goliatone/go-cellcount/pkg/renderers/html"
)

// QueryParam carries the reading on every GET route.
const QueryParam = "od"

type Option func(*Server)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithGrace bounds graceful shutdown.
func WithGrace(grace time.Duration) Option {
	return func(s *Server) {
		s.grace = grace
	}
}

// WithCacheTTL enables chart caching; zero disables it.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Server) {
		s.cacheTTL = ttl
	}
}

// WithRenderOptions sets the endpoints and debounce advertised to the page.
func WithRenderOptions(opts render.RenderOptions) Option {
	return func(s *Server) {
		s.renderOptions = opts
	}
}

// WithMetrics exports collectors on /metrics and records into them.
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(s *Server) {
		s.metrics = recorder
	}
}

// WithAPIDocument serves doc on /openapi.yaml.
func WithAPIDocument(doc *openapi.Document) Option {
	return func(s *Server) {
		s.apiDoc = doc
	}
}

// Server routes HTTP requests to the orchestrator.
type Server struct {
	orch          *orchestrator.Orchestrator
	addr          string
	grace         time.Duration
	cacheTTL      time.Duration
	renderOptions render.RenderOptions
	metrics       *metrics.Recorder
	apiDoc        *openapi.Document
	charts        *cache.Cache
	handler       http.Handler
}

// New builds the route table. The orchestrator's dataset must be loadable.
func New(orch *orchestrator.Orchestrator, options ...Option) (*Server, error) {
	if orch == nil {
		return nil, errors.New("server: orchestrator is required")
	}
	s := &Server{
		orch:  orch,
		addr:  ":8080",
		grace: 10 * time.Second,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	s.renderOptions = s.renderOptions.WithDefaults()
	if s.cacheTTL > 0 {
		s.charts = cache.New(s.cacheTTL, 2*s.cacheTTL)
	}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	s.handle(mux, "GET /{$}", s.handlePage)
	s.handle(mux, "GET "+s.renderOptions.ChartURL, s.handleChart)
	s.handle(mux, "GET "+s.renderOptions.EstimateURL, s.handleEstimate)
	s.handle(mux, "GET /api/table", s.handleTable)
	if s.apiDoc != nil {
		s.handle(mux, "GET /openapi.yaml", s.handleAPIDocument)
	}
	prefix := s.renderOptions.AssetsPrefix + "/"
	mux.Handle("GET "+prefix, http.StripPrefix(prefix, http.FileServer(http.FS(html.AssetsFS()))))
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// handle registers fn under pattern with latency recording and request logs.
func (s *Server) handle(mux *http.ServeMux, pattern string, fn http.HandlerFunc) {
	route := pattern
	if _, path, ok := strings.Cut(pattern, " "); ok {
		route = path
	}
	mux.Handle(pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		fn(rec, r)
		elapsed := time.Since(start)
		s.metrics.RecordRequest(route, rec.status, elapsed)
		klog.V(2).InfoS("Handled request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "elapsed", elapsed)
	}))
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get(QueryParam)
	s.record(r.Context(), raw)
	s.generate(w, r, orchestrator.Request{Input: raw, Renderer: "html"})
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get(QueryParam)
	s.record(r.Context(), raw)
	s.generate(w, r, orchestrator.Request{Input: raw, Renderer: "json"})
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	s.generate(w, r, orchestrator.Request{Renderer: "json-table"})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get(QueryParam)
	key := ChartKey(raw)

	if s.charts != nil {
		if cached, ok := s.charts.Get(key); ok {
			s.metrics.RecordChartCache(true)
			s.write(w, "image/svg+xml", cached.([]byte))
			return
		}
		s.metrics.RecordChartCache(false)
	}

	out, contentType, err := s.render(r.Context(), orchestrator.Request{Input: raw, Renderer: "svg"})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if s.charts != nil {
		s.charts.SetDefault(key, out)
	}
	s.write(w, contentType, out)
}

func (s *Server) handleAPIDocument(w http.ResponseWriter, _ *http.Request) {
	s.write(w, openapi.ContentType, s.apiDoc.Raw())
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request, req orchestrator.Request) {
	out, contentType, err := s.render(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.write(w, contentType, out)
}

func (s *Server) render(ctx context.Context, req orchestrator.Request) ([]byte, string, error) {
	renderer, err := s.orch.Renderer(req.Renderer)
	if err != nil {
		return nil, "", err
	}
	req.RenderOptions = s.renderOptions
	out, err := s.orch.Generate(ctx, req)
	if err != nil {
		return nil, "", err
	}
	return out, renderer.ContentType(), nil
}

func (s *Server) record(ctx context.Context, raw string) {
	if s.metrics == nil {
		return
	}
	page, err := s.orch.Page(ctx, raw)
	if err != nil {
		return
	}
	s.metrics.RecordEstimate(page.Query != nil, page.InRange())
}

func (s *Server) write(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		klog.V(1).InfoS("Write response failed", "err", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	klog.ErrorS(err, "Request failed", "path", r.URL.Path)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// ChartKey normalises raw so equivalent readings share a cached chart. All
// unparseable input maps to the same key.
func ChartKey(raw string) string {
	q := calibration.ParseQuery(raw)
	if math.IsNaN(q) {
		return "nan"
	}
	return strconv.FormatFloat(q, 'g', -1, 64)
}

// ListenAndServe serves until ctx is cancelled, then shuts down within the
// grace period.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	klog.InfoS("Listening", "addr", s.addr)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err, ok := <-errChan:
		if ok && err != nil {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	klog.InfoS("Shutting down", "grace", s.grace)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.grace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
