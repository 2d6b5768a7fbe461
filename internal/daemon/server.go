package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/agentscope/agentscope/internal/config"
	"github.com/agentscope/agentscope/internal/detect"
	"github.com/agentscope/agentscope/internal/observability"
	"github.com/agentscope/agentscope/internal/report"
)

// Server exposes the analysis engine over local HTTP: health, metrics, and a
// single analyze endpoint whose response is the structured detection record.
type Server struct {
	cfg      *config.Config
	logger   *zap.Logger
	analyzer *detect.Analyzer
	metrics  *observability.Metrics
	cache    *lru.Cache[string, report.Record]
}

// NewServer constructs a daemon instance.
func NewServer(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	metrics := observability.NewMetrics()
	analyzer, err := detect.New(cfg, logger, metrics)
	if err != nil {
		return nil, fmt.Errorf("build analyzer: %w", err)
	}

	var cache *lru.Cache[string, report.Record]
	if cfg.Server.CacheSize > 0 {
		cache, err = lru.New[string, report.Record](cfg.Server.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("build report cache: %w", err)
		}
	}

	return &Server{cfg: cfg, logger: logger, analyzer: analyzer, metrics: metrics, cache: cache}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           h2c.NewHandler(s.Handler(), &http2.Server{}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting agentscope daemon", zap.String("addr", s.cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down agentscope daemon")
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Handler builds the daemon route mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/metrics", s.metricsHandler)
	mux.HandleFunc("/v1/analyze", s.analyzeHandler)
	return mux
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) metricsHandler(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.Server.MetricsEnabled {
		http.NotFound(w, r)
		return
	}

	promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}).ServeHTTP(w, r)
}

type analyzeRequest struct {
	Path string `json:"path"`
	// Fresh bypasses the report cache for this request.
	Fresh bool `json:"fresh,omitempty"`
}

func (s *Server) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("decode request: %v", err))
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	key, err := filepath.Abs(req.Path)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("resolve path: %v", err))
		return
	}

	if s.cache != nil && !req.Fresh {
		if rec, ok := s.cache.Get(key); ok {
			s.metrics.RecordCacheLookup(true)
			writeJSON(w, http.StatusOK, rec)
			return
		}
		s.metrics.RecordCacheLookup(false)
	}

	res, err := s.analyzer.Analyze(r.Context(), key)
	if err != nil {
		s.logger.Warn("analyze request failed", zap.String("path", key), zap.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if s.cache != nil {
		s.cache.Add(key, res.Record)
	}
	writeJSON(w, http.StatusOK, res.Record)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
