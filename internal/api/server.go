// Package api provides the JSON HTTP API for careerscope.
//
// Endpoints:
//
//	GET  /health              liveness probe
//	GET  /ready               readiness probe (dataset loaded)
//	GET  /api/v1/summary      precomputed dashboard summary
//	GET  /api/v1/statistics   one metric over a filtered/grouped set
//	POST /api/v1/ask          natural-language question
//
// Middleware stack (outermost first): recovery → request ID → logging
// → CORS → rate limit → routes. Health probes bypass the stack.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/careerscope/careerscope/internal/answer"
	"github.com/careerscope/careerscope/internal/dataset"
	"github.com/careerscope/careerscope/internal/stats"
)

// ServerConfig contains configuration for creating the API server.
type ServerConfig struct {
	Logger      *slog.Logger
	Store       *dataset.Store   // Required
	Composer    *answer.Composer // Required
	DefaultMode answer.Mode      // Mode when /ask omits one
	CORSOrigins []string
	TrustProxy  bool // trust X-Real-IP/X-Forwarded-For (behind reverse proxy)
	RateBurst   int  // per-IP burst (0 = default 60)
}

// Server is the JSON API HTTP server.
type Server struct {
	mux *http.ServeMux
}

// NewServer creates an API server with all routes configured. The
// dashboard summary is computed once here; the store is immutable so
// it never goes stale.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("store is required")
	}
	if cfg.Composer == nil {
		return nil, errors.New("composer is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	defaultMode := cfg.DefaultMode
	if defaultMode == "" {
		defaultMode = answer.ModePreferModel
	}

	sh := &statisticsHandler{
		store:   cfg.Store,
		summary: stats.Summarize(cfg.Store),
		logger:  logger,
	}
	ah := &askHandler{
		composer:    cfg.Composer,
		defaultMode: defaultMode,
		logger:      logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/summary", sh.getSummary)
	mux.HandleFunc("GET /api/v1/statistics", sh.getStatistics)
	mux.HandleFunc("POST /api/v1/ask", ah.ask)

	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 60
	}
	rl := newRateLimiter(1.0, burst)

	var handler http.Handler = mux
	handler = rateLimitMiddleware(rl, cfg.TrustProxy, logger)(handler)
	handler = corsMiddleware(cfg.CORSOrigins)(handler)
	handler = loggingMiddleware(logger)(handler)
	handler = requestIDMiddleware()(handler)
	handler = recoveryMiddleware(logger)(handler)

	// Health probes sit outside the middleware stack.
	topMux := http.NewServeMux()
	topMux.HandleFunc("GET /health", health)
	topMux.Handle("GET /ready", readiness(cfg.Store))
	topMux.Handle("/", handler)

	return &Server{mux: topMux}, nil
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}
