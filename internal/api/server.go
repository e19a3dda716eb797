package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"eve-navigator/internal/config"
	"eve-navigator/internal/dataset"
	"eve-navigator/internal/engine"
	"eve-navigator/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP API server over a loaded dataset. Query handlers and the
// CLI call the same Navigator methods, so the two surfaces cannot drift.
type Server struct {
	cfg *config.Config

	mu        sync.RWMutex
	nav       *engine.Navigator
	startedAt time.Time
}

// NewServer creates a Server with the given config. A dataset must be
// attached with SetDataset before query endpoints report ready.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg, startedAt: time.Now()}
}

// SetDataset swaps in a loaded dataset. The Navigator is stateless over
// immutable data, so in-flight queries keep answering from the old one.
func (s *Server) SetDataset(data *dataset.Data) {
	nav := engine.NewNavigator(data)
	s.mu.Lock()
	s.nav = nav
	s.mu.Unlock()

	u := data.Universe
	metrics.DatasetSystems.Set(float64(u.Len()))
	metrics.DatasetLinks.Set(float64(u.Links()))
	metrics.DatasetBorders.Set(float64(u.Borders()))
}

func (s *Server) navigator() *engine.Navigator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nav
}

// Handler returns the HTTP handler with all API routes and CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/systems", s.handleSystems)
	mux.HandleFunc("GET /api/systems/autocomplete", s.handleAutocomplete)
	mux.HandleFunc("POST /api/route", s.instrument("route", s.handleRoute))
	mux.HandleFunc("POST /api/borders", s.instrument("borders", s.handleBorders))
	mux.HandleFunc("POST /api/nearest", s.instrument("nearest", s.handleNearest))
	mux.HandleFunc("POST /api/loop", s.instrument("loop", s.handleLoop))
	mux.HandleFunc("POST /api/analyze", s.instrument("analyze", s.handleAnalyze))
	mux.Handle("GET /metrics", promhttp.Handler())
	return corsMiddleware(mux)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(204)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// instrument wraps a query handler with readiness, per-query timeout, and
// Prometheus duration/outcome accounting.
func (s *Server) instrument(op string, handler func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.navigator() == nil {
			writeError(w, 503, "not_ready", "dataset not loaded yet")
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), s.cfg.QueryTimeout.Std())
		defer cancel()

		start := time.Now()
		err := handler(w, r.WithContext(ctx))
		outcome := "ok"
		if err != nil {
			outcome = errorKind(err)
			writeEngineError(w, err)
		}
		metrics.QueryDuration.WithLabelValues(op, outcome).Observe(time.Since(start).Seconds())
		metrics.QueriesTotal.WithLabelValues(op, outcome).Inc()
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, kind, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": kind, "message": msg})
}

func errorKind(err error) string {
	var unknown *engine.UnknownSystemError
	var invalid *engine.InvalidQueryError
	var noRoute *engine.NoRouteError
	var noLoop *engine.NoLoopError
	var timedOut *engine.TimedOutError
	switch {
	case errors.As(err, &unknown):
		return "unknown_system"
	case errors.As(err, &invalid):
		return "invalid_query"
	case errors.As(err, &noRoute):
		return "no_route"
	case errors.As(err, &noLoop):
		return "no_loop"
	case errors.As(err, &timedOut):
		return "timed_out"
	default:
		return "internal"
	}
}

// writeEngineError maps the engine's error taxonomy onto HTTP. Absence
// outcomes (no route, no loop) are 404s with a machine-readable kind rather
// than server failures.
func writeEngineError(w http.ResponseWriter, err error) {
	kind := errorKind(err)
	code := 500
	switch kind {
	case "unknown_system", "no_route", "no_loop":
		code = 404
	case "invalid_query":
		code = 400
	case "timed_out":
		code = 504
	}
	writeError(w, code, kind, err.Error())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	nav := s.navigator()
	result := map[string]interface{}{
		"ready":          nav != nil,
		"uptime_seconds": int64(time.Since(s.startedAt).Seconds()),
	}
	if nav != nil {
		u := nav.Data.Universe
		result["systems"] = u.Len()
		result["links"] = u.Links()
		result["borders"] = u.Borders()
		result["schema_version"] = nav.Data.SchemaVersion
		result["checksum"] = nav.Data.Checksum
		result["generated_at"] = nav.Data.GeneratedAt
	}
	writeJSON(w, result)
}

func (s *Server) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	nav := s.navigator()
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	if q == "" || nav == nil {
		writeJSON(w, map[string][]string{"systems": {}})
		return
	}

	var prefix, contains []string
	for _, name := range nav.Data.SystemNames {
		lower := strings.ToLower(name)
		if strings.HasPrefix(lower, q) {
			prefix = append(prefix, name)
		} else if strings.Contains(lower, q) {
			contains = append(contains, name)
		}
	}

	result := append(prefix, contains...)
	if len(result) > 15 {
		result = result[:15]
	}
	writeJSON(w, map[string][]string{"systems": result})
}
