// Package http provides the HTTP surface of x402dash: the top-level router,
// ambient endpoints, request middleware and the auto-logging adapters.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"
	"github.com/x402dash/x402dash/adapters/metrics"
	_ "github.com/x402dash/x402dash/docs/swagger" // swagger docs
	"github.com/x402dash/x402dash/domain/errs"
	"github.com/x402dash/x402dash/pkg/jsonapi"
)

// VersionResponse represents the version endpoint response.
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
	Service string `json:"service" example:"x402dash"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty"`
}

// Pinger reports whether a dependency can serve requests.
type Pinger interface {
	Ping() error
}

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	store Pinger
}

// NewHealthHandler creates a new health handler. store may be nil.
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Liveness returns a simple liveness check.
//
//	@Summary		Liveness check
//	@Description	Returns OK if the service is running
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Router			/health [get]
//	@Router			/health/live [get]
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readiness checks that the event store is reachable.
//
//	@Summary		Readiness check
//	@Description	Checks that the event store can serve requests
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse
//	@Router			/health/ready [get]
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		if err := h.store.Ping(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy", Error: err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Version returns a handler reporting the build version.
//
//	@Summary		Get service version
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	VersionResponse
//	@Router			/version [get]
func Version(version string) http.HandlerFunc {
	if version == "" {
		version = "dev"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, VersionResponse{Version: version, Service: "x402dash"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// RouterConfig holds optional configuration for the router.
type RouterConfig struct {
	Version       string
	Metrics       *metrics.Collector
	EnableMetrics bool
	EnableOpenAPI bool

	// Dashboards are mounted at their configured paths when non-nil.
	SellerPath    string
	SellerHandler http.Handler
	BuyerPath     string
	BuyerHandler  http.Handler

	// AutoLog, when set, is installed as middleware on every request.
	// It is expected to skip the dashboard and ambient paths itself.
	AutoLog func(http.Handler) http.Handler

	// Fallback serves requests no other route matches (the instrumented application).
	Fallback http.Handler

	RequestTimeout time.Duration
}

// NewRouter creates the main HTTP router.
func NewRouter(health *HealthHandler, logger zerolog.Logger, cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggingMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	if cfg.Metrics != nil {
		r.Use(NewMetricsMiddleware(cfg.Metrics))
	}
	if cfg.AutoLog != nil {
		r.Use(cfg.AutoLog)
	}

	r.Get("/health", health.Liveness)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)
	r.Get("/version", Version(cfg.Version))

	if cfg.EnableMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	if cfg.EnableOpenAPI {
		r.Get("/.well-known/openapi.json", func(w http.ResponseWriter, r *http.Request) {
			doc, err := swag.ReadDoc()
			if err != nil {
				jsonapi.WriteError(w, jsonapi.ErrInternal("openapi document unavailable"))
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Write([]byte(doc))
		})
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/.well-known/openapi.json")))
	}

	if cfg.SellerHandler != nil {
		r.Mount(cleanPath(cfg.SellerPath), cfg.SellerHandler)
	}
	if cfg.BuyerHandler != nil {
		r.Mount(cleanPath(cfg.BuyerPath), cfg.BuyerHandler)
	}

	fallback := cfg.Fallback
	if fallback == nil {
		fallback = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			jsonapi.WriteError(w, jsonapi.NewError(http.StatusNotFound, "not_found", "Not Found").
				Detailf("No route for %s %s", r.Method, r.URL.Path).Build())
		})
	}
	r.NotFound(fallback.ServeHTTP)

	return r
}

// cleanPath normalizes a mount path to a leading slash and no trailing slash.
func cleanPath(p string) string {
	p = strings.TrimSuffix(p, "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// isInternal reports whether path belongs to the ambient endpoints.
func isInternal(path string) bool {
	return strings.HasPrefix(path, "/health") || path == "/metrics" || path == "/version" ||
		strings.HasPrefix(path, "/swagger") || strings.HasPrefix(path, "/.well-known")
}

// NewMetricsMiddleware creates middleware that records request metrics.
func NewMetricsMiddleware(m *metrics.Collector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isInternal(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			m.RequestsInFlight.Inc()
			defer m.RequestsInFlight.Dec()

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := metrics.NormalizePath(r.URL.Path)
			if rc := chi.RouteContext(r.Context()); rc != nil {
				if pattern := rc.RoutePattern(); pattern != "" && pattern != "/*" {
					route = pattern
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.ObserveRequest(r.Method, route, status, time.Since(start))
		})
	}
}

// NewLoggingMiddleware logs HTTP requests.
func NewLoggingMiddleware(logger zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			if strings.HasPrefix(r.URL.Path, "/health") || r.URL.Path == "/metrics" {
				return
			}

			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("http request")
		})
	}
}

// WriteError maps err onto a JSON:API error response.
// Validation errors become 400 naming the offending field as param, a
// missing record becomes 404 and everything else 500 with the cause logged.
func WriteError(ctx context.Context, w http.ResponseWriter, logger zerolog.Logger, err error) {
	reqID := middleware.GetReqID(ctx)

	if ve, ok := errs.AsValidation(err); ok {
		jsonapi.WriteError(w, jsonapi.NewError(http.StatusBadRequest, "invalid_parameter", "Invalid Parameter").
			Detail(ve.Error()).
			Parameter(ve.Field).
			ID(reqID).
			Build())
		return
	}
	if errors.Is(err, errs.ErrNotFound) {
		jsonapi.WriteError(w, jsonapi.NewError(http.StatusNotFound, "not_found", "Not Found").
			Detail(err.Error()).ID(reqID).Build())
		return
	}
	if errors.Is(err, context.Canceled) {
		// Client went away; nobody reads the response.
		return
	}

	logger.Error().Err(err).Str("request_id", reqID).
		Bool("store_unavailable", errors.Is(err, errs.ErrStoreUnavailable)).
		Msg("request failed")
	jsonapi.WriteError(w, jsonapi.NewError(http.StatusInternalServerError, "internal_error", "Internal Server Error").
		Detail("An internal error occurred").ID(reqID).Build())
}

// ClientIP returns the first X-Forwarded-For entry, then X-Real-IP, then
// the host part of RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" && !strings.EqualFold(xff, "unknown") {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
