// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input decoding, calculator calls, output serialization.
// The API NEVER performs tax logic.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tax-dashboard/core/tax"
	"tax-dashboard/internal/errors"
)

// maxBodyBytes bounds request bodies; a decade of daily closes fits comfortably
const maxBodyBytes = 4 << 20

type requestIDKey struct{}

// Server is the API server
type Server struct {
	handler *Handler
	metrics *Metrics
	logger  *zap.Logger
	mux     *http.ServeMux
	version string
}

// NewServer creates a new API server over a schedule registry
func NewServer(version string, registry *tax.Registry, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := NewMetrics()

	s := &Server{
		handler: NewHandler(registry, metrics, logger),
		metrics: metrics,
		logger:  logger,
		mux:     http.NewServeMux(),
		version: version,
	}

	s.registerRoutes()
	return s
}

// Handler returns the request handler, for tuning defaults
func (s *Server) Handler() *Handler {
	return s.handler
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoints
	s.handle("POST /tax", "tax", s.handleTax)
	s.handle("POST /compare", "compare", s.handleCompare)
	s.handle("GET /schedules", "schedules", s.handleSchedules)
	s.handle("POST /sma", "sma", s.handleSMA)

	// Supporting endpoints
	s.handle("GET /health", "health", s.handleHealth)
	s.handle("GET /version", "version", s.handleVersion)
	s.mux.Handle("GET /metrics", s.metrics.Handler())
}

// handle wraps a route with request IDs, logging and metrics
func (s *Server) handle(pattern, endpoint string, fn http.HandlerFunc) {
	s.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		fn(rec, r)

		status := strconv.Itoa(rec.status)
		elapsed := time.Since(start)
		s.metrics.RequestTotal.WithLabelValues(r.Method, endpoint, status).Inc()
		s.metrics.RequestDuration.WithLabelValues(r.Method, endpoint, status).Observe(elapsed.Seconds())
		s.logger.Info("request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("endpoint", endpoint),
			zap.Int("status", rec.status),
			zap.Duration("duration", elapsed),
		)
	})
}

// handleTax handles POST /tax
func (s *Server) handleTax(w http.ResponseWriter, r *http.Request) {
	var req TaxRequest
	if !s.decode(w, r, &req) {
		return
	}

	resp, err := s.handler.assess(r.Context(), &req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeJSON(w, resp, http.StatusOK)
}

// handleCompare handles POST /compare
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if !s.decode(w, r, &req) {
		return
	}

	resp, err := s.handler.compare(r.Context(), &req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeJSON(w, resp, http.StatusOK)
}

// handleSchedules handles GET /schedules
func (s *Server) handleSchedules(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.handler.schedules(), http.StatusOK)
}

// handleSMA handles POST /sma
func (s *Server) handleSMA(w http.ResponseWriter, r *http.Request) {
	var req SMARequest
	if !s.decode(w, r, &req) {
		return
	}

	analysis, err := s.handler.sma(&req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeJSON(w, analysis, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "tax-dashboard",
		"api_version": "v1",
	}, http.StatusOK)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.metrics.ErrorsTotal.WithLabelValues("INVALID_JSON").Inc()
		s.writeError(w, r, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	errType := errors.TypeOf(err)
	s.metrics.ErrorsTotal.WithLabelValues(string(errType)).Inc()

	status := http.StatusInternalServerError
	switch errType {
	case errors.TypeInput, errors.TypeParsing:
		status = http.StatusBadRequest
	case errors.TypeNotFound:
		status = http.StatusNotFound
	default:
		s.logger.Error("request failed", zap.String("request_id", requestID(r.Context())), zap.Error(err))
	}

	message := err.Error()
	if e, ok := err.(*errors.Error); ok {
		message = e.Message
	}
	s.writeError(w, r, string(errType), message, status)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, code, message string, status int) {
	s.writeJSON(w, ErrorBody{Error: ErrorDetail{
		Code:      code,
		Message:   message,
		RequestID: requestID(r.Context()),
	}}, status)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled, then shuts down within timeout
func (s *Server) Run(ctx context.Context, addr string, timeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", addr), zap.String("version", s.version))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
