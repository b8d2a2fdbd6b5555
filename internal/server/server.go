// Package server exposes the conversion pipeline over HTTP.
package server

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/docmdio/docmd/constants"
	"github.com/docmdio/docmd/internal/common"
	"github.com/docmdio/docmd/internal/export"
	"github.com/docmdio/docmd/internal/llm"
	"github.com/docmdio/docmd/internal/pipeline"
	"github.com/docmdio/docmd/internal/repository"
)

type Server struct {
	cfg         common.ServerConfig
	analyzer    *pipeline.Analyzer
	conversions repository.ConversionRepository
	exporter    *export.Service
	engine      *llm.Engine
	db          *sql.DB
	logger      *slog.Logger
}

func New(cfg common.ServerConfig, analyzer *pipeline.Analyzer, conversions repository.ConversionRepository, exporter *export.Service, engine *llm.Engine, db *sql.DB, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:         cfg,
		analyzer:    analyzer,
		conversions: conversions,
		exporter:    exporter,
		engine:      engine,
		db:          db,
		logger:      logger,
	}
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/features", s.handleFeatures)
		r.Post("/convert", s.handleConvert)
		r.Get("/conversions", s.handleListConversions)
		r.Get("/conversions/export", s.handleExportConversions)
		r.Get("/conversions/{id}", s.handleGetConversion)
		r.Get("/model/info", s.handleModelInfo)
	})

	return r
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(common.WithRequestID(r.Context(), id)))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("http.request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed_ms", time.Since(start).Milliseconds(),
			"request_id", common.RequestIDFromContext(r.Context()),
		)
	})
}

// handleFeatures advertises the closed enums clients can select from.
func (s *Server) handleFeatures(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"features":   constants.FeatureNames(),
		"categories": constants.AsStringSlice(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := repository.HealthCheck(r.Context(), s.db, 2*time.Second); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
