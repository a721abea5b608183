// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httpapi exposes the answer engine over HTTP. The routes are a
// thin marshaling layer: they decode {query, mode, source} requests,
// apply defaults, and hand off to the resolver or the search client.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/pdiddy/study-engine/internal/answer"
	"github.com/pdiddy/study-engine/pkg/types"
)

// AnswerService resolves a query through a selected source.
type AnswerService interface {
	Resolve(ctx context.Context, query, mode, source string) (types.AnswerResult, error)
}

// SearchService answers directly from web search.
type SearchService interface {
	SearchAndAnswer(ctx context.Context, query string, m types.Mode) types.AnswerResult
}

// Server holds the HTTP surface of the answer engine.
type Server struct {
	resolver AnswerService
	search   SearchService
	logger   *zap.Logger
}

// NewServer wires the routes to their services.
func NewServer(resolver AnswerService, search SearchService, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{resolver: resolver, search: search, logger: logger}
}

// Handler builds the router with request-ID, panic-recovery, and
// request-logging middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealthz)
	r.Post("/ask", s.handleAsk)
	r.Post("/search", s.handleSearch)
	r.Post("/upload", s.handleUploadStub)

	return r
}

// requestLogger logs one line per request with method, path, status,
// and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

// askRequest is the /ask body. Mode and source are pointers so an
// absent key gets its default while an explicitly empty value stays
// empty.
type askRequest struct {
	Query  string  `json:"query"`
	Mode   *string `json:"mode"`
	Source *string `json:"source"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "No query provided")
		return
	}

	mode := "exam"
	if req.Mode != nil {
		mode = *req.Mode
	}
	source := "auto"
	if req.Source != nil {
		source = *req.Source
	}

	result, err := s.resolver.Resolve(r.Context(), req.Query, mode, source)
	if err != nil {
		if errors.Is(err, answer.ErrEmptyQuery) {
			s.writeError(w, http.StatusBadRequest, "No query provided")
			return
		}
		s.logger.Error("resolving query", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

// searchRequest is the /search body.
type searchRequest struct {
	Query string  `json:"query"`
	Mode  *string `json:"mode"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "No query provided")
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		s.writeError(w, http.StatusBadRequest, "No query provided")
		return
	}

	mode := "exam"
	if req.Mode != nil {
		mode = *req.Mode
	}

	result := s.search.SearchAndAnswer(r.Context(), query, types.ParseMode(mode))
	s.writeJSON(w, http.StatusOK, result)
}

// handleUploadStub keeps old front ends working: the upload button no
// longer affects answers.
func (s *Server) handleUploadStub(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"message":     "PDF upload ignored (app now answers directly from Gemini).",
		"pages":       0,
		"chunks":      0,
		"text_length": 0,
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"service":   "study-engine",
		"endpoints": []string{"POST /ask", "POST /search", "POST /upload", "GET /healthz"},
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", zap.Error(err))
	}
}
