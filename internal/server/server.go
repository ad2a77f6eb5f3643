// Package server provides the local HTTP API over a variant registry.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/jonathan/resume-variants/internal/fetch"
	"github.com/jonathan/resume-variants/internal/logging"
	"github.com/jonathan/resume-variants/internal/rendering"
	"github.com/jonathan/resume-variants/internal/server/ratelimit"
	"github.com/jonathan/resume-variants/internal/types"
	"github.com/jonathan/resume-variants/internal/validation"
	"github.com/jonathan/resume-variants/internal/variant"
)

// Store persists the workspace and match history. *db.DB implements it.
type Store interface {
	SaveWorkspace(ctx context.Context, ws variant.Workspace) error
	SaveMatchRun(ctx context.Context, variantID string, resp *types.MatchResponse) (int64, error)
}

// Matcher scores résumé entries against a job description
type Matcher interface {
	Match(ctx context.Context, doc *types.Document, jobDescription string) (*types.MatchResponse, error)
}

// PostingFetcher downloads a job posting
type PostingFetcher interface {
	JobPosting(ctx context.Context, url string) (*fetch.Posting, error)
}

// Options wires the server's collaborators. Only Registry is required;
// endpoints whose collaborator is missing answer 503.
type Options struct {
	Registry *variant.Registry
	Store    Store
	Matcher  Matcher
	Fetcher  PostingFetcher
	Compiler validation.Compiler
	Render   rendering.Options
	Limits   validation.Limits
	Limiter  *ratelimit.Limiter
	Logger   *zap.Logger
	Now      func() time.Time
}

// Server is the HTTP API
type Server struct {
	registry *variant.Registry
	store    Store
	matcher  Matcher
	fetcher  PostingFetcher
	compiler validation.Compiler
	render   rendering.Options
	limits   validation.Limits
	limiter  *ratelimit.Limiter
	logger   *zap.Logger
	now      func() time.Time

	// serializes mutate+persist so snapshots reach the store in order
	writeMu sync.Mutex
	router  chi.Router
}

// New creates a server
func New(opts Options) (*Server, error) {
	if opts.Registry == nil {
		return nil, errors.New("server requires a registry")
	}
	s := &Server{
		registry: opts.Registry,
		store:    opts.Store,
		matcher:  opts.Matcher,
		fetcher:  opts.Fetcher,
		compiler: opts.Compiler,
		render:   opts.Render,
		limits:   opts.Limits,
		limiter:  opts.Limiter,
		logger:   logging.OrNop(opts.Logger),
		now:      opts.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.withLogging)
	r.Use(s.withCORS)
	if s.limiter != nil {
		r.Use(s.withRateLimit)
	}

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/active", s.handleGetActive)
		r.Put("/active", s.handleSetActive)
		r.Get("/document", s.handleActiveDocument)

		r.Get("/export", s.handleExport)
		r.Post("/import", s.handleImport)

		r.Route("/master", func(r chi.Router) {
			r.Get("/", s.handleGetMaster)
			r.Put("/", s.handleReplaceMaster)
			r.Get("/tex", s.handleMasterTeX)
			r.Get("/pdf", s.handleMasterPDF)
		})

		r.Route("/variants", func(r chi.Router) {
			r.Get("/", s.handleListVariants)
			r.Post("/", s.handleCreateVariant)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetVariant)
				r.Patch("/", s.handleUpdateVariant)
				r.Delete("/", s.handleDeleteVariant)

				r.Get("/document", s.handleVariantDocument)
				r.Get("/lint", s.handleLint)
				r.Get("/tex", s.handleVariantTeX)
				r.Get("/pdf", s.handleVariantPDF)
				r.Get("/check", s.handleVariantCheck)

				r.Put("/enabled/{entityID}", s.handleSetEnabled)
				r.Post("/enabled/{entityID}/toggle", s.handleToggleEnabled)
				r.Put("/text/{bulletID}", s.handleSetBulletText)
				r.Put("/entries/{entryID}/data", s.handleSetEntryData)
				r.Delete("/entries/{entryID}", s.handleRemoveEntry)
				r.Post("/entries/{entryID}/bullets", s.handleAddBullet)
				r.Delete("/entries/{entryID}/bullets/{bulletID}", s.handleRemoveBullet)
				r.Post("/sections/{sectionID}/entries", s.handleAddEntry)
				r.Put("/sections/{sectionID}/entry-order", s.handleSetEntryOrder)
				r.Put("/section-order", s.handleSetSectionOrder)
				r.Put("/job", s.handleSetJob)
				r.Post("/suggestions", s.handleApplySuggestions)

				r.Post("/match", s.handleMatch)
				r.Post("/ingest-job", s.handleIngestJob)
			})
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second, // matching and PDF compilation are slow
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan struct{})
	defer close(stop)
	if s.limiter != nil {
		go s.limiter.Run(5*time.Minute, stop)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging logs each request with its status and duration
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// withRateLimit rejects requests over the limiter's budget with 429
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := s.limiter.Allow(clientID(r), r.Method, r.URL.Path)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		}
		if !info.Allowed {
			retry := int(info.RetryAfter.Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			s.logger.Warn("rate limit exceeded",
				zap.String("client", clientID(r)),
				zap.String("path", r.URL.Path),
				zap.Int("limit", info.Limit),
			)
			s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
				"error":       "rate limit exceeded",
				"retry_after": retry,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientID is the remote IP of the request
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// fail maps err to a status code and writes it
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	s.errorResponse(w, status, err.Error())
}

// decode reads a JSON request body into v
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// mutate runs fn and persists the resulting workspace. It reports false
// after writing an error response.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, fn func() error) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	// a failed edit or save leaves the registry as it was before the request
	prev := s.registry.Snapshot()
	if err := fn(); err != nil {
		s.registry.Restore(prev)
		s.fail(w, err)
		return false
	}
	if s.store == nil {
		return true
	}
	if err := s.store.SaveWorkspace(r.Context(), s.registry.Snapshot()); err != nil {
		s.registry.Restore(prev)
		s.fail(w, fmt.Errorf("failed to save workspace: %w", err))
		return false
	}
	return true
}
