package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jonathan/resume-variants/internal/ingestion"
	"github.com/jonathan/resume-variants/internal/matching"
	"github.com/jonathan/resume-variants/internal/types"
)

type matchRequest struct {
	// JobDescription replaces the variant's stored description when set
	JobDescription string `json:"jobDescription"`
	// Apply writes every suggestion as an enabled override
	Apply bool `json:"apply"`
}

type matchResponse struct {
	*types.MatchResponse
	Applied bool  `json:"applied"`
	RunID   int64 `json:"runId,omitempty"`
}

type ingestRequest struct {
	URL string `json:"url"`
}

// handleMatch scores the variant's effective document against its job
// description
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	if s.matcher == nil {
		s.fail(w, fmt.Errorf("matcher: %w", ErrUnavailable))
		return
	}
	id := chi.URLParam(r, "id")
	var req matchRequest
	if !s.decode(w, r, &req) {
		return
	}

	v, err := s.registry.Get(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	jd := ingestion.CleanText(req.JobDescription)
	if jd != "" && jd != v.JobDescription {
		if !s.mutate(w, r, func() error { return s.registry.SetJobDescription(id, jd, v.JobURL) }) {
			return
		}
	}
	if jd == "" {
		jd = v.JobDescription
	}

	doc, err := s.registry.EffectiveDocument(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	resp, err := s.matcher.Match(r.Context(), doc, jd)
	if err != nil {
		s.fail(w, err)
		return
	}

	out := matchResponse{MatchResponse: resp}
	if s.store != nil {
		runID, err := s.store.SaveMatchRun(r.Context(), id, resp)
		if err != nil {
			s.logger.Warn("failed to record match run", zap.String("variant_id", id), zap.Error(err))
		}
		out.RunID = runID
	}
	if req.Apply {
		overrides := matching.SuggestionsToOverrides(resp.Results)
		if !s.mutate(w, r, func() error { return s.registry.ApplySuggestions(id, overrides) }) {
			return
		}
		out.Applied = true
	}
	s.jsonResponse(w, http.StatusOK, out)
}

// handleIngestJob fetches a posting and stores its text as the variant's
// job description
func (s *Server) handleIngestJob(w http.ResponseWriter, r *http.Request) {
	if s.fetcher == nil {
		s.fail(w, fmt.Errorf("fetcher: %w", ErrUnavailable))
		return
	}
	id := chi.URLParam(r, "id")
	var req ingestRequest
	if !s.decode(w, r, &req) {
		return
	}
	if _, err := s.registry.Get(id); err != nil {
		s.fail(w, err)
		return
	}

	posting, err := s.fetcher.JobPosting(r.Context(), strings.TrimSpace(req.URL))
	if err != nil {
		s.fail(w, err)
		return
	}
	text := ingestion.CleanText(posting.Text)
	if !s.mutate(w, r, func() error { return s.registry.SetJobDescription(id, text, posting.URL) }) {
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"url":       posting.URL,
		"title":     posting.Title,
		"platform":  posting.Platform,
		"rendered":  posting.Rendered,
		"fromCache": posting.FromCache,
		"chars":     len(text),
	})
}
