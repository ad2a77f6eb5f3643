package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jonathan/resume-variants/internal/rendering"
	"github.com/jonathan/resume-variants/internal/types"
	"github.com/jonathan/resume-variants/internal/validation"
)

// texFor renders the master ("" id) or a variant's effective document
func (s *Server) texFor(id string) (string, error) {
	var doc *types.Document
	if id == "" {
		doc = s.registry.Master()
	} else {
		var err error
		doc, err = s.registry.EffectiveDocument(id)
		if err != nil {
			return "", err
		}
	}
	return rendering.RenderLaTeX(doc, s.render)
}

func (s *Server) writeTeX(w http.ResponseWriter, id string) {
	tex, err := s.texFor(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/x-tex; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(tex))
}

func (s *Server) writePDF(w http.ResponseWriter, r *http.Request, id, filename string) {
	if s.compiler == nil {
		s.fail(w, fmt.Errorf("PDF compiler: %w", ErrUnavailable))
		return
	}
	tex, err := s.texFor(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	pdf, err := s.compiler.Compile(r.Context(), tex)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.logger.Info("compiled PDF",
		zap.String("variant_id", id),
		zap.String("compiler", s.compiler.Name()),
		zap.Int("bytes", len(pdf)),
	)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (s *Server) handleMasterTeX(w http.ResponseWriter, _ *http.Request) {
	s.writeTeX(w, "")
}

func (s *Server) handleVariantTeX(w http.ResponseWriter, r *http.Request) {
	s.writeTeX(w, chi.URLParam(r, "id"))
}

func (s *Server) handleMasterPDF(w http.ResponseWriter, r *http.Request) {
	s.writePDF(w, r, "", "master.pdf")
}

func (s *Server) handleVariantPDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.writePDF(w, r, id, id+".pdf")
}

// handleVariantCheck reports layout violations of a variant's rendering.
// Without a compiler only line lengths are checked.
func (s *Server) handleVariantCheck(w http.ResponseWriter, r *http.Request) {
	tex, err := s.texFor(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	report, err := validation.Check(r.Context(), tex, s.compiler, s.limits)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"pageCount":  report.PageCount,
		"violations": report.Violations,
		"ok":         !report.HasErrors(),
	})
}
