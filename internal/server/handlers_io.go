package server

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-variants/internal/storage"
)

// maxImportBytes caps the size of an uploaded workspace
const maxImportBytes = 10 << 20

func (s *Server) handleExport(w http.ResponseWriter, _ *http.Request) {
	now := s.now()
	var buf bytes.Buffer
	if err := storage.Export(&buf, s.registry.Snapshot(), now); err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "resume-backup-"+now.Format("2006-01-02")+".json"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// handleImport replaces the whole workspace with an exported envelope
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	ok := s.mutate(w, r, func() error {
		ws, err := storage.Import(http.MaxBytesReader(w, r.Body, maxImportBytes))
		if err != nil {
			return err
		}
		s.registry.Restore(*ws)
		return nil
	})
	if ok {
		s.jsonResponse(w, http.StatusOK, map[string]any{
			"variants": s.registry.List(),
			"activeId": s.registry.ActiveID(),
		})
	}
}
