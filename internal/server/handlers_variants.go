package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jonathan/resume-variants/internal/ingestion"
	"github.com/jonathan/resume-variants/internal/types"
)

// ---------------------------------------------------------------------
// Master and active selection
// ---------------------------------------------------------------------

func (s *Server) handleGetMaster(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.registry.Master())
}

func (s *Server) handleReplaceMaster(w http.ResponseWriter, r *http.Request) {
	var doc types.Document
	if !s.decode(w, r, &doc) {
		return
	}
	ok := s.mutate(w, r, func() error {
		if err := types.ValidateDocument(&doc); err != nil {
			return err
		}
		s.registry.ReplaceMaster(&doc)
		return nil
	})
	if ok {
		s.jsonResponse(w, http.StatusOK, s.registry.Master())
	}
}

type activeRequest struct {
	ID string `json:"id"`
}

func (s *Server) handleGetActive(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, activeRequest{ID: s.registry.ActiveID()})
}

// handleSetActive selects a variant; an empty id selects the master
func (s *Server) handleSetActive(w http.ResponseWriter, r *http.Request) {
	var req activeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if s.mutate(w, r, func() error { return s.registry.SelectVariant(req.ID) }) {
		s.jsonResponse(w, http.StatusOK, activeRequest{ID: s.registry.ActiveID()})
	}
}

func (s *Server) handleActiveDocument(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.registry.GetEffectiveDocument())
}

// ---------------------------------------------------------------------
// Variant CRUD
// ---------------------------------------------------------------------

type createVariantRequest struct {
	Name string `json:"name"`
}

type updateVariantRequest struct {
	Name           *string `json:"name"`
	JobDescription *string `json:"jobDescription"`
	JobURL         *string `json:"jobUrl"`
}

func (s *Server) handleListVariants(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"variants": s.registry.List(),
		"activeId": s.registry.ActiveID(),
	})
}

func (s *Server) handleCreateVariant(w http.ResponseWriter, r *http.Request) {
	var req createVariantRequest
	if !s.decode(w, r, &req) {
		return
	}
	var id string
	ok := s.mutate(w, r, func() error {
		var err error
		id, err = s.registry.CreateVariant(req.Name)
		return err
	})
	if ok {
		s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id})
	}
}

func (s *Server) handleGetVariant(w http.ResponseWriter, r *http.Request) {
	v, err := s.registry.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, v)
}

// handleUpdateVariant renames a variant and/or replaces its job description.
// Fields left out of the body are unchanged.
func (s *Server) handleUpdateVariant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req updateVariantRequest
	if !s.decode(w, r, &req) {
		return
	}
	ok := s.mutate(w, r, func() error {
		current, err := s.registry.Get(id)
		if err != nil {
			return err
		}
		if req.Name != nil {
			if err := s.registry.Rename(id, *req.Name); err != nil {
				return err
			}
		}
		if req.JobDescription != nil || req.JobURL != nil {
			desc, url := current.JobDescription, current.JobURL
			if req.JobDescription != nil {
				desc = *req.JobDescription
			}
			if req.JobURL != nil {
				url = *req.JobURL
			}
			return s.registry.SetJobDescription(id, desc, url)
		}
		return nil
	})
	if !ok {
		return
	}
	s.handleGetVariant(w, r)
}

func (s *Server) handleDeleteVariant(w http.ResponseWriter, r *http.Request) {
	if s.mutate(w, r, func() error { return s.registry.DeleteVariant(chi.URLParam(r, "id")) }) {
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleVariantDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.registry.EffectiveDocument(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

func (s *Server) handleLint(w http.ResponseWriter, r *http.Request) {
	drift, err := s.registry.Lint(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"drift": drift})
}

// ---------------------------------------------------------------------
// Override edits
// ---------------------------------------------------------------------

type enabledRequest struct {
	Enabled bool `json:"enabled"`
}

type textRequest struct {
	Text string `json:"text"`
}

type orderRequest struct {
	IDs []string `json:"ids"`
}

type jobRequest struct {
	JobDescription string `json:"jobDescription"`
	JobURL         string `json:"jobUrl"`
}

type suggestionsRequest struct {
	Overrides map[string]bool `json:"overrides"`
}

// editDone answers a successful edit with the variant's effective document
func (s *Server) editDone(w http.ResponseWriter, r *http.Request, status int) {
	doc, err := s.registry.EffectiveDocument(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, status, doc)
}

func (s *Server) handleSetEnabled(w http.ResponseWriter, r *http.Request) {
	var req enabledRequest
	if !s.decode(w, r, &req) {
		return
	}
	id, entityID := chi.URLParam(r, "id"), chi.URLParam(r, "entityID")
	if s.mutate(w, r, func() error { return s.registry.SetEnabled(id, entityID, req.Enabled) }) {
		s.editDone(w, r, http.StatusOK)
	}
}

func (s *Server) handleToggleEnabled(w http.ResponseWriter, r *http.Request) {
	id, entityID := chi.URLParam(r, "id"), chi.URLParam(r, "entityID")
	var enabled bool
	ok := s.mutate(w, r, func() error {
		var err error
		enabled, err = s.registry.ToggleEnabled(id, entityID)
		return err
	})
	if ok {
		s.jsonResponse(w, http.StatusOK, map[string]any{"id": entityID, "enabled": enabled})
	}
}

func (s *Server) handleSetBulletText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !s.decode(w, r, &req) {
		return
	}
	id, bulletID := chi.URLParam(r, "id"), chi.URLParam(r, "bulletID")
	if s.mutate(w, r, func() error { return s.registry.SetBulletText(id, bulletID, req.Text) }) {
		s.editDone(w, r, http.StatusOK)
	}
}

// handleSetEntryData takes a tagged entry payload, e.g. {"type":"skills",...}
func (s *Server) handleSetEntryData(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if !s.decode(w, r, &raw) {
		return
	}
	data, err := types.UnmarshalEntryData(raw)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid entry data: "+err.Error())
		return
	}
	id, entryID := chi.URLParam(r, "id"), chi.URLParam(r, "entryID")
	if s.mutate(w, r, func() error { return s.registry.SetEntryData(id, entryID, data) }) {
		s.editDone(w, r, http.StatusOK)
	}
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	var entry types.Entry
	if !s.decode(w, r, &entry) {
		return
	}
	id, sectionID := chi.URLParam(r, "id"), chi.URLParam(r, "sectionID")
	var entryID string
	ok := s.mutate(w, r, func() error {
		var err error
		entryID, err = s.registry.AddEntry(id, sectionID, entry)
		return err
	})
	if ok {
		s.jsonResponse(w, http.StatusCreated, map[string]string{"id": entryID})
	}
}

func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	id, entryID := chi.URLParam(r, "id"), chi.URLParam(r, "entryID")
	if s.mutate(w, r, func() error { return s.registry.RemoveEntry(id, entryID) }) {
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleAddBullet(w http.ResponseWriter, r *http.Request) {
	var bullet types.BulletPoint
	if !s.decode(w, r, &bullet) {
		return
	}
	id, entryID := chi.URLParam(r, "id"), chi.URLParam(r, "entryID")
	var bulletID string
	ok := s.mutate(w, r, func() error {
		var err error
		bulletID, err = s.registry.AddBullet(id, entryID, bullet)
		return err
	})
	if ok {
		s.jsonResponse(w, http.StatusCreated, map[string]string{"id": bulletID})
	}
}

func (s *Server) handleRemoveBullet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entryID, bulletID := chi.URLParam(r, "entryID"), chi.URLParam(r, "bulletID")
	if s.mutate(w, r, func() error { return s.registry.RemoveBullet(id, entryID, bulletID) }) {
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleSetSectionOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if !s.decode(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	if s.mutate(w, r, func() error { return s.registry.SetSectionOrder(id, req.IDs) }) {
		s.editDone(w, r, http.StatusOK)
	}
}

func (s *Server) handleSetEntryOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if !s.decode(w, r, &req) {
		return
	}
	id, sectionID := chi.URLParam(r, "id"), chi.URLParam(r, "sectionID")
	if s.mutate(w, r, func() error { return s.registry.SetEntryOrder(id, sectionID, req.IDs) }) {
		s.editDone(w, r, http.StatusOK)
	}
}

func (s *Server) handleSetJob(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if !s.decode(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	ok := s.mutate(w, r, func() error {
		return s.registry.SetJobDescription(id, ingestion.CleanText(req.JobDescription), strings.TrimSpace(req.JobURL))
	})
	if ok {
		s.handleGetVariant(w, r)
	}
}

// handleApplySuggestions applies a caller-chosen subset of match suggestions
// as enabled overrides
func (s *Server) handleApplySuggestions(w http.ResponseWriter, r *http.Request) {
	var req suggestionsRequest
	if !s.decode(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	if s.mutate(w, r, func() error { return s.registry.ApplySuggestions(id, req.Overrides) }) {
		s.editDone(w, r, http.StatusOK)
	}
}
