package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/resume-variants/internal/types"
	"github.com/jonathan/resume-variants/internal/variant"
)

// CurrentVersion is written into every export
const CurrentVersion = 1

// Envelope is the on-disk export format
type Envelope struct {
	Version         int               `json:"version"`
	ExportedAt      time.Time         `json:"exportedAt"`
	MasterResume    *types.Document   `json:"masterResume"`
	TailoredConfigs []variant.Variant `json:"tailoredConfigs"`
	ActiveID        string            `json:"activeTailoredConfigId,omitempty"`
}

// Export writes ws to w as indented JSON
func Export(w io.Writer, ws variant.Workspace, now time.Time) error {
	env := Envelope{
		Version:         CurrentVersion,
		ExportedAt:      now.UTC(),
		MasterResume:    ws.Master,
		TailoredConfigs: ws.Variants,
		ActiveID:        ws.ActiveID,
	}
	if env.MasterResume == nil {
		env.MasterResume = &types.Document{Sections: []types.Section{}}
	}
	if env.TailoredConfigs == nil {
		env.TailoredConfigs = []variant.Variant{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

// Import reads an export, validates it against the schema and the document
// invariants, and returns the workspace it describes. A missing variant list
// is an empty one.
func Import(r io.Reader) (*variant.Workspace, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Message: "failed to read input", Cause: err}
	}
	return decode(raw)
}

func decode(raw []byte) (*variant.Workspace, error) {
	if !json.Valid(raw) {
		return nil, &LoadError{Message: "input is not valid JSON"}
	}
	if err := ValidateJSON(raw); err != nil {
		return nil, &LoadError{Message: "invalid resume data", Cause: err}
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &LoadError{Message: "failed to decode export", Cause: err}
	}
	if env.Version > CurrentVersion {
		return nil, &LoadError{Message: fmt.Sprintf("export version %d is newer than supported version %d", env.Version, CurrentVersion)}
	}
	if err := types.ValidateDocument(env.MasterResume); err != nil {
		return nil, &LoadError{Message: "invalid master resume", Cause: err}
	}

	ws := &variant.Workspace{
		Master:   env.MasterResume,
		Variants: env.TailoredConfigs,
		ActiveID: env.ActiveID,
	}
	if ws.Variants == nil {
		ws.Variants = []variant.Variant{}
	}
	seen := make(map[string]bool, len(ws.Variants))
	for _, v := range ws.Variants {
		if seen[v.ID] {
			return nil, &LoadError{Message: fmt.Sprintf("duplicate variant id %q", v.ID)}
		}
		seen[v.ID] = true
	}
	return ws, nil
}

// ExportFile writes ws to path, replacing it atomically
func ExportFile(path string, ws variant.Workspace, now time.Time) error {
	var buf bytes.Buffer
	if err := Export(&buf, ws, now); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close export: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// ImportFile reads an export from path
func ImportFile(path string) (*variant.Workspace, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}
	ws, err := decode(raw)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
		}
		return nil, err
	}
	return ws, nil
}
