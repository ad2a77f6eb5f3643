package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-variants/internal/types"
)

func showDocument(t *testing.T, ws string, args ...string) *types.Document {
	t.Helper()
	out := mustRunCLI(t, ws, append([]string{"show"}, args...)...)
	var doc types.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	return &doc
}

func entry(doc *types.Document, id string) *types.Entry {
	_, e := doc.FindEntry(id)
	return e
}

func TestInit(t *testing.T) {
	ws := newWorkspace(t)

	_, err := runCLI(t, ws, "init")
	assert.ErrorContains(t, err, "already has a master resume")

	mustRunCLI(t, ws, "init", "--force")
	doc := showDocument(t, ws, "--master")
	assert.Equal(t, types.SampleDocument().Contact.Name, doc.Contact.Name)
}

func TestInit_FromFile(t *testing.T) {
	t.Setenv("RESUME_LOG_LEVEL", "error")
	master := types.SampleDocument()
	master.Contact.Name = "Jordan Example"
	data, err := json.Marshal(master)
	require.NoError(t, err)
	file := filepath.Join(t.TempDir(), "master.json")
	require.NoError(t, os.WriteFile(file, data, 0o644))

	ws := filepath.Join(t.TempDir(), "ws.db")
	mustRunCLI(t, ws, "init", "--from", file)
	assert.Equal(t, "Jordan Example", showDocument(t, ws).Contact.Name)
}

func TestCommandsRequireInit(t *testing.T) {
	t.Setenv("RESUME_LOG_LEVEL", "error")
	ws := filepath.Join(t.TempDir(), "empty.db")
	_, err := runCLI(t, ws, "variants", "list")
	assert.ErrorIs(t, err, errNotInitialized)
}

func TestVariantsAndEdits(t *testing.T) {
	ws := newWorkspace(t)

	out := mustRunCLI(t, ws, "edit", "disable", "exp-2")
	assert.Contains(t, out, "read-only")
	assert.True(t, entry(showDocument(t, ws), "exp-2").Enabled, "edits with the master selected change nothing")

	id := strings.TrimSpace(mustRunCLI(t, ws, "variants", "create", "Backend roles"))
	require.NotEmpty(t, id)
	assert.Contains(t, mustRunCLI(t, ws, "variants", "list"), "Backend roles")

	mustRunCLI(t, ws, "edit", "disable", "exp-2")
	mustRunCLI(t, ws, "edit", "text", "exp-1-bp-1", "Shipped a Go service")
	mustRunCLI(t, ws, "edit", "entry-data", "skills-1", `{"type":"skills","category":"Languages","items":"Go, SQL"}`)
	bulletID := strings.TrimSpace(mustRunCLI(t, ws, "edit", "add-bullet", "exp-1", "Mentored two interns"))
	assert.NotEmpty(t, bulletID)
	mustRunCLI(t, ws, "edit", "remove-entry", "proj-1")
	mustRunCLI(t, ws, "edit", "order-sections", "section-skills,section-experience")
	assert.Contains(t, mustRunCLI(t, ws, "edit", "toggle", "ach-1"), "ach-1 enabled=false")

	doc := showDocument(t, ws)
	assert.False(t, entry(doc, "exp-2").Enabled)
	assert.Equal(t, "Shipped a Go service", entry(doc, "exp-1").BulletPoints[0].Text)
	assert.Equal(t, "Mentored two interns", entry(doc, "exp-1").BulletPoints[len(entry(doc, "exp-1").BulletPoints)-1].Text)
	assert.Equal(t, types.SkillsData{Category: "Languages", Items: "Go, SQL"}, entry(doc, "skills-1").Data)
	assert.Nil(t, entry(doc, "proj-1"))
	assert.Equal(t, "section-skills", doc.Sections[0].ID)

	master := showDocument(t, ws, "--master")
	assert.True(t, entry(master, "exp-2").Enabled)
	assert.NotNil(t, entry(master, "proj-1"))

	mustRunCLI(t, ws, "variants", "select")
	assert.True(t, entry(showDocument(t, ws), "exp-2").Enabled)
	assert.False(t, entry(showDocument(t, ws, "--variant", id), "exp-2").Enabled)

	mustRunCLI(t, ws, "variants", "rename", id, "Platform roles")
	assert.Contains(t, mustRunCLI(t, ws, "variants", "list"), "Platform roles")

	mustRunCLI(t, ws, "variants", "delete", id)
	assert.Contains(t, mustRunCLI(t, ws, "variants", "list"), "No variants")
}

func TestEdit_KindMismatchRejected(t *testing.T) {
	ws := newWorkspace(t)
	mustRunCLI(t, ws, "variants", "create", "V")

	_, err := runCLI(t, ws, "edit", "entry-data", "exp-1", `{"type":"skills","category":"X","items":"Y"}`)
	assert.Error(t, err)
}

func TestLint(t *testing.T) {
	ws := newWorkspace(t)
	mustRunCLI(t, ws, "variants", "create", "V")
	assert.Contains(t, mustRunCLI(t, ws, "lint"), "No drift found")

	mustRunCLI(t, ws, "edit", "text", "no-such-bullet", "x")
	out := mustRunCLI(t, ws, "lint")
	assert.Contains(t, out, "textOverrides[no-such-bullet]")

	_, err := runCLI(t, ws, "lint", "--strict")
	assert.Error(t, err)
}

func TestRenderAll(t *testing.T) {
	ws := newWorkspace(t)
	id := strings.TrimSpace(mustRunCLI(t, ws, "variants", "create", "Data Eng"))
	mustRunCLI(t, ws, "edit", "disable", "section-projects")

	outDir := filepath.Join(t.TempDir(), "out")
	out := mustRunCLI(t, ws, "render", "--all", "--out", outDir)
	assert.Contains(t, out, "master:")

	master, err := os.ReadFile(filepath.Join(outDir, "master.tex"))
	require.NoError(t, err)
	assert.Contains(t, string(master), "Raft-replicated")

	variantTeX, err := os.ReadFile(filepath.Join(outDir, fileBase(renderTarget{VariantID: id, Name: "Data Eng"})+".tex"))
	require.NoError(t, err)
	assert.NotContains(t, string(variantTeX), "Raft-replicated")
}

func TestExportImport(t *testing.T) {
	ws := newWorkspace(t)
	id := strings.TrimSpace(mustRunCLI(t, ws, "variants", "create", "V"))
	mustRunCLI(t, ws, "edit", "disable", "exp-2")

	backup := filepath.Join(t.TempDir(), "backup.json")
	assert.Contains(t, mustRunCLI(t, ws, "export", backup), "Exported 1 variant(s)")

	other := filepath.Join(t.TempDir(), "other.db")
	mustRunCLI(t, other, "import", backup)
	assert.False(t, entry(showDocument(t, other, "--variant", id), "exp-2").Enabled)

	require.NoError(t, os.WriteFile(backup, []byte(`{"version":1}`), 0o644))
	_, err := runCLI(t, other, "import", backup)
	assert.Error(t, err)
}

func TestMatchLast_NoHistory(t *testing.T) {
	ws := newWorkspace(t)
	mustRunCLI(t, ws, "variants", "create", "V")
	_, err := runCLI(t, ws, "match", "--last")
	assert.ErrorContains(t, err, "no saved match")
}
