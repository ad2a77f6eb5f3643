package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-variants/internal/types"
	"github.com/jonathan/resume-variants/internal/variant"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(context.Background(), MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func sampleWorkspace(t *testing.T) variant.Workspace {
	t.Helper()
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	reg := variant.New(types.SampleDocument(), variant.WithClock(func() time.Time { return clock }))

	id, err := reg.CreateVariant("Backend")
	require.NoError(t, err)
	require.NoError(t, reg.SetEnabled(id, "exp-2", false))
	require.NoError(t, reg.SetBulletText(id, "exp-1-bp-1", "Rewritten"))
	_, err = reg.CreateVariant("Data")
	require.NoError(t, err)
	require.NoError(t, reg.SelectVariant(id))
	return reg.Snapshot()
}

func TestLoadWorkspace_Empty(t *testing.T) {
	ws, err := openTestDB(t).LoadWorkspace(context.Background())
	require.NoError(t, err)
	assert.Nil(t, ws)
}

func TestSaveLoadWorkspace(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	want := sampleWorkspace(t)

	require.NoError(t, database.SaveWorkspace(ctx, want))
	got, err := database.LoadWorkspace(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, want.Master, got.Master)
	assert.Equal(t, want.ActiveID, got.ActiveID)
	require.Len(t, got.Variants, 2)
	assert.Equal(t, "Backend", got.Variants[0].Name)
	assert.Equal(t, "Data", got.Variants[1].Name)
	assert.Equal(t, want.Variants[0].Overrides, got.Variants[0].Overrides)
	assert.True(t, want.Variants[0].CreatedAt.Equal(got.Variants[0].CreatedAt))

	// restoring the loaded workspace reproduces the effective document
	reg := variant.New(nil)
	reg.Restore(*got)
	doc, err := reg.EffectiveDocument(want.Variants[0].ID)
	require.NoError(t, err)
	_, bullet := doc.FindBullet("exp-1-bp-1")
	require.NotNil(t, bullet)
	assert.Equal(t, "Rewritten", bullet.Text)
}

func TestSaveWorkspace_ReplacesVariants(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	ws := sampleWorkspace(t)
	require.NoError(t, database.SaveWorkspace(ctx, ws))

	ws.Variants = ws.Variants[1:]
	ws.ActiveID = ""
	require.NoError(t, database.SaveWorkspace(ctx, ws))

	got, err := database.LoadWorkspace(ctx)
	require.NoError(t, err)
	require.Len(t, got.Variants, 1)
	assert.Equal(t, "Data", got.Variants[0].Name)
	assert.Empty(t, got.ActiveID)
}

func TestSaveWorkspace_RequiresMaster(t *testing.T) {
	err := openTestDB(t).SaveWorkspace(context.Background(), variant.Workspace{})
	assert.Error(t, err)
}

func TestOpen_File(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "workspace.db")

	database, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, database.SaveWorkspace(ctx, variant.Workspace{Master: types.SampleDocument()}))
	require.NoError(t, database.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	ws, err := reopened.LoadWorkspace(ctx)
	require.NoError(t, err)
	require.NotNil(t, ws)
	assert.Equal(t, "Alex Candidate", ws.Master.Contact.Name)
	assert.Empty(t, ws.Variants)
}
