package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPages(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	missing, err := database.GetPage(ctx, "https://example.com/job")
	require.NoError(t, err)
	assert.Nil(t, missing)

	page := &Page{
		URL:       "https://example.com/job",
		Title:     "Engineer",
		HTML:      "<html></html>",
		Text:      "Build things",
		Rendered:  true,
		FetchedAt: time.Now().Add(-time.Hour).UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, database.UpsertPage(ctx, page))

	got, err := database.GetPage(ctx, page.URL)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, page.Title, got.Title)
	assert.Equal(t, page.Text, got.Text)
	assert.True(t, got.Rendered)
	assert.True(t, page.FetchedAt.Equal(got.FetchedAt))

	fresh, err := database.GetFreshPage(ctx, page.URL, 2*time.Hour)
	require.NoError(t, err)
	assert.NotNil(t, fresh)

	stale, err := database.GetFreshPage(ctx, page.URL, time.Minute)
	require.NoError(t, err)
	assert.Nil(t, stale)

	page.Text = "Updated"
	page.FetchedAt = time.Now()
	require.NoError(t, database.UpsertPage(ctx, page))
	got, err = database.GetPage(ctx, page.URL)
	require.NoError(t, err)
	assert.Equal(t, "Updated", got.Text)

	require.NoError(t, database.DeletePage(ctx, page.URL))
	got, err = database.GetPage(ctx, page.URL)
	require.NoError(t, err)
	assert.Nil(t, got)
}
