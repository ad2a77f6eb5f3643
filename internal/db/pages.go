package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// DefaultPageCacheTTL is how long a fetched job posting stays fresh
const DefaultPageCacheTTL = 7 * 24 * time.Hour

// Page is a cached job posting
type Page struct {
	URL       string
	Title     string
	HTML      string
	Text      string
	Rendered  bool
	FetchedAt time.Time
}

// UpsertPage stores page, replacing any previous copy of the same URL
func (db *DB) UpsertPage(ctx context.Context, page *Page) error {
	fetched := page.FetchedAt
	if fetched.IsZero() {
		fetched = time.Now()
	}
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO pages (url, title, html, text, rendered, fetched_at) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (url) DO UPDATE SET title = excluded.title, html = excluded.html,
		   text = excluded.text, rendered = excluded.rendered, fetched_at = excluded.fetched_at`,
		page.URL, page.Title, page.HTML, page.Text, page.Rendered, fetched.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert page %s: %w", page.URL, err)
	}
	return nil
}

// GetPage returns the cached page for url, or nil when there is none
func (db *DB) GetPage(ctx context.Context, url string) (*Page, error) {
	var (
		page    Page
		fetched string
	)
	err := db.conn.QueryRowContext(ctx,
		`SELECT url, title, html, text, rendered, fetched_at FROM pages WHERE url = ?`, url,
	).Scan(&page.URL, &page.Title, &page.HTML, &page.Text, &page.Rendered, &fetched)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get page %s: %w", url, err)
	}
	page.FetchedAt, err = time.Parse(time.RFC3339Nano, fetched)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fetched_at for %s: %w", url, err)
	}
	return &page, nil
}

// GetFreshPage is GetPage restricted to pages fetched within maxAge
func (db *DB) GetFreshPage(ctx context.Context, url string, maxAge time.Duration) (*Page, error) {
	page, err := db.GetPage(ctx, url)
	if err != nil || page == nil {
		return nil, err
	}
	if time.Since(page.FetchedAt) > maxAge {
		return nil, nil
	}
	return page, nil
}

// DeletePage drops url from the cache
func (db *DB) DeletePage(ctx context.Context, url string) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM pages WHERE url = ?`, url); err != nil {
		return fmt.Errorf("failed to delete page %s: %w", url, err)
	}
	return nil
}
