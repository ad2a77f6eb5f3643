package fetch

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-variants/internal/db"
)

// Posting is a job description pulled from the web
type Posting struct {
	URL       string    `json:"url"`
	Title     string    `json:"title,omitempty"`
	Text      string    `json:"text"`
	Platform  Platform  `json:"platform"`
	Rendered  bool      `json:"rendered"`
	FromCache bool      `json:"fromCache"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// PageCache stores fetched postings between runs
type PageCache interface {
	GetFreshPage(ctx context.Context, url string, maxAge time.Duration) (*db.Page, error)
	UpsertPage(ctx context.Context, page *db.Page) error
}

// Fetcher turns job posting URLs into text. The cache and the browser are
// both optional.
type Fetcher struct {
	options  *Options
	cache    PageCache
	cacheTTL time.Duration
	browser  Renderer
	logger   *zap.Logger
	now      func() time.Time
}

// FetcherOption configures a Fetcher
type FetcherOption func(*Fetcher)

// WithOptions sets the HTTP options
func WithOptions(opts *Options) FetcherOption {
	return func(f *Fetcher) {
		if opts != nil {
			f.options = opts
		}
	}
}

// WithCache enables the page cache; ttl <= 0 uses db.DefaultPageCacheTTL
func WithCache(cache PageCache, ttl time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.cache = cache
		if ttl > 0 {
			f.cacheTTL = ttl
		}
	}
}

// WithBrowser enables the headless browser fallback
func WithBrowser(r Renderer) FetcherOption {
	return func(f *Fetcher) { f.browser = r }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) FetcherOption {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFetcher creates a Fetcher
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		options:  DefaultOptions(),
		cacheTTL: db.DefaultPageCacheTTL,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// JobPosting fetches urlStr and extracts the posting text. A fresh cached
// copy is returned without touching the network. When plain HTTP yields too
// little text and a browser is configured, the page is rendered instead.
func (f *Fetcher) JobPosting(ctx context.Context, urlStr string) (*Posting, error) {
	if err := ValidateURL(urlStr); err != nil {
		return nil, err
	}
	platform := DetectPlatform(urlStr)

	if f.cache != nil {
		page, err := f.cache.GetFreshPage(ctx, urlStr, f.cacheTTL)
		if err != nil {
			f.logger.Warn("page cache lookup failed", zap.String("url", urlStr), zap.Error(err))
		} else if page != nil {
			return &Posting{
				URL:       page.URL,
				Title:     page.Title,
				Text:      page.Text,
				Platform:  platform,
				Rendered:  page.Rendered,
				FromCache: true,
				FetchedAt: page.FetchedAt,
			}, nil
		}
	}

	html, rendered, err := f.download(ctx, urlStr, platform)
	if err != nil {
		return nil, err
	}

	text, err := ExtractMainText(html, platform.ContentSelectors(), platform.NoiseSelectors()...)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to extract text", Cause: err}
	}
	if text == "" {
		return nil, &Error{URL: urlStr, Message: "page has no readable text"}
	}

	posting := &Posting{
		URL:       urlStr,
		Title:     ExtractTitle(html),
		Text:      text,
		Platform:  platform,
		Rendered:  rendered,
		FetchedAt: f.now().UTC(),
	}
	f.logger.Info("fetched job posting",
		zap.String("url", urlStr),
		zap.String("platform", string(platform)),
		zap.Bool("rendered", rendered),
		zap.Int("chars", len(text)),
	)

	if f.cache != nil {
		page := &db.Page{
			URL:       urlStr,
			Title:     posting.Title,
			HTML:      html,
			Text:      text,
			Rendered:  rendered,
			FetchedAt: posting.FetchedAt,
		}
		if err := f.cache.UpsertPage(ctx, page); err != nil {
			f.logger.Warn("failed to cache page", zap.String("url", urlStr), zap.Error(err))
		}
	}
	return posting, nil
}

// download returns the page HTML and whether it came from the browser
func (f *Fetcher) download(ctx context.Context, urlStr string, platform Platform) (string, bool, error) {
	result, httpErr := URL(ctx, urlStr, f.options)
	if httpErr == nil {
		text, _ := ExtractMainText(result.HTML, platform.ContentSelectors(), platform.NoiseSelectors()...)
		if !ShouldUseBrowser(text) || f.browser == nil {
			return result.HTML, false, nil
		}
		f.logger.Debug("HTTP content too short, rendering in browser", zap.String("url", urlStr), zap.Int("chars", len(text)))
	} else if f.browser == nil || ctx.Err() != nil {
		return "", false, httpErr
	}

	html, err := f.browser.Render(ctx, urlStr)
	if err != nil {
		if httpErr == nil {
			// keep the thin HTTP result rather than nothing
			f.logger.Warn("browser fallback failed", zap.String("url", urlStr), zap.Error(err))
			return result.HTML, false, nil
		}
		return "", false, err
	}
	return html, true, nil
}
