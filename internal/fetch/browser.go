package fetch

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// MinContentLength is the shortest extracted text accepted from a plain
// HTTP fetch before falling back to a headless browser
const MinContentLength = 500

// ShouldUseBrowser reports whether extracted text is short enough that the
// page is probably rendered client-side
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// Renderer returns the HTML of a page after scripts have run
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// ChromeRenderer renders pages with a local headless Chrome or Chromium
type ChromeRenderer struct {
	Timeout time.Duration
	// Settle is how long to wait after the body is ready
	Settle time.Duration
	Logger *zap.Logger
}

// NewChromeRenderer returns a renderer with the default timeouts
func NewChromeRenderer(logger *zap.Logger) *ChromeRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChromeRenderer{Timeout: DefaultTimeout, Settle: 3 * time.Second, Logger: logger}
}

// Render implements Renderer
func (r *ChromeRenderer) Render(ctx context.Context, url string) (string, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("starting headless browser", zap.String("url", url))

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(r.Settle),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// cookie banners; absence is fine
			_ = chromedp.Click(`button[id*="accept"], button[class*="accept"]`, chromedp.NodeVisible, chromedp.AtLeast(0)).Do(ctx)
			return nil
		}),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}

	logger.Debug("rendered page", zap.String("url", url), zap.Int("bytes", len(html)))
	return html, nil
}

var _ Renderer = (*ChromeRenderer)(nil)
