// Package fetch - browser.go provides the chromedp-backed browser tab.
package fetch

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"
)

// DefaultUserAgent is the desktop Chrome user agent presented to LinkedIn.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/113.0.0.0 Safari/537.36"

// BrowserOptions configures the browser process and its single tab.
type BrowserOptions struct {
	Headless  bool
	UserAgent string
	Width     int
	Height    int
	Headers   map[string]string
	Cookies   []*network.CookieParam
	Verbose   bool
}

// DefaultBrowserOptions returns the options used for profile scraping.
func DefaultBrowserOptions() *BrowserOptions {
	return &BrowserOptions{
		Headless:  true,
		UserAgent: DefaultUserAgent,
		Width:     1280,
		Height:    800,
		Headers: map[string]string{
			"accept-language": "en-US,en;q=0.9",
			"referer":         "https://www.google.com/",
		},
	}
}

// Browser is a Chrome instance with one tab. It implements Page.
type Browser struct {
	ctx     context.Context
	cancel  context.CancelFunc
	tracker *idleTracker
	verbose bool
}

// NewBrowser starts Chrome, installs session cookies and default headers,
// and begins tracking network activity. Requires Chrome/Chromium to be installed.
func NewBrowser(ctx context.Context, opts *BrowserOptions) (*Browser, error) {
	if opts == nil {
		opts = DefaultBrowserOptions()
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Width == 0 || opts.Height == 0 {
		opts.Width, opts.Height = 1280, 800
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", opts.Headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("lang", "en-US"),
			chromedp.UserAgent(opts.UserAgent),
			chromedp.WindowSize(opts.Width, opts.Height),
		)...,
	)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	b := &Browser{
		ctx: browserCtx,
		cancel: func() {
			browserCancel()
			allocCancel()
		},
		tracker: newIdleTracker(),
		verbose: opts.Verbose,
	}

	// Start the browser so the target exists before listeners attach
	if err := chromedp.Run(browserCtx); err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	chromedp.ListenTarget(browserCtx, b.onEvent)

	actions := []chromedp.Action{network.Enable()}
	if len(opts.Headers) > 0 {
		headers := network.Headers{}
		for k, v := range opts.Headers {
			headers[k] = v
		}
		actions = append(actions, network.SetExtraHTTPHeaders(headers))
	}
	if len(opts.Cookies) > 0 {
		actions = append(actions, network.SetCookies(opts.Cookies))
	}
	if err := chromedp.Run(browserCtx, actions...); err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to configure browser: %w", err)
	}

	if b.verbose {
		log.Printf("[BROWSER] Started (headless=%t, cookies=%d)", opts.Headless, len(opts.Cookies))
	}
	return b, nil
}

// Close shuts the tab and the browser process down.
func (b *Browser) Close() {
	if b.cancel != nil {
		b.cancel()
	}
}

func (b *Browser) onEvent(ev interface{}) {
	switch e := ev.(type) {
	case *network.EventRequestWillBeSent:
		b.tracker.started(string(e.RequestID))
	case *network.EventLoadingFinished:
		b.tracker.finished(string(e.RequestID))
	case *network.EventLoadingFailed:
		b.tracker.finished(string(e.RequestID))
	}
}

// bind derives a context from the browser context that carries ctx's
// deadline and cancellation. Cancelling it does not close the tab.
func (b *Browser) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithCancel(b.ctx)
	if deadline, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		runCtx, cancelDeadline = context.WithDeadline(runCtx, deadline)
		parentCancel := cancel
		cancel = func() {
			cancelDeadline()
			parentCancel()
		}
	}
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

// Navigate implements Page.
func (b *Browser) Navigate(ctx context.Context, url string) error {
	b.tracker.reset()
	runCtx, cancel := b.bind(ctx)
	defer cancel()

	if b.verbose {
		log.Printf("[BROWSER] Navigating to %s", url)
	}
	return chromedp.Run(runCtx, chromedp.Navigate(url))
}

// WaitNetworkIdle implements Page.
func (b *Browser) WaitNetworkIdle(ctx context.Context, quiet time.Duration) error {
	ticker := time.NewTicker(idlePollInterval)
	defer ticker.Stop()

	for {
		if b.tracker.idleFor(quiet) {
			return nil
		}
		select {
		case <-ctx.Done():
			if b.verbose {
				log.Printf("[BROWSER] Network still busy: %d requests in flight", b.tracker.pending())
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// ScrollTo implements Page.
func (b *Browser) ScrollTo(ctx context.Context, y int) error {
	runCtx, cancel := b.bind(ctx)
	defer cancel()
	return chromedp.Run(runCtx, chromedp.Evaluate(fmt.Sprintf("window.scrollTo(0, %d)", y), nil))
}

// ScrollHeight implements Page.
func (b *Browser) ScrollHeight(ctx context.Context) (int, error) {
	runCtx, cancel := b.bind(ctx)
	defer cancel()

	var height int
	if err := chromedp.Run(runCtx, chromedp.Evaluate("document.body.scrollHeight", &height)); err != nil {
		return 0, err
	}
	return height, nil
}

// HTML implements Page.
func (b *Browser) HTML(ctx context.Context) (string, error) {
	runCtx, cancel := b.bind(ctx)
	defer cancel()

	var html string
	if err := chromedp.Run(runCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("failed to read rendered HTML: %w", err)
	}
	if b.verbose {
		log.Printf("[BROWSER] Rendered HTML: %d bytes", len(html))
	}
	return html, nil
}

// Cookies returns every cookie the browser currently holds.
func (b *Browser) Cookies(ctx context.Context) ([]*network.Cookie, error) {
	runCtx, cancel := b.bind(ctx)
	defer cancel()

	var cookies []*network.Cookie
	err := chromedp.Run(runCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		cookies, err = storage.GetCookies().Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to read cookies: %w", err)
	}
	return cookies, nil
}
