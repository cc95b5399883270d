package fetch

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"time"
)

// DefaultNavigationTimeout bounds navigation plus the network-idle wait.
const DefaultNavigationTimeout = 60 * time.Second

// LoaderConfig controls navigation bounds and progressive reveal.
type LoaderConfig struct {
	NavigationTimeout time.Duration
	IdleQuiet         time.Duration
	ScrollStep        int
	AssumedHeight     int
	ScrollDelayMin    time.Duration
	ScrollDelayMax    time.Duration
	SettleDelay       time.Duration
}

// DefaultLoaderConfig returns the batch scraping defaults.
func DefaultLoaderConfig() *LoaderConfig {
	return &LoaderConfig{
		NavigationTimeout: DefaultNavigationTimeout,
		IdleQuiet:         500 * time.Millisecond,
		ScrollStep:        500,
		AssumedHeight:     4000,
		ScrollDelayMin:    300 * time.Millisecond,
		ScrollDelayMax:    600 * time.Millisecond,
	}
}

// Loader navigates a Page and scrolls it so lazy sections render.
type Loader struct {
	cfg   *LoaderConfig
	sleep func(ctx context.Context, d time.Duration) error
}

// NewLoader creates a Loader, filling zero fields from DefaultLoaderConfig.
func NewLoader(cfg *LoaderConfig) *Loader {
	defaults := DefaultLoaderConfig()
	if cfg == nil {
		cfg = defaults
	}
	merged := *cfg
	if merged.NavigationTimeout <= 0 {
		merged.NavigationTimeout = defaults.NavigationTimeout
	}
	if merged.IdleQuiet <= 0 {
		merged.IdleQuiet = defaults.IdleQuiet
	}
	if merged.ScrollStep <= 0 {
		merged.ScrollStep = defaults.ScrollStep
	}
	if merged.AssumedHeight <= 0 {
		merged.AssumedHeight = defaults.AssumedHeight
	}
	return &Loader{cfg: &merged, sleep: sleepContext}
}

// Config returns the effective configuration.
func (l *Loader) Config() LoaderConfig {
	return *l.cfg
}

// Load navigates to url, waits for the network to settle and reveals the
// page. Exceeding NavigationTimeout yields *TimeoutError; any other load
// failure yields *NavigationError.
func (l *Loader) Load(ctx context.Context, page Page, url string) error {
	navCtx, cancel := context.WithTimeout(ctx, l.cfg.NavigationTimeout)
	defer cancel()

	if err := page.Navigate(navCtx, url); err != nil {
		return l.classify(navCtx, url, "navigation", err)
	}
	if err := page.WaitNetworkIdle(navCtx, l.cfg.IdleQuiet); err != nil {
		return l.classify(navCtx, url, "network idle wait", err)
	}
	return l.Reveal(ctx, page, url)
}

// Reveal scrolls from the top to the document bottom in fixed increments,
// pausing a jittered delay between steps. The bottom is the page's
// scrollHeight, or AssumedHeight when that cannot be read.
func (l *Loader) Reveal(ctx context.Context, page Page, url string) error {
	bottom := l.cfg.AssumedHeight
	height, err := page.ScrollHeight(ctx)
	switch {
	case err != nil:
		log.Printf("[LOADER] warning: scroll height unavailable for %s, assuming %d: %v", url, bottom, err)
	case height > 0:
		bottom = height
	}

	for y := 0; y < bottom; y += l.cfg.ScrollStep {
		if err := page.ScrollTo(ctx, y); err != nil {
			return &NavigationError{URL: url, Message: "scroll failed", Cause: err}
		}
		if err := l.sleep(ctx, jitter(l.cfg.ScrollDelayMin, l.cfg.ScrollDelayMax)); err != nil {
			return &NavigationError{URL: url, Message: "interrupted while scrolling", Cause: err}
		}
	}

	if err := l.sleep(ctx, l.cfg.SettleDelay); err != nil {
		return &NavigationError{URL: url, Message: "interrupted while settling", Cause: err}
	}
	return nil
}

func (l *Loader) classify(navCtx context.Context, url, stage string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(navCtx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{URL: url, Stage: stage, Timeout: l.cfg.NavigationTimeout, Cause: err}
	}
	return &NavigationError{URL: url, Message: stage + " failed", Cause: err}
}

// jitter returns a random duration in [lo, hi].
func jitter(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + rand.N(hi-lo+1)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
