// Package scrape runs profile URLs through the page loader and field
// extractor, one URL at a time on a single browser tab.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/lead-scraper/internal/extract"
	"github.com/jonathan/lead-scraper/internal/fetch"
	"github.com/jonathan/lead-scraper/internal/types"
)

// ProfileCallback receives each successfully scraped profile.
type ProfileCallback func(record types.ProfileRecord, experiences []types.ExperienceEntry)

// Runner owns a Page and scrapes URLs on it sequentially.
type Runner struct {
	page      fetch.Page
	loader    *fetch.Loader
	extractor *extract.Extractor
	onProfile ProfileCallback
}

// NewRunner creates a Runner. Nil loader or extractor use defaults.
func NewRunner(page fetch.Page, loader *fetch.Loader, extractor *extract.Extractor) *Runner {
	if loader == nil {
		loader = fetch.NewLoader(nil)
	}
	if extractor == nil {
		extractor = extract.New(nil, false)
	}
	return &Runner{page: page, loader: loader, extractor: extractor}
}

// OnProfile registers a callback invoked after each successful scrape.
func (r *Runner) OnProfile(cb ProfileCallback) {
	r.onProfile = cb
}

// Run scrapes urls in order and returns exactly one record per URL.
// A load timeout yields a Timeout record; any other failure an Error record.
func (r *Runner) Run(ctx context.Context, urls []string) []types.ProfileRecord {
	records := make([]types.ProfileRecord, 0, len(urls))
	for i, url := range urls {
		log.Printf("[SCRAPE] Scraping profile %d/%d: %s", i+1, len(urls), url)
		record, experiences := r.ScrapeProfile(ctx, url)
		records = append(records, record)
		if r.onProfile != nil && !IsSentinel(record) {
			r.onProfile(record, experiences)
		}
	}
	return records
}

// ScrapeProfile scrapes a single URL. Failures are reported as sentinel
// records with no experiences.
func (r *Runner) ScrapeProfile(ctx context.Context, url string) (types.ProfileRecord, []types.ExperienceEntry) {
	record, experiences, err := r.scrape(ctx, url)
	if err == nil {
		return record, experiences
	}

	var timeoutErr *fetch.TimeoutError
	if errors.As(err, &timeoutErr) {
		log.Printf("[SCRAPE] Timeout scraping %s", url)
		return extract.TimeoutRecord(url), nil
	}
	log.Printf("[SCRAPE] Error scraping %s: %v", url, err)
	return extract.ErrorRecord(url), nil
}

func (r *Runner) scrape(ctx context.Context, url string) (record types.ProfileRecord, experiences []types.ExperienceEntry, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic while scraping: %v", p)
		}
	}()

	if err := r.loader.Load(ctx, r.page, url); err != nil {
		return types.ProfileRecord{}, nil, err
	}

	html, err := r.page.HTML(ctx)
	if err != nil {
		return types.ProfileRecord{}, nil, fmt.Errorf("failed to read page HTML: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return types.ProfileRecord{}, nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return r.extractor.Extract(doc, url), extract.Experiences(doc), nil
}

// IsSentinel reports whether record marks a failed scrape.
func IsSentinel(record types.ProfileRecord) bool {
	return record.Name == types.NameTimeout || record.Name == types.NameError
}

// Summary counts batch outcomes.
type Summary struct {
	Total    int
	Scraped  int
	Timeouts int
	Errors   int
}

// Summarize counts the outcomes in records.
func Summarize(records []types.ProfileRecord) Summary {
	s := Summary{Total: len(records)}
	for _, record := range records {
		switch record.Name {
		case types.NameTimeout:
			s.Timeouts++
		case types.NameError:
			s.Errors++
		default:
			s.Scraped++
		}
	}
	return s
}
