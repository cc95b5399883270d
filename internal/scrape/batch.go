package scrape

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/jonathan/lead-scraper/internal/extract"
	"github.com/jonathan/lead-scraper/internal/fetch"
	"github.com/jonathan/lead-scraper/internal/naming"
	"github.com/jonathan/lead-scraper/internal/store"
	"github.com/jonathan/lead-scraper/internal/types"
)

// PageOpener starts a Page carrying the session cookies. The returned
// func releases it.
type PageOpener func(ctx context.Context, opts *fetch.BrowserOptions) (fetch.Page, func(), error)

// ChromeOpener opens a chromedp-backed Page.
func ChromeOpener(ctx context.Context, opts *fetch.BrowserOptions) (fetch.Page, func(), error) {
	browser, err := fetch.NewBrowser(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	return browser, browser.Close, nil
}

// BatchOptions configures a batch run.
type BatchOptions struct {
	InputPath      string
	OutputPath     string
	ExperiencePath string
	SessionPath    string
	Browser        *fetch.BrowserOptions
	Loader         *fetch.LoaderConfig
	Verbose        bool
}

// BatchResult describes a completed batch run.
type BatchResult struct {
	RunID      string
	OutputPath string
	Records    []types.ProfileRecord
	Summary    Summary
	Experience *store.MergeResult
}

// RunBatch scrapes every URL in the input list and overwrites the output
// collection. The session artifact must exist before any URL is visited.
func RunBatch(ctx context.Context, opts BatchOptions, open PageOpener) (*BatchResult, error) {
	state, err := fetch.LoadStorageState(opts.SessionPath)
	if err != nil {
		return nil, err
	}

	urls, err := LoadURLList(opts.InputPath)
	if err != nil {
		return nil, err
	}

	browserOpts := fetch.DefaultBrowserOptions()
	if opts.Browser != nil {
		o := *opts.Browser
		browserOpts = &o
	}
	browserOpts.Cookies = state.CookieParams()
	browserOpts.Verbose = opts.Verbose

	page, release, err := open(ctx, browserOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open browser: %w", err)
	}
	defer release()

	runID := uuid.NewString()
	log.Printf("[SCRAPE] Run %s: %d profiles from %s", runID, len(urls), opts.InputPath)

	runner := NewRunner(page, fetch.NewLoader(opts.Loader), extract.New(nil, opts.Verbose))

	var submissions []types.ProfileExperienceRecord
	if opts.ExperiencePath != "" {
		runner.OnProfile(func(record types.ProfileRecord, experiences []types.ExperienceEntry) {
			name := record.Name
			if name == "" {
				name = naming.DisplayName(record.URL)
			}
			submissions = append(submissions, types.ProfileExperienceRecord{
				ProfileURL:  record.URL,
				ProfileName: name,
				Experiences: experiences,
			})
		})
	}

	records := runner.Run(ctx, urls)

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = OutputPath(opts.InputPath)
	}
	if err := store.WriteAll(outputPath, records); err != nil {
		return nil, err
	}
	log.Printf("[SCRAPE] Done! Saved scraped data to %s", outputPath)

	result := &BatchResult{
		RunID:      runID,
		OutputPath: outputPath,
		Records:    records,
		Summary:    Summarize(records),
	}

	if opts.ExperiencePath != "" && len(submissions) > 0 {
		merged, err := store.ExperienceCollection(opts.ExperiencePath).Merge(ctx, submissions)
		if err != nil {
			return result, err
		}
		result.Experience = merged
	}
	return result, nil
}
