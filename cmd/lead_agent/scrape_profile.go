package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/lead-scraper/internal/extract"
	"github.com/jonathan/lead-scraper/internal/fetch"
	"github.com/jonathan/lead-scraper/internal/observability"
	"github.com/jonathan/lead-scraper/internal/scrape"
	"github.com/jonathan/lead-scraper/internal/store"
	"github.com/jonathan/lead-scraper/internal/types"
)

var scrapeProfileCmd = &cobra.Command{
	Use:   "scrape-profile",
	Short: "Scrape a single profile and print it",
	Long:  "Loads one profile with the captured session, prints the extracted fields and optionally stores its experience list.",
	RunE:  runScrapeProfile,
}

var (
	profileURL         string
	profileSave        bool
	profileShowBrowser bool
)

func init() {
	scrapeProfileCmd.Flags().StringVarP(&profileURL, "url", "u", "", "Profile URL (required)")
	scrapeProfileCmd.Flags().BoolVar(&profileSave, "save-experience", false, "Merge the parsed experience into the experience collection")
	scrapeProfileCmd.Flags().BoolVar(&profileShowBrowser, "show-browser", false, "Run Chrome with a visible window")

	if err := scrapeProfileCmd.MarkFlagRequired("url"); err != nil {
		panic(fmt.Sprintf("failed to mark url flag as required: %v", err))
	}

	rootCmd.AddCommand(scrapeProfileCmd)
}

func runScrapeProfile(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	state, err := fetch.LoadStorageState(cfg.SessionPath)
	if err != nil {
		return err
	}
	opts := browserOptions(cfg, profileShowBrowser)
	opts.Cookies = state.CookieParams()

	page, release, err := scrape.ChromeOpener(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	defer release()

	runner := scrape.NewRunner(page, fetch.NewLoader(loaderConfig(cfg)), extract.New(nil, cfg.Verbose))
	record, experiences := runner.ScrapeProfile(cmd.Context(), profileURL)
	observability.NewPrinter(os.Stdout).PrintProfile(record, experiences)

	if scrape.IsSentinel(record) {
		return fmt.Errorf("failed to scrape %s: %s", profileURL, record.Name)
	}
	if !profileSave {
		return nil
	}

	path := filepath.Join(cfg.DataDir, cfg.ExperienceFile)
	result, err := store.ExperienceCollection(path).
		WithLockTimeout(cfg.LockTimeout.Std()).
		Merge(cmd.Context(), []types.ProfileExperienceRecord{{
			ProfileURL:  record.URL,
			ProfileName: record.Name,
			Experiences: experiences,
		}})
	if err != nil {
		return fmt.Errorf("failed to save experience: %w", err)
	}
	observability.NewPrinter(os.Stdout).PrintMergeResult(path, result)
	return nil
}
