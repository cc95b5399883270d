package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/lead-scraper/internal/observability"
	"github.com/jonathan/lead-scraper/internal/scrape"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape every profile in a URL list",
	Long:  `Visits each URL of a {"urls": [...]} file in order and writes one record per URL to <input>_profiles.json. Unreachable profiles are recorded with name "Timeout" or "Error".`,
	RunE:  runScrape,
}

var (
	scrapeInput         string
	scrapeOutput        string
	scrapeExperienceOut string
	scrapeShowBrowser   bool
)

func init() {
	scrapeCmd.Flags().StringVarP(&scrapeInput, "in", "i", "", "Path to URL list JSON file (required)")
	scrapeCmd.Flags().StringVarP(&scrapeOutput, "out", "o", "", "Output path (default <input>_profiles.json)")
	scrapeCmd.Flags().StringVar(&scrapeExperienceOut, "experience-out", "", "Also merge parsed experience into this collection file")
	scrapeCmd.Flags().BoolVar(&scrapeShowBrowser, "show-browser", false, "Run Chrome with a visible window")

	if err := scrapeCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	experienceOut := scrapeExperienceOut
	if experienceOut != "" && filepath.Dir(experienceOut) == "." {
		experienceOut = filepath.Join(cfg.DataDir, experienceOut)
	}

	result, err := scrape.RunBatch(cmd.Context(), scrape.BatchOptions{
		InputPath:      scrapeInput,
		OutputPath:     scrapeOutput,
		ExperiencePath: experienceOut,
		SessionPath:    cfg.SessionPath,
		Browser:        browserOptions(cfg, scrapeShowBrowser),
		Loader:         loaderConfig(cfg),
		Verbose:        cfg.Verbose,
	}, scrape.ChromeOpener)
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintBatchSummary(result)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Scraped %d profiles (%d timeouts, %d errors)\n",
		result.Summary.Total, result.Summary.Timeouts, result.Summary.Errors)
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", result.OutputPath)
	return nil
}
