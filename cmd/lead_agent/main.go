// Package main provides the lead_agent CLI: batch profile scraping, the
// extension's save endpoint, and spreadsheet pushes.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/lead-scraper/internal/config"
	"github.com/jonathan/lead-scraper/internal/fetch"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "lead_agent",
	Short:         "LinkedIn lead collection toolkit",
	Long:          "lead_agent scrapes LinkedIn profiles with a captured session, receives URLs and experience details from the browser extension, and pushes collections to Google Sheets.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the config file, defaults and environment.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

func browserOptions(cfg config.Config, showBrowser bool) *fetch.BrowserOptions {
	opts := fetch.DefaultBrowserOptions()
	opts.Headless = !(cfg.ShowBrowser || showBrowser)
	opts.Verbose = cfg.Verbose
	return opts
}

func loaderConfig(cfg config.Config) *fetch.LoaderConfig {
	return &fetch.LoaderConfig{
		NavigationTimeout: cfg.NavigationTimeout.Std(),
		IdleQuiet:         cfg.IdleQuiet.Std(),
		ScrollStep:        cfg.ScrollStep,
		AssumedHeight:     cfg.ScrollHeight,
		ScrollDelayMin:    cfg.ScrollDelayMin.Std(),
		ScrollDelayMax:    cfg.ScrollDelayMax.Std(),
		SettleDelay:       cfg.SettleDelay.Std(),
	}
}
