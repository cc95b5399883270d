package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/lead-scraper/internal/fetch"
)

var captureSessionCmd = &cobra.Command{
	Use:   "capture-session",
	Short: "Log in by hand and save the browser session",
	Long:  "Opens the LinkedIn login page in a visible browser, waits while you log in, then saves the session cookies used by scrape and scrape-profile.",
	RunE:  runCaptureSession,
}

var (
	captureWait time.Duration
	captureOut  string
)

func init() {
	captureSessionCmd.Flags().DurationVar(&captureWait, "wait", 60*time.Second, "Time allowed for the manual login")
	captureSessionCmd.Flags().StringVarP(&captureOut, "out", "o", "", "Session file (default from config, linkedin_session.json)")
	rootCmd.AddCommand(captureSessionCmd)
}

func runCaptureSession(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := captureOut
	if path == "" {
		path = cfg.SessionPath
	}

	opts := browserOptions(cfg, true)
	browser, err := fetch.NewBrowser(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	defer browser.Close()

	if err := fetch.CaptureSession(cmd.Context(), browser, path, captureWait); err != nil {
		return fmt.Errorf("failed to capture session: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Session saved to %s\n", path)
	return nil
}
