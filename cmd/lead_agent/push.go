package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/lead-scraper/internal/config"
	"github.com/jonathan/lead-scraper/internal/observability"
	"github.com/jonathan/lead-scraper/internal/sheets"
)

// pushFlags are shared by push-urls and push-experience.
type pushFlags struct {
	file        string
	tab         string
	spreadsheet string
}

func (f *pushFlags) register(cmd *cobra.Command, fileHelp string) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", fileHelp)
	cmd.Flags().StringVarP(&f.tab, "tab", "t", "", "Worksheet tab name")
	cmd.Flags().StringVarP(&f.spreadsheet, "spreadsheet", "s", "", "Spreadsheet ID (default from config or SPREADSHEET_ID)")
}

// resolve fills unset flags from cfg and returns the collection path.
func (f *pushFlags) resolve(cfg config.Config, defaultFile, defaultTab string) (path, tab, spreadsheetID string, err error) {
	spreadsheetID = f.spreadsheet
	if spreadsheetID == "" {
		spreadsheetID = cfg.SpreadsheetID
	}
	if spreadsheetID == "" {
		return "", "", "", fmt.Errorf("spreadsheet ID is required (--spreadsheet, config spreadsheet_id or %s)", config.EnvSpreadsheetID)
	}

	tab = f.tab
	if tab == "" {
		tab = defaultTab
	}

	file := f.file
	if file == "" {
		file = defaultFile
	}
	if filepath.Dir(file) == "." && !fileExists(file) {
		file = filepath.Join(cfg.DataDir, file)
	}
	return file, tab, spreadsheetID, nil
}

// newPusher authenticates against Google Sheets.
func newPusher(ctx context.Context, cfg config.Config, spreadsheetID string) (*sheets.Pusher, error) {
	creds, err := sheets.LoadCredentials(cfg.CredentialsJSON, cfg.CredentialsFile)
	if err != nil {
		return nil, err
	}
	client, err := sheets.NewClient(ctx, creds)
	if err != nil {
		return nil, err
	}
	return sheets.NewPusher(client, spreadsheetID), nil
}

func printPush(tab string, result *sheets.PushResult) {
	observability.NewPrinter(os.Stdout).PrintPushResult(tab, result)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
