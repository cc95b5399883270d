package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pushURLsCmd = &cobra.Command{
	Use:   "push-urls",
	Short: "Append a named URL collection to a sheet tab",
	Long:  "Appends [name, url] rows for every entry in a URL collection. The tab is created when missing and the header row is written only when the tab is empty.",
	RunE:  runPushURLs,
}

var pushURLsOpts pushFlags

func init() {
	pushURLsOpts.register(pushURLsCmd, "URL collection file (default <data_dir>/<url_file>.json)")
	rootCmd.AddCommand(pushURLsCmd)
}

func runPushURLs(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path, tab, spreadsheetID, err := pushURLsOpts.resolve(cfg, cfg.URLFile+".json", cfg.URLTab)
	if err != nil {
		return err
	}

	pusher, err := newPusher(cmd.Context(), cfg, spreadsheetID)
	if err != nil {
		return err
	}
	result, err := pusher.PushURLs(cmd.Context(), path, tab)
	if err != nil {
		return fmt.Errorf("failed to push %s: %w", path, err)
	}
	printPush(tab, result)
	return nil
}
