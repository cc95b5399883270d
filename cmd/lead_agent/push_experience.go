package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pushExperienceCmd = &cobra.Command{
	Use:   "push-experience",
	Short: "Append the experience collection to a sheet tab",
	Long:  "Appends one fixed-width row per profile: name, URL and the first three experiences. Entries beyond the third are not exported. The tab must already exist.",
	RunE:  runPushExperience,
}

var pushExperienceOpts pushFlags

func init() {
	pushExperienceOpts.register(pushExperienceCmd, "Experience collection file (default <data_dir>/<experience_file>)")
	rootCmd.AddCommand(pushExperienceCmd)
}

func runPushExperience(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path, tab, spreadsheetID, err := pushExperienceOpts.resolve(cfg, cfg.ExperienceFile, cfg.ExperienceTab)
	if err != nil {
		return err
	}

	pusher, err := newPusher(cmd.Context(), cfg, spreadsheetID)
	if err != nil {
		return err
	}
	result, err := pusher.PushExperience(cmd.Context(), path, tab)
	if err != nil {
		return fmt.Errorf("failed to push %s: %w", path, err)
	}
	printPush(tab, result)
	return nil
}
