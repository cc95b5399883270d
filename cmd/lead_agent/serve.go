package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/lead-scraper/internal/server"
	"github.com/jonathan/lead-scraper/internal/server/ratelimit"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the extension save endpoint",
	Long:  `Start an HTTP server that accepts POST /save_urls and POST /save_experience_details from the browser extension and merges them into JSON collections.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 5000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	port := cfg.Port
	if servePort != 0 {
		port = servePort
	}

	srv, err := server.New(server.Config{
		Port:           port,
		DataDir:        cfg.DataDir,
		URLFile:        cfg.URLFile,
		ExperienceFile: cfg.ExperienceFile,
		LockTimeout:    cfg.LockTimeout.Std(),
		RateLimit:      ratelimit.LoadConfig(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(cmd.Context())
}
