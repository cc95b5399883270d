package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jonathan/lead-scraper/internal/config"
)

// execute runs rootCmd in-process with fresh flag values.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// isolateEnv clears every variable the config layer reads.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvExperienceFile,
		config.EnvCredentialsJSON,
		config.EnvSpreadsheetID,
		config.EnvPort,
		config.EnvDataDir,
		config.EnvSessionPath,
	} {
		t.Setenv(key, "")
	}
}
