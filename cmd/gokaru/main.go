package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command failed", "err", err)
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	var configFile string
	var verbose bool
	var dryRun bool

	rootCmd := &cobra.Command{
		Use:   "gokaru",
		Short: "Gokaru storage client",
		Long: `Command line client for the Gokaru storage and thumbnail service.

Uploads and deletes origin files, and renders origin, public file and signed
thumbnail URLs. Settings come from GOKARU_* environment variables or a config
file given with --config; run "gokaru env" for the full list.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "record uploads and deletes in memory instead of sending them")

	rootCmd.AddCommand(NewUploadCommand())
	rootCmd.AddCommand(NewDeleteCommand())
	rootCmd.AddCommand(NewOriginCommand())
	rootCmd.AddCommand(NewFileCommand())
	rootCmd.AddCommand(NewThumbnailCommand())
	rootCmd.AddCommand(NewSignCommand())
	rootCmd.AddCommand(NewVerifyCommand())
	rootCmd.AddCommand(NewEnvCommand())

	return rootCmd
}
