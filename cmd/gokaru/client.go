package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tendant/gokaru-go/pkg/gokaru"
	"github.com/tendant/gokaru-go/pkg/gokaru/config"
)

// loadConfig reads --config or the environment and applies --dry-run.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if dryRun {
		cfg.Transport = config.TransportMemory
	}
	return cfg, nil
}

// newLogger writes to the command's stderr; --verbose enables debug output.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// NewClientFromFlags creates a client from the command flags and environment.
func NewClientFromFlags(cmd *cobra.Command) (*gokaru.Client, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cmd)
	logger.Debug("Client configuration",
		"url", cfg.URL,
		"signature", cfg.Signature,
		"transport", cfg.Transport,
		"public_image_url", cfg.PublicImageURL,
		"public_file_url", cfg.PublicFileURL,
	)
	return cfg.NewClient(cmd.Context(), gokaru.WithLogger(logger))
}
