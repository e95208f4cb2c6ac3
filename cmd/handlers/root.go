package handlers

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"neighborly/internal/config"
	"neighborly/internal/llm"
	"neighborly/internal/logger"
)

var cfgFile string

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "neighborly",
		Short: "Neighborly plans neighborhood events with AI-generated ideas, invitations and timelines.",
		Long: `Neighborly turns a few details about a community gathering into theme,
food and activity ideas, three ready-to-send invitations and a preparation
timeline.

When no model is configured, or a model call fails, every section falls back
to standard community-event templates so a plan is always produced.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.neighborly.yaml)")

	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewPlanCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and environment, then points the default
// logger at logOut with the configured level and format.
func loadConfig(logOut io.Writer) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.ConfigureWriter(logOut, cfg.Logging.Level, cfg.Logging.Format)

	if cfg.ConfigFile != "" {
		logger.Info("Using config file", "path", cfg.ConfigFile)
	}

	return cfg, nil
}

// closeGenerator releases provider resources for generators that hold them.
func closeGenerator(gen llm.Generator) {
	for gen != nil {
		if c, ok := gen.(io.Closer); ok {
			if err := c.Close(); err != nil {
				logger.Warn("Failed to close model client", "error", err)
			}
			return
		}
		u, ok := gen.(interface{ Unwrap() llm.Generator })
		if !ok {
			return
		}
		gen = u.Unwrap()
	}
}
