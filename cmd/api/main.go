// ABOUTME: Main entry point for the listings aggregator
// ABOUTME: Defines the cobra root command; serve runs when no subcommand is given

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"listings-aggregator-api/core/interfaces"
	logruslogger "listings-aggregator-api/infrastructure/logger/logrus"
	"listings-aggregator-api/pkg/config"
	"listings-aggregator-api/pkg/featureflags"
)

// rootCmd is the base command. Without a subcommand it serves the API.
var rootCmd = &cobra.Command{
	Use:   "listings-aggregator",
	Short: "Aggregate and rank commodity listings from many sources",
	Long: `listings-aggregator queries every registered listing source concurrently,
bounded by a concurrency cap and a per-source timeout, merges what comes back
with per-source success and failure accounting, and ranks the merged listings
against buyer criteria.

Configuration comes from an optional YAML file (--config), AGGREGATOR_*
environment variables, and defaults. Ranking enhancers are switched on with
FEATURE_* environment variables.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (YAML)")
}

// loadConfig reads and validates configuration from the --config flag
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) interfaces.Logger {
	return logruslogger.New(logruslogger.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
}

func newFlags() featureflags.Manager {
	return featureflags.NewEnvManager("FEATURE_")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
