package cmd

import (
	"fmt"
	"os"

	"github.com/simeon-code254/matobev-apps/pkg/config"
	"github.com/spf13/cobra"
)

// appConfig holds the loaded configuration for commands that need it
var appConfig *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "matobev-api",
	Short: "Matobev talent marketplace API server",
	Long: `Matobev Talent API - video ingestion and player analysis service

This API accepts player video uploads, coordinates them through object
storage and the remote ML analysis service, and maintains each player's
derived stats card.

Features:
  • Asynchronous video ingestion with per-run progress tracking
  • S3-compatible object storage with signed retrieval URLs
  • Remote analysis with bounded automatic retry
  • Player card projection with last-completed-wins semantics
  • In-process change notifications for dependent views`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
}

// loadConfig initializes configuration for commands that need it. Loaded
// lazily so version and help work without a config file.
func loadConfig() error {
	if err := config.Init(); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}
	appConfig = cfg
	return nil
}
