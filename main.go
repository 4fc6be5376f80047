package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/username/policyfeed/src/config"
	"github.com/username/policyfeed/src/logger"
)

var rootCmd = &cobra.Command{
	Use:   "policyfeed",
	Short: "Standardized insurance policy feed over multiple broker sources",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadConfig()
		logger.InitLogger(config.Cfg.LogLevel)
	},
	// Running without a subcommand starts the API server.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.L.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
