package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/username/policyfeed/src/database"
	"github.com/username/policyfeed/src/logger"
	"github.com/username/policyfeed/src/models"
)

var (
	seedFile  string
	seedReset bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load raw broker documents from a YAML or JSON fixture file",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "fixture file with broker1/broker2 document lists")
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "empty both collections before loading")
	_ = seedCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	fixtures, err := database.LoadFixturesFile(seedFile)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	written, err := database.Seed(cmd.Context(), store, fixtures, seedReset)
	if err != nil {
		return err
	}
	for _, source := range models.AllSources {
		logger.L.Info("Seeded broker collection", "source", source, "documents", written[source])
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d documents\n", source, written[source])
	}
	return nil
}
