package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/username/policyfeed/src/logger"
	"github.com/username/policyfeed/src/services"
)

var (
	exportOut    string
	exportFilter = map[string]*string{}
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered standardized feed to an XLSX file",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "policies.xlsx", "output spreadsheet path")
	for _, name := range []string{"source", "policyType", "clientType", "search", "minAmount", "maxAmount"} {
		exportFilter[name] = exportCmd.Flags().String(name, "", "filter by "+name)
	}
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	values := url.Values{}
	for name, v := range exportFilter {
		if *v != "" {
			values.Set(name, *v)
		}
	}
	q := services.ParseFeedQuery(values)

	store, err := openStore()
	if err != nil {
		return err
	}
	policies, err := newFeedService(store).Policies(cmd.Context(), q)
	if err != nil {
		return err
	}

	f, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("creating %s: %w", exportOut, err)
	}
	defer f.Close()

	if err := services.NewExportService().WriteXLSX(f, policies); err != nil {
		return err
	}
	logger.L.Info("Exported standardized feed", "path", exportOut, "policies", len(policies))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d policies to %s\n", len(policies), exportOut)
	return nil
}
