package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harwellgs/pocketsage/internal/cli"
	"github.com/harwellgs/pocketsage/internal/common"
	"github.com/harwellgs/pocketsage/internal/sheets"
	"github.com/harwellgs/pocketsage/internal/snapshot"
)

func init() {
	exportCmd := &cobra.Command{
		Use:   "export-sheets",
		Short: "Export a spending snapshot to Google Sheets",
		Long: `Build a spending snapshot for a linked account and write it to a Google
Sheets spreadsheet. Credentials come from GOOGLE_SHEETS_* environment
variables (OAuth2 client or service account).`,
		RunE: runExportSheets,
	}

	exportCmd.Flags().StringP("user", "u", "default", "user whose linked account to query")
	exportCmd.Flags().IntP("months", "m", 1, "number of calendar months to cover")

	rootCmd.AddCommand(exportCmd)
}

func runExportSheets(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	userID, _ := cmd.Flags().GetString("user")
	months, _ := cmd.Flags().GetInt("months")

	if months < 1 {
		return fmt.Errorf("months must be at least 1")
	}

	config := sheets.DefaultConfig()
	if err := config.LoadFromEnv(); err != nil {
		return err
	}

	writer, err := sheets.NewWriter(ctx, config)
	if err != nil {
		return err
	}

	store, err := storeFromConfig(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	client, err := plaidClientFromConfig()
	if err != nil {
		return err
	}

	source, err := sourceForUser(ctx, store, client, userID)
	if err != nil {
		return err
	}

	start, end := common.MonthsBack(time.Now(), months)
	txns, err := source.GetTransactions(ctx, start, end)
	if err != nil {
		return err
	}

	snap := snapshot.Aggregate(txns, start, end)

	spreadsheetID, err := writer.Export(ctx, &snap)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess("Snapshot exported to spreadsheet " + spreadsheetID))
	return nil
}
