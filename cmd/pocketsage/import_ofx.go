package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/harwellgs/pocketsage/internal/cli"
	"github.com/harwellgs/pocketsage/internal/model"
	"github.com/harwellgs/pocketsage/internal/ofx"
	"github.com/harwellgs/pocketsage/internal/snapshot"
)

func init() {
	importOFXCmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Summarize spending from OFX/QFX files",
		Long: `Build a spending snapshot from OFX or QFX (Quicken) files exported from
your bank, without linking an account.

Examples:
  # Single file
  pocketsage import-ofx ~/Downloads/chase_jan_2024.qfx

  # All QFX files in a directory
  pocketsage import-ofx ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	importOFXCmd.Flags().Bool("json", false, "emit JSON instead of styled output")

	rootCmd.AddCommand(importOFXCmd)
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}

	if len(allFiles) == 0 {
		return fmt.Errorf("no files found to import")
	}

	importer := ofx.NewImporter()
	seen := make(map[string]bool)
	var transactions []model.RawTransaction

	bar := progressbar.Default(int64(len(allFiles)), "importing")

	for _, filePath := range allFiles {
		f, err := os.Open(filePath)
		if err != nil {
			slog.Error("Failed to open file", "file", filePath, "error", err)
			_ = bar.Add(1)
			continue
		}

		txns, err := importer.Import(f)
		_ = f.Close()
		if err != nil {
			slog.Error("Failed to parse file", "file", filepath.Base(filePath), "error", err)
			_ = bar.Add(1)
			continue
		}

		for _, tx := range txns {
			if tx.ID != "" && seen[tx.ID] {
				continue
			}
			seen[tx.ID] = true
			transactions = append(transactions, tx)
		}

		_ = bar.Add(1)
	}

	if len(transactions) == 0 {
		return fmt.Errorf("no transactions found in %d file(s)", len(allFiles))
	}

	start, end := statementWindow(transactions)
	snap := snapshot.Aggregate(transactions, start, end)

	if asJSON {
		return json.NewEncoder(os.Stdout).Encode(&snap)
	}

	fmt.Println(cli.RenderSnapshot(&snap))
	return nil
}

// statementWindow finds the date range covered by the imported transactions.
func statementWindow(txns []model.RawTransaction) (time.Time, time.Time) {
	var start, end time.Time
	for _, tx := range txns {
		date, err := time.Parse("2006-01-02", tx.Date)
		if err != nil {
			continue
		}
		if start.IsZero() || date.Before(start) {
			start = date
		}
		if end.IsZero() || date.After(end) {
			end = date
		}
	}
	return start, end
}
