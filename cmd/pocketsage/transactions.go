package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harwellgs/pocketsage/internal/category"
	"github.com/harwellgs/pocketsage/internal/common"
)

func init() {
	transactionsCmd := &cobra.Command{
		Use:   "transactions",
		Short: "List normalized transactions with signed amounts",
		RunE:  runTransactions,
	}

	transactionsCmd.Flags().StringP("user", "u", "default", "user whose linked account to query")
	transactionsCmd.Flags().IntP("days", "d", 30, "number of days to cover")
	transactionsCmd.Flags().Bool("json", false, "emit JSON instead of tabular output")

	rootCmd.AddCommand(transactionsCmd)
}

func runTransactions(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	userID, _ := cmd.Flags().GetString("user")
	days, _ := cmd.Flags().GetInt("days")
	asJSON, _ := cmd.Flags().GetBool("json")

	if days < 1 {
		return fmt.Errorf("days must be at least 1")
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

	start, end := common.DaysBack(time.Now(), days)
	txns, err := source.GetTransactions(ctx, start, end)
	if err != nil {
		return err
	}

	normalized := category.NormalizeAll(txns)

	if asJSON {
		return json.NewEncoder(os.Stdout).Encode(normalized)
	}

	for _, tx := range normalized {
		label := string(tx.Category)
		if tx.Kind == "income" {
			label = "income"
		}
		fmt.Printf("%s  %-40s %-16s %10.2f\n", tx.Date, tx.Name, label, tx.Amount)
	}
	return nil
}
