package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harwellgs/pocketsage/internal/cli"
	"github.com/harwellgs/pocketsage/internal/common"
	"github.com/harwellgs/pocketsage/internal/snapshot"
)

func init() {
	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Summarize recent spending by category",
		RunE:  runSnapshot,
	}

	snapshotCmd.Flags().StringP("user", "u", "default", "user whose linked account to query")
	snapshotCmd.Flags().IntP("months", "m", 1, "number of calendar months to cover")
	snapshotCmd.Flags().Bool("json", false, "emit JSON instead of styled output")

	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	userID, _ := cmd.Flags().GetString("user")
	months, _ := cmd.Flags().GetInt("months")
	asJSON, _ := cmd.Flags().GetBool("json")

	if months < 1 {
		return fmt.Errorf("months must be at least 1")
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

	if asJSON {
		return json.NewEncoder(os.Stdout).Encode(&snap)
	}

	fmt.Println(cli.RenderSnapshot(&snap))
	return nil
}
