package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harwellgs/pocketsage/internal/cli"
	"github.com/harwellgs/pocketsage/internal/common"
	"github.com/harwellgs/pocketsage/internal/model"
	"github.com/harwellgs/pocketsage/internal/snapshot"
)

func init() {
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Compose a monthly plan from a budget file",
		Long: `Compose a monthly plan from a budget state JSON file containing income,
planned category spending, and savings goals. Use "-" to read from stdin.
When no budget file is given, the last stored budget for the user is used.`,
		RunE: runPlan,
	}

	planCmd.Flags().StringP("user", "u", "default", "user the plan belongs to")
	planCmd.Flags().StringP("file", "f", "", "budget state JSON file (\"-\" for stdin)")
	planCmd.Flags().Bool("with-snapshot", false, "include a one-month spending snapshot")
	planCmd.Flags().Bool("json", false, "emit JSON instead of styled output")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	userID, _ := cmd.Flags().GetString("user")
	file, _ := cmd.Flags().GetString("file")
	withSnapshot, _ := cmd.Flags().GetBool("with-snapshot")
	asJSON, _ := cmd.Flags().GetBool("json")

	store, err := storeFromConfig(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var state *model.BudgetState
	if file != "" {
		state, err = readBudgetState(file)
		if err != nil {
			return err
		}
	} else {
		state, err = store.GetBudgetState(ctx, userID)
		if err != nil {
			return fmt.Errorf("no budget found for %s; supply one with --file: %w", userID, err)
		}
	}

	var snap *model.Snapshot
	if withSnapshot {
		client, clientErr := plaidClientFromConfig()
		if clientErr != nil {
			return clientErr
		}
		source, sourceErr := sourceForUser(ctx, store, client, userID)
		if sourceErr != nil {
			return sourceErr
		}

		start, end := common.MonthsBack(time.Now(), 1)
		txns, txErr := source.GetTransactions(ctx, start, end)
		if txErr != nil {
			return txErr
		}
		s := snapshot.Aggregate(txns, start, end)
		snap = &s
	}

	resp, err := composerFromConfig().ComposePlan(ctx, state, snap)
	if err != nil {
		return err
	}

	if saveErr := store.SaveBudgetState(ctx, userID, state); saveErr != nil {
		slog.Warn("Failed to persist budget state", "user", userID, "error", saveErr)
	}

	if asJSON {
		return json.NewEncoder(os.Stdout).Encode(resp)
	}

	fmt.Println(cli.RenderPlan(resp))
	return nil
}

// readBudgetState loads budget state from a file or stdin. An empty or null
// document is invalid input; sloppy values inside a valid object coerce.
func readBudgetState(path string) (*model.BudgetState, error) {
	var data []byte
	var err error

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read budget file: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil, common.ErrInvalidInput
	}

	var state model.BudgetState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	return &state, nil
}
