package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harwellgs/pocketsage/internal/cli"
)

func init() {
	linkCmd := &cobra.Command{
		Use:   "link",
		Short: "Link a bank account through Plaid",
	}

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Create a Link token to start account linking",
		RunE:  runLinkToken,
	}
	tokenCmd.Flags().StringP("user", "u", "default", "user to link the account for")

	exchangeCmd := &cobra.Command{
		Use:   "exchange <public-token>",
		Short: "Exchange a public token and store the session",
		Args:  cobra.ExactArgs(1),
		RunE:  runLinkExchange,
	}
	exchangeCmd.Flags().StringP("user", "u", "default", "user to link the account for")

	linkCmd.AddCommand(tokenCmd)
	linkCmd.AddCommand(exchangeCmd)
	rootCmd.AddCommand(linkCmd)
}

func runLinkToken(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	userID, _ := cmd.Flags().GetString("user")

	client, err := plaidClientFromConfig()
	if err != nil {
		return err
	}

	token, err := client.CreateLinkToken(ctx, userID)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess("Link token created"))
	fmt.Println(token)
	return nil
}

func runLinkExchange(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	userID, _ := cmd.Flags().GetString("user")
	publicToken := args[0]

	store, err := storeFromConfig(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	client, err := plaidClientFromConfig()
	if err != nil {
		return err
	}

	session, err := client.ExchangePublicToken(ctx, userID, publicToken)
	if err != nil {
		return err
	}

	if err := store.SaveSession(ctx, session); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Account linked for %s (item %s)", userID, session.ItemID)))
	return nil
}
