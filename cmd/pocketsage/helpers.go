package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/harwellgs/pocketsage/internal/llm"
	"github.com/harwellgs/pocketsage/internal/plaid"
	"github.com/harwellgs/pocketsage/internal/plan"
	"github.com/harwellgs/pocketsage/internal/service"
	"github.com/harwellgs/pocketsage/internal/storage"
)

// plaidClientFromConfig builds the aggregator client from viper configuration.
func plaidClientFromConfig() (*plaid.Client, error) {
	environment := viper.GetString("plaid.environment")
	if environment == "" {
		environment = "sandbox"
	}

	return plaid.NewClient(plaid.Config{
		ClientID:    viper.GetString("plaid.client_id"),
		Secret:      viper.GetString("plaid.secret"),
		Environment: environment,
	})
}

// storeFromConfig opens the SQLite store and applies migrations.
func storeFromConfig(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "pocketsage", "pocketsage.db")
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	return store, nil
}

// narratorFromConfig builds the plan narrator, or returns nil when no
// provider is configured. A nil narrator selects the deterministic plan path.
func narratorFromConfig() service.Narrator {
	provider := viper.GetString("llm.provider")
	apiKey := viper.GetString("llm.api_key")
	if provider == "" || apiKey == "" {
		return nil
	}

	client, err := llm.NewClient(llm.Config{
		Provider:    provider,
		APIKey:      apiKey,
		Model:       viper.GetString("llm.model"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: llm disabled: %v\n", err)
		return nil
	}

	return client
}

// composerFromConfig builds the plan composer with the configured narrator.
func composerFromConfig() *plan.Composer {
	return plan.NewComposer(narratorFromConfig())
}

// sourceForUser resolves the transaction source bound to a user's stored session.
func sourceForUser(ctx context.Context, store service.SessionStore, client *plaid.Client, userID string) (service.TransactionSource, error) {
	session, err := store.GetSession(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("no linked account for %s: %w", userID, err)
	}
	return client.ForAccessToken(session.AccessToken), nil
}
