package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harwellgs/pocketsage/internal/server"
	"github.com/harwellgs/pocketsage/internal/service"
)

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE:  runServe,
	}

	serveCmd.Flags().String("addr", ":8080", "listen address")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := storeFromConfig(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	client, err := plaidClientFromConfig()
	if err != nil {
		return err
	}

	srv := server.New(
		server.Config{Addr: viper.GetString("server.addr")},
		store,
		client,
		composerFromConfig(),
		func(accessToken string) service.TransactionSource {
			return client.ForAccessToken(accessToken)
		},
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutdown failed", "error", err)
			return err
		}
		return nil
	}
}
