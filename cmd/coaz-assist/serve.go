// Copyright COAZ Digital, 2026. All rights reserved.

package main

import (
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/coazdigital/coaz-assist/internal/answer"
	"github.com/coazdigital/coaz-assist/internal/content"
	"github.com/coazdigital/coaz-assist/internal/engine"
	"github.com/coazdigital/coaz-assist/internal/inference"
	"github.com/coazdigital/coaz-assist/internal/ingest"
	"github.com/coazdigital/coaz-assist/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP answering service",
	Long: `Serve indexes the configured document sources and exposes the chat
endpoint, content management API, health check, and metrics over HTTP.
The process shuts down gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := appConfig()
	if err != nil {
		return err
	}

	rules, err := answer.LoadRules()
	if err != nil {
		return err
	}

	backend := inference.New(cfg.Inference)
	if backend == nil {
		logger.Info().Msg("inference disabled, answering extractively")
	} else {
		logger.Info().Str("backend", backend.Name()).Msg("inference enabled")
	}

	eng := engine.New(backend, rules, cfg.Pipeline, logger)

	docs, err := ingest.Load(cfg.Ingest)
	if err != nil {
		return err
	}
	if _, err := eng.Reindex(docs); err != nil {
		return err
	}

	store, err := content.Open(cfg.Content)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.Server, eng, store, logger)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
