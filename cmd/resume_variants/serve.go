package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-variants/internal/llm"
	"github.com/jonathan/resume-variants/internal/server"
	"github.com/jonathan/resume-variants/internal/server/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local HTTP API",
	Long:  `Serve the workspace over a local REST API: variants, override edits, rendering, matching and backups.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var (
	serveAddr        string
	serveNoRateLimit bool
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (default: listen from config)")
	serveCmd.Flags().BoolVar(&serveNoRateLimit, "no-rate-limit", false, "Disable rate limiting of matching, ingestion and PDF endpoints")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer app.close()

	opts := server.Options{
		Registry: app.registry,
		Store:    app.db,
		Fetcher:  app.fetcher(),
		Compiler: app.compiler(false),
		Render:   app.renderOptions(),
		Limits:   app.cfg.Limits,
		Logger:   app.logger,
	}
	if !serveNoRateLimit {
		opts.Limiter = ratelimit.NewLimiter(ratelimit.DefaultConfig())
	}

	matcher, client, err := app.matcher(ctx)
	switch {
	case err == nil:
		defer func() { _ = client.Close() }()
		opts.Matcher = matcher
	case errors.Is(err, llm.ErrMissingAPIKey):
		app.logger.Warn("matching disabled: " + llm.ErrMissingAPIKey.Error())
	default:
		return err
	}

	srv, err := server.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	addr := serveAddr
	if addr == "" {
		addr = app.cfg.Listen
	}
	app.logger.Info("serving workspace", zap.String("workspace", app.cfg.Workspace), zap.String("addr", addr))
	return srv.ListenAndServe(ctx, addr)
}
