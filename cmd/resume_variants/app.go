package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-variants/internal/config"
	"github.com/jonathan/resume-variants/internal/db"
	"github.com/jonathan/resume-variants/internal/fetch"
	"github.com/jonathan/resume-variants/internal/llm"
	"github.com/jonathan/resume-variants/internal/logging"
	"github.com/jonathan/resume-variants/internal/matching"
	"github.com/jonathan/resume-variants/internal/rendering"
	"github.com/jonathan/resume-variants/internal/validation"
	"github.com/jonathan/resume-variants/internal/variant"
)

// errNotInitialized is returned by openApp when the workspace has no master yet
var errNotInitialized = errors.New("workspace is not initialized (run `resume_variants init`)")

// appState owns everything a command needs: configuration, the logger, the
// workspace database and the registry loaded from it
type appState struct {
	cfg      config.Config
	logger   *zap.Logger
	db       *db.DB
	registry *variant.Registry
}

// loadConfig resolves configuration: file, then defaults, then environment,
// then command-line flags
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		fileCfg, err := config.LoadConfig(configFile)
		if err != nil {
			return config.Config{}, err
		}
		cfg = fileCfg.MergeWithDefaults(config.Default())
	}
	cfg.ApplyEnv(os.LookupEnv)

	if workspacePath != "" {
		cfg.Workspace = workspacePath
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openStore loads config, builds the logger and opens the database without
// requiring an initialized workspace
func openStore(ctx context.Context) (*appState, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	database, err := db.Open(ctx, cfg.Workspace)
	if err != nil {
		return nil, fmt.Errorf("failed to open workspace: %w", err)
	}
	logger.Debug("workspace opened", zap.String("path", cfg.Workspace))
	return &appState{cfg: cfg, logger: logger, db: database}, nil
}

// openApp is openStore plus the registry of a workspace that has been initialized
func openApp(ctx context.Context) (*appState, error) {
	app, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	ws, err := app.db.LoadWorkspace(ctx)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}
	if ws == nil {
		app.close()
		return nil, errNotInitialized
	}
	app.registry = variant.New(nil, variant.WithLogger(app.logger))
	app.registry.Restore(*ws)
	return app, nil
}

// save persists the registry
func (a *appState) save(ctx context.Context) error {
	if err := a.db.SaveWorkspace(ctx, a.registry.Snapshot()); err != nil {
		return fmt.Errorf("failed to save workspace: %w", err)
	}
	return nil
}

func (a *appState) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close workspace", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

// variantOrActive returns id, or the active variant when id is empty. An
// empty result means the master.
func (a *appState) variantOrActive(id string) string {
	if id != "" {
		return id
	}
	return a.registry.ActiveID()
}

// requireVariant is variantOrActive for edits, which have no meaning on the master
func (a *appState) requireVariant(id string) (string, error) {
	id = a.variantOrActive(id)
	if id == "" {
		return "", errors.New("no variant selected: pass --variant or run `variants select`")
	}
	return id, nil
}

func (a *appState) renderOptions() rendering.Options {
	return rendering.Options{TemplatePath: a.cfg.Template}
}

// compiler builds the configured PDF compiler; forceRemote ignores the
// configured mode
func (a *appState) compiler(forceRemote bool) validation.Compiler {
	local := &validation.LocalCompiler{Binary: a.cfg.PDFLatex}
	remote := validation.NewRemoteCompiler(a.cfg.RemoteEndpoint)

	mode := a.cfg.Compiler
	if forceRemote {
		mode = config.CompilerRemote
	}
	switch mode {
	case config.CompilerLocal:
		return local
	case config.CompilerRemote:
		return remote
	default:
		return &validation.FallbackCompiler{Compilers: []validation.Compiler{remote, local}, Logger: a.logger}
	}
}

// matcher builds the LLM-backed matcher. The caller closes the returned client.
func (a *appState) matcher(ctx context.Context) (*matching.Matcher, llm.Client, error) {
	llmCfg := llm.DefaultConfig()
	for tier, model := range a.cfg.Models {
		llmCfg = llmCfg.WithModel(llm.ModelTier(tier), model)
	}
	client, err := llm.NewClient(ctx, llmCfg, a.cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	m := matching.NewMatcher(client,
		matching.WithMaxPages(a.cfg.Limits.MaxPages),
		matching.WithLogger(a.logger),
	)
	return m, client, nil
}

// fetcher builds a job posting fetcher backed by the workspace page cache
func (a *appState) fetcher() *fetch.Fetcher {
	opts := []fetch.FetcherOption{
		fetch.WithCache(a.db, time.Duration(a.cfg.CacheTTLHours)*time.Hour),
		fetch.WithLogger(a.logger),
	}
	if a.cfg.UseBrowser {
		opts = append(opts, fetch.WithBrowser(fetch.NewChromeRenderer(a.logger)))
	}
	return fetch.NewFetcher(opts...)
}
