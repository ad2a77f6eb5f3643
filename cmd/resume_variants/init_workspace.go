package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-variants/internal/types"
	"github.com/jonathan/resume-variants/internal/variant"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a workspace with a master resume",
	Long:  "Creates the workspace database with a master resume read from --from, or with a sample resume to edit.",
	RunE:  runInit,
}

var (
	initFromFile string
	initForce    bool
)

func init() {
	initCmd.Flags().StringVarP(&initFromFile, "from", "f", "", "Path to a master resume JSON document (default: built-in sample)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Replace an existing workspace, discarding its variants")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	app, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer app.close()

	existing, err := app.db.LoadWorkspace(ctx)
	if err != nil {
		return fmt.Errorf("failed to load workspace: %w", err)
	}
	if existing != nil && !initForce {
		return fmt.Errorf("workspace %s already has a master resume (use --force to replace it)", app.cfg.Workspace)
	}

	master := types.SampleDocument()
	if initFromFile != "" {
		master, err = readDocument(initFromFile)
		if err != nil {
			return err
		}
	}

	app.registry = variant.New(master, variant.WithLogger(app.logger))
	if err := app.save(ctx); err != nil {
		return err
	}
	app.logger.Info("workspace initialized",
		zap.String("path", app.cfg.Workspace),
		zap.Int("sections", len(master.Sections)),
	)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s with master resume %q\n", app.cfg.Workspace, master.Contact.Name)
	return nil
}

// readDocument loads and validates a résumé document from a JSON file
func readDocument(path string) (*types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse resume JSON: %w", err)
	}
	if err := types.ValidateDocument(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
