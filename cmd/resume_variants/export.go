package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-variants/internal/storage"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the master and all variants to a JSON backup",
	Long:  "Writes the workspace as a versioned JSON envelope. Without a file name, resume-backup-<date>.json is used.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the workspace with a JSON backup",
	Long:  "Validates the backup against the workspace schema and replaces the master and every variant with its contents.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	app, err := openApp(context.Background())
	if err != nil {
		return err
	}
	defer app.close()

	now := time.Now()
	path := "resume-backup-" + now.Format("2006-01-02") + ".json"
	if len(args) == 1 {
		path = args[0]
	}
	if err := storage.ExportFile(path, app.registry.Snapshot(), now); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d variant(s) to %s\n", len(app.registry.List()), path)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	app, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer app.close()

	ws, err := storage.ImportFile(args[0])
	if err != nil {
		return err
	}
	if err := app.db.SaveWorkspace(ctx, *ws); err != nil {
		return fmt.Errorf("failed to save workspace: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d variant(s) from %s\n", len(ws.Variants), args[0])
	return nil
}
