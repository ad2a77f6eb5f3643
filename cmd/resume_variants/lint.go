package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-variants/internal/observability"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Report overrides that no longer match the master",
	Long:  "Lists override keys that name sections, entries or bullets the master no longer has. Such overrides are ignored when rendering.",
	Args:  cobra.NoArgs,
	RunE:  runLint,
}

var (
	lintVariantID string
	lintStrict    bool
)

func init() {
	lintCmd.Flags().StringVar(&lintVariantID, "variant", "", "Variant to check (default: all variants)")
	lintCmd.Flags().BoolVar(&lintStrict, "strict", false, "Exit with an error when drift is found")
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, _ []string) error {
	app, err := openApp(context.Background())
	if err != nil {
		return err
	}
	defer app.close()

	ids := []string{lintVariantID}
	if lintVariantID == "" {
		ids = ids[:0]
		for _, v := range app.registry.List() {
			ids = append(ids, v.ID)
		}
	}

	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out, verbose)
	total := 0
	for _, id := range ids {
		drift, err := app.registry.Lint(id)
		if err != nil {
			return err
		}
		printer.PrintDrift(id, drift)
		total += len(drift)
	}

	if total == 0 {
		_, _ = fmt.Fprintln(out, "No drift found")
		return nil
	}
	if lintStrict {
		return fmt.Errorf("found %d stale override(s)", total)
	}
	return nil
}
