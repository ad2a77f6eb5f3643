package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-variants/internal/types"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective resume of a variant as JSON",
	Long:  "Prints the master merged with the variant's overrides. Without --variant the selected variant is shown, or the master when none is selected.",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

var (
	showVariantID string
	showMaster    bool
	showOverrides bool
)

func init() {
	showCmd.Flags().StringVar(&showVariantID, "variant", "", "Variant to show (default: the selected variant)")
	showCmd.Flags().BoolVar(&showMaster, "master", false, "Show the master resume")
	showCmd.Flags().BoolVar(&showOverrides, "overrides", false, "Show the variant record (metadata and raw overrides) instead of the merged resume")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	app, err := openApp(context.Background())
	if err != nil {
		return err
	}
	defer app.close()

	var out any
	id := app.variantOrActive(showVariantID)
	switch {
	case showMaster || id == "":
		out = app.registry.Master()
	case showOverrides:
		v, err := app.registry.Get(id)
		if err != nil {
			return err
		}
		out = v
	default:
		var doc *types.Document
		doc, err = app.registry.EffectiveDocument(id)
		if err != nil {
			return err
		}
		out = doc
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
