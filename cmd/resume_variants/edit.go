package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-variants/internal/ingestion"
	"github.com/jonathan/resume-variants/internal/types"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the overrides of a variant",
	Long:  "Edits change only the selected variant (or --variant); the master resume is never modified.",
}

var editVariantID string

// editFunc applies one edit to variantID and returns the line to print
type editFunc func(app *appState, variantID string, args []string) (string, error)

// editCommand builds a subcommand that opens the workspace, applies fn to the
// target variant and saves. Without --variant the edit goes to the selected
// variant and does nothing while the master is selected.
func editCommand(use, short string, args cobra.PositionalArgs, fn editFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer app.close()

			var msg string
			ran := false
			apply := func(variantID string) error {
				ran = true
				var err error
				msg, err = fn(app, variantID, args)
				return err
			}
			if editVariantID != "" {
				err = apply(editVariantID)
			} else {
				err = app.registry.EditActive(apply)
			}
			if err != nil {
				return err
			}
			if !ran {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "The master resume is selected and is read-only; nothing changed. "+
					"Pass --variant or run `variants select`.")
				return nil
			}
			if err := app.save(ctx); err != nil {
				return err
			}
			if msg != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
			}
			return nil
		},
	}
}

var (
	editEntryDataFile string
	editAddEntryFile  string
	editJobFile       string
	editJobURL        string
)

func init() {
	editCmd.PersistentFlags().StringVar(&editVariantID, "variant", "", "Variant to edit (default: the selected variant)")

	enable := editCommand("enable <id>", "Enable a section, entry or bullet", cobra.ExactArgs(1),
		func(app *appState, v string, args []string) (string, error) {
			return "", app.registry.SetEnabled(v, args[0], true)
		})
	disable := editCommand("disable <id>", "Disable a section, entry or bullet", cobra.ExactArgs(1),
		func(app *appState, v string, args []string) (string, error) {
			return "", app.registry.SetEnabled(v, args[0], false)
		})
	toggle := editCommand("toggle <id>", "Flip the enabled state of a section, entry or bullet", cobra.ExactArgs(1),
		func(app *appState, v string, args []string) (string, error) {
			enabled, err := app.registry.ToggleEnabled(v, args[0])
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s enabled=%t", args[0], enabled), nil
		})
	text := editCommand("text <bullet-id> <text>", "Override the text of a bullet", cobra.ExactArgs(2),
		func(app *appState, v string, args []string) (string, error) {
			return "", app.registry.SetBulletText(v, args[0], args[1])
		})

	entryData := editCommand("entry-data <entry-id> [json]", "Override the fields of an entry", cobra.RangeArgs(1, 2),
		func(app *appState, v string, args []string) (string, error) {
			raw, err := jsonArgOrFile(args[1:], editEntryDataFile)
			if err != nil {
				return "", err
			}
			data, err := types.UnmarshalEntryData(raw)
			if err != nil {
				return "", fmt.Errorf("invalid entry data: %w", err)
			}
			return "", app.registry.SetEntryData(v, args[0], data)
		})
	entryData.Flags().StringVarP(&editEntryDataFile, "file", "f", "", "Read the entry data JSON from a file")

	addEntry := editCommand("add-entry <section-id> [json]", "Add an entry that exists only in this variant", cobra.RangeArgs(1, 2),
		func(app *appState, v string, args []string) (string, error) {
			raw, err := jsonArgOrFile(args[1:], editAddEntryFile)
			if err != nil {
				return "", err
			}
			var entry types.Entry
			if err := json.Unmarshal(raw, &entry); err != nil {
				return "", fmt.Errorf("invalid entry: %w", err)
			}
			return app.registry.AddEntry(v, args[0], entry)
		})
	addEntry.Flags().StringVarP(&editAddEntryFile, "file", "f", "", "Read the entry JSON from a file")

	removeEntry := editCommand("remove-entry <entry-id>", "Remove an entry from this variant", cobra.ExactArgs(1),
		func(app *appState, v string, args []string) (string, error) {
			return "", app.registry.RemoveEntry(v, args[0])
		})
	addBullet := editCommand("add-bullet <entry-id> <text>", "Add a bullet that exists only in this variant", cobra.ExactArgs(2),
		func(app *appState, v string, args []string) (string, error) {
			return app.registry.AddBullet(v, args[0], types.BulletPoint{Text: args[1], Enabled: true})
		})
	removeBullet := editCommand("remove-bullet <entry-id> <bullet-id>", "Remove a bullet from this variant", cobra.ExactArgs(2),
		func(app *appState, v string, args []string) (string, error) {
			return "", app.registry.RemoveBullet(v, args[0], args[1])
		})
	orderSections := editCommand("order-sections <section-id>...", "Set the section order; unlisted sections follow", cobra.MinimumNArgs(1),
		func(app *appState, v string, args []string) (string, error) {
			return "", app.registry.SetSectionOrder(v, splitIDs(args))
		})
	orderEntries := editCommand("order-entries <section-id> <entry-id>...", "Set the entry order of a section", cobra.MinimumNArgs(2),
		func(app *appState, v string, args []string) (string, error) {
			return "", app.registry.SetEntryOrder(v, args[0], splitIDs(args[1:]))
		})

	job := editCommand("job [text]", "Set the job description of this variant", cobra.MaximumNArgs(1),
		func(app *appState, v string, args []string) (string, error) {
			desc := ""
			switch {
			case len(args) == 1:
				desc = ingestion.CleanText(args[0])
			case editJobFile != "":
				var err error
				if desc, err = ingestion.ReadJobDescription(editJobFile); err != nil {
					return "", err
				}
			}
			return "", app.registry.SetJobDescription(v, desc, strings.TrimSpace(editJobURL))
		})
	job.Flags().StringVarP(&editJobFile, "file", "f", "", "Read the job description from a file")
	job.Flags().StringVar(&editJobURL, "url", "", "Source URL of the posting")

	editCmd.AddCommand(enable, disable, toggle, text, entryData, addEntry, removeEntry,
		addBullet, removeBullet, orderSections, orderEntries, job)
	rootCmd.AddCommand(editCmd)
}

// jsonArgOrFile returns the inline JSON argument, or the contents of file
func jsonArgOrFile(args []string, file string) ([]byte, error) {
	switch {
	case len(args) > 0 && file != "":
		return nil, fmt.Errorf("pass JSON inline or with --file, not both")
	case len(args) > 0:
		return []byte(args[0]), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("JSON argument or --file is required")
	}
}

// splitIDs accepts ids as separate arguments, comma lists, or both
func splitIDs(args []string) []string {
	var ids []string
	for _, arg := range args {
		for _, id := range strings.Split(arg, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
