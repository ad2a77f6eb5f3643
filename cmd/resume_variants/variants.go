package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var variantsCmd = &cobra.Command{
	Use:     "variants",
	Aliases: []string{"v"},
	Short:   "Manage variants of the master resume",
}

var variantsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List variants",
	Args:  cobra.NoArgs,
	RunE:  runVariantsList,
}

var variantsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a variant and select it",
	Args:  cobra.ExactArgs(1),
	RunE:  runVariantsCreate,
}

var variantsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a variant",
	Args:  cobra.ExactArgs(1),
	RunE:  runVariantsDelete,
}

var variantsSelectCmd = &cobra.Command{
	Use:   "select [id]",
	Short: "Select the active variant; no id selects the master",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVariantsSelect,
}

var variantsRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a variant",
	Args:  cobra.ExactArgs(2),
	RunE:  runVariantsRename,
}

var variantsCreateNoSelect bool

func init() {
	variantsCreateCmd.Flags().BoolVar(&variantsCreateNoSelect, "no-select", false, "Keep the current selection")

	variantsCmd.AddCommand(variantsListCmd, variantsCreateCmd, variantsDeleteCmd, variantsSelectCmd, variantsRenameCmd)
	rootCmd.AddCommand(variantsCmd)
}

func runVariantsList(cmd *cobra.Command, _ []string) error {
	app, err := openApp(context.Background())
	if err != nil {
		return err
	}
	defer app.close()

	out := cmd.OutOrStdout()
	list := app.registry.List()
	if len(list) == 0 {
		_, _ = fmt.Fprintln(out, "No variants. Create one with `resume_variants variants create <name>`.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "\tID\tNAME\tCREATED\tJOB")
	for _, v := range list {
		marker := ""
		if v.Active {
			marker = "*"
		}
		job := ""
		if v.HasJobDescription {
			job = "yes"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", marker, v.ID, v.Name, v.CreatedAt.Format("2006-01-02"), job)
	}
	return tw.Flush()
}

func runVariantsCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	app, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer app.close()

	id, err := app.registry.CreateVariant(args[0])
	if err != nil {
		return err
	}
	if !variantsCreateNoSelect {
		if err := app.registry.SelectVariant(id); err != nil {
			return err
		}
	}
	if err := app.save(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}

func runVariantsDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	app, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer app.close()

	if err := app.registry.DeleteVariant(args[0]); err != nil {
		return err
	}
	if err := app.db.DeleteMatchRuns(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete match history: %w", err)
	}
	if err := app.save(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}

func runVariantsSelect(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	app, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer app.close()

	id := ""
	if len(args) == 1 {
		id = args[0]
	}
	if err := app.registry.SelectVariant(id); err != nil {
		return err
	}
	if err := app.save(ctx); err != nil {
		return err
	}
	if id == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Selected master")
	} else {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Selected %s\n", id)
	}
	return nil
}

func runVariantsRename(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	app, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer app.close()

	if err := app.registry.Rename(args[0], args[1]); err != nil {
		return err
	}
	if err := app.save(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %q\n", args[0], args[1])
	return nil
}
