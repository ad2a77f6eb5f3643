package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-variants/internal/ingestion"
)

var ingestJobCmd = &cobra.Command{
	Use:   "ingest-job <url>",
	Short: "Fetch a job posting and store it as the variant's job description",
	Long: "Downloads the posting (Greenhouse, Lever, Workday, Ashby or any page), extracts its text and stores it on the variant. " +
		"Pages are cached in the workspace; --browser renders JavaScript-only pages with headless Chrome.",
	Args: cobra.ExactArgs(1),
	RunE: runIngestJob,
}

var (
	ingestVariantID string
	ingestBrowser   bool
	ingestPrint     bool
)

func init() {
	ingestJobCmd.Flags().StringVar(&ingestVariantID, "variant", "", "Variant to update (default: the selected variant)")
	ingestJobCmd.Flags().BoolVar(&ingestBrowser, "browser", false, "Fall back to headless Chrome for pages with little static text")
	ingestJobCmd.Flags().BoolVar(&ingestPrint, "print", false, "Print the extracted text")
	rootCmd.AddCommand(ingestJobCmd)
}

func runIngestJob(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	app, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer app.close()

	id, err := app.requireVariant(ingestVariantID)
	if err != nil {
		return err
	}
	if _, err := app.registry.Get(id); err != nil {
		return err
	}

	if ingestBrowser {
		app.cfg.UseBrowser = true
	}
	posting, err := app.fetcher().JobPosting(ctx, args[0])
	if err != nil {
		return err
	}
	text := ingestion.CleanText(posting.Text)
	if err := app.registry.SetJobDescription(id, text, posting.URL); err != nil {
		return err
	}
	if err := app.save(ctx); err != nil {
		return err
	}

	app.logger.Info("job posting ingested",
		zap.String("variant_id", id),
		zap.String("url", posting.URL),
		zap.String("platform", string(posting.Platform)),
		zap.Bool("from_cache", posting.FromCache),
		zap.Bool("rendered", posting.Rendered),
	)
	out := cmd.OutOrStdout()
	title := posting.Title
	if title == "" {
		title = posting.URL
	}
	_, _ = fmt.Fprintf(out, "Stored %q (%d chars) on %s\n", title, len(text), id)
	if ingestPrint {
		_, _ = fmt.Fprintln(out, text)
	}
	return nil
}
