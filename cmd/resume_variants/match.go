package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-variants/internal/ingestion"
	"github.com/jonathan/resume-variants/internal/matching"
	"github.com/jonathan/resume-variants/internal/observability"
	"github.com/jonathan/resume-variants/internal/types"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Ask the LLM which entries and bullets fit a job description",
	Long: "Scores every entry and bullet of the variant against its job description and suggests which to enable. " +
		"--apply writes the suggestions as overrides; --only limits that to the listed ids. " +
		"Requires GEMINI_API_KEY.",
	Args: cobra.NoArgs,
	RunE: runMatch,
}

var (
	matchVariantID string
	matchJob       string
	matchJobFile   string
	matchApply     bool
	matchOnly      string
	matchLast      bool
)

func init() {
	matchCmd.Flags().StringVar(&matchVariantID, "variant", "", "Variant to match (default: the selected variant)")
	matchCmd.Flags().StringVar(&matchJob, "job", "", "Job description text (replaces the variant's stored description)")
	matchCmd.Flags().StringVar(&matchJobFile, "job-file", "", "Read the job description from a file")
	matchCmd.Flags().BoolVar(&matchApply, "apply", false, "Apply the suggestions as enabled overrides")
	matchCmd.Flags().StringVar(&matchOnly, "only", "", "Comma-separated ids to apply (default: all suggestions)")
	matchCmd.Flags().BoolVar(&matchLast, "last", false, "Show the most recent saved match instead of calling the LLM")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	app, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer app.close()

	id, err := app.requireVariant(matchVariantID)
	if err != nil {
		return err
	}
	v, err := app.registry.Get(id)
	if err != nil {
		return err
	}

	if matchLast {
		run, err := app.db.LatestMatchRun(ctx, id)
		if err != nil {
			return err
		}
		if run == nil {
			return fmt.Errorf("no saved match for variant %s", id)
		}
		observability.NewPrinter(cmd.OutOrStdout(), verbose).PrintMatch(&run.Response)
		return nil
	}

	jd := ingestion.CleanText(matchJob)
	if matchJobFile != "" {
		if jd, err = ingestion.ReadJobDescription(matchJobFile); err != nil {
			return err
		}
	}
	if jd != "" && jd != v.JobDescription {
		if err := app.registry.SetJobDescription(id, jd, v.JobURL); err != nil {
			return err
		}
	}
	if jd == "" {
		jd = v.JobDescription
	}

	matcher, client, err := app.matcher(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	doc, err := app.registry.EffectiveDocument(id)
	if err != nil {
		return err
	}
	resp, err := matcher.Match(ctx, doc, jd)
	if err != nil {
		return err
	}
	if _, err := app.db.SaveMatchRun(ctx, id, resp); err != nil {
		app.logger.Warn("failed to record match run", zap.Error(err))
	}
	observability.NewPrinter(cmd.OutOrStdout(), verbose).PrintMatch(resp)

	if matchApply {
		overrides := selectSuggestions(resp.Results, splitIDs([]string{matchOnly}))
		if err := app.registry.ApplySuggestions(id, overrides); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Applied %d suggestion(s) to %s\n", len(overrides), id)
	}
	return app.save(ctx)
}

// selectSuggestions turns results into enabled overrides, restricted to only
// when it is non-empty
func selectSuggestions(results []types.MatchResult, only []string) map[string]bool {
	overrides := matching.SuggestionsToOverrides(results)
	if len(only) == 0 {
		return overrides
	}
	keep := make(map[string]bool, len(only))
	for _, id := range only {
		keep[id] = true
	}
	for id := range overrides {
		if !keep[id] {
			delete(overrides, id)
		}
	}
	return overrides
}
